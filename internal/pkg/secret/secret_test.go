//go:build unit

package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewToken(t *testing.T) {
	plain, hash, err := NewToken()
	require.NoError(t, err)

	assert.Len(t, plain, 43)
	assert.NotEqual(t, plain, hash)
	assert.NoError(t, Compare(hash, plain))
	assert.ErrorIs(t, Compare(hash, plain+"x"), ErrMismatch)
}

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "ok", input: "agent-token"},
		{name: "empty", input: "", wantErr: ErrInvalidSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Hash(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, Compare(got, tt.input))
		})
	}
}

func TestCompare_EmptyInputs(t *testing.T) {
	assert.ErrorIs(t, Compare("", "x"), ErrInvalidSecret)
	assert.ErrorIs(t, Compare("x", ""), ErrInvalidSecret)
}
