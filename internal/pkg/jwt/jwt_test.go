//go:build unit

package jwt

import (
	"testing"
	"time"

	"appointment-engine/internal/domain/owner"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RoundTrip(t *testing.T) {
	svc := NewService("secret", "idp")
	ownerID := uuid.New()

	token, err := svc.GenerateToken(ownerID, owner.RoleOperator, time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, ownerID, claims.OwnerID)
	assert.Equal(t, "operator", claims.Role)
}

func TestService_ValidateToken_Errors(t *testing.T) {
	svc := NewService("secret", "idp")

	expired, err := svc.GenerateToken(uuid.New(), owner.RoleViewer, -time.Minute)
	require.NoError(t, err)
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrExpiredToken)

	foreign, err := NewService("other", "idp").GenerateToken(uuid.New(), owner.RoleViewer, time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer, err := NewService("secret", "elsewhere").GenerateToken(uuid.New(), owner.RoleViewer, time.Hour)
	require.NoError(t, err)
	_, err = svc.ValidateToken(wrongIssuer)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
