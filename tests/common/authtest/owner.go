//go:build unit || e2e

package authtest

import (
	"testing"

	"appointment-engine/internal/domain/owner"
	"appointment-engine/tests/common/dbtest"

	"github.com/google/uuid"
)

// CreateOwnerWithToken inserts an owner row and signs a bearer token for it.
func CreateOwnerWithToken(t *testing.T, db dbtest.DBLike, h *JWTHelper, email string, role owner.Role) (uuid.UUID, string) {
	t.Helper()
	ownerID := dbtest.CreateTestOwner(t, db, "Test Owner", email)
	return ownerID, h.GenerateToken(t, ownerID, role)
}
