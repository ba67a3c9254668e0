package usecase

import (
	"appointment-engine/internal/domain/owner"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/jwt"

	"github.com/google/uuid"
)

// Identity is the caller a dashboard token resolves to.
type Identity struct {
	OwnerID uuid.UUID
	Role    owner.Role
}

type TokenValidator interface {
	ValidateToken(tokenString string) (Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

// ValidateToken rejects tokens whose role claim is not a known owner role,
// so downstream role checks never see an arbitrary string.
func (t *tokenValidatorImpl) ValidateToken(tokenString string) (Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return Identity{}, err
	}

	role, err := owner.NewRole(claims.Role)
	if err != nil {
		return Identity{}, errs.Wrapf(err, "token for owner %s", claims.OwnerID)
	}

	return Identity{OwnerID: claims.OwnerID, Role: role}, nil
}
