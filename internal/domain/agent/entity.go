package agent

import (
	"strings"
	"time"

	"appointment-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

const MaxNameLength = 100

var (
	ErrInvalidName   = errs.Mark(errs.New("agent name must be 1-100 characters"), errs.ErrDomainValidation)
	ErrAgentNotFound = errs.New("agent not found")
	ErrAgentInactive = errs.New("agent is inactive")
)

// Agent is a voice agent allowed to read availability and book on behalf
// of its owner. Only the bcrypt hash of its token is kept.
type Agent struct {
	id        uuid.UUID
	ownerID   uuid.UUID
	name      string
	tokenHash string
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewAgent(ownerID uuid.UUID, name, tokenHash string, now time.Time) (*Agent, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return nil, ErrInvalidName
	}
	now = now.UTC()
	return &Agent{
		id:        uuid.New(),
		ownerID:   ownerID,
		name:      name,
		tokenHash: tokenHash,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(id, ownerID uuid.UUID, name, tokenHash string, active bool, createdAt, updatedAt time.Time) *Agent {
	return &Agent{
		id:        id,
		ownerID:   ownerID,
		name:      name,
		tokenHash: tokenHash,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (a *Agent) RotateToken(tokenHash string, now time.Time) {
	a.tokenHash = tokenHash
	a.updatedAt = now.UTC()
}

func (a *Agent) ID() uuid.UUID        { return a.id }
func (a *Agent) OwnerID() uuid.UUID   { return a.ownerID }
func (a *Agent) Name() string         { return a.name }
func (a *Agent) TokenHash() string    { return a.tokenHash }
func (a *Agent) IsActive() bool       { return a.active }
func (a *Agent) CreatedAt() time.Time { return a.createdAt }
func (a *Agent) UpdatedAt() time.Time { return a.updatedAt }
