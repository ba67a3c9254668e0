package integration

import (
	"time"

	"appointment-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type Provider string

const (
	ProviderGoogle  Provider = "google"
	ProviderOutlook Provider = "outlook"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConnected Status = "connected"
	StatusError     Status = "error"
)

var ErrUnknownProvider = errs.Mark(errs.New("unsupported calendar provider"), errs.ErrDomainValidation)

func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderGoogle, ProviderOutlook:
		return Provider(s), nil
	default:
		return "", ErrUnknownProvider
	}
}

func (p Provider) String() string { return string(p) }

// Integration links an owner to an external calendar. The authorization code
// is held until the sync worker exchanges it for tokens.
type Integration struct {
	id         uuid.UUID
	ownerID    uuid.UUID
	provider   Provider
	status     Status
	authCode   string
	lastSyncAt *time.Time
	createdAt  time.Time
	updatedAt  time.Time
}

func NewPending(ownerID uuid.UUID, provider Provider, authCode string, now time.Time) *Integration {
	now = now.UTC()
	return &Integration{
		id:        uuid.New(),
		ownerID:   ownerID,
		provider:  provider,
		status:    StatusPending,
		authCode:  authCode,
		createdAt: now,
		updatedAt: now,
	}
}

func Reconstruct(id, ownerID uuid.UUID, provider Provider, status Status, authCode string, lastSyncAt *time.Time, createdAt, updatedAt time.Time) *Integration {
	return &Integration{
		id:         id,
		ownerID:    ownerID,
		provider:   provider,
		status:     status,
		authCode:   authCode,
		lastSyncAt: lastSyncAt,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (i *Integration) ID() uuid.UUID          { return i.id }
func (i *Integration) OwnerID() uuid.UUID     { return i.ownerID }
func (i *Integration) Provider() Provider     { return i.provider }
func (i *Integration) Status() Status         { return i.status }
func (i *Integration) AuthCode() string       { return i.authCode }
func (i *Integration) LastSyncAt() *time.Time { return i.lastSyncAt }
func (i *Integration) CreatedAt() time.Time   { return i.createdAt }
func (i *Integration) UpdatedAt() time.Time   { return i.updatedAt }
