package commands

import (
	"context"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/integration"

	"github.com/google/uuid"
)

// ReminderScheduler enqueues the delayed reminder of an appointment. It runs
// after commit; failures are logged and never undo the booking.
type ReminderScheduler interface {
	Schedule(ctx context.Context, a *appointment.Appointment) error
}

// EventTopics names the outbox destinations.
type EventTopics struct {
	CalendarSync  string
	Notifications string
}

type OAuthState struct {
	OwnerID  uuid.UUID           `json:"owner_id"`
	Provider integration.Provider `json:"provider"`
}

// OAuthStateStore keeps CSRF states in a shared cache. Consume is single-use
// and reports found=false for unknown or expired states.
type OAuthStateStore interface {
	Issue(ctx context.Context, state string, value OAuthState, ttl time.Duration) error
	Consume(ctx context.Context, state string) (value *OAuthState, found bool, err error)
}
