package shared

import (
	"context"
	"time"

	"appointment-engine/internal/domain/agent"
	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/integration"
	"appointment-engine/internal/domain/owner"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/infra/query"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only snapshot for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error
	// CommandReads: validation reads outside any transaction
	CommandReads() CommandReads
}

type Tx interface {
	Appointments() AppointmentRepository
	BlockedPeriods() BlockedPeriodRepository
	Settings() SettingsRepository
	Idempotency() IdempotencyRepository
	Outbox() OutboxRepository
	Agents() AgentRepository
	Integrations() IntegrationRepository
	Reads() CommandReads
	DB() query.DBTX
}

type CommandReads interface {
	Owner(ctx context.Context, id uuid.UUID) (*owner.Owner, error)
	// Settings falls back to schedule.DefaultSettings when nothing is stored.
	Settings(ctx context.Context, ownerID uuid.UUID) (*schedule.Settings, error)
	Agent(ctx context.Context, id uuid.UUID) (*agent.Agent, error)
}

type AppointmentRepository interface {
	// LockOwner takes the per-owner transaction lock that serializes bookings.
	LockOwner(ctx context.Context, ownerID uuid.UUID) error
	HasOverlap(ctx context.Context, ownerID uuid.UUID, iv appointment.Interval, exclude *uuid.UUID) (bool, error)
	Create(ctx context.Context, a *appointment.Appointment) error
	Update(ctx context.Context, a *appointment.Appointment) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*appointment.Appointment, error)
	FindByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*appointment.Appointment, error)
	MarkReminderSent(ctx context.Context, ownerID, id uuid.UUID) (bool, error)
}

type BlockedPeriodRepository interface {
	Create(ctx context.Context, b *schedule.BlockedPeriod) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	HasOverlap(ctx context.Context, ownerID uuid.UUID, iv appointment.Interval) (bool, error)
}

type SettingsRepository interface {
	Save(ctx context.Context, s *schedule.Settings) (*schedule.Settings, error)
}

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

type IdempotencyRecord struct {
	Key                 string
	OwnerID             uuid.UUID
	Endpoint            string
	Status              IdempotencyStatus
	RequestHash         string
	ResultAppointmentID *uuid.UUID
	ExpiresAt           time.Time
}

type IdempotencyRepository interface {
	// Lock inserts the key when absent and returns the row locked FOR UPDATE.
	Lock(ctx context.Context, ownerID uuid.UUID, key, endpoint, requestHash string, expiresAt time.Time) (*IdempotencyRecord, error)
	Complete(ctx context.Context, ownerID uuid.UUID, key string, appointmentID uuid.UUID) error
}

type OutboxMessage struct {
	Topic       string
	EventType   string
	AggregateID uuid.UUID
	Payload     []byte
}

type OutboxRepository interface {
	Insert(ctx context.Context, msg OutboxMessage) error
}

type AgentRepository interface {
	Create(ctx context.Context, a *agent.Agent) error
	UpdateToken(ctx context.Context, a *agent.Agent) error
}

type IntegrationRepository interface {
	Upsert(ctx context.Context, i *integration.Integration) (*integration.Integration, error)
}
