package query

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type Owner struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt pgtype.Timestamptz
}

type CalendarSetting struct {
	OwnerID                uuid.UUID
	BusinessHours          []byte
	SlotDurationMinutes    int32
	BufferTimeMinutes      int32
	MaxAdvanceBookingDays  int32
	MinAdvanceBookingHours int32
	Timezone               string
	AutoConfirm            bool
	CreatedAt              pgtype.Timestamptz
	UpdatedAt              pgtype.Timestamptz
}

type BlockedPeriod struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	StartTime pgtype.Timestamptz
	EndTime   pgtype.Timestamptz
	Reason    pgtype.Text
	CreatedAt pgtype.Timestamptz
}

type Agent struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	TokenHash string
	IsActive  bool
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Appointment struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Title         string
	Description   pgtype.Text
	Location      pgtype.Text
	Timezone      string
	StartTime     pgtype.Timestamptz
	EndTime       pgtype.Timestamptz
	Status        string
	AttendeeName  string
	AttendeeEmail pgtype.Text
	AttendeePhone pgtype.Text
	Source        string
	AgentID       pgtype.UUID
	SendReminders bool
	ReminderSent  bool
	Metadata      []byte
	LastAction    string
	CancelledAt   pgtype.Timestamptz
	RescheduledAt pgtype.Timestamptz
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type IdempotencyKey struct {
	Key                 string
	OwnerID             uuid.UUID
	Endpoint            string
	RequestHash         string
	Status              string
	ResultAppointmentID pgtype.UUID
	ExpiresAt           pgtype.Timestamptz
	CreatedAt           pgtype.Timestamptz
}

type OutboxEvent struct {
	ID          uuid.UUID
	Topic       string
	EventType   string
	AggregateID uuid.UUID
	Payload     []byte
	Traceparent pgtype.Text
	Tracestate  pgtype.Text
	Attempts    int32
	LastError   pgtype.Text
	CreatedAt   pgtype.Timestamptz
	PublishedAt pgtype.Timestamptz
}

type CalendarIntegration struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	Provider   string
	Status     string
	AuthCode   pgtype.Text
	LastSyncAt pgtype.Timestamptz
	CreatedAt  pgtype.Timestamptz
	UpdatedAt  pgtype.Timestamptz
}
