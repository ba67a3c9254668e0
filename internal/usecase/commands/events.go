package commands

import (
	"context"
	"encoding/json"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentUpdated   = "appointment.updated"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentCompleted = "appointment.completed"
	EventAppointmentReminder  = "appointment.reminder"
	EventIntegrationConnected = "integration.connected"
)

type AttendeePayload struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// AppointmentEvent is the payload consumed by the calendar-sync and
// notification workers.
type AppointmentEvent struct {
	EventID       uuid.UUID       `json:"event_id"`
	Type          string          `json:"type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	AppointmentID uuid.UUID       `json:"appointment_id"`
	OwnerID       uuid.UUID       `json:"owner_id"`
	Status        string          `json:"status"`
	Title         string          `json:"title"`
	Location      string          `json:"location,omitempty"`
	Timezone      string          `json:"timezone"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	PreviousStart *time.Time      `json:"previous_start_time,omitempty"`
	PreviousEnd   *time.Time      `json:"previous_end_time,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Source        string          `json:"source"`
	Attendee      AttendeePayload `json:"attendee"`
}

type IntegrationEvent struct {
	EventID       uuid.UUID `json:"event_id"`
	Type          string    `json:"type"`
	OccurredAt    time.Time `json:"occurred_at"`
	IntegrationID uuid.UUID `json:"integration_id"`
	OwnerID       uuid.UUID `json:"owner_id"`
	Provider      string    `json:"provider"`
	AuthCode      string    `json:"auth_code"`
}

func newAppointmentEvent(eventType string, a *appointment.Appointment, now time.Time) AppointmentEvent {
	iv := a.Interval()
	d := a.Details()
	at := a.Attendee()
	return AppointmentEvent{
		EventID:       uuid.New(),
		Type:          eventType,
		OccurredAt:    now.UTC(),
		AppointmentID: a.ID(),
		OwnerID:       a.OwnerID(),
		Status:        a.Status().String(),
		Title:         d.Title(),
		Location:      d.Location(),
		Timezone:      d.Timezone(),
		StartTime:     iv.Start(),
		EndTime:       iv.End(),
		Source:        a.Source().String(),
		Attendee: AttendeePayload{
			Name:  at.Name(),
			Email: at.Email(),
			Phone: at.Phone(),
		},
	}
}

// publish writes one outbox row per topic in the current transaction.
func publish(ctx context.Context, tx shared.Tx, eventType string, aggregateID uuid.UUID, payload any, topics ...string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.Wrap(err, "failed to encode event payload")
	}
	for _, topic := range topics {
		if topic == "" {
			continue
		}
		err := tx.Outbox().Insert(ctx, shared.OutboxMessage{
			Topic:       topic,
			EventType:   eventType,
			AggregateID: aggregateID,
			Payload:     body,
		})
		if err != nil {
			return err
		}
	}
	return nil
}
