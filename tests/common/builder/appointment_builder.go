//go:build unit || e2e

package builder

import (
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/handler/dto/request"
	"appointment-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type AppointmentBuilder struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Title         string
	Start         time.Time
	Duration      time.Duration
	Status        appointment.Status
	AttendeeName  string
	AttendeeEmail string
	AttendeePhone string
	Source        appointment.Source
	AgentID       *uuid.UUID
}

// NewAppointmentBuilder starts from a 30 minute slot two days out, on the hour.
func NewAppointmentBuilder() *AppointmentBuilder {
	start := time.Now().UTC().Add(48 * time.Hour).Truncate(time.Hour)
	return &AppointmentBuilder{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		Title:         "Consultation",
		Start:         start,
		Duration:      30 * time.Minute,
		Status:        appointment.StatusScheduled,
		AttendeeName:  "Jane Doe",
		AttendeeEmail: "jane@example.com",
		AttendeePhone: "+15550100",
		Source:        appointment.SourceDashboard,
	}
}

func (b *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	mutate(b)
	return b
}

func (b *AppointmentBuilder) WithOwner(ownerID uuid.UUID) *AppointmentBuilder {
	b.OwnerID = ownerID
	return b
}

func (b *AppointmentBuilder) WithStart(start time.Time) *AppointmentBuilder {
	b.Start = start
	return b
}

func (b *AppointmentBuilder) WithStatus(s appointment.Status) *AppointmentBuilder {
	b.Status = s
	return b
}

func (b *AppointmentBuilder) End() time.Time {
	return b.Start.Add(b.Duration)
}

func (b *AppointmentBuilder) BuildDomain() *appointment.Appointment {
	details, _ := appointment.NewDetails(b.Title, "", "", "UTC")
	attendee, _ := appointment.NewAttendee(b.AttendeeName, b.AttendeeEmail, b.AttendeePhone)
	now := time.Now().UTC()
	return appointment.Reconstruct(appointment.ReconstructParams{
		ID:            b.ID,
		OwnerID:       b.OwnerID,
		Interval:      appointment.MustInterval(b.Start, b.End()),
		Status:        b.Status,
		Details:       details,
		Attendee:      attendee,
		Source:        b.Source,
		AgentID:       b.AgentID,
		SendReminders: true,
		LastAction:    "created",
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func (b *AppointmentBuilder) BuildView() *queries.AppointmentView {
	return queries.NewAppointmentView(b.BuildDomain())
}

func (b *AppointmentBuilder) BuildRequestDTO() request.BookAppointmentRequest {
	return request.BookAppointmentRequest{
		Title:         b.Title,
		StartTime:     b.Start.Format(time.RFC3339),
		EndTime:       b.End().Format(time.RFC3339),
		Timezone:      "UTC",
		AttendeeName:  b.AttendeeName,
		AttendeeEmail: b.AttendeeEmail,
		AttendeePhone: b.AttendeePhone,
	}
}
