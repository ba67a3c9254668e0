package request

import (
	"strings"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/pkg/patch"
	"appointment-engine/internal/pkg/timeutil"
	"appointment-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

// Timestamps are kept as strings so offset-less values surface as
// InvalidTimeRange instead of a generic bind error.
type BookAppointmentRequest struct {
	Title         string         `json:"title" binding:"required,max=255"`
	Description   string         `json:"description" binding:"max=2000"`
	StartTime     string         `json:"start_time" binding:"required"`
	EndTime       string         `json:"end_time" binding:"required"`
	Timezone      string         `json:"timezone"`
	Location      string         `json:"location" binding:"max=255"`
	AttendeeName  string         `json:"attendee_name" binding:"required,max=255"`
	AttendeeEmail string         `json:"attendee_email" binding:"omitempty,email"`
	AttendeePhone string         `json:"attendee_phone" binding:"max=50"`
	SendReminders *bool          `json:"send_reminders"`
	Metadata      map[string]any `json:"metadata"`
}

func (r *BookAppointmentRequest) ToInput(ownerID uuid.UUID, idempotencyKey string) (commands.BookInput, error) {
	iv, err := parseInterval(r.StartTime, r.EndTime)
	if err != nil {
		return commands.BookInput{}, err
	}
	return commands.BookInput{
		OwnerID:        ownerID,
		Interval:       iv,
		Title:          r.Title,
		Description:    r.Description,
		Location:       r.Location,
		Timezone:       r.Timezone,
		AttendeeName:   r.AttendeeName,
		AttendeeEmail:  r.AttendeeEmail,
		AttendeePhone:  r.AttendeePhone,
		SendReminders:  patch.Coalesce(r.SendReminders, true),
		Source:         appointment.SourceDashboard,
		Metadata:       r.Metadata,
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
	}, nil
}

type RescheduleRequest struct {
	StartTime string `json:"new_start_time" binding:"required"`
	EndTime   string `json:"new_end_time" binding:"required"`
	Reason    string `json:"reason" binding:"max=500"`
	Notify    *bool  `json:"notify_attendee"`
}

func (r *RescheduleRequest) ToInput(ownerID, id uuid.UUID) (commands.RescheduleInput, error) {
	iv, err := parseInterval(r.StartTime, r.EndTime)
	if err != nil {
		return commands.RescheduleInput{}, err
	}
	return commands.RescheduleInput{
		OwnerID:       ownerID,
		AppointmentID: id,
		Interval:      iv,
		Reason:        r.Reason,
		Notify:        patch.Coalesce(r.Notify, true),
	}, nil
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"max=500"`
	Notify *bool  `json:"notify_attendee"`
}

func (r *CancelRequest) ToInput(ownerID, id uuid.UUID) commands.CancelInput {
	return commands.CancelInput{
		OwnerID:       ownerID,
		AppointmentID: id,
		Reason:        r.Reason,
		Notify:        patch.Coalesce(r.Notify, true),
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed no_show"`
}

func (r *UpdateStatusRequest) ToDomain() (appointment.Status, error) {
	return appointment.ParseStatus(r.Status)
}

func parseInterval(start, end string) (appointment.Interval, error) {
	s, err := timeutil.ParseInstant(start)
	if err != nil {
		return appointment.Interval{}, err
	}
	e, err := timeutil.ParseInstant(end)
	if err != nil {
		return appointment.Interval{}, err
	}
	return appointment.NewInterval(s, e)
}
