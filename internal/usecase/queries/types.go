package queries

import (
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidCursor = errs.Mark(errs.New("invalid cursor"), errs.ErrDomainValidation)

// AppointmentView is the read model served by list, detail and agent endpoints.
type AppointmentView struct {
	ID            uuid.UUID      `json:"id"`
	OwnerID       uuid.UUID      `json:"owner_id"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Location      string         `json:"location,omitempty"`
	Timezone      string         `json:"timezone"`
	StartTime     time.Time      `json:"start_time"`
	EndTime       time.Time      `json:"end_time"`
	Status        string         `json:"status"`
	AttendeeName  string         `json:"attendee_name"`
	AttendeeEmail string         `json:"attendee_email,omitempty"`
	AttendeePhone string         `json:"attendee_phone,omitempty"`
	Source        string         `json:"source"`
	AgentID       *uuid.UUID     `json:"agent_id,omitempty"`
	SendReminders bool           `json:"send_reminders"`
	ReminderSent  bool           `json:"reminder_sent"`
	Metadata      map[string]any `json:"metadata"`
	LastAction    string         `json:"last_action"`
	CancelledAt   *time.Time     `json:"cancelled_at,omitempty"`
	RescheduledAt *time.Time     `json:"rescheduled_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func NewAppointmentView(a *appointment.Appointment) *AppointmentView {
	iv := a.Interval()
	d := a.Details()
	at := a.Attendee()
	return &AppointmentView{
		ID:            a.ID(),
		OwnerID:       a.OwnerID(),
		Title:         d.Title(),
		Description:   d.Description(),
		Location:      d.Location(),
		Timezone:      d.Timezone(),
		StartTime:     iv.Start(),
		EndTime:       iv.End(),
		Status:        a.Status().String(),
		AttendeeName:  at.Name(),
		AttendeeEmail: at.Email(),
		AttendeePhone: at.Phone(),
		Source:        a.Source().String(),
		AgentID:       a.AgentID(),
		SendReminders: a.SendReminders(),
		ReminderSent:  a.ReminderSent(),
		Metadata:      a.Metadata(),
		LastAction:    a.LastAction(),
		CancelledAt:   a.CancelledAt(),
		RescheduledAt: a.RescheduledAt(),
		CreatedAt:     a.CreatedAt(),
		UpdatedAt:     a.UpdatedAt(),
	}
}

type AppointmentFilter struct {
	Status *appointment.Status
	From   *time.Time
	To     *time.Time
}

type AppointmentStats struct {
	Total              int64            `json:"total"`
	Upcoming           int64            `json:"upcoming"`
	Completed          int64            `json:"completed"`
	Cancelled          int64            `json:"cancelled"`
	NoShow             int64            `json:"no_show"`
	ByStatus           map[string]int64 `json:"by_status"`
	AvgDurationMinutes float64          `json:"avg_duration_minutes"`
	TotalHours         float64          `json:"total_hours"`
}
