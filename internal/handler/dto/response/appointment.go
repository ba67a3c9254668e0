package response

import (
	"time"

	"appointment-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AppointmentResponse struct {
	ID              uuid.UUID      `json:"id"`
	OwnerID         uuid.UUID      `json:"owner_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description,omitempty"`
	Location        string         `json:"location,omitempty"`
	Timezone        string         `json:"timezone"`
	StartTime       time.Time      `json:"start_time"`
	EndTime         time.Time      `json:"end_time"`
	DurationMinutes int            `json:"duration_minutes" copier:"-"`
	Status          string         `json:"status"`
	AttendeeName    string         `json:"attendee_name"`
	AttendeeEmail   string         `json:"attendee_email,omitempty"`
	AttendeePhone   string         `json:"attendee_phone,omitempty"`
	Source          string         `json:"source"`
	AgentID         *uuid.UUID     `json:"agent_id,omitempty"`
	SendReminders   bool           `json:"send_reminders"`
	ReminderSent    bool           `json:"reminder_sent"`
	Metadata        map[string]any `json:"metadata"`
	LastAction      string         `json:"last_action"`
	CancelledAt     *time.Time     `json:"cancelled_at,omitempty"`
	RescheduledAt   *time.Time     `json:"rescheduled_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []*AppointmentResponse `json:"appointments"`
	NextCursor   string                 `json:"next_cursor,omitempty"`
}

func FromAppointmentView(v *queries.AppointmentView) (*AppointmentResponse, error) {
	var res AppointmentResponse
	if err := copier.CopyWithOption(&res, v, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	res.DurationMinutes = int(v.EndTime.Sub(v.StartTime) / time.Minute)
	return &res, nil
}

func FromAppointmentViews(views []*queries.AppointmentView) ([]*AppointmentResponse, error) {
	res := make([]*AppointmentResponse, 0, len(views))
	for _, v := range views {
		r, err := FromAppointmentView(v)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

type AppointmentStatsResponse struct {
	Total              int64            `json:"total_appointments"`
	Upcoming           int64            `json:"upcoming_appointments"`
	Completed          int64            `json:"completed_appointments"`
	Cancelled          int64            `json:"cancelled_appointments"`
	NoShow             int64            `json:"no_show_appointments"`
	ByStatus           map[string]int64 `json:"appointments_by_status"`
	AvgDurationMinutes float64          `json:"average_duration_minutes"`
	TotalHours         float64          `json:"total_hours_booked"`
}

func FromAppointmentStats(s *queries.AppointmentStats) (*AppointmentStatsResponse, error) {
	var res AppointmentStatsResponse
	if err := copier.CopyWithOption(&res, s, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if res.ByStatus == nil {
		res.ByStatus = map[string]int64{}
	}
	return &res, nil
}
