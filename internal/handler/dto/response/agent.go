package response

import (
	"time"

	"appointment-engine/internal/domain/agent"
	"appointment-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type AgentResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AgentCredentialsResponse is the only response that carries the plaintext token.
type AgentCredentialsResponse struct {
	AgentResponse
	Token string `json:"token"`
}

func FromAgentCredentials(a *agent.Agent, token string) *AgentCredentialsResponse {
	return &AgentCredentialsResponse{
		AgentResponse: AgentResponse{
			ID:        a.ID(),
			Name:      a.Name(),
			IsActive:  a.IsActive(),
			CreatedAt: a.CreatedAt(),
			UpdatedAt: a.UpdatedAt(),
		},
		Token: token,
	}
}

type AgentBookResponse struct {
	Success         bool      `json:"success"`
	AppointmentID   uuid.UUID `json:"appointment_id"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	CustomerName    string    `json:"customer_name"`
	Status          string    `json:"status"`
	Message         string    `json:"message"`
}

type AgentTodayItem struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	Time          string    `json:"time"`
	CustomerName  string    `json:"customer_name"`
	Status        string    `json:"status"`
}

type AgentTodayResponse struct {
	Date              string           `json:"date"`
	TotalAppointments int              `json:"total_appointments"`
	Appointments      []AgentTodayItem `json:"appointments"`
}

func FromToday(date string, loc *time.Location, views []*queries.AppointmentView) *AgentTodayResponse {
	items := make([]AgentTodayItem, len(views))
	for i, v := range views {
		name := v.AttendeeName
		if name == "" {
			name = "Unknown"
		}
		items[i] = AgentTodayItem{
			AppointmentID: v.ID,
			Time:          v.StartTime.In(loc).Format("15:04"),
			CustomerName:  name,
			Status:        v.Status,
		}
	}
	return &AgentTodayResponse{
		Date:              date,
		TotalAppointments: len(items),
		Appointments:      items,
	}
}
