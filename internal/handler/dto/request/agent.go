package request

import (
	"fmt"
	"strings"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/pkg/ptr"
	"appointment-engine/internal/pkg/timeutil"
	"appointment-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateAgentRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type AgentCheckAvailabilityRequest struct {
	Date            string `json:"date" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=5,max=480"`
}

func (r *AgentCheckAvailabilityRequest) Parse() (time.Time, time.Duration, error) {
	d, err := timeutil.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, 0, err
	}
	return d, time.Duration(r.DurationMinutes) * time.Minute, nil
}

type AgentBookRequest struct {
	Date            string `json:"date" binding:"required"`
	StartTime       string `json:"start_time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required,min=5,max=480"`
	CustomerName    string `json:"customer_name" binding:"required,max=255"`
	CustomerPhone   string `json:"customer_phone" binding:"required,max=50"`
	CustomerEmail   string `json:"customer_email" binding:"omitempty,email"`
	Notes           string `json:"notes" binding:"max=2000"`
}

// ToInput resolves date and wall-clock start in the owner's timezone.
func (r *AgentBookRequest) ToInput(ownerID, agentID uuid.UUID, loc *time.Location, idempotencyKey string) (commands.BookInput, error) {
	day, err := timeutil.ParseDate(r.Date)
	if err != nil {
		return commands.BookInput{}, err
	}
	tod, err := appointment.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return commands.BookInput{}, err
	}
	iv, err := appointment.NewIntervalFor(tod.On(day, loc), time.Duration(r.DurationMinutes)*time.Minute)
	if err != nil {
		return commands.BookInput{}, err
	}
	return commands.BookInput{
		OwnerID:       ownerID,
		Interval:      iv,
		Title:         fmt.Sprintf("Appointment - %s", strings.TrimSpace(r.CustomerName)),
		Description:   r.Notes,
		Timezone:      loc.String(),
		AttendeeName:  r.CustomerName,
		AttendeeEmail: r.CustomerEmail,
		AttendeePhone: r.CustomerPhone,
		SendReminders: true,
		Source:        appointment.SourceVoiceAgent,
		AgentID:       ptr.Of(agentID),
		Metadata: map[string]any{
			"booked_via": "voice_ai",
			"agent_id":   agentID.String(),
		},
		IdempotencyKey: strings.TrimSpace(idempotencyKey),
	}, nil
}
