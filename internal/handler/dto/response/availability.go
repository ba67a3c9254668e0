package response

import (
	"fmt"
	"time"

	"appointment-engine/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsAvailable bool      `json:"is_available"`
	Reason      string    `json:"reason,omitempty"`
}

type AvailabilityResponse struct {
	OwnerID             uuid.UUID      `json:"owner_id"`
	Timezone            string         `json:"timezone"`
	SlotDurationMinutes int            `json:"slot_duration_minutes"`
	TotalSlots          int            `json:"total_slots"`
	AvailableSlots      int            `json:"available_slots"`
	Slots               []SlotResponse `json:"slots"`
}

func FromAvailability(r *queries.AvailabilityResult) *AvailabilityResponse {
	slots := make([]SlotResponse, len(r.Slots))
	for i, s := range r.Slots {
		slots[i] = SlotResponse{
			StartTime:   s.Interval.Start(),
			EndTime:     s.Interval.End(),
			IsAvailable: s.Available,
			Reason:      s.Reason.String(),
		}
	}
	return &AvailabilityResponse{
		OwnerID:             r.OwnerID,
		Timezone:            r.Timezone,
		SlotDurationMinutes: int(r.SlotDuration / time.Minute),
		TotalSlots:          r.TotalSlots,
		AvailableSlots:      r.AvailableCount,
		Slots:               slots,
	}
}

type AgentSlotResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// AgentAvailabilityResponse is phrased for a voice agent reading it back to a caller.
type AgentAvailabilityResponse struct {
	Date           string              `json:"date"`
	Timezone       string              `json:"timezone"`
	TotalSlots     int                 `json:"total_slots"`
	AvailableSlots int                 `json:"available_slots"`
	Slots          []AgentSlotResponse `json:"slots"`
	Message        string              `json:"message"`
}

func FromAgentAvailability(date string, loc *time.Location, r *queries.AvailabilityResult) *AgentAvailabilityResponse {
	slots := make([]AgentSlotResponse, len(r.Slots))
	for i, s := range r.Slots {
		slots[i] = AgentSlotResponse{
			Date:      date,
			StartTime: s.Interval.Start().In(loc).Format("15:04"),
			EndTime:   s.Interval.End().In(loc).Format("15:04"),
			Available: s.Available,
		}
	}
	return &AgentAvailabilityResponse{
		Date:           date,
		Timezone:       r.Timezone,
		TotalSlots:     r.TotalSlots,
		AvailableSlots: r.AvailableCount,
		Slots:          slots,
		Message:        fmt.Sprintf("Found %d available slots on %s", r.AvailableCount, date),
	}
}
