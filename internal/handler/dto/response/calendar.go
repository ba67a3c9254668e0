package response

import (
	"time"

	"appointment-engine/internal/domain/integration"
	"appointment-engine/internal/domain/schedule"

	"github.com/google/uuid"
)

type BusinessHourResponse struct {
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

type CalendarSettingsResponse struct {
	OwnerID                uuid.UUID              `json:"owner_id"`
	BusinessHours          []BusinessHourResponse `json:"business_hours"`
	SlotDurationMinutes    int                    `json:"slot_duration_minutes"`
	BufferTimeMinutes      int                    `json:"buffer_time_minutes"`
	MaxAdvanceBookingDays  int                    `json:"max_advance_booking_days"`
	MinAdvanceBookingHours int                    `json:"min_advance_booking_hours"`
	Timezone               string                 `json:"timezone"`
	AutoConfirm            bool                   `json:"auto_confirm"`
	IsDefault              bool                   `json:"is_default"`
	UpdatedAt              *time.Time             `json:"updated_at,omitempty"`
}

func FromSettings(s *schedule.Settings) *CalendarSettingsResponse {
	days := s.Hours().Days()
	hours := make([]BusinessHourResponse, len(days))
	for i, d := range days {
		hours[i] = BusinessHourResponse{
			DayOfWeek:   int(d.Day),
			StartTime:   d.Start.String(),
			EndTime:     d.End.String(),
			IsAvailable: d.Available,
		}
	}
	res := &CalendarSettingsResponse{
		OwnerID:                s.OwnerID(),
		BusinessHours:          hours,
		SlotDurationMinutes:    s.SlotMinutes(),
		BufferTimeMinutes:      s.BufferMinutes(),
		MaxAdvanceBookingDays:  s.MaxAdvanceDays(),
		MinAdvanceBookingHours: s.MinAdvanceHours(),
		Timezone:               s.Timezone(),
		AutoConfirm:            s.AutoConfirm(),
		IsDefault:              s.IsDefault(),
	}
	if !s.IsDefault() {
		updated := s.UpdatedAt()
		res.UpdatedAt = &updated
	}
	return res
}

type BlockedPeriodResponse struct {
	ID        uuid.UUID `json:"id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromBlockedPeriod(b *schedule.BlockedPeriod) *BlockedPeriodResponse {
	return &BlockedPeriodResponse{
		ID:        b.ID(),
		StartTime: b.Interval().Start(),
		EndTime:   b.Interval().End(),
		Reason:    b.Reason(),
		CreatedAt: b.CreatedAt(),
	}
}

func FromBlockedPeriods(items []*schedule.BlockedPeriod) []*BlockedPeriodResponse {
	res := make([]*BlockedPeriodResponse, len(items))
	for i, b := range items {
		res[i] = FromBlockedPeriod(b)
	}
	return res
}

type IntegrationResponse struct {
	ID         uuid.UUID  `json:"id"`
	Provider   string     `json:"provider"`
	Status     string     `json:"status"`
	LastSyncAt *time.Time `json:"last_sync_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func FromIntegration(i *integration.Integration) *IntegrationResponse {
	return &IntegrationResponse{
		ID:         i.ID(),
		Provider:   i.Provider().String(),
		Status:     string(i.Status()),
		LastSyncAt: i.LastSyncAt(),
		CreatedAt:  i.CreatedAt(),
		UpdatedAt:  i.UpdatedAt(),
	}
}

func FromIntegrations(items []*integration.Integration) []*IntegrationResponse {
	res := make([]*IntegrationResponse, len(items))
	for i, it := range items {
		res[i] = FromIntegration(it)
	}
	return res
}

type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
	State   string `json:"state"`
}
