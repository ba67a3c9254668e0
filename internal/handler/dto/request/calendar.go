package request

import (
	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/usecase/commands"
)

type BusinessHourRequest struct {
	DayOfWeek   int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	IsAvailable bool   `json:"is_available"`
}

type CalendarSettingsRequest struct {
	BusinessHours          []BusinessHourRequest `json:"business_hours" binding:"dive"`
	SlotDurationMinutes    int                   `json:"slot_duration_minutes" binding:"required,min=1,max=1440"`
	BufferTimeMinutes      int                   `json:"buffer_time_minutes" binding:"min=0,max=1440"`
	MaxAdvanceBookingDays  int                   `json:"max_advance_booking_days" binding:"min=0,max=3650"`
	MinAdvanceBookingHours int                   `json:"min_advance_booking_hours" binding:"min=0,max=8760"`
	Timezone               string                `json:"timezone"`
	AutoConfirm            bool                  `json:"auto_confirm"`
}

func (r *CalendarSettingsRequest) ToInput() (commands.SettingsInput, error) {
	hours := make([]schedule.DayHours, 0, len(r.BusinessHours))
	for _, bh := range r.BusinessHours {
		start, err := appointment.ParseTimeOfDay(bh.StartTime)
		if err != nil {
			return commands.SettingsInput{}, err
		}
		end, err := appointment.ParseTimeOfDay(bh.EndTime)
		if err != nil {
			return commands.SettingsInput{}, err
		}
		hours = append(hours, schedule.DayHours{
			Day:       schedule.Weekday(bh.DayOfWeek),
			Start:     start,
			End:       end,
			Available: bh.IsAvailable,
		})
	}
	return commands.SettingsInput{
		Hours:           hours,
		SlotMinutes:     r.SlotDurationMinutes,
		BufferMinutes:   r.BufferTimeMinutes,
		MaxAdvanceDays:  r.MaxAdvanceBookingDays,
		MinAdvanceHours: r.MinAdvanceBookingHours,
		Timezone:        r.Timezone,
		AutoConfirm:     r.AutoConfirm,
	}, nil
}

type BlockedPeriodRequest struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason" binding:"max=500"`
}

func (r *BlockedPeriodRequest) ToInterval() (appointment.Interval, error) {
	return parseInterval(r.StartTime, r.EndTime)
}

type ConnectCalendarRequest struct {
	Provider string `json:"provider" binding:"required,oneof=google outlook"`
	State    string `json:"state" binding:"required"`
	Code     string `json:"code" binding:"required"`
}
