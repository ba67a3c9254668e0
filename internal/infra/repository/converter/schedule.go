package converter

import (
	"encoding/json"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/pgconv"
)

// businessHourJSON is the stored shape of one weekday in calendar_settings.business_hours.
type businessHourJSON struct {
	DayOfWeek   int    `json:"day_of_week"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

func EncodeWeeklyHours(w schedule.WeeklyHours) ([]byte, error) {
	days := w.Days()
	out := make([]businessHourJSON, 0, len(days))
	for _, d := range days {
		out = append(out, businessHourJSON{
			DayOfWeek:   int(d.Day),
			StartTime:   d.Start.String(),
			EndTime:     d.End.String(),
			IsAvailable: d.Available,
		})
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, errs.Wrap(err, "failed to encode business hours")
	}
	return b, nil
}

func DecodeWeeklyHours(raw []byte) (schedule.WeeklyHours, error) {
	var stored []businessHourJSON
	if err := json.Unmarshal(raw, &stored); err != nil {
		return schedule.WeeklyHours{}, errs.Wrap(err, "failed to decode business hours")
	}
	days := make([]schedule.DayHours, 0, len(stored))
	for _, h := range stored {
		start, err := appointment.ParseTimeOfDay(h.StartTime)
		if err != nil {
			return schedule.WeeklyHours{}, err
		}
		end, err := appointment.ParseTimeOfDay(h.EndTime)
		if err != nil {
			return schedule.WeeklyHours{}, err
		}
		days = append(days, schedule.DayHours{
			Day:       schedule.Weekday(h.DayOfWeek),
			Start:     start,
			End:       end,
			Available: h.IsAvailable,
		})
	}
	return schedule.NewWeeklyHours(days)
}

func SettingsToInfra(s *schedule.Settings) (query.UpsertCalendarSettingsParams, error) {
	hours, err := EncodeWeeklyHours(s.Hours())
	if err != nil {
		return query.UpsertCalendarSettingsParams{}, err
	}
	// #nosec G115 -- bounded by schedule.NewSettings validation
	return query.UpsertCalendarSettingsParams{
		OwnerID:                s.OwnerID(),
		BusinessHours:          hours,
		SlotDurationMinutes:    int32(s.SlotMinutes()),
		BufferTimeMinutes:      int32(s.BufferMinutes()),
		MaxAdvanceBookingDays:  int32(s.MaxAdvanceDays()),
		MinAdvanceBookingHours: int32(s.MinAdvanceHours()),
		Timezone:               s.Timezone(),
		AutoConfirm:            s.AutoConfirm(),
	}, nil
}

func SettingsToDomain(row query.CalendarSetting) (*schedule.Settings, error) {
	hours, err := DecodeWeeklyHours(row.BusinessHours)
	if err != nil {
		return nil, errs.Wrapf(err, "stored settings of owner %s are invalid", row.OwnerID)
	}
	return schedule.NewSettings(schedule.SettingsParams{
		OwnerID:         row.OwnerID,
		Hours:           hours,
		SlotMinutes:     int(row.SlotDurationMinutes),
		BufferMinutes:   int(row.BufferTimeMinutes),
		MaxAdvanceDays:  int(row.MaxAdvanceBookingDays),
		MinAdvanceHours: int(row.MinAdvanceBookingHours),
		Timezone:        row.Timezone,
		AutoConfirm:     row.AutoConfirm,
		CreatedAt:       row.CreatedAt.Time.UTC(),
		UpdatedAt:       row.UpdatedAt.Time.UTC(),
	})
}

func BlockedPeriodToInfra(b *schedule.BlockedPeriod) query.CreateBlockedPeriodParams {
	iv := b.Interval()
	return query.CreateBlockedPeriodParams{
		ID:        b.ID(),
		OwnerID:   b.OwnerID(),
		StartTime: pgconv.TimeToPgtype(iv.Start()),
		EndTime:   pgconv.TimeToPgtype(iv.End()),
		Reason:    pgconv.TextOrNull(b.Reason()),
		CreatedAt: pgconv.TimeToPgtype(b.CreatedAt()),
	}
}

func BlockedPeriodToDomain(row query.BlockedPeriod) (*schedule.BlockedPeriod, error) {
	iv, err := appointment.NewInterval(row.StartTime.Time, row.EndTime.Time)
	if err != nil {
		return nil, errs.Wrapf(err, "stored blocked period %s has an invalid interval", row.ID)
	}
	return schedule.ReconstructBlockedPeriod(row.ID, row.OwnerID, iv, pgconv.TextValue(row.Reason), row.CreatedAt.Time.UTC()), nil
}

func BlockedPeriodsToDomain(rows []query.BlockedPeriod) ([]*schedule.BlockedPeriod, error) {
	out := make([]*schedule.BlockedPeriod, 0, len(rows))
	for _, row := range rows {
		b, err := BlockedPeriodToDomain(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
