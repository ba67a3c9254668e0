package query

import (
	"context"

	"github.com/google/uuid"
)

const calendarSettingColumns = `owner_id, business_hours, slot_duration_minutes, buffer_time_minutes,
	max_advance_booking_days, min_advance_booking_hours, timezone, auto_confirm, created_at, updated_at`

func scanCalendarSetting(row interface{ Scan(...any) error }) (CalendarSetting, error) {
	var i CalendarSetting
	err := row.Scan(
		&i.OwnerID,
		&i.BusinessHours,
		&i.SlotDurationMinutes,
		&i.BufferTimeMinutes,
		&i.MaxAdvanceBookingDays,
		&i.MinAdvanceBookingHours,
		&i.Timezone,
		&i.AutoConfirm,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getCalendarSettings = `-- name: GetCalendarSettings :one
SELECT ` + calendarSettingColumns + ` FROM calendar_settings WHERE owner_id = $1`

func (q *Queries) GetCalendarSettings(ctx context.Context, db DBTX, ownerID uuid.UUID) (CalendarSetting, error) {
	return scanCalendarSetting(db.QueryRow(ctx, getCalendarSettings, ownerID))
}

const upsertCalendarSettings = `-- name: UpsertCalendarSettings :one
INSERT INTO calendar_settings (
    owner_id, business_hours, slot_duration_minutes, buffer_time_minutes,
    max_advance_booking_days, min_advance_booking_hours, timezone, auto_confirm
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (owner_id) DO UPDATE SET
    business_hours = EXCLUDED.business_hours,
    slot_duration_minutes = EXCLUDED.slot_duration_minutes,
    buffer_time_minutes = EXCLUDED.buffer_time_minutes,
    max_advance_booking_days = EXCLUDED.max_advance_booking_days,
    min_advance_booking_hours = EXCLUDED.min_advance_booking_hours,
    timezone = EXCLUDED.timezone,
    auto_confirm = EXCLUDED.auto_confirm,
    updated_at = now()
RETURNING ` + calendarSettingColumns

type UpsertCalendarSettingsParams struct {
	OwnerID                uuid.UUID
	BusinessHours          []byte
	SlotDurationMinutes    int32
	BufferTimeMinutes      int32
	MaxAdvanceBookingDays  int32
	MinAdvanceBookingHours int32
	Timezone               string
	AutoConfirm            bool
}

func (q *Queries) UpsertCalendarSettings(ctx context.Context, db DBTX, arg UpsertCalendarSettingsParams) (CalendarSetting, error) {
	return scanCalendarSetting(db.QueryRow(ctx, upsertCalendarSettings,
		arg.OwnerID,
		arg.BusinessHours,
		arg.SlotDurationMinutes,
		arg.BufferTimeMinutes,
		arg.MaxAdvanceBookingDays,
		arg.MinAdvanceBookingHours,
		arg.Timezone,
		arg.AutoConfirm,
	))
}
