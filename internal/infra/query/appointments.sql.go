package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const appointmentColumns = `id, owner_id, title, description, location, timezone, start_time, end_time,
	status, attendee_name, attendee_email, attendee_phone, source, agent_id, send_reminders,
	reminder_sent, metadata, last_action, cancelled_at, rescheduled_at, created_at, updated_at`

func scanAppointment(row pgx.Row) (Appointment, error) {
	var i Appointment
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Title,
		&i.Description,
		&i.Location,
		&i.Timezone,
		&i.StartTime,
		&i.EndTime,
		&i.Status,
		&i.AttendeeName,
		&i.AttendeeEmail,
		&i.AttendeePhone,
		&i.Source,
		&i.AgentID,
		&i.SendReminders,
		&i.ReminderSent,
		&i.Metadata,
		&i.LastAction,
		&i.CancelledAt,
		&i.RescheduledAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

func collectAppointments(rows pgx.Rows, err error) ([]Appointment, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Appointment
	for rows.Next() {
		i, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createAppointment = `-- name: CreateAppointment :exec
INSERT INTO appointments (` + appointmentColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

type CreateAppointmentParams = Appointment

func (q *Queries) CreateAppointment(ctx context.Context, db DBTX, arg CreateAppointmentParams) error {
	_, err := db.Exec(ctx, createAppointment,
		arg.ID,
		arg.OwnerID,
		arg.Title,
		arg.Description,
		arg.Location,
		arg.Timezone,
		arg.StartTime,
		arg.EndTime,
		arg.Status,
		arg.AttendeeName,
		arg.AttendeeEmail,
		arg.AttendeePhone,
		arg.Source,
		arg.AgentID,
		arg.SendReminders,
		arg.ReminderSent,
		arg.Metadata,
		arg.LastAction,
		arg.CancelledAt,
		arg.RescheduledAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const updateAppointment = `-- name: UpdateAppointment :execrows
UPDATE appointments
SET start_time = $3,
    end_time = $4,
    status = $5,
    metadata = $6,
    last_action = $7,
    reminder_sent = $8,
    cancelled_at = $9,
    rescheduled_at = $10,
    updated_at = $11
WHERE id = $1 AND owner_id = $2`

type UpdateAppointmentParams struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	StartTime     pgtype.Timestamptz
	EndTime       pgtype.Timestamptz
	Status        string
	Metadata      []byte
	LastAction    string
	ReminderSent  bool
	CancelledAt   pgtype.Timestamptz
	RescheduledAt pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

func (q *Queries) UpdateAppointment(ctx context.Context, db DBTX, arg UpdateAppointmentParams) (int64, error) {
	result, err := db.Exec(ctx, updateAppointment,
		arg.ID,
		arg.OwnerID,
		arg.StartTime,
		arg.EndTime,
		arg.Status,
		arg.Metadata,
		arg.LastAction,
		arg.ReminderSent,
		arg.CancelledAt,
		arg.RescheduledAt,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getAppointment = `-- name: GetAppointment :one
SELECT ` + appointmentColumns + `
FROM appointments
WHERE id = $1 AND owner_id = $2`

type GetAppointmentParams struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

func (q *Queries) GetAppointment(ctx context.Context, db DBTX, arg GetAppointmentParams) (Appointment, error) {
	return scanAppointment(db.QueryRow(ctx, getAppointment, arg.ID, arg.OwnerID))
}

const getAppointmentForUpdate = getAppointment + `
FOR UPDATE`

func (q *Queries) GetAppointmentForUpdate(ctx context.Context, db DBTX, arg GetAppointmentParams) (Appointment, error) {
	return scanAppointment(db.QueryRow(ctx, getAppointmentForUpdate, arg.ID, arg.OwnerID))
}

const lockOwnerSchedule = `-- name: LockOwnerSchedule :exec
SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`

// LockOwnerSchedule serializes booking writers of one owner until the
// surrounding transaction ends.
func (q *Queries) LockOwnerSchedule(ctx context.Context, db DBTX, ownerID uuid.UUID) error {
	_, err := db.Exec(ctx, lockOwnerSchedule, ownerID.String())
	return err
}

const hasOverlappingAppointment = `-- name: HasOverlappingAppointment :one
SELECT EXISTS (
    SELECT 1 FROM appointments
    WHERE owner_id = $1
      AND status <> 'cancelled'
      AND tstzrange(start_time, end_time, '[)') && tstzrange($2, $3, '[)')
      AND ($4::uuid IS NULL OR id <> $4::uuid)
)`

type HasOverlappingAppointmentParams struct {
	OwnerID   uuid.UUID
	StartTime pgtype.Timestamptz
	EndTime   pgtype.Timestamptz
	ExcludeID pgtype.UUID
}

func (q *Queries) HasOverlappingAppointment(ctx context.Context, db DBTX, arg HasOverlappingAppointmentParams) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, hasOverlappingAppointment, arg.OwnerID, arg.StartTime, arg.EndTime, arg.ExcludeID).Scan(&exists)
	return exists, err
}

const listActiveAppointmentsInRange = `-- name: ListActiveAppointmentsInRange :many
SELECT ` + appointmentColumns + `
FROM appointments
WHERE owner_id = $1
  AND status <> 'cancelled'
  AND start_time < $3
  AND end_time > $2
ORDER BY start_time, id`

type ListActiveAppointmentsInRangeParams struct {
	OwnerID uuid.UUID
	From    pgtype.Timestamptz
	To      pgtype.Timestamptz
}

func (q *Queries) ListActiveAppointmentsInRange(ctx context.Context, db DBTX, arg ListActiveAppointmentsInRangeParams) ([]Appointment, error) {
	return collectAppointments(db.Query(ctx, listActiveAppointmentsInRange, arg.OwnerID, arg.From, arg.To))
}

const listAppointments = `-- name: ListAppointments :many
SELECT ` + appointmentColumns + `
FROM appointments
WHERE owner_id = $1
  AND ($2::text IS NULL OR status = $2::text)
  AND ($3::timestamptz IS NULL OR start_time >= $3::timestamptz)
  AND ($4::timestamptz IS NULL OR start_time < $4::timestamptz)
  AND ($5::timestamptz IS NULL OR (created_at, id) < ($5::timestamptz, $6::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $7`

type ListAppointmentsParams struct {
	OwnerID        uuid.UUID
	Status         pgtype.Text
	From           pgtype.Timestamptz
	To             pgtype.Timestamptz
	AfterCreatedAt pgtype.Timestamptz
	AfterID        pgtype.UUID
	Limit          int32
}

func (q *Queries) ListAppointments(ctx context.Context, db DBTX, arg ListAppointmentsParams) ([]Appointment, error) {
	return collectAppointments(db.Query(ctx, listAppointments,
		arg.OwnerID,
		arg.Status,
		arg.From,
		arg.To,
		arg.AfterCreatedAt,
		arg.AfterID,
		arg.Limit,
	))
}

const getAppointmentStats = `-- name: GetAppointmentStats :one
SELECT
    count(*) AS total,
    count(*) FILTER (WHERE status IN ('scheduled', 'confirmed') AND start_time > $4) AS upcoming,
    count(*) FILTER (WHERE status = 'scheduled') AS scheduled,
    count(*) FILTER (WHERE status = 'confirmed') AS confirmed,
    count(*) FILTER (WHERE status = 'completed') AS completed,
    count(*) FILTER (WHERE status = 'cancelled') AS cancelled,
    count(*) FILTER (WHERE status = 'no_show') AS no_show,
    coalesce(avg(extract(epoch FROM end_time - start_time) / 60) FILTER (WHERE status <> 'cancelled'), 0)::float8 AS avg_duration_minutes,
    coalesce(sum(extract(epoch FROM end_time - start_time) / 3600) FILTER (WHERE status <> 'cancelled'), 0)::float8 AS total_hours
FROM appointments
WHERE owner_id = $1
  AND ($2::timestamptz IS NULL OR start_time >= $2::timestamptz)
  AND ($3::timestamptz IS NULL OR start_time < $3::timestamptz)`

type GetAppointmentStatsParams struct {
	OwnerID uuid.UUID
	From    pgtype.Timestamptz
	To      pgtype.Timestamptz
	Now     pgtype.Timestamptz
}

type GetAppointmentStatsRow struct {
	Total              int64
	Upcoming           int64
	Scheduled          int64
	Confirmed          int64
	Completed          int64
	Cancelled          int64
	NoShow             int64
	AvgDurationMinutes float64
	TotalHours         float64
}

func (q *Queries) GetAppointmentStats(ctx context.Context, db DBTX, arg GetAppointmentStatsParams) (GetAppointmentStatsRow, error) {
	var i GetAppointmentStatsRow
	err := db.QueryRow(ctx, getAppointmentStats, arg.OwnerID, arg.From, arg.To, arg.Now).Scan(
		&i.Total,
		&i.Upcoming,
		&i.Scheduled,
		&i.Confirmed,
		&i.Completed,
		&i.Cancelled,
		&i.NoShow,
		&i.AvgDurationMinutes,
		&i.TotalHours,
	)
	return i, err
}

const markReminderSent = `-- name: MarkReminderSent :execrows
UPDATE appointments
SET reminder_sent = true, updated_at = now()
WHERE id = $1 AND owner_id = $2 AND reminder_sent = false`

func (q *Queries) MarkReminderSent(ctx context.Context, db DBTX, arg GetAppointmentParams) (int64, error) {
	result, err := db.Exec(ctx, markReminderSent, arg.ID, arg.OwnerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
