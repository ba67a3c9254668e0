package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const calendarIntegrationColumns = `id, owner_id, provider, status, auth_code, last_sync_at, created_at, updated_at`

func scanCalendarIntegration(row interface{ Scan(...any) error }) (CalendarIntegration, error) {
	var i CalendarIntegration
	err := row.Scan(
		&i.ID,
		&i.OwnerID,
		&i.Provider,
		&i.Status,
		&i.AuthCode,
		&i.LastSyncAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

// Reconnecting a provider keeps the row id and replaces the pending code.
const upsertCalendarIntegration = `-- name: UpsertCalendarIntegration :one
INSERT INTO calendar_integrations (id, owner_id, provider, status, auth_code)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (owner_id, provider) DO UPDATE SET
    status = EXCLUDED.status,
    auth_code = EXCLUDED.auth_code,
    updated_at = now()
RETURNING ` + calendarIntegrationColumns

type UpsertCalendarIntegrationParams struct {
	ID       uuid.UUID
	OwnerID  uuid.UUID
	Provider string
	Status   string
	AuthCode pgtype.Text
}

func (q *Queries) UpsertCalendarIntegration(ctx context.Context, db DBTX, arg UpsertCalendarIntegrationParams) (CalendarIntegration, error) {
	return scanCalendarIntegration(db.QueryRow(ctx, upsertCalendarIntegration,
		arg.ID, arg.OwnerID, arg.Provider, arg.Status, arg.AuthCode))
}

const listCalendarIntegrations = `-- name: ListCalendarIntegrations :many
SELECT ` + calendarIntegrationColumns + `
FROM calendar_integrations
WHERE owner_id = $1
ORDER BY created_at`

func (q *Queries) ListCalendarIntegrations(ctx context.Context, db DBTX, ownerID uuid.UUID) ([]CalendarIntegration, error) {
	rows, err := db.Query(ctx, listCalendarIntegrations, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CalendarIntegration
	for rows.Next() {
		i, err := scanCalendarIntegration(rows)
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
