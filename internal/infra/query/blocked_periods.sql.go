package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createBlockedPeriod = `-- name: CreateBlockedPeriod :exec
INSERT INTO blocked_periods (id, owner_id, start_time, end_time, reason, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

type CreateBlockedPeriodParams = BlockedPeriod

func (q *Queries) CreateBlockedPeriod(ctx context.Context, db DBTX, arg CreateBlockedPeriodParams) error {
	_, err := db.Exec(ctx, createBlockedPeriod, arg.ID, arg.OwnerID, arg.StartTime, arg.EndTime, arg.Reason, arg.CreatedAt)
	return err
}

const deleteBlockedPeriod = `-- name: DeleteBlockedPeriod :execrows
DELETE FROM blocked_periods WHERE id = $1 AND owner_id = $2`

type DeleteBlockedPeriodParams struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
}

func (q *Queries) DeleteBlockedPeriod(ctx context.Context, db DBTX, arg DeleteBlockedPeriodParams) (int64, error) {
	result, err := db.Exec(ctx, deleteBlockedPeriod, arg.ID, arg.OwnerID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listBlockedPeriods = `-- name: ListBlockedPeriods :many
SELECT id, owner_id, start_time, end_time, reason, created_at
FROM blocked_periods
WHERE owner_id = $1
  AND ($2::timestamptz IS NULL OR end_time > $2::timestamptz)
  AND ($3::timestamptz IS NULL OR start_time < $3::timestamptz)
ORDER BY start_time, id`

type ListBlockedPeriodsParams struct {
	OwnerID uuid.UUID
	From    pgtype.Timestamptz
	To      pgtype.Timestamptz
}

func (q *Queries) ListBlockedPeriods(ctx context.Context, db DBTX, arg ListBlockedPeriodsParams) ([]BlockedPeriod, error) {
	rows, err := db.Query(ctx, listBlockedPeriods, arg.OwnerID, arg.From, arg.To)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []BlockedPeriod
	for rows.Next() {
		var i BlockedPeriod
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.StartTime, &i.EndTime, &i.Reason, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const hasOverlappingBlockedPeriod = `-- name: HasOverlappingBlockedPeriod :one
SELECT EXISTS (
    SELECT 1 FROM blocked_periods
    WHERE owner_id = $1
      AND tstzrange(start_time, end_time, '[)') && tstzrange($2, $3, '[)')
)`

type HasOverlappingBlockedPeriodParams struct {
	OwnerID   uuid.UUID
	StartTime pgtype.Timestamptz
	EndTime   pgtype.Timestamptz
}

func (q *Queries) HasOverlappingBlockedPeriod(ctx context.Context, db DBTX, arg HasOverlappingBlockedPeriodParams) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, hasOverlappingBlockedPeriod, arg.OwnerID, arg.StartTime, arg.EndTime).Scan(&exists)
	return exists, err
}
