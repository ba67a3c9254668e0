package query

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Expired keys are recycled in place so a stale row never blocks a new request.
const tryInsertIdempotencyKey = `-- name: TryInsertIdempotencyKey :exec
INSERT INTO idempotency_keys (key, owner_id, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, $4, 'processing', $5)
ON CONFLICT (owner_id, key) DO UPDATE SET
    endpoint = EXCLUDED.endpoint,
    request_hash = EXCLUDED.request_hash,
    status = 'processing',
    result_appointment_id = NULL,
    expires_at = EXCLUDED.expires_at,
    created_at = now()
WHERE idempotency_keys.expires_at < now()`

type TryInsertIdempotencyKeyParams struct {
	Key         string
	OwnerID     uuid.UUID
	Endpoint    string
	RequestHash string
	ExpiresAt   pgtype.Timestamptz
}

func (q *Queries) TryInsertIdempotencyKey(ctx context.Context, db DBTX, arg TryInsertIdempotencyKeyParams) error {
	_, err := db.Exec(ctx, tryInsertIdempotencyKey, arg.Key, arg.OwnerID, arg.Endpoint, arg.RequestHash, arg.ExpiresAt)
	return err
}

const getIdempotencyKeyForUpdate = `-- name: GetIdempotencyKeyForUpdate :one
SELECT key, owner_id, endpoint, request_hash, status, result_appointment_id, expires_at, created_at
FROM idempotency_keys
WHERE owner_id = $1 AND key = $2
FOR UPDATE`

type GetIdempotencyKeyParams struct {
	OwnerID uuid.UUID
	Key     string
}

func (q *Queries) GetIdempotencyKeyForUpdate(ctx context.Context, db DBTX, arg GetIdempotencyKeyParams) (IdempotencyKey, error) {
	var i IdempotencyKey
	err := db.QueryRow(ctx, getIdempotencyKeyForUpdate, arg.OwnerID, arg.Key).Scan(
		&i.Key,
		&i.OwnerID,
		&i.Endpoint,
		&i.RequestHash,
		&i.Status,
		&i.ResultAppointmentID,
		&i.ExpiresAt,
		&i.CreatedAt,
	)
	return i, err
}

const completeIdempotencyKey = `-- name: CompleteIdempotencyKey :exec
UPDATE idempotency_keys
SET status = 'completed', result_appointment_id = $3
WHERE owner_id = $1 AND key = $2`

type CompleteIdempotencyKeyParams struct {
	OwnerID             uuid.UUID
	Key                 string
	ResultAppointmentID uuid.UUID
}

func (q *Queries) CompleteIdempotencyKey(ctx context.Context, db DBTX, arg CompleteIdempotencyKeyParams) error {
	_, err := db.Exec(ctx, completeIdempotencyKey, arg.OwnerID, arg.Key, arg.ResultAppointmentID)
	return err
}

const deleteExpiredIdempotencyKeys = `-- name: DeleteExpiredIdempotencyKeys :execrows
DELETE FROM idempotency_keys WHERE expires_at < now()`

func (q *Queries) DeleteExpiredIdempotencyKeys(ctx context.Context, db DBTX) (int64, error) {
	result, err := db.Exec(ctx, deleteExpiredIdempotencyKeys)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
