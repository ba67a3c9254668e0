package repository

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/repository/$GOFILE -package=repositorymock

import (
	"context"
	"time"

	"appointment-engine/internal/infra"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/pkg/pgconv"
	"appointment-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type IdempotencyWriteQueries interface {
	TryInsertIdempotencyKey(ctx context.Context, db query.DBTX, arg query.TryInsertIdempotencyKeyParams) error
	GetIdempotencyKeyForUpdate(ctx context.Context, db query.DBTX, arg query.GetIdempotencyKeyParams) (query.IdempotencyKey, error)
	CompleteIdempotencyKey(ctx context.Context, db query.DBTX, arg query.CompleteIdempotencyKeyParams) error
	DeleteExpiredIdempotencyKeys(ctx context.Context, db query.DBTX) (int64, error)
}

type IdempotencyRepository struct {
	queries IdempotencyWriteQueries
	db      query.DBTX
}

func NewIdempotencyRepository(queries IdempotencyWriteQueries, db query.DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{
		queries: queries,
		db:      db,
	}
}

// Lock claims the key for the current transaction. A concurrent request
// with the same key blocks on the row lock until this transaction ends.
func (r *IdempotencyRepository) Lock(ctx context.Context, ownerID uuid.UUID, key, endpoint, requestHash string, expiresAt time.Time) (*shared.IdempotencyRecord, error) {
	err := r.queries.TryInsertIdempotencyKey(ctx, r.db, query.TryInsertIdempotencyKeyParams{
		Key:         key,
		OwnerID:     ownerID,
		Endpoint:    endpoint,
		RequestHash: requestHash,
		ExpiresAt:   pgconv.TimeToPgtype(expiresAt),
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to try insert idempotency key", err)
	}

	row, err := r.queries.GetIdempotencyKeyForUpdate(ctx, r.db, query.GetIdempotencyKeyParams{OwnerID: ownerID, Key: key})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock idempotency key", err)
	}

	return &shared.IdempotencyRecord{
		Key:                 row.Key,
		OwnerID:             row.OwnerID,
		Endpoint:            row.Endpoint,
		Status:              shared.IdempotencyStatus(row.Status),
		RequestHash:         row.RequestHash,
		ResultAppointmentID: pgconv.UUIDPtrFromPgtype(row.ResultAppointmentID),
		ExpiresAt:           row.ExpiresAt.Time.UTC(),
	}, nil
}

func (r *IdempotencyRepository) Complete(ctx context.Context, ownerID uuid.UUID, key string, appointmentID uuid.UUID) error {
	err := r.queries.CompleteIdempotencyKey(ctx, r.db, query.CompleteIdempotencyKeyParams{
		OwnerID:             ownerID,
		Key:                 key,
		ResultAppointmentID: appointmentID,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to update idempotency key status", err)
	}
	return nil
}

func (r *IdempotencyRepository) DeleteExpired(ctx context.Context) (int64, error) {
	count, err := r.queries.DeleteExpiredIdempotencyKeys(ctx, r.db)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to delete expired idempotency keys", err)
	}
	return count, nil
}
