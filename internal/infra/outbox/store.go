package outbox

import (
	"context"

	"appointment-engine/internal/infra"
	"appointment-engine/internal/infra/query"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Record struct {
	ID          uuid.UUID
	Topic       string
	EventType   string
	AggregateID uuid.UUID
	Payload     []byte
	Traceparent string
	Tracestate  string
	Attempts    int32
}

// Batch is a set of rows locked by the current relay transaction.
type Batch interface {
	Records() []Record
	MarkPublished(ctx context.Context, ids []uuid.UUID) error
	RecordFailure(ctx context.Context, ids []uuid.UUID, reason string) error
}

type Store interface {
	// WithBatch locks up to limit unpublished rows and commits whatever fn
	// recorded against them unless fn returns an error.
	WithBatch(ctx context.Context, limit int, fn func(ctx context.Context, b Batch) error) error
}

type RelayQueries interface {
	FetchUnpublishedOutboxEvents(ctx context.Context, db query.DBTX, limit int32) ([]query.OutboxEvent, error)
	MarkOutboxEventsPublished(ctx context.Context, db query.DBTX, ids []uuid.UUID) error
	RecordOutboxFailure(ctx context.Context, db query.DBTX, arg query.RecordOutboxFailureParams) error
}

type TxStarter interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

type PostgresStore struct {
	db      TxStarter
	queries RelayQueries
}

func NewPostgresStore(db TxStarter, queries RelayQueries) *PostgresStore {
	return &PostgresStore{db: db, queries: queries}
}

func (s *PostgresStore) WithBatch(ctx context.Context, limit int, fn func(ctx context.Context, b Batch) error) error {
	return pgx.BeginTxFunc(ctx, s.db, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		rows, err := s.queries.FetchUnpublishedOutboxEvents(ctx, tx, int32(limit)) // #nosec G115 -- limit comes from config
		if err != nil {
			return infra.WrapRepoErr("failed to fetch outbox events", err)
		}
		records := make([]Record, 0, len(rows))
		for _, r := range rows {
			records = append(records, Record{
				ID:          r.ID,
				Topic:       r.Topic,
				EventType:   r.EventType,
				AggregateID: r.AggregateID,
				Payload:     r.Payload,
				Traceparent: r.Traceparent.String,
				Tracestate:  r.Tracestate.String,
				Attempts:    r.Attempts,
			})
		}
		return fn(ctx, &pgBatch{tx: tx, queries: s.queries, records: records})
	})
}

type pgBatch struct {
	tx      pgx.Tx
	queries RelayQueries
	records []Record
}

func (b *pgBatch) Records() []Record { return b.records }

func (b *pgBatch) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := b.queries.MarkOutboxEventsPublished(ctx, b.tx, ids); err != nil {
		return infra.WrapRepoErr("failed to mark outbox events published", err)
	}
	return nil
}

func (b *pgBatch) RecordFailure(ctx context.Context, ids []uuid.UUID, reason string) error {
	if len(ids) == 0 {
		return nil
	}
	err := b.queries.RecordOutboxFailure(ctx, b.tx, query.RecordOutboxFailureParams{IDs: ids, LastError: reason})
	if err != nil {
		return infra.WrapRepoErr("failed to record outbox failure", err)
	}
	return nil
}
