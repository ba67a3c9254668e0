package repository

import (
	"context"

	"appointment-engine/internal/infra"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/pkg/telemetry"
	"appointment-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type OutboxWriteQueries interface {
	InsertOutboxEvent(ctx context.Context, db query.DBTX, arg query.InsertOutboxEventParams) error
}

type OutboxRepository struct {
	queries OutboxWriteQueries
	db      query.DBTX
}

func NewOutboxRepository(queries OutboxWriteQueries, db query.DBTX) *OutboxRepository {
	return &OutboxRepository{queries: queries, db: db}
}

// Insert stores the message with the caller's trace context so the relay
// can continue the trace when it publishes.
func (r *OutboxRepository) Insert(ctx context.Context, msg shared.OutboxMessage) error {
	traceparent, tracestate := telemetry.TraceContextStrings(ctx)
	err := r.queries.InsertOutboxEvent(ctx, r.db, query.InsertOutboxEventParams{
		ID:          uuid.New(),
		Topic:       msg.Topic,
		EventType:   msg.EventType,
		AggregateID: msg.AggregateID,
		Payload:     msg.Payload,
		Traceparent: traceparent,
		Tracestate:  tracestate,
	})
	if err != nil {
		return infra.WrapRepoErr("failed to insert outbox event", err)
	}
	return nil
}
