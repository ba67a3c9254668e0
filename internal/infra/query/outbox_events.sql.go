package query

import (
	"context"

	"github.com/google/uuid"
)

const insertOutboxEvent = `-- name: InsertOutboxEvent :exec
INSERT INTO outbox_events (id, topic, event_type, aggregate_id, payload, traceparent, tracestate)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

type InsertOutboxEventParams struct {
	ID          uuid.UUID
	Topic       string
	EventType   string
	AggregateID uuid.UUID
	Payload     []byte
	Traceparent string
	Tracestate  string
}

func (q *Queries) InsertOutboxEvent(ctx context.Context, db DBTX, arg InsertOutboxEventParams) error {
	_, err := db.Exec(ctx, insertOutboxEvent,
		arg.ID,
		arg.Topic,
		arg.EventType,
		arg.AggregateID,
		arg.Payload,
		nullIfEmpty(arg.Traceparent),
		nullIfEmpty(arg.Tracestate),
	)
	return err
}

const fetchUnpublishedOutboxEvents = `-- name: FetchUnpublishedOutboxEvents :many
SELECT id, topic, event_type, aggregate_id, payload, traceparent, tracestate, attempts, last_error, created_at, published_at
FROM outbox_events
WHERE published_at IS NULL
ORDER BY created_at, id
LIMIT $1
FOR UPDATE SKIP LOCKED`

func (q *Queries) FetchUnpublishedOutboxEvents(ctx context.Context, db DBTX, limit int32) ([]OutboxEvent, error) {
	rows, err := db.Query(ctx, fetchUnpublishedOutboxEvents, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OutboxEvent
	for rows.Next() {
		var i OutboxEvent
		if err := rows.Scan(
			&i.ID,
			&i.Topic,
			&i.EventType,
			&i.AggregateID,
			&i.Payload,
			&i.Traceparent,
			&i.Tracestate,
			&i.Attempts,
			&i.LastError,
			&i.CreatedAt,
			&i.PublishedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markOutboxEventsPublished = `-- name: MarkOutboxEventsPublished :exec
UPDATE outbox_events SET published_at = now() WHERE id = ANY($1::uuid[])`

func (q *Queries) MarkOutboxEventsPublished(ctx context.Context, db DBTX, ids []uuid.UUID) error {
	_, err := db.Exec(ctx, markOutboxEventsPublished, ids)
	return err
}

const recordOutboxFailure = `-- name: RecordOutboxFailure :exec
UPDATE outbox_events
SET attempts = attempts + 1, last_error = $2
WHERE id = ANY($1::uuid[])`

type RecordOutboxFailureParams struct {
	IDs       []uuid.UUID
	LastError string
}

func (q *Queries) RecordOutboxFailure(ctx context.Context, db DBTX, arg RecordOutboxFailureParams) error {
	_, err := db.Exec(ctx, recordOutboxFailure, arg.IDs, arg.LastError)
	return err
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
