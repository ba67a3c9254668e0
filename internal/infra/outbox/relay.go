package outbox

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"appointment-engine/internal/infra/messaging"
	"appointment-engine/internal/pkg/telemetry"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const maxErrorLen = 500

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type RelayConfig struct {
	PollEvery time.Duration
	BatchSize int
}

// Relay moves committed outbox rows to Kafka. Delivery is at-least-once;
// consumers dedupe on the event_id header.
type Relay struct {
	store     Store
	writer    MessageWriter
	logger    *slog.Logger
	pollEvery time.Duration
	batchSize int
}

func NewRelay(store Store, writer MessageWriter, logger *slog.Logger, cfg RelayConfig) *Relay {
	if cfg.PollEvery <= 0 {
		cfg.PollEvery = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		store:     store,
		writer:    writer,
		logger:    logger,
		pollEvery: cfg.PollEvery,
		batchSize: cfg.BatchSize,
	}
}

func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.PublishBatch(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("outbox publish failed", slog.String("error", err.Error()))
			}
		}
	}
}

// PublishBatch returns the number of rows published. Rows Kafka rejected
// stay unpublished with their attempt count bumped.
func (r *Relay) PublishBatch(ctx context.Context) (int, error) {
	published := 0
	var publishErr error

	err := r.store.WithBatch(ctx, r.batchSize, func(ctx context.Context, b Batch) error {
		records := b.Records()
		if len(records) == 0 {
			return nil
		}

		msgs := make([]kafka.Message, len(records))
		for i, rec := range records {
			msgs[i] = toMessage(ctx, rec)
		}

		ok, failed, werr := splitWriteResult(records, r.writer.WriteMessages(ctx, msgs...))
		if err := b.MarkPublished(ctx, ok); err != nil {
			return err
		}
		if len(failed) > 0 {
			if err := b.RecordFailure(ctx, failed, truncate(werr.Error(), maxErrorLen)); err != nil {
				return err
			}
			publishErr = werr
		}
		published = len(ok)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if published > 0 {
		r.logger.Debug("outbox events published", slog.Int("count", published))
	}
	return published, publishErr
}

func toMessage(ctx context.Context, rec Record) kafka.Message {
	msgCtx := telemetry.ContextWithTraceContext(ctx, rec.Traceparent, rec.Tracestate)
	msg := kafka.Message{
		Topic: rec.Topic,
		Key:   []byte(rec.AggregateID.String()),
		Value: rec.Payload,
		Headers: []kafka.Header{
			{Key: messaging.HeaderEventID, Value: []byte(rec.ID.String())},
			{Key: messaging.HeaderEventType, Value: []byte(rec.EventType)},
		},
	}
	msg.Headers = messaging.InjectTraceHeaders(msgCtx, msg.Headers)
	return msg
}

func splitWriteResult(records []Record, err error) (ok, failed []uuid.UUID, cause error) {
	if err == nil {
		ok = make([]uuid.UUID, len(records))
		for i, rec := range records {
			ok[i] = rec.ID
		}
		return ok, nil, nil
	}

	var writeErrs kafka.WriteErrors
	if errors.As(err, &writeErrs) && len(writeErrs) == len(records) {
		for i, rec := range records {
			if writeErrs[i] == nil {
				ok = append(ok, rec.ID)
				continue
			}
			failed = append(failed, rec.ID)
			if cause == nil {
				cause = writeErrs[i]
			}
		}
		return ok, failed, cause
	}

	failed = make([]uuid.UUID, len(records))
	for i, rec := range records {
		failed[i] = rec.ID
	}
	return nil, failed, err
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
