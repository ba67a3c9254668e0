package bootstrap

import (
	"context"
	"log/slog"

	"appointment-engine/internal/infra/messaging"
	"appointment-engine/internal/infra/outbox"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/segmentio/kafka-go"
	"go.uber.org/fx"
)

var KafkaModule = fx.Module("kafka",
	fx.Provide(
		NewKafkaWriter,
		NewOutboxRelay,
	),
	fx.Invoke(startOutboxRelay),
)

func NewKafkaWriter(lc fx.Lifecycle, cfg config.Config) *kafka.Writer {
	w := messaging.NewWriter(messaging.SplitBrokers(cfg.Kafka.Brokers))
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return w.Close()
		},
	})
	return w
}

func NewOutboxRelay(pool *pgxpool.Pool, q *query.Queries, w *kafka.Writer, logger *slog.Logger, cfg config.Config) *outbox.Relay {
	store := outbox.NewPostgresStore(pool, q)
	return outbox.NewRelay(store, w, logger, outbox.RelayConfig{
		PollEvery: cfg.Kafka.PollInterval,
		BatchSize: cfg.Kafka.BatchSize,
	})
}

// Without brokers the relay stays idle and events wait in the outbox table.
func startOutboxRelay(lc fx.Lifecycle, relay *outbox.Relay, cfg config.Config, logger *slog.Logger) {
	if len(messaging.SplitBrokers(cfg.Kafka.Brokers)) == 0 {
		logger.Warn("KAFKA_BROKERS is empty, outbox relay disabled")
		return
	}
	runInBackground(lc, "outbox relay", logger, relay.Run)
}

// runInBackground ties a blocking Run(ctx) loop to the fx lifecycle.
func runInBackground(lc fx.Lifecycle, name string, logger *slog.Logger, run func(ctx context.Context)) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting background worker", "worker", name)
			go func() {
				defer close(done)
				run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				logger.Info("background worker stopped", "worker", name)
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
			return nil
		},
	})
}
