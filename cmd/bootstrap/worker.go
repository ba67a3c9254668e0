package bootstrap

import (
	"context"
	"log/slog"

	"appointment-engine/internal/infra/housekeeping"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/infra/reminder"
	"appointment-engine/internal/infra/repository"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/config"
	"appointment-engine/internal/usecase/commands"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewAsynqClient,
		fx.Annotate(
			NewReminderScheduler,
			fx.As(new(commands.ReminderScheduler)),
		),
		NewJanitor,
	),
	fx.Invoke(
		startReminderServer,
		startJanitor,
	),
)

func asynqRedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewAsynqClient(lc fx.Lifecycle, cfg config.Config) *asynq.Client {
	client := asynq.NewClient(asynqRedisOpt(cfg.Redis))
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}

func NewReminderScheduler(client *asynq.Client, cfg config.Config, clk clock.Clock) *reminder.Scheduler {
	return reminder.NewScheduler(client, cfg.Reminder, clk)
}

func startReminderServer(lc fx.Lifecycle, cfg config.Config, reminders commands.ReminderCommands, logger *slog.Logger) {
	if !cfg.Reminder.Enabled {
		logger.Info("reminder worker disabled")
		return
	}

	srv := asynq.NewServer(asynqRedisOpt(cfg.Redis), asynq.Config{
		Concurrency: cfg.Reminder.Concurrency,
		Queues:      map[string]int{cfg.Reminder.Queue: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.ErrorContext(ctx, "reminder task failed", "type", task.Type(), "error", err)
		}),
	})
	mux := reminder.NewServeMux(reminder.NewProcessor(reminders))

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting reminder worker", "queue", cfg.Reminder.Queue, "concurrency", cfg.Reminder.Concurrency)
			return srv.Start(mux)
		},
		OnStop: func(_ context.Context) error {
			srv.Shutdown()
			return nil
		},
	})
}

func NewJanitor(pool *pgxpool.Pool, q *query.Queries) *housekeeping.Janitor {
	return housekeeping.NewJanitor(repository.NewIdempotencyRepository(q, pool), 0)
}

func startJanitor(lc fx.Lifecycle, j *housekeeping.Janitor, logger *slog.Logger) {
	runInBackground(lc, "idempotency janitor", logger, j.Run)
}
