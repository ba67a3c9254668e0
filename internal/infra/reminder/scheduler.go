package reminder

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/config"
	"appointment-engine/internal/usecase/commands"

	"github.com/hibiken/asynq"
)

const maxRetry = 5

type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Scheduler struct {
	client Enqueuer
	cfg    config.ReminderConfig
	clock  clock.Clock
}

func NewScheduler(client Enqueuer, cfg config.ReminderConfig, clock clock.Clock) *Scheduler {
	return &Scheduler{client: client, cfg: cfg, clock: clock}
}

var _ commands.ReminderScheduler = (*Scheduler)(nil)

func (s *Scheduler) Schedule(ctx context.Context, a *appointment.Appointment) error {
	if !s.cfg.Enabled || !a.SendReminders() || a.ReminderSent() {
		return nil
	}
	start := a.Interval().Start()
	fireAt := start.Add(-s.cfg.Lead)
	if !fireAt.After(s.clock.Now()) {
		slog.DebugContext(ctx, "reminder lead time already passed",
			slog.String("appointment_id", a.ID().String()))
		return nil
	}

	p := Payload{AppointmentID: a.ID(), OwnerID: a.OwnerID(), StartsAt: start}
	task, err := NewTask(p)
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task,
		asynq.ProcessAt(fireAt),
		asynq.Queue(s.cfg.Queue),
		asynq.TaskID(TaskID(p)),
		asynq.MaxRetry(maxRetry),
		asynq.Retention(24*time.Hour),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}
