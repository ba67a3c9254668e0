package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"appointment-engine/internal/usecase/commands"

	"github.com/hibiken/asynq"
)

type Processor struct {
	reminders commands.ReminderCommands
}

func NewProcessor(reminders commands.ReminderCommands) *Processor {
	return &Processor{reminders: reminders}
}

var _ asynq.Handler = (*Processor)(nil)

func (p *Processor) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload Payload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid reminder payload: %v: %w", err, asynq.SkipRetry)
	}

	sent, err := p.reminders.SendReminder(ctx, payload.OwnerID, payload.AppointmentID, payload.StartsAt)
	if err != nil {
		return err
	}
	if !sent {
		slog.InfoContext(ctx, "reminder skipped",
			slog.String("appointment_id", payload.AppointmentID.String()))
		return nil
	}
	slog.InfoContext(ctx, "reminder queued for delivery",
		slog.String("appointment_id", payload.AppointmentID.String()))
	return nil
}

func NewServeMux(p *Processor) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Handle(TypeAppointmentReminder, p)
	return mux
}
