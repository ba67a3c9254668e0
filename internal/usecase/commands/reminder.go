package commands

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/commands/$GOFILE -package=commandsmock

import (
	"context"
	"log/slog"
	"time"

	"appointment-engine/internal/infra"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReminderCommands interface {
	// SendReminder emits the reminder event for the appointment when it is
	// still due for startsAt. It reports whether an event was written.
	SendReminder(ctx context.Context, ownerID, appointmentID uuid.UUID, startsAt time.Time) (bool, error)
}

type reminderUseCaseImpl struct {
	uow    shared.UnitOfWork
	topics EventTopics
	clock  clock.Clock
}

func NewReminderUseCase(uow shared.UnitOfWork, topics EventTopics, clock clock.Clock) ReminderCommands {
	return &reminderUseCaseImpl{uow: uow, topics: topics, clock: clock}
}

func (u *reminderUseCaseImpl) SendReminder(ctx context.Context, ownerID, appointmentID uuid.UUID, startsAt time.Time) (bool, error) {
	now := u.clock.Now()
	sent := false
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		sent = false
		a, err := tx.Appointments().FindByIDForUpdate(ctx, ownerID, appointmentID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				slog.InfoContext(ctx, "reminder skipped: appointment gone", "appointment_id", appointmentID.String())
				return nil
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !a.NeedsReminder(startsAt) {
			slog.InfoContext(ctx, "reminder skipped",
				"appointment_id", appointmentID.String(),
				"status", a.Status().String(),
				"reminder_sent", a.ReminderSent())
			return nil
		}

		ev := newAppointmentEvent(EventAppointmentReminder, a, now)
		if err := publish(ctx, tx, ev.Type, a.ID(), ev, u.topics.Notifications); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		marked, err := tx.Appointments().MarkReminderSent(ctx, ownerID, appointmentID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		sent = marked
		return nil
	})
	if err != nil {
		return false, err
	}
	return sent, nil
}
