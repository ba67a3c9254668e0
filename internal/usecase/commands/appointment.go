package commands

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/commands/$GOFILE -package=commandsmock

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/infra"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/telemetry"
	"appointment-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

const (
	bookEndpoint         = "POST /appointments"
	idempotencyRetention = 24 * time.Hour
	MaxIdempotencyKeyLen = 255
)

var ErrInvalidIdempotencyKey = errs.Mark(errs.New("Idempotency-Key must be at most 255 characters"), errs.ErrDomainValidation)

type BookInput struct {
	OwnerID        uuid.UUID
	Interval       appointment.Interval
	Title          string
	Description    string
	Location       string
	Timezone       string
	AttendeeName   string
	AttendeeEmail  string
	AttendeePhone  string
	SendReminders  bool
	Source         appointment.Source
	AgentID        *uuid.UUID
	Metadata       map[string]any
	IdempotencyKey string
}

type BookResult struct {
	Appointment *appointment.Appointment
	Replayed    bool
}

type RescheduleInput struct {
	OwnerID       uuid.UUID
	AppointmentID uuid.UUID
	Interval      appointment.Interval
	Reason        string
	Notify        bool
}

type CancelInput struct {
	OwnerID       uuid.UUID
	AppointmentID uuid.UUID
	Reason        string
	Notify        bool
}

type AppointmentCommands interface {
	Book(ctx context.Context, in BookInput) (*BookResult, error)
	Reschedule(ctx context.Context, in RescheduleInput) (*appointment.Appointment, error)
	Cancel(ctx context.Context, in CancelInput) (*appointment.Appointment, error)
	UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, to appointment.Status) (*appointment.Appointment, error)
}

type appointmentUseCaseImpl struct {
	uow       shared.UnitOfWork
	reminders ReminderScheduler
	topics    EventTopics
	clock     clock.Clock
}

func NewAppointmentUseCase(
	uow shared.UnitOfWork,
	reminders ReminderScheduler,
	topics EventTopics,
	clock clock.Clock,
) AppointmentCommands {
	return &appointmentUseCaseImpl{
		uow:       uow,
		reminders: reminders,
		topics:    topics,
		clock:     clock,
	}
}

// Book replays a completed idempotency key first. Otherwise it applies the
// booking policy and inserts under the owner's advisory lock after re-checking
// overlaps. The exclusion constraint backs the re-check.
func (u *appointmentUseCaseImpl) Book(ctx context.Context, in BookInput) (*BookResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "appointments.Book")
	defer span.End()
	span.SetAttributes(attribute.String("owner.id", in.OwnerID.String()))

	if len(in.IdempotencyKey) > MaxIdempotencyKeyLen {
		return nil, ErrInvalidIdempotencyKey
	}

	now := u.clock.Now()
	settings, err := u.loadOwnerSettings(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}
	entity, err := newAppointmentFromInput(in, settings.AutoConfirm(), now)
	if err != nil {
		return nil, err
	}

	requestHash := calculateRequestHash(in)
	var result BookResult

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = BookResult{Appointment: entity}

		if in.IdempotencyKey != "" {
			replayed, err := u.handleIdempotency(ctx, tx, in.OwnerID, in.IdempotencyKey, requestHash, now)
			if err != nil {
				return err
			}
			if replayed != nil {
				result = BookResult{Appointment: replayed, Replayed: true}
				return nil
			}
		}

		// A completed key replays even when the policy would now refuse the slot.
		if err := schedule.NewPolicy(settings).Check(in.Interval, now); err != nil {
			return err
		}

		if err := u.lockAndCheckFree(ctx, tx, in.OwnerID, entity.Interval(), nil); err != nil {
			return err
		}

		if err := tx.Appointments().Create(ctx, entity); err != nil {
			return mapRepoErr(err)
		}

		ev := newAppointmentEvent(EventAppointmentCreated, entity, now)
		if err := publish(ctx, tx, ev.Type, entity.ID(), ev, u.topics.CalendarSync, u.topics.Notifications); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if in.IdempotencyKey != "" {
			if err := tx.Idempotency().Complete(ctx, in.OwnerID, in.IdempotencyKey, entity.ID()); err != nil {
				return errs.Mark(err, errs.ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !result.Replayed {
		u.scheduleReminder(ctx, result.Appointment)
	}
	span.SetAttributes(
		attribute.String("appointment.id", result.Appointment.ID().String()),
		attribute.Bool("idempotency.replayed", result.Replayed),
	)
	return &result, nil
}

func (u *appointmentUseCaseImpl) Reschedule(ctx context.Context, in RescheduleInput) (*appointment.Appointment, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "appointments.Reschedule")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.id", in.AppointmentID.String()))

	now := u.clock.Now()
	settings, err := u.loadOwnerSettings(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := schedule.NewPolicy(settings).Check(in.Interval, now); err != nil {
		return nil, err
	}

	var updated *appointment.Appointment
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Appointments().FindByIDForUpdate(ctx, in.OwnerID, in.AppointmentID)
		if err != nil {
			return mapRepoErr(err)
		}

		prev, err := a.Reschedule(in.Interval, in.Reason, now)
		if err != nil {
			return err
		}

		id := a.ID()
		if err := u.lockAndCheckFree(ctx, tx, in.OwnerID, a.Interval(), &id); err != nil {
			return err
		}

		if err := tx.Appointments().Update(ctx, a); err != nil {
			return mapRepoErr(err)
		}

		ev := newAppointmentEvent(EventAppointmentUpdated, a, now)
		prevStart, prevEnd := prev.Start(), prev.End()
		ev.PreviousStart = &prevStart
		ev.PreviousEnd = &prevEnd
		ev.Reason = in.Reason
		if err := publish(ctx, tx, ev.Type, a.ID(), ev, u.eventTopics(in.Notify)...); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		updated = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.scheduleReminder(ctx, updated)
	return updated, nil
}

func (u *appointmentUseCaseImpl) Cancel(ctx context.Context, in CancelInput) (*appointment.Appointment, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "appointments.Cancel")
	defer span.End()
	span.SetAttributes(attribute.String("appointment.id", in.AppointmentID.String()))

	now := u.clock.Now()
	var cancelled *appointment.Appointment
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Appointments().FindByIDForUpdate(ctx, in.OwnerID, in.AppointmentID)
		if err != nil {
			return mapRepoErr(err)
		}
		if err := a.Cancel(in.Reason, now); err != nil {
			return err
		}
		if err := tx.Appointments().Update(ctx, a); err != nil {
			return mapRepoErr(err)
		}

		ev := newAppointmentEvent(EventAppointmentCancelled, a, now)
		ev.Reason = in.Reason
		if err := publish(ctx, tx, ev.Type, a.ID(), ev, u.eventTopics(in.Notify)...); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		cancelled = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

func (u *appointmentUseCaseImpl) UpdateStatus(ctx context.Context, ownerID, id uuid.UUID, to appointment.Status) (*appointment.Appointment, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "appointments.UpdateStatus")
	defer span.End()
	span.SetAttributes(
		attribute.String("appointment.id", id.String()),
		attribute.String("appointment.status", to.String()),
	)

	now := u.clock.Now()
	var changed *appointment.Appointment
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		a, err := tx.Appointments().FindByIDForUpdate(ctx, ownerID, id)
		if err != nil {
			return mapRepoErr(err)
		}
		if err := a.ChangeStatus(to, now); err != nil {
			return err
		}
		if err := tx.Appointments().Update(ctx, a); err != nil {
			return mapRepoErr(err)
		}

		eventType := EventAppointmentUpdated
		topics := []string{u.topics.CalendarSync}
		if to == appointment.StatusCompleted {
			eventType = EventAppointmentCompleted
			topics = append(topics, u.topics.Notifications)
		}
		ev := newAppointmentEvent(eventType, a, now)
		if err := publish(ctx, tx, ev.Type, a.ID(), ev, topics...); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		changed = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changed, nil
}

func (u *appointmentUseCaseImpl) loadOwnerSettings(ctx context.Context, ownerID uuid.UUID) (*schedule.Settings, error) {
	reads := u.uow.CommandReads()
	if err := ensureOwner(ctx, reads, ownerID); err != nil {
		return nil, err
	}
	settings, err := reads.Settings(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return settings, nil
}

// handleIdempotency returns the stored appointment when the key already
// completed with the same request.
func (u *appointmentUseCaseImpl) handleIdempotency(
	ctx context.Context,
	tx shared.Tx,
	ownerID uuid.UUID,
	key, requestHash string,
	now time.Time,
) (*appointment.Appointment, error) {
	rec, err := tx.Idempotency().Lock(ctx, ownerID, key, bookEndpoint, requestHash, now.Add(idempotencyRetention))
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if rec.RequestHash != requestHash || rec.Endpoint != bookEndpoint {
		return nil, errs.ErrIdempotencyKeyReused
	}

	switch rec.Status {
	case shared.IdempotencyCompleted:
		if rec.ResultAppointmentID == nil {
			return nil, errs.New("completed request missing result appointment ID")
		}
		a, err := tx.Appointments().FindByID(ctx, ownerID, *rec.ResultAppointmentID)
		if err != nil {
			return nil, mapRepoErr(err)
		}
		return a, nil

	case shared.IdempotencyProcessing:
		// The row lock is ours, so a processing row was inserted by this transaction.
		return nil, nil

	default:
		return nil, errs.Newf("invalid idempotency key status %q", rec.Status)
	}
}

// lockAndCheckFree serializes writers of the owner and re-checks the interval
// against committed appointments and blocked periods.
func (u *appointmentUseCaseImpl) lockAndCheckFree(ctx context.Context, tx shared.Tx, ownerID uuid.UUID, iv appointment.Interval, exclude *uuid.UUID) error {
	if err := tx.Appointments().LockOwner(ctx, ownerID); err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	busy, err := tx.Appointments().HasOverlap(ctx, ownerID, iv, exclude)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if busy {
		return errs.Mark(errs.Newf("interval %s overlaps an existing appointment", iv), errs.ErrSlotUnavailable)
	}

	blocked, err := tx.BlockedPeriods().HasOverlap(ctx, ownerID, iv)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if blocked {
		return errs.Mark(errs.Newf("interval %s overlaps a blocked period", iv), errs.ErrSlotUnavailable)
	}
	return nil
}

func (u *appointmentUseCaseImpl) eventTopics(notify bool) []string {
	if notify {
		return []string{u.topics.CalendarSync, u.topics.Notifications}
	}
	return []string{u.topics.CalendarSync}
}

func (u *appointmentUseCaseImpl) scheduleReminder(ctx context.Context, a *appointment.Appointment) {
	if u.reminders == nil || a == nil || !a.SendReminders() {
		return
	}
	if err := u.reminders.Schedule(context.WithoutCancel(ctx), a); err != nil {
		slog.WarnContext(ctx, "failed to schedule reminder",
			"appointment_id", a.ID().String(),
			"error", err.Error())
	}
}

func newAppointmentFromInput(in BookInput, autoConfirm bool, now time.Time) (*appointment.Appointment, error) {
	details, err := appointment.NewDetails(in.Title, in.Description, in.Location, in.Timezone)
	if err != nil {
		return nil, err
	}
	attendee, err := appointment.NewAttendee(in.AttendeeName, in.AttendeeEmail, in.AttendeePhone)
	if err != nil {
		return nil, err
	}
	return appointment.NewAppointment(appointment.NewParams{
		OwnerID:       in.OwnerID,
		Interval:      in.Interval,
		Details:       details,
		Attendee:      attendee,
		Source:        in.Source,
		AgentID:       in.AgentID,
		SendReminders: in.SendReminders,
		Metadata:      in.Metadata,
		AutoConfirm:   autoConfirm,
	}, now)
}

// mapRepoErr translates repository kinds into the booking taxonomy. The
// original error stays in the chain so the unit of work can still see
// retryable Postgres codes.
func mapRepoErr(err error) error {
	switch {
	case infra.IsKind(err, infra.KindConflict):
		return errs.Mark(err, errs.ErrSlotUnavailable)
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrAppointmentNotFound)
	default:
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
}

type bookRequestFingerprint struct {
	Start         time.Time      `json:"start"`
	End           time.Time      `json:"end"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Location      string         `json:"location"`
	Timezone      string         `json:"timezone"`
	AttendeeName  string         `json:"attendee_name"`
	AttendeeEmail string         `json:"attendee_email"`
	AttendeePhone string         `json:"attendee_phone"`
	SendReminders bool           `json:"send_reminders"`
	Source        string         `json:"source"`
	AgentID       *uuid.UUID     `json:"agent_id"`
	Metadata      map[string]any `json:"metadata"`
}

func calculateRequestHash(in BookInput) string {
	data, _ := json.Marshal(bookRequestFingerprint{
		Start:         in.Interval.Start(),
		End:           in.Interval.End(),
		Title:         in.Title,
		Description:   in.Description,
		Location:      in.Location,
		Timezone:      in.Timezone,
		AttendeeName:  in.AttendeeName,
		AttendeeEmail: in.AttendeeEmail,
		AttendeePhone: in.AttendeePhone,
		SendReminders: in.SendReminders,
		Source:        string(in.Source),
		AgentID:       in.AgentID,
		Metadata:      in.Metadata,
	})
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
