package commands

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/commands/$GOFILE -package=commandsmock

import (
	"context"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/infra"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type SettingsInput struct {
	Hours           []schedule.DayHours
	SlotMinutes     int
	BufferMinutes   int
	MaxAdvanceDays  int
	MinAdvanceHours int
	Timezone        string
	AutoConfirm     bool
}

type CalendarCommands interface {
	// UpdateSettings replaces the stored settings as a whole.
	UpdateSettings(ctx context.Context, ownerID uuid.UUID, in SettingsInput) (*schedule.Settings, error)
	CreateBlockedPeriod(ctx context.Context, ownerID uuid.UUID, iv appointment.Interval, reason string) (*schedule.BlockedPeriod, error)
	DeleteBlockedPeriod(ctx context.Context, ownerID, id uuid.UUID) error
}

type calendarUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewCalendarUseCase(uow shared.UnitOfWork, clock clock.Clock) CalendarCommands {
	return &calendarUseCaseImpl{uow: uow, clock: clock}
}

func (u *calendarUseCaseImpl) UpdateSettings(ctx context.Context, ownerID uuid.UUID, in SettingsInput) (*schedule.Settings, error) {
	hours, err := schedule.NewWeeklyHours(in.Hours)
	if err != nil {
		return nil, err
	}
	settings, err := schedule.NewSettings(schedule.SettingsParams{
		OwnerID:         ownerID,
		Hours:           hours,
		SlotMinutes:     in.SlotMinutes,
		BufferMinutes:   in.BufferMinutes,
		MaxAdvanceDays:  in.MaxAdvanceDays,
		MinAdvanceHours: in.MinAdvanceHours,
		Timezone:        in.Timezone,
		AutoConfirm:     in.AutoConfirm,
	})
	if err != nil {
		return nil, err
	}

	var saved *schedule.Settings
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureOwner(ctx, tx.Reads(), ownerID); err != nil {
			return err
		}
		saved, err = tx.Settings().Save(ctx, settings)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (u *calendarUseCaseImpl) CreateBlockedPeriod(ctx context.Context, ownerID uuid.UUID, iv appointment.Interval, reason string) (*schedule.BlockedPeriod, error) {
	period, err := schedule.NewBlockedPeriod(ownerID, iv, reason, u.clock.Now())
	if err != nil {
		return nil, err
	}

	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := ensureOwner(ctx, tx.Reads(), ownerID); err != nil {
			return err
		}
		if err := tx.BlockedPeriods().Create(ctx, period); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return period, nil
}

func (u *calendarUseCaseImpl) DeleteBlockedPeriod(ctx context.Context, ownerID, id uuid.UUID) error {
	return u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.BlockedPeriods().Delete(ctx, ownerID, id); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrBlockedPeriodMissing
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

func ensureOwner(ctx context.Context, reads shared.CommandReads, ownerID uuid.UUID) error {
	if _, err := reads.Owner(ctx, ownerID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.ErrOwnerNotFound
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}
