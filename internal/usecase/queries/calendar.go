package queries

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/queries/$GOFILE -package=queriesmock

import (
	"context"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/integration"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type ScheduleReadStore interface {
	// Settings falls back to schedule.DefaultSettings when nothing is stored.
	Settings(ctx context.Context, ownerID uuid.UUID) (*schedule.Settings, error)
	BlockedPeriods(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*schedule.BlockedPeriod, error)
	Integrations(ctx context.Context, ownerID uuid.UUID) ([]*integration.Integration, error)
	// Snapshot fails with errs.ErrOwnerNotFound for unknown owners.
	Snapshot(ctx context.Context, ownerID uuid.UUID, rng appointment.Interval) (*ScheduleSnapshot, error)
}

type CalendarQueries interface {
	Settings(ctx context.Context, ownerID uuid.UUID) (*schedule.Settings, error)
	BlockedPeriods(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*schedule.BlockedPeriod, error)
	Integrations(ctx context.Context, ownerID uuid.UUID) ([]*integration.Integration, error)
}

type calendarQueriesImpl struct {
	store ScheduleReadStore
}

func NewCalendarQueries(store ScheduleReadStore) CalendarQueries {
	return &calendarQueriesImpl{store: store}
}

func (q *calendarQueriesImpl) Settings(ctx context.Context, ownerID uuid.UUID) (*schedule.Settings, error) {
	return q.store.Settings(ctx, ownerID)
}

func (q *calendarQueriesImpl) BlockedPeriods(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) ([]*schedule.BlockedPeriod, error) {
	if from != nil && to != nil && !from.Before(*to) {
		return nil, errs.Mark(errs.New("from must be before to"), errs.ErrInvalidTimeRange)
	}
	return q.store.BlockedPeriods(ctx, ownerID, from, to)
}

func (q *calendarQueriesImpl) Integrations(ctx context.Context, ownerID uuid.UUID) ([]*integration.Integration, error) {
	return q.store.Integrations(ctx, ownerID)
}
