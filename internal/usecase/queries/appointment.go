package queries

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/queries/$GOFILE -package=queriesmock

import (
	"context"
	"time"

	"appointment-engine/internal/infra"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/timeutil"

	"github.com/google/uuid"
)

type AppointmentReadStore interface {
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*AppointmentView, error)
	FindFirstPage(ctx context.Context, ownerID uuid.UUID, filter AppointmentFilter, limit int32) ([]*AppointmentView, error)
	FindKeyset(ctx context.Context, ownerID uuid.UUID, filter AppointmentFilter, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*AppointmentView, error)
	FindActiveInRange(ctx context.Context, ownerID uuid.UUID, from, to time.Time) ([]*AppointmentView, error)
	Stats(ctx context.Context, ownerID uuid.UUID, from, to *time.Time, now time.Time) (*AppointmentStats, error)
}

type AppointmentQueries interface {
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*AppointmentView, error)
	List(ctx context.Context, ownerID uuid.UUID, filter AppointmentFilter, cursor *Cursor, limit int) ([]*AppointmentView, *Cursor, error)
	Stats(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) (*AppointmentStats, error)
	// Today lists the active appointments of the owner's current local date.
	Today(ctx context.Context, ownerID uuid.UUID) ([]*AppointmentView, error)
}

type appointmentQueriesImpl struct {
	repo     AppointmentReadStore
	schedule ScheduleReadStore
	clock    clock.Clock
}

func NewAppointmentQueries(repo AppointmentReadStore, schedule ScheduleReadStore, clk clock.Clock) AppointmentQueries {
	return &appointmentQueriesImpl{repo: repo, schedule: schedule, clock: clk}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*AppointmentView, error) {
	v, err := q.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrAppointmentNotFound
		}
		return nil, err
	}
	return v, nil
}

func (q *appointmentQueriesImpl) List(ctx context.Context, ownerID uuid.UUID, filter AppointmentFilter, cursor *Cursor, limit int) ([]*AppointmentView, *Cursor, error) {
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, nil, errs.Mark(errs.New("from must be before to"), errs.ErrInvalidTimeRange)
	}

	limit = ValidateLimit(limit)
	var rows []*AppointmentView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.repo.FindFirstPage(ctx, ownerID, filter, int32(limit+1)) // #nosec G115 -- bounded by ValidateLimit
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, errs.Mark(derr, ErrInvalidCursor)
		}
		rows, err = q.repo.FindKeyset(ctx, ownerID, filter, lastCreatedAt, lastID, int32(limit+1)) // #nosec G115 -- bounded by ValidateLimit
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *appointmentQueriesImpl) Stats(ctx context.Context, ownerID uuid.UUID, from, to *time.Time) (*AppointmentStats, error) {
	if from != nil && to != nil && !from.Before(*to) {
		return nil, errs.Mark(errs.New("from must be before to"), errs.ErrInvalidTimeRange)
	}
	return q.repo.Stats(ctx, ownerID, from, to, q.clock.Now())
}

func (q *appointmentQueriesImpl) Today(ctx context.Context, ownerID uuid.UUID) ([]*AppointmentView, error) {
	settings, err := q.schedule.Settings(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	from, to := timeutil.DayBounds(q.clock.Now().In(settings.Location()), settings.Location())
	return q.repo.FindActiveInRange(ctx, ownerID, from, to)
}
