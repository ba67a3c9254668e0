package queries

//go:generate mockgen -source=$GOFILE -destination=../../../tests/mock/queries/$GOFILE -package=queriesmock

import (
	"context"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/telemetry"
	"appointment-engine/internal/pkg/timeutil"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ScheduleSnapshot is everything availability needs, read at one point in time.
type ScheduleSnapshot struct {
	Settings *schedule.Settings
	Booked   []appointment.Interval
	Blocked  []appointment.Interval
}

type AvailabilityRequest struct {
	Range    appointment.Interval
	Duration time.Duration
	// AvailableOnly drops annotated slots from the result.
	AvailableOnly bool
	// Limit caps the number of returned slots; zero means no cap. The whole
	// grid is still resolved so TotalSlots and AvailableCount stay exact.
	Limit int
}

type AvailabilityResult struct {
	OwnerID        uuid.UUID
	Timezone       string
	SlotDuration   time.Duration
	Slots          []schedule.AvailabilitySlot
	TotalSlots     int
	AvailableCount int
}

type AvailabilityQueries interface {
	Check(ctx context.Context, ownerID uuid.UUID, req AvailabilityRequest) (*AvailabilityResult, error)
	// ForDate checks the whole local calendar date in the owner's timezone.
	ForDate(ctx context.Context, ownerID uuid.UUID, date time.Time, duration time.Duration, limit int) (*AvailabilityResult, error)
}

type availabilityQueriesImpl struct {
	store ScheduleReadStore
	clock clock.Clock
}

func NewAvailabilityQueries(store ScheduleReadStore, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{store: store, clock: clk}
}

func (q *availabilityQueriesImpl) Check(ctx context.Context, ownerID uuid.UUID, req AvailabilityRequest) (*AvailabilityResult, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "availability.Check")
	defer span.End()

	if req.Range.IsZero() {
		return nil, errs.Mark(errs.New("availability range is required"), errs.ErrInvalidTimeRange)
	}
	if req.Range.Duration() > schedule.MaxQueryRange {
		return nil, errs.Mark(errs.Newf("availability range exceeds %s", schedule.MaxQueryRange), errs.ErrInvalidTimeRange)
	}

	snap, err := q.store.Snapshot(ctx, ownerID, req.Range)
	if err != nil {
		return nil, err
	}

	slots, err := schedule.Availability(snap.Settings, schedule.SlotQuery{
		Range:    req.Range,
		Duration: req.Duration,
		Now:      q.clock.Now(),
	}, snap.Booked, snap.Blocked)
	if err != nil {
		return nil, err
	}

	res := &AvailabilityResult{
		OwnerID:      ownerID,
		Timezone:     snap.Settings.Timezone(),
		SlotDuration: req.Duration,
		Slots:        []schedule.AvailabilitySlot{},
	}
	if res.SlotDuration == 0 {
		res.SlotDuration = snap.Settings.SlotDuration()
	}
	for slot := range slots {
		res.TotalSlots++
		if slot.Available {
			res.AvailableCount++
		} else if req.AvailableOnly {
			continue
		}
		if req.Limit > 0 && len(res.Slots) >= req.Limit {
			continue
		}
		res.Slots = append(res.Slots, slot)
	}

	span.SetAttributes(
		attribute.String("owner.id", ownerID.String()),
		attribute.Int("availability.total", res.TotalSlots),
		attribute.Int("availability.available", res.AvailableCount),
	)
	return res, nil
}

func (q *availabilityQueriesImpl) ForDate(ctx context.Context, ownerID uuid.UUID, date time.Time, duration time.Duration, limit int) (*AvailabilityResult, error) {
	settings, err := q.store.Settings(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	from, to := timeutil.DayBounds(date, settings.Location())
	rng, err := appointment.NewInterval(from, to)
	if err != nil {
		return nil, err
	}
	return q.Check(ctx, ownerID, AvailabilityRequest{
		Range:         rng,
		Duration:      duration,
		AvailableOnly: true,
		Limit:         limit,
	})
}
