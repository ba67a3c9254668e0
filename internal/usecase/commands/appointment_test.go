//go:build unit

package commands

import (
	"context"
	"sync"
	"testing"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/infra"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// Monday 08:00 UTC.
	testNow   = time.Date(2030, 1, 7, 8, 0, 0, 0, time.UTC)
	testTopic = EventTopics{CalendarSync: "calendar-sync", Notifications: "notifications"}
)

type bookingFixture struct {
	ownerID   uuid.UUID
	uow       *memUoW
	reminders *recordingScheduler
	clock     *clock.MockClock
	cmds      AppointmentCommands
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()
	ownerID := uuid.New()
	f := &bookingFixture{
		ownerID:   ownerID,
		uow:       newMemUoW(ownerID),
		reminders: &recordingScheduler{},
		clock:     clock.NewMockClock(testNow),
	}
	f.cmds = NewAppointmentUseCase(f.uow, f.reminders, testTopic, f.clock)
	return f
}

// wednesdayAt is 2030-01-09 at hour:min UTC, inside the default window.
func wednesdayAt(hour, min int, d time.Duration) appointment.Interval {
	start := time.Date(2030, 1, 9, hour, min, 0, 0, time.UTC)
	return appointment.MustInterval(start, start.Add(d))
}

func (f *bookingFixture) input(iv appointment.Interval) BookInput {
	return BookInput{
		OwnerID:       f.ownerID,
		Interval:      iv,
		Title:         "Consultation",
		Timezone:      "UTC",
		AttendeeName:  "Hanako",
		AttendeeEmail: "hanako@example.com",
		SendReminders: true,
		Source:        appointment.SourceDashboard,
	}
}

func TestBook_Success(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	res, err := f.cmds.Book(ctx, f.input(wednesdayAt(10, 0, 30*time.Minute)))
	require.NoError(t, err)
	assert.False(t, res.Replayed)
	assert.Equal(t, appointment.StatusScheduled, res.Appointment.Status())
	assert.Equal(t, 1, f.uow.activeCount(f.ownerID))
	assert.Equal(t, []uuid.UUID{f.ownerID}, f.uow.lockedOwners)

	topics := f.uow.topics()
	assert.Equal(t, 1, topics["calendar-sync appointment.created"])
	assert.Equal(t, 1, topics["notifications appointment.created"])
	assert.Equal(t, 1, f.reminders.count())
}

func TestBook_AutoConfirm(t *testing.T) {
	f := newBookingFixture(t)
	s, err := schedule.NewSettings(schedule.SettingsParams{
		OwnerID:         f.ownerID,
		Hours:           schedule.DefaultWeeklyHours(),
		SlotMinutes:     30,
		MaxAdvanceDays:  30,
		MinAdvanceHours: 1,
		AutoConfirm:     true,
	})
	require.NoError(t, err)
	f.uow.settings[f.ownerID] = s

	res, err := f.cmds.Book(context.Background(), f.input(wednesdayAt(10, 0, 30*time.Minute)))
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusConfirmed, res.Appointment.Status())
}

func TestBook_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		iv     appointment.Interval
		reason schedule.Reason
	}{
		{"inside minimum notice", appointment.MustInterval(testNow.Add(2*time.Hour), testNow.Add(150*time.Minute)), schedule.ReasonTooSoon},
		{"beyond advance window", appointment.MustInterval(testNow.AddDate(0, 0, 45).Add(2*time.Hour), testNow.AddDate(0, 0, 45).Add(3*time.Hour)), schedule.ReasonTooFar},
		{"before opening", wednesdayAt(8, 30, 30*time.Minute), schedule.ReasonOutsideHours},
		{"runs past closing", wednesdayAt(16, 45, 30*time.Minute), schedule.ReasonOutsideHours},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)

			_, err := f.cmds.Book(context.Background(), f.input(tt.iv))
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrConstraintViolation))
			cv, ok := schedule.AsViolation(err)
			require.True(t, ok)
			assert.Equal(t, tt.reason, cv.Reason)
			assert.Zero(t, f.uow.activeCount(f.ownerID))
			assert.Empty(t, f.uow.topics())
		})
	}
}

func TestBook_UnknownOwner(t *testing.T) {
	f := newBookingFixture(t)
	in := f.input(wednesdayAt(10, 0, 30*time.Minute))
	in.OwnerID = uuid.New()

	_, err := f.cmds.Book(context.Background(), in)
	assert.True(t, errs.Is(err, errs.ErrOwnerNotFound))
}

func TestBook_OverlapRejected(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()

	_, err := f.cmds.Book(ctx, f.input(wednesdayAt(10, 0, time.Hour)))
	require.NoError(t, err)

	_, err = f.cmds.Book(ctx, f.input(wednesdayAt(10, 30, 30*time.Minute)))
	assert.True(t, errs.Is(err, errs.ErrSlotUnavailable))

	// Half-open: touching the end is free.
	_, err = f.cmds.Book(ctx, f.input(wednesdayAt(11, 0, 30*time.Minute)))
	assert.NoError(t, err)
	assert.Equal(t, 2, f.uow.activeCount(f.ownerID))
}

func TestBook_BlockedPeriodRejected(t *testing.T) {
	f := newBookingFixture(t)
	ctx := context.Background()
	cal := NewCalendarUseCase(f.uow, f.clock)

	_, err := cal.CreateBlockedPeriod(ctx, f.ownerID, wednesdayAt(12, 0, 2*time.Hour), "lunch")
	require.NoError(t, err)

	_, err = f.cmds.Book(ctx, f.input(wednesdayAt(13, 0, 30*time.Minute)))
	assert.True(t, errs.Is(err, errs.ErrSlotUnavailable))
}

func TestBook_ExclusionViolationMapsToSlotUnavailable(t *testing.T) {
	f := newBookingFixture(t)
	f.uow.failCreate = infra.WrapRepoErr("insert appointment", &pgconn.PgError{Code: "23P01"})

	_, err := f.cmds.Book(context.Background(), f.input(wednesdayAt(10, 0, 30*time.Minute)))
	assert.True(t, errs.Is(err, errs.ErrSlotUnavailable))
	assert.Empty(t, f.uow.topics())
	assert.Zero(t, f.reminders.count())
}

func TestBook_ConcurrentSameSlot(t *testing.T) {
	f := newBookingFixture(t)
	const n = 8

	var wg sync.WaitGroup
	results := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.cmds.Book(context.Background(), f.input(wednesdayAt(14, 0, 30*time.Minute)))
		}(i)
	}
	wg.Wait()

	ok, conflicts := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errs.Is(err, errs.ErrSlotUnavailable):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
	assert.Equal(t, 1, f.uow.activeCount(f.ownerID))
}

func TestBook_Idempotency(t *testing.T) {
	ctx := context.Background()

	t.Run("same key and body replays the first result", func(t *testing.T) {
		f := newBookingFixture(t)
		in := f.input(wednesdayAt(10, 0, 30*time.Minute))
		in.IdempotencyKey = "key-1"

		first, err := f.cmds.Book(ctx, in)
		require.NoError(t, err)
		second, err := f.cmds.Book(ctx, in)
		require.NoError(t, err)

		assert.True(t, second.Replayed)
		assert.Equal(t, first.Appointment.ID(), second.Appointment.ID())
		assert.Equal(t, 1, f.uow.activeCount(f.ownerID))
		assert.Equal(t, 1, f.uow.topics()["calendar-sync appointment.created"])
		assert.Equal(t, 1, f.reminders.count())
	})

	t.Run("same key with another body is rejected", func(t *testing.T) {
		f := newBookingFixture(t)
		in := f.input(wednesdayAt(10, 0, 30*time.Minute))
		in.IdempotencyKey = "key-2"
		_, err := f.cmds.Book(ctx, in)
		require.NoError(t, err)

		in.Interval = wednesdayAt(11, 0, 30*time.Minute)
		_, err = f.cmds.Book(ctx, in)
		assert.True(t, errs.Is(err, errs.ErrIdempotencyKeyReused))
		assert.Equal(t, 1, f.uow.activeCount(f.ownerID))
	})

	t.Run("failed attempt leaves the key reusable", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.cmds.Book(ctx, f.input(wednesdayAt(10, 0, 30*time.Minute)))
		require.NoError(t, err)

		in := f.input(wednesdayAt(10, 0, 30*time.Minute))
		in.IdempotencyKey = "key-3"
		_, err = f.cmds.Book(ctx, in)
		require.True(t, errs.Is(err, errs.ErrSlotUnavailable))

		in.Interval = wednesdayAt(15, 0, 30*time.Minute)
		res, err := f.cmds.Book(ctx, in)
		require.NoError(t, err)
		assert.False(t, res.Replayed)
	})

	t.Run("retry replays after the slot falls inside minimum notice", func(t *testing.T) {
		f := newBookingFixture(t)
		in := f.input(wednesdayAt(9, 0, 30*time.Minute))
		in.IdempotencyKey = "retry-1"

		first, err := f.cmds.Book(ctx, in)
		require.NoError(t, err)

		// Tuesday 09:00:05, less than 24 hours before the slot.
		f.clock.Set(time.Date(2030, 1, 8, 9, 0, 5, 0, time.UTC))
		second, err := f.cmds.Book(ctx, in)
		require.NoError(t, err)
		assert.True(t, second.Replayed)
		assert.Equal(t, first.Appointment.ID(), second.Appointment.ID())

		in.IdempotencyKey = "retry-2"
		in.Interval = wednesdayAt(9, 30, 30*time.Minute)
		_, err = f.cmds.Book(ctx, in)
		cv, ok := schedule.AsViolation(err)
		require.True(t, ok)
		assert.Equal(t, schedule.ReasonTooSoon, cv.Reason)
		assert.Equal(t, 1, f.uow.activeCount(f.ownerID))
	})

	t.Run("key longer than 255 characters", func(t *testing.T) {
		f := newBookingFixture(t)
		in := f.input(wednesdayAt(10, 0, 30*time.Minute))
		in.IdempotencyKey = string(make([]byte, MaxIdempotencyKeyLen+1))

		_, err := f.cmds.Book(ctx, in)
		assert.True(t, errs.Is(err, errs.ErrDomainValidation))
	})
}

func TestBook_ReminderFailureKeepsBooking(t *testing.T) {
	f := newBookingFixture(t)
	f.reminders.err = errs.New("redis down")

	res, err := f.cmds.Book(context.Background(), f.input(wednesdayAt(10, 0, 30*time.Minute)))
	require.NoError(t, err)
	assert.NotNil(t, res.Appointment)
	assert.Equal(t, 1, f.uow.activeCount(f.ownerID))
}

func TestReschedule(t *testing.T) {
	ctx := context.Background()

	t.Run("moves in place and frees the old interval", func(t *testing.T) {
		f := newBookingFixture(t)
		booked, err := f.cmds.Book(ctx, f.input(wednesdayAt(10, 0, 30*time.Minute)))
		require.NoError(t, err)

		moved, err := f.cmds.Reschedule(ctx, RescheduleInput{
			OwnerID:       f.ownerID,
			AppointmentID: booked.Appointment.ID(),
			Interval:      wednesdayAt(11, 0, 30*time.Minute),
			Reason:        "client asked",
			Notify:        true,
		})
		require.NoError(t, err)
		assert.Equal(t, booked.Appointment.ID(), moved.ID())
		assert.True(t, moved.Interval().Equal(wednesdayAt(11, 0, 30*time.Minute)))
		assert.Equal(t, appointment.ActionRescheduled, moved.LastAction())
		assert.Equal(t, 1, f.uow.topics()["notifications appointment.updated"])

		_, err = f.cmds.Book(ctx, f.input(wednesdayAt(10, 0, 30*time.Minute)))
		assert.NoError(t, err)
	})

	t.Run("overlapping its own old interval is allowed", func(t *testing.T) {
		f := newBookingFixture(t)
		booked, err := f.cmds.Book(ctx, f.input(wednesdayAt(10, 0, time.Hour)))
		require.NoError(t, err)

		_, err = f.cmds.Reschedule(ctx, RescheduleInput{
			OwnerID:       f.ownerID,
			AppointmentID: booked.Appointment.ID(),
			Interval:      wednesdayAt(10, 30, time.Hour),
		})
		assert.NoError(t, err)
	})

	t.Run("target taken by another appointment", func(t *testing.T) {
		f := newBookingFixture(t)
		a, err := f.cmds.Book(ctx, f.input(wednesdayAt(10, 0, 30*time.Minute)))
		require.NoError(t, err)
		_, err = f.cmds.Book(ctx, f.input(wednesdayAt(11, 0, 30*time.Minute)))
		require.NoError(t, err)

		_, err = f.cmds.Reschedule(ctx, RescheduleInput{
			OwnerID:       f.ownerID,
			AppointmentID: a.Appointment.ID(),
			Interval:      wednesdayAt(11, 15, 30*time.Minute),
		})
		assert.True(t, errs.Is(err, errs.ErrSlotUnavailable))
		assert.True(t, a.Appointment.Interval().Equal(wednesdayAt(10, 0, 30*time.Minute)))
	})

	t.Run("unknown appointment", func(t *testing.T) {
		f := newBookingFixture(t)
		_, err := f.cmds.Reschedule(ctx, RescheduleInput{
			OwnerID:       f.ownerID,
			AppointmentID: uuid.New(),
			Interval:      wednesdayAt(11, 0, 30*time.Minute),
		})
		assert.True(t, errs.Is(err, errs.ErrAppointmentNotFound))
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	f := newBookingFixture(t)
	booked, err := f.cmds.Book(ctx, f.input(wednesdayAt(10, 0, 30*time.Minute)))
	require.NoError(t, err)

	cancelled, err := f.cmds.Cancel(ctx, CancelInput{
		OwnerID:       f.ownerID,
		AppointmentID: booked.Appointment.ID(),
		Reason:        "sick",
	})
	require.NoError(t, err)
	assert.Equal(t, appointment.StatusCancelled, cancelled.Status())
	assert.NotNil(t, cancelled.CancelledAt())
	assert.Equal(t, 1, f.uow.topics()["calendar-sync appointment.cancelled"])
	assert.Zero(t, f.uow.topics()["notifications appointment.cancelled"])

	// The row stays but the interval is free again.
	_, err = f.cmds.Book(ctx, f.input(wednesdayAt(10, 0, 30*time.Minute)))
	assert.NoError(t, err)

	_, err = f.cmds.Cancel(ctx, CancelInput{OwnerID: f.ownerID, AppointmentID: booked.Appointment.ID()})
	assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm then complete", func(t *testing.T) {
		f := newBookingFixture(t)
		booked, err := f.cmds.Book(ctx, f.input(wednesdayAt(10, 0, 30*time.Minute)))
		require.NoError(t, err)
		id := booked.Appointment.ID()

		a, err := f.cmds.UpdateStatus(ctx, f.ownerID, id, appointment.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusConfirmed, a.Status())

		a, err = f.cmds.UpdateStatus(ctx, f.ownerID, id, appointment.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, appointment.StatusCompleted, a.Status())
		assert.Equal(t, 1, f.uow.topics()["notifications appointment.completed"])

		_, err = f.cmds.UpdateStatus(ctx, f.ownerID, id, appointment.StatusNoShow)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
	})

	t.Run("cancelled is not a status update", func(t *testing.T) {
		f := newBookingFixture(t)
		booked, err := f.cmds.Book(ctx, f.input(wednesdayAt(10, 0, 30*time.Minute)))
		require.NoError(t, err)

		_, err = f.cmds.UpdateStatus(ctx, f.ownerID, booked.Appointment.ID(), appointment.StatusCancelled)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
	})
}
