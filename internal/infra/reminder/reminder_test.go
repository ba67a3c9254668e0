//go:build unit

package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/pkg/clock"
	"appointment-engine/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return nil, f.err
	}
	return &asynq.TaskInfo{ID: "t"}, nil
}

type fakeReminders struct {
	gotOwner, gotID uuid.UUID
	gotStart        time.Time
	sent            bool
	err             error
}

func (f *fakeReminders) SendReminder(_ context.Context, ownerID, id uuid.UUID, startsAt time.Time) (bool, error) {
	f.gotOwner, f.gotID, f.gotStart = ownerID, id, startsAt
	return f.sent, f.err
}

var now = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)

func newAppointment(start time.Time, sendReminders bool) *appointment.Appointment {
	return appointment.Reconstruct(appointment.ReconstructParams{
		ID:            uuid.New(),
		OwnerID:       uuid.New(),
		Interval:      appointment.MustInterval(start, start.Add(30*time.Minute)),
		Status:        appointment.StatusScheduled,
		SendReminders: sendReminders,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
}

func defaultConfig() config.ReminderConfig {
	return config.ReminderConfig{Enabled: true, Lead: 24 * time.Hour, Queue: "reminders"}
}

func TestScheduler_Schedule(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(now)

	t.Run("enqueues at start minus lead", func(t *testing.T) {
		enq := &fakeEnqueuer{}
		s := NewScheduler(enq, defaultConfig(), clk)
		a := newAppointment(now.Add(72*time.Hour), true)

		require.NoError(t, s.Schedule(ctx, a))
		require.Len(t, enq.tasks, 1)
		assert.Equal(t, TypeAppointmentReminder, enq.tasks[0].Type())

		var p Payload
		require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
		assert.Equal(t, a.ID(), p.AppointmentID)
		assert.Equal(t, a.OwnerID(), p.OwnerID)
		assert.True(t, p.StartsAt.Equal(a.Interval().Start()))
		assert.Len(t, enq.opts[0], 5)
	})

	t.Run("skips when reminders are off", func(t *testing.T) {
		enq := &fakeEnqueuer{}
		s := NewScheduler(enq, defaultConfig(), clk)
		require.NoError(t, s.Schedule(ctx, newAppointment(now.Add(72*time.Hour), false)))
		assert.Empty(t, enq.tasks)
	})

	t.Run("skips when lead already passed", func(t *testing.T) {
		enq := &fakeEnqueuer{}
		s := NewScheduler(enq, defaultConfig(), clk)
		require.NoError(t, s.Schedule(ctx, newAppointment(now.Add(2*time.Hour), true)))
		assert.Empty(t, enq.tasks)
	})

	t.Run("skips when disabled", func(t *testing.T) {
		enq := &fakeEnqueuer{}
		cfg := defaultConfig()
		cfg.Enabled = false
		s := NewScheduler(enq, cfg, clk)
		require.NoError(t, s.Schedule(ctx, newAppointment(now.Add(72*time.Hour), true)))
		assert.Empty(t, enq.tasks)
	})

	t.Run("duplicate task id is not an error", func(t *testing.T) {
		enq := &fakeEnqueuer{err: asynq.ErrTaskIDConflict}
		s := NewScheduler(enq, defaultConfig(), clk)
		assert.NoError(t, s.Schedule(ctx, newAppointment(now.Add(72*time.Hour), true)))
	})

	t.Run("enqueue failure is returned", func(t *testing.T) {
		enq := &fakeEnqueuer{err: errors.New("redis down")}
		s := NewScheduler(enq, defaultConfig(), clk)
		assert.Error(t, s.Schedule(ctx, newAppointment(now.Add(72*time.Hour), true)))
	})
}

func TestTaskID_ChangesWithStart(t *testing.T) {
	id := uuid.New()
	a := TaskID(Payload{AppointmentID: id, StartsAt: now})
	b := TaskID(Payload{AppointmentID: id, StartsAt: now.Add(time.Hour)})
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, TaskID(Payload{AppointmentID: id, StartsAt: now}))
}

func TestProcessor_ProcessTask(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards payload", func(t *testing.T) {
		rem := &fakeReminders{sent: true}
		p := Payload{AppointmentID: uuid.New(), OwnerID: uuid.New(), StartsAt: now}
		task, err := NewTask(p)
		require.NoError(t, err)

		require.NoError(t, NewProcessor(rem).ProcessTask(ctx, task))
		assert.Equal(t, p.AppointmentID, rem.gotID)
		assert.Equal(t, p.OwnerID, rem.gotOwner)
		assert.True(t, rem.gotStart.Equal(now))
	})

	t.Run("bad payload is not retried", func(t *testing.T) {
		err := NewProcessor(&fakeReminders{}).ProcessTask(ctx, asynq.NewTask(TypeAppointmentReminder, []byte("{")))
		assert.ErrorIs(t, err, asynq.SkipRetry)
	})

	t.Run("use case error is retried", func(t *testing.T) {
		task, _ := NewTask(Payload{AppointmentID: uuid.New(), OwnerID: uuid.New(), StartsAt: now})
		err := NewProcessor(&fakeReminders{err: errors.New("db down")}).ProcessTask(ctx, task)
		require.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
	})
}
