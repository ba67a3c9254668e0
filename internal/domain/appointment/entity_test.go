//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/pkg/errs"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newAppointment(t *testing.T, autoConfirm bool) *appointment.Appointment {
	t.Helper()
	attendee, err := appointment.NewAttendee("Jane Doe", "jane@example.com", "+15550100")
	require.NoError(t, err)
	details, err := appointment.NewDetails("Consultation", "", "", "UTC")
	require.NoError(t, err)

	a, err := appointment.NewAppointment(appointment.NewParams{
		OwnerID:       uuid.New(),
		Interval:      appointment.MustInterval(hm(10, 0), hm(10, 30)),
		Details:       details,
		Attendee:      attendee,
		SendReminders: true,
		AutoConfirm:   autoConfirm,
	}, now)
	require.NoError(t, err)
	return a
}

func TestNewAppointment(t *testing.T) {
	t.Run("scheduled by default", func(t *testing.T) {
		a := newAppointment(t, false)
		assert.NotEqual(t, uuid.Nil, a.ID())
		assert.Equal(t, appointment.StatusScheduled, a.Status())
		assert.Equal(t, appointment.SourceDashboard, a.Source())
		assert.Equal(t, appointment.ActionCreated, a.LastAction())
		assert.Equal(t, now, a.CreatedAt())
	})

	t.Run("confirmed with auto confirm", func(t *testing.T) {
		a := newAppointment(t, true)
		assert.Equal(t, appointment.StatusConfirmed, a.Status())
	})

	t.Run("owner required", func(t *testing.T) {
		_, err := appointment.NewAppointment(appointment.NewParams{
			Interval: appointment.MustInterval(hm(10, 0), hm(10, 30)),
		}, now)
		assert.ErrorIs(t, err, errs.ErrOwnerNotFound)
	})
}

func TestAppointment_Reschedule(t *testing.T) {
	a := newAppointment(t, false)
	id := a.ID()
	target := appointment.MustInterval(hm(11, 0), hm(11, 30))

	prev, err := a.Reschedule(target, "customer asked", now.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, id, a.ID())
	assert.True(t, prev.Equal(appointment.MustInterval(hm(10, 0), hm(10, 30))))
	assert.True(t, a.Interval().Equal(target))
	assert.Equal(t, appointment.StatusScheduled, a.Status())
	assert.Equal(t, appointment.ActionRescheduled, a.LastAction())
	require.NotNil(t, a.RescheduledAt())

	want := map[string]any{
		appointment.MetaRescheduleReason: "customer asked",
		appointment.MetaPreviousStart:    "2024-01-15T10:00:00Z",
	}
	if diff := cmp.Diff(want, a.Metadata()); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}

	t.Run("cancelled cannot be rescheduled", func(t *testing.T) {
		c := newAppointment(t, false)
		require.NoError(t, c.Cancel("", now))
		_, err := c.Reschedule(target, "", now)
		assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
	})
}

func TestAppointment_Cancel(t *testing.T) {
	a := newAppointment(t, true)
	require.NoError(t, a.Cancel("no longer needed", now))

	assert.Equal(t, appointment.StatusCancelled, a.Status())
	assert.False(t, a.Status().IsActive())
	require.NotNil(t, a.CancelledAt())
	assert.Equal(t, "no longer needed", a.Metadata()[appointment.MetaCancellationReason])

	err := a.Cancel("", now)
	assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
}

func TestAppointment_ChangeStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    []appointment.Status
		to      appointment.Status
		wantErr bool
	}{
		{name: "scheduled to confirmed", to: appointment.StatusConfirmed},
		{name: "scheduled to completed", to: appointment.StatusCompleted},
		{name: "scheduled to no show", to: appointment.StatusNoShow},
		{name: "confirmed to completed", from: []appointment.Status{appointment.StatusConfirmed}, to: appointment.StatusCompleted},
		{name: "confirmed to confirmed", from: []appointment.Status{appointment.StatusConfirmed}, to: appointment.StatusConfirmed, wantErr: true},
		{name: "completed is terminal", from: []appointment.Status{appointment.StatusCompleted}, to: appointment.StatusConfirmed, wantErr: true},
		{name: "no show is terminal", from: []appointment.Status{appointment.StatusNoShow}, to: appointment.StatusCompleted, wantErr: true},
		{name: "rescheduled is not a resting status", to: appointment.StatusRescheduled, wantErr: true},
		{name: "cancel goes through Cancel", to: appointment.StatusCancelled, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newAppointment(t, false)
			for _, s := range tt.from {
				require.NoError(t, a.ChangeStatus(s, now))
			}
			err := a.ChangeStatus(tt.to, now)
			if tt.wantErr {
				assert.True(t, errs.Is(err, errs.ErrInvalidTransition))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, a.Status())
		})
	}
}

func TestStatus_Transitions(t *testing.T) {
	terminal := []appointment.Status{appointment.StatusCancelled, appointment.StatusCompleted, appointment.StatusNoShow}
	all := []appointment.Status{
		appointment.StatusScheduled, appointment.StatusConfirmed, appointment.StatusCancelled,
		appointment.StatusRescheduled, appointment.StatusNoShow, appointment.StatusCompleted,
	}
	for _, from := range terminal {
		assert.True(t, from.IsTerminal())
		for _, to := range all {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.True(t, appointment.StatusScheduled.CanTransitionTo(appointment.StatusRescheduled))
	assert.False(t, appointment.StatusConfirmed.CanTransitionTo(appointment.StatusScheduled))
	assert.False(t, appointment.StatusRescheduled.IsResting())
}

func TestNeedsReminder(t *testing.T) {
	a := newAppointment(t, false)
	start := a.Interval().Start()

	assert.True(t, a.NeedsReminder(start))
	assert.False(t, a.NeedsReminder(start.Add(time.Hour)), "start moved by a reschedule")

	a.MarkReminderSent(now)
	assert.False(t, a.NeedsReminder(start))
}

func TestNewAttendee(t *testing.T) {
	_, err := appointment.NewAttendee("  ", "", "")
	assert.ErrorIs(t, err, appointment.ErrInvalidAttendee)

	_, err = appointment.NewAttendee("Jane", "not-an-email", "")
	assert.ErrorIs(t, err, appointment.ErrInvalidEmail)

	a, err := appointment.NewAttendee(" Jane ", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Jane", a.Name())
}
