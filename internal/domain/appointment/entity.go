package appointment

import (
	"maps"
	"time"

	"appointment-engine/internal/pkg/errs"

	"github.com/google/uuid"
)

type Appointment struct {
	id            uuid.UUID
	ownerID       uuid.UUID
	interval      Interval
	status        Status
	details       Details
	attendee      Attendee
	source        Source
	agentID       *uuid.UUID
	sendReminders bool
	reminderSent  bool
	metadata      map[string]any
	lastAction    string
	cancelledAt   *time.Time
	rescheduledAt *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

type NewParams struct {
	OwnerID       uuid.UUID
	Interval      Interval
	Details       Details
	Attendee      Attendee
	Source        Source
	AgentID       *uuid.UUID
	SendReminders bool
	Metadata      map[string]any
	AutoConfirm   bool
}

func NewAppointment(p NewParams, now time.Time) (*Appointment, error) {
	if p.OwnerID == uuid.Nil {
		return nil, errs.ErrOwnerNotFound
	}
	if p.Interval.IsZero() {
		return nil, errs.Mark(errs.New("appointment interval is required"), errs.ErrInvalidTimeRange)
	}
	if p.Source == "" {
		p.Source = SourceDashboard
	}

	status := StatusScheduled
	if p.AutoConfirm {
		status = StatusConfirmed
	}

	md := make(map[string]any, len(p.Metadata))
	maps.Copy(md, p.Metadata)

	now = now.UTC()
	return &Appointment{
		id:            uuid.New(),
		ownerID:       p.OwnerID,
		interval:      p.Interval,
		status:        status,
		details:       p.Details,
		attendee:      p.Attendee,
		source:        p.Source,
		agentID:       p.AgentID,
		sendReminders: p.SendReminders,
		metadata:      md,
		lastAction:    ActionCreated,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

type ReconstructParams struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	Interval      Interval
	Status        Status
	Details       Details
	Attendee      Attendee
	Source        Source
	AgentID       *uuid.UUID
	SendReminders bool
	ReminderSent  bool
	Metadata      map[string]any
	LastAction    string
	CancelledAt   *time.Time
	RescheduledAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Reconstruct rebuilds a persisted aggregate without re-running creation rules.
func Reconstruct(p ReconstructParams) *Appointment {
	md := p.Metadata
	if md == nil {
		md = map[string]any{}
	}
	return &Appointment{
		id:            p.ID,
		ownerID:       p.OwnerID,
		interval:      p.Interval,
		status:        p.Status,
		details:       p.Details,
		attendee:      p.Attendee,
		source:        p.Source,
		agentID:       p.AgentID,
		sendReminders: p.SendReminders,
		reminderSent:  p.ReminderSent,
		metadata:      md,
		lastAction:    p.LastAction,
		cancelledAt:   p.CancelledAt,
		rescheduledAt: p.RescheduledAt,
		createdAt:     p.CreatedAt,
		updatedAt:     p.UpdatedAt,
	}
}

// Reschedule moves the appointment in place. The id is kept and the status
// stays at its resting value; the move is recorded as the last action.
// It returns the interval that was vacated.
func (a *Appointment) Reschedule(to Interval, reason string, now time.Time) (Interval, error) {
	if !a.status.CanTransitionTo(StatusRescheduled) {
		return Interval{}, a.transitionError(StatusRescheduled)
	}
	if to.IsZero() {
		return Interval{}, errs.Mark(errs.New("new interval is required"), errs.ErrInvalidTimeRange)
	}
	if len(reason) > MaxReasonLength {
		return Interval{}, ErrReasonTooLong
	}

	now = now.UTC()
	prev := a.interval
	a.interval = to
	a.lastAction = ActionRescheduled
	a.rescheduledAt = &now
	a.reminderSent = false
	a.metadata[MetaPreviousStart] = prev.Start().Format(time.RFC3339)
	if reason != "" {
		a.metadata[MetaRescheduleReason] = reason
	}
	a.updatedAt = now
	return prev, nil
}

// Cancel is a soft delete. The interval is released for new bookings.
func (a *Appointment) Cancel(reason string, now time.Time) error {
	if len(reason) > MaxReasonLength {
		return ErrReasonTooLong
	}
	if err := a.transition(StatusCancelled, now); err != nil {
		return err
	}
	now = now.UTC()
	a.cancelledAt = &now
	a.lastAction = ActionCancelled
	if reason != "" {
		a.metadata[MetaCancellationReason] = reason
	}
	return nil
}

// ChangeStatus applies confirm, complete and no_show.
func (a *Appointment) ChangeStatus(to Status, now time.Time) error {
	switch to {
	case StatusConfirmed, StatusCompleted, StatusNoShow:
	default:
		return a.transitionError(to)
	}
	if err := a.transition(to, now); err != nil {
		return err
	}
	a.lastAction = ActionStatus
	return nil
}

func (a *Appointment) MarkReminderSent(now time.Time) {
	a.reminderSent = true
	a.updatedAt = now.UTC()
}

// NeedsReminder reports whether a reminder for the given start is still due.
func (a *Appointment) NeedsReminder(expectedStart time.Time) bool {
	return a.sendReminders &&
		!a.reminderSent &&
		a.status.IsActive() &&
		!a.status.IsTerminal() &&
		a.interval.Start().Equal(expectedStart)
}

func (a *Appointment) transition(to Status, now time.Time) error {
	if !a.status.CanTransitionTo(to) {
		return a.transitionError(to)
	}
	a.status = to
	a.updatedAt = now.UTC()
	return nil
}

func (a *Appointment) transitionError(to Status) error {
	return errs.Mark(errs.Newf("cannot move appointment from %s to %s", a.status, to), errs.ErrInvalidTransition)
}

func (a *Appointment) ID() uuid.UUID             { return a.id }
func (a *Appointment) OwnerID() uuid.UUID        { return a.ownerID }
func (a *Appointment) Interval() Interval        { return a.interval }
func (a *Appointment) Status() Status            { return a.status }
func (a *Appointment) Details() Details          { return a.details }
func (a *Appointment) Attendee() Attendee        { return a.attendee }
func (a *Appointment) Source() Source            { return a.source }
func (a *Appointment) AgentID() *uuid.UUID       { return a.agentID }
func (a *Appointment) SendReminders() bool       { return a.sendReminders }
func (a *Appointment) ReminderSent() bool        { return a.reminderSent }
func (a *Appointment) LastAction() string        { return a.lastAction }
func (a *Appointment) CancelledAt() *time.Time   { return a.cancelledAt }
func (a *Appointment) RescheduledAt() *time.Time { return a.rescheduledAt }
func (a *Appointment) CreatedAt() time.Time      { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time      { return a.updatedAt }

func (a *Appointment) Metadata() map[string]any {
	return maps.Clone(a.metadata)
}
