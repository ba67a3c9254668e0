//go:build unit

package commands

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"appointment-engine/internal/domain/agent"
	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/domain/integration"
	"appointment-engine/internal/domain/owner"
	"appointment-engine/internal/domain/schedule"
	"appointment-engine/internal/infra"
	"appointment-engine/internal/infra/query"
	"appointment-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

// memUoW serializes every transaction behind one mutex and rolls back the
// collections a failed transaction touched.
type memUoW struct {
	mu           sync.Mutex
	owners       map[uuid.UUID]*owner.Owner
	settings     map[uuid.UUID]*schedule.Settings
	appointments map[uuid.UUID]*appointment.Appointment
	blocked      map[uuid.UUID]*schedule.BlockedPeriod
	idempotency  map[string]*shared.IdempotencyRecord
	agents       map[uuid.UUID]*agent.Agent
	integrations map[string]*integration.Integration
	outbox       []shared.OutboxMessage
	lockedOwners []uuid.UUID
	failCreate   error
}

func newMemUoW(owners ...uuid.UUID) *memUoW {
	u := &memUoW{
		owners:       map[uuid.UUID]*owner.Owner{},
		settings:     map[uuid.UUID]*schedule.Settings{},
		appointments: map[uuid.UUID]*appointment.Appointment{},
		blocked:      map[uuid.UUID]*schedule.BlockedPeriod{},
		idempotency:  map[string]*shared.IdempotencyRecord{},
		agents:       map[uuid.UUID]*agent.Agent{},
		integrations: map[string]*integration.Integration{},
	}
	for _, id := range owners {
		u.owners[id] = owner.Reconstruct(id, "Owner", id.String()+"@example.com", time.Now())
	}
	return u
}

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	appts := maps.Clone(u.appointments)
	blocked := maps.Clone(u.blocked)
	idem := maps.Clone(u.idempotency)
	outbox := slices.Clone(u.outbox)

	if err := fn(ctx, memTx{u}); err != nil {
		u.appointments, u.blocked, u.idempotency, u.outbox = appts, blocked, idem, outbox
		return err
	}
	return nil
}

func (u *memUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *memUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db query.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *memUoW) CommandReads() shared.CommandReads { return memReads{u} }

func (u *memUoW) topics() map[string]int {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := map[string]int{}
	for _, m := range u.outbox {
		out[m.Topic+" "+m.EventType]++
	}
	return out
}

func (u *memUoW) activeCount(ownerID uuid.UUID) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, a := range u.appointments {
		if a.OwnerID() == ownerID && a.Status().IsActive() {
			n++
		}
	}
	return n
}

type memTx struct{ u *memUoW }

func (t memTx) Appointments() shared.AppointmentRepository      { return memAppointments(t) }
func (t memTx) BlockedPeriods() shared.BlockedPeriodRepository  { return memBlocked(t) }
func (t memTx) Settings() shared.SettingsRepository             { return memSettings(t) }
func (t memTx) Idempotency() shared.IdempotencyRepository       { return memIdempotency(t) }
func (t memTx) Outbox() shared.OutboxRepository                 { return memOutbox(t) }
func (t memTx) Agents() shared.AgentRepository                  { return memAgents(t) }
func (t memTx) Integrations() shared.IntegrationRepository      { return memIntegrations(t) }
func (t memTx) Reads() shared.CommandReads                      { return memReads(t) }
func (t memTx) DB() query.DBTX                                  { return nil }

// memReads is used both inside and outside Within, so it never takes the lock.
type memReads struct{ u *memUoW }

func (r memReads) Owner(_ context.Context, id uuid.UUID) (*owner.Owner, error) {
	o, ok := r.u.owners[id]
	if !ok {
		return nil, notFound("owner not found")
	}
	return o, nil
}

func (r memReads) Settings(_ context.Context, ownerID uuid.UUID) (*schedule.Settings, error) {
	if s, ok := r.u.settings[ownerID]; ok {
		return s, nil
	}
	return schedule.DefaultSettings(ownerID), nil
}

func (r memReads) Agent(_ context.Context, id uuid.UUID) (*agent.Agent, error) {
	a, ok := r.u.agents[id]
	if !ok {
		return nil, notFound("agent not found")
	}
	return a, nil
}

type memAppointments struct{ u *memUoW }

func (r memAppointments) LockOwner(_ context.Context, ownerID uuid.UUID) error {
	r.u.lockedOwners = append(r.u.lockedOwners, ownerID)
	return nil
}

func (r memAppointments) HasOverlap(_ context.Context, ownerID uuid.UUID, iv appointment.Interval, exclude *uuid.UUID) (bool, error) {
	for _, a := range r.u.appointments {
		if a.OwnerID() != ownerID || !a.Status().IsActive() {
			continue
		}
		if exclude != nil && a.ID() == *exclude {
			continue
		}
		if a.Interval().Overlaps(iv) {
			return true, nil
		}
	}
	return false, nil
}

func (r memAppointments) Create(_ context.Context, a *appointment.Appointment) error {
	if r.u.failCreate != nil {
		return r.u.failCreate
	}
	r.u.appointments[a.ID()] = a
	return nil
}

func (r memAppointments) Update(_ context.Context, a *appointment.Appointment) error {
	if _, ok := r.u.appointments[a.ID()]; !ok {
		return notFound("appointment not found")
	}
	r.u.appointments[a.ID()] = a
	return nil
}

// FindByID hands out a copy so failed transactions leave the stored row untouched.
func (r memAppointments) FindByID(_ context.Context, ownerID, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := r.u.appointments[id]
	if !ok || a.OwnerID() != ownerID {
		return nil, notFound("appointment not found")
	}
	return cloneAppointment(a), nil
}

func cloneAppointment(a *appointment.Appointment) *appointment.Appointment {
	d, at := a.Details(), a.Attendee()
	return appointment.Reconstruct(appointment.ReconstructParams{
		ID:            a.ID(),
		OwnerID:       a.OwnerID(),
		Interval:      a.Interval(),
		Status:        a.Status(),
		Details:       appointment.RestoreDetails(d.Title(), d.Description(), d.Location(), d.Timezone()),
		Attendee:      appointment.RestoreAttendee(at.Name(), at.Email(), at.Phone()),
		Source:        a.Source(),
		AgentID:       a.AgentID(),
		SendReminders: a.SendReminders(),
		ReminderSent:  a.ReminderSent(),
		Metadata:      maps.Clone(a.Metadata()),
		LastAction:    a.LastAction(),
		CancelledAt:   a.CancelledAt(),
		RescheduledAt: a.RescheduledAt(),
		CreatedAt:     a.CreatedAt(),
		UpdatedAt:     a.UpdatedAt(),
	})
}

func (r memAppointments) FindByIDForUpdate(ctx context.Context, ownerID, id uuid.UUID) (*appointment.Appointment, error) {
	return r.FindByID(ctx, ownerID, id)
}

func (r memAppointments) MarkReminderSent(_ context.Context, ownerID, id uuid.UUID) (bool, error) {
	a, ok := r.u.appointments[id]
	if !ok || a.OwnerID() != ownerID || a.ReminderSent() {
		return false, nil
	}
	a.MarkReminderSent(time.Now())
	return true, nil
}

type memBlocked struct{ u *memUoW }

func (r memBlocked) Create(_ context.Context, b *schedule.BlockedPeriod) error {
	r.u.blocked[b.ID()] = b
	return nil
}

func (r memBlocked) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	b, ok := r.u.blocked[id]
	if !ok || b.OwnerID() != ownerID {
		return notFound("blocked period not found")
	}
	delete(r.u.blocked, id)
	return nil
}

func (r memBlocked) HasOverlap(_ context.Context, ownerID uuid.UUID, iv appointment.Interval) (bool, error) {
	for _, b := range r.u.blocked {
		if b.OwnerID() == ownerID && b.Interval().Overlaps(iv) {
			return true, nil
		}
	}
	return false, nil
}

type memSettings struct{ u *memUoW }

func (r memSettings) Save(_ context.Context, s *schedule.Settings) (*schedule.Settings, error) {
	r.u.settings[s.OwnerID()] = s
	return s, nil
}

type memIdempotency struct{ u *memUoW }

func idemKey(ownerID uuid.UUID, key string) string { return ownerID.String() + "/" + key }

func (r memIdempotency) Lock(_ context.Context, ownerID uuid.UUID, key, endpoint, requestHash string, expiresAt time.Time) (*shared.IdempotencyRecord, error) {
	k := idemKey(ownerID, key)
	if rec, ok := r.u.idempotency[k]; ok {
		cp := *rec
		return &cp, nil
	}
	rec := &shared.IdempotencyRecord{
		Key:         key,
		OwnerID:     ownerID,
		Endpoint:    endpoint,
		Status:      shared.IdempotencyProcessing,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	r.u.idempotency[k] = rec
	cp := *rec
	return &cp, nil
}

func (r memIdempotency) Complete(_ context.Context, ownerID uuid.UUID, key string, appointmentID uuid.UUID) error {
	rec, ok := r.u.idempotency[idemKey(ownerID, key)]
	if !ok {
		return notFound("idempotency key not found")
	}
	done := *rec
	done.Status = shared.IdempotencyCompleted
	done.ResultAppointmentID = &appointmentID
	r.u.idempotency[idemKey(ownerID, key)] = &done
	return nil
}

type memOutbox struct{ u *memUoW }

func (r memOutbox) Insert(_ context.Context, msg shared.OutboxMessage) error {
	r.u.outbox = append(r.u.outbox, msg)
	return nil
}

type memAgents struct{ u *memUoW }

func (r memAgents) Create(_ context.Context, a *agent.Agent) error {
	r.u.agents[a.ID()] = a
	return nil
}

func (r memAgents) UpdateToken(_ context.Context, a *agent.Agent) error {
	if _, ok := r.u.agents[a.ID()]; !ok {
		return notFound("agent not found")
	}
	r.u.agents[a.ID()] = a
	return nil
}

type memIntegrations struct{ u *memUoW }

func (r memIntegrations) Upsert(_ context.Context, i *integration.Integration) (*integration.Integration, error) {
	k := i.OwnerID().String() + "/" + i.Provider().String()
	if prev, ok := r.u.integrations[k]; ok {
		merged := integration.Reconstruct(prev.ID(), i.OwnerID(), i.Provider(), i.Status(), i.AuthCode(), prev.LastSyncAt(), prev.CreatedAt(), i.UpdatedAt())
		r.u.integrations[k] = merged
		return merged, nil
	}
	r.u.integrations[k] = i
	return i, nil
}

type recordingScheduler struct {
	mu        sync.Mutex
	scheduled []uuid.UUID
	err       error
}

func (s *recordingScheduler) Schedule(_ context.Context, a *appointment.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.scheduled = append(s.scheduled, a.ID())
	return nil
}

func (s *recordingScheduler) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scheduled)
}

type memStateStore struct {
	mu     sync.Mutex
	states map[string]OAuthState
}

func newMemStateStore() *memStateStore {
	return &memStateStore{states: map[string]OAuthState{}}
}

func (s *memStateStore) Issue(_ context.Context, state string, value OAuthState, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = value
	return nil
}

func (s *memStateStore) Consume(_ context.Context, state string) (*OAuthState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.states[state]
	if !ok {
		return nil, false, nil
	}
	delete(s.states, state)
	return &v, true, nil
}
