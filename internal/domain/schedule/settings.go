package schedule

import (
	"time"

	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/timeutil"

	"github.com/google/uuid"
)

const (
	DefaultSlotMinutes       = 30
	DefaultBufferMinutes     = 0
	DefaultMaxAdvanceDays    = 30
	DefaultMinAdvanceHours   = 24
	DefaultTimezone          = "UTC"
	MaxSlotMinutes           = 24 * 60
	MaxAdvanceDaysUpperLimit = 365
)

var (
	ErrInvalidSlotDuration = errs.Mark(errs.New("slot_duration_minutes must be between 1 and 1440"), errs.ErrDomainValidation)
	ErrInvalidBuffer       = errs.Mark(errs.New("buffer_time_minutes must not be negative"), errs.ErrDomainValidation)
	ErrInvalidMaxAdvance   = errs.Mark(errs.New("max_advance_booking_days must be between 0 and 365"), errs.ErrDomainValidation)
	ErrInvalidMinAdvance   = errs.Mark(errs.New("min_advance_booking_hours must not be negative"), errs.ErrDomainValidation)
)

// Settings is the per-owner calendar configuration. A stored row replaces
// the defaults as a whole; there is no field-level merge.
type Settings struct {
	ownerID         uuid.UUID
	hours           WeeklyHours
	slotMinutes     int
	bufferMinutes   int
	maxAdvanceDays  int
	minAdvanceHours int
	timezone        string
	location        *time.Location
	autoConfirm     bool
	createdAt       time.Time
	updatedAt       time.Time
}

type SettingsParams struct {
	OwnerID         uuid.UUID
	Hours           WeeklyHours
	SlotMinutes     int
	BufferMinutes   int
	MaxAdvanceDays  int
	MinAdvanceHours int
	Timezone        string
	AutoConfirm     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewSettings(p SettingsParams) (*Settings, error) {
	if p.SlotMinutes <= 0 || p.SlotMinutes > MaxSlotMinutes {
		return nil, ErrInvalidSlotDuration
	}
	if p.BufferMinutes < 0 {
		return nil, ErrInvalidBuffer
	}
	if p.MaxAdvanceDays < 0 || p.MaxAdvanceDays > MaxAdvanceDaysUpperLimit {
		return nil, ErrInvalidMaxAdvance
	}
	if p.MinAdvanceHours < 0 {
		return nil, ErrInvalidMinAdvance
	}
	if p.Timezone == "" {
		p.Timezone = DefaultTimezone
	}
	loc, err := timeutil.LoadLocation(p.Timezone)
	if err != nil {
		return nil, err
	}
	return &Settings{
		ownerID:         p.OwnerID,
		hours:           p.Hours,
		slotMinutes:     p.SlotMinutes,
		bufferMinutes:   p.BufferMinutes,
		maxAdvanceDays:  p.MaxAdvanceDays,
		minAdvanceHours: p.MinAdvanceHours,
		timezone:        p.Timezone,
		location:        loc,
		autoConfirm:     p.AutoConfirm,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}, nil
}

// DefaultSettings applies when an owner has never saved settings.
func DefaultSettings(ownerID uuid.UUID) *Settings {
	return &Settings{
		ownerID:         ownerID,
		hours:           DefaultWeeklyHours(),
		slotMinutes:     DefaultSlotMinutes,
		bufferMinutes:   DefaultBufferMinutes,
		maxAdvanceDays:  DefaultMaxAdvanceDays,
		minAdvanceHours: DefaultMinAdvanceHours,
		timezone:        DefaultTimezone,
		location:        time.UTC,
	}
}

func (s *Settings) OwnerID() uuid.UUID          { return s.ownerID }
func (s *Settings) Hours() WeeklyHours          { return s.hours }
func (s *Settings) SlotMinutes() int            { return s.slotMinutes }
func (s *Settings) BufferMinutes() int          { return s.bufferMinutes }
func (s *Settings) MaxAdvanceDays() int         { return s.maxAdvanceDays }
func (s *Settings) MinAdvanceHours() int        { return s.minAdvanceHours }
func (s *Settings) Timezone() string            { return s.timezone }
func (s *Settings) Location() *time.Location    { return s.location }
func (s *Settings) AutoConfirm() bool           { return s.autoConfirm }
func (s *Settings) CreatedAt() time.Time        { return s.createdAt }
func (s *Settings) UpdatedAt() time.Time        { return s.updatedAt }
func (s *Settings) IsDefault() bool             { return s.createdAt.IsZero() }
func (s *Settings) SlotDuration() time.Duration { return time.Duration(s.slotMinutes) * time.Minute }
func (s *Settings) Buffer() time.Duration       { return time.Duration(s.bufferMinutes) * time.Minute }
func (s *Settings) MinAdvance() time.Duration   { return time.Duration(s.minAdvanceHours) * time.Hour }

// LastBookableDate is the last local calendar date that may hold a slot.
func (s *Settings) LastBookableDate(now time.Time) time.Time {
	today := timeutil.StartOfDay(now, s.location)
	return today.AddDate(0, 0, s.maxAdvanceDays)
}
