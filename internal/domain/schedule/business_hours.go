package schedule

import (
	"slices"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/pkg/errs"
)

// Weekday counts from Monday: 0 = Monday ... 6 = Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

type DayHours struct {
	Day       Weekday
	Start     appointment.TimeOfDay
	End       appointment.TimeOfDay
	Available bool
}

// WeeklyHours holds at most one entry per weekday, ordered Monday first.
type WeeklyHours struct {
	days []DayHours
}

var (
	ErrInvalidWeekday   = errs.Mark(errs.New("day_of_week must be between 0 (Monday) and 6 (Sunday)"), errs.ErrDomainValidation)
	ErrDuplicateWeekday = errs.Mark(errs.New("business hours contain a weekday twice"), errs.ErrDomainValidation)
	ErrInvalidDayWindow = errs.Mark(errs.New("business hours start must be before end"), errs.ErrDomainValidation)
)

func NewWeeklyHours(days []DayHours) (WeeklyHours, error) {
	seen := make(map[Weekday]struct{}, len(days))
	for _, d := range days {
		if !d.Day.IsValid() {
			return WeeklyHours{}, ErrInvalidWeekday
		}
		if _, dup := seen[d.Day]; dup {
			return WeeklyHours{}, ErrDuplicateWeekday
		}
		seen[d.Day] = struct{}{}
		if d.Available && !d.Start.Before(d.End) {
			return WeeklyHours{}, ErrInvalidDayWindow
		}
	}
	sorted := slices.Clone(days)
	slices.SortFunc(sorted, func(a, b DayHours) int { return int(a.Day) - int(b.Day) })
	return WeeklyHours{days: sorted}, nil
}

// DefaultWeeklyHours opens every weekday 09:00-17:00.
func DefaultWeeklyHours() WeeklyHours {
	start := appointment.MustTimeOfDay("09:00")
	end := appointment.MustTimeOfDay("17:00")
	days := make([]DayHours, 0, 7)
	for d := Monday; d <= Sunday; d++ {
		days = append(days, DayHours{Day: d, Start: start, End: end, Available: true})
	}
	return WeeklyHours{days: days}
}

// For returns the entry of the weekday. Absent entries mean closed.
func (w WeeklyHours) For(d Weekday) (DayHours, bool) {
	for _, h := range w.days {
		if h.Day == d {
			return h, h.Available
		}
	}
	return DayHours{Day: d}, false
}

func (w WeeklyHours) Days() []DayHours {
	return slices.Clone(w.days)
}

// WindowOn returns the business-hours interval of the local calendar date day.
func (w WeeklyHours) WindowOn(day time.Time, loc *time.Location) (appointment.Interval, bool) {
	h, open := w.For(WeekdayOf(day))
	if !open {
		return appointment.Interval{}, false
	}
	iv, err := appointment.IntervalOn(day, loc, h.Start, h.End)
	if err != nil {
		return appointment.Interval{}, false
	}
	return iv, true
}
