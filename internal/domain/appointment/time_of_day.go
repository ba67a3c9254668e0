package appointment

import (
	"fmt"
	"time"

	"appointment-engine/internal/pkg/errs"
)

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, errs.Mark(errs.Newf("invalid time of day %02d:%02d", hour, minute), errs.ErrInvalidTimeRange)
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS" (seconds are dropped).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}, nil
		}
	}
	return TimeOfDay{}, errs.Mark(errs.Newf("invalid time of day %q", s), errs.ErrInvalidTimeRange)
}

func MustTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int               { return t.minutes / 60 }
func (t TimeOfDay) Minute() int             { return t.minutes % 60 }
func (t TimeOfDay) Minutes() int            { return t.minutes }
func (t TimeOfDay) Before(o TimeOfDay) bool { return t.minutes < o.minutes }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On places t on the calendar date of day, interpreted in loc.
func (t TimeOfDay) On(day time.Time, loc *time.Location) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

// IntervalOn converts a local date and wall-clock window into an absolute interval.
// Nonexistent wall times inside a DST gap are normalized by time.Date.
func IntervalOn(day time.Time, loc *time.Location, from, to TimeOfDay) (Interval, error) {
	if loc == nil {
		loc = time.UTC
	}
	return NewInterval(from.On(day, loc), to.On(day, loc))
}
