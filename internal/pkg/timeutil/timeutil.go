// Package timeutil parses wire timestamps. Every instant leaving this package is UTC.
package timeutil

import (
	"strings"
	"time"

	"appointment-engine/internal/pkg/errs"
)

const DateLayout = "2006-01-02"

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseInstant accepts RFC3339 only. Timestamps without an offset are rejected
// instead of being guessed into some zone.
func ParseInstant(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, errs.Mark(errs.New("timestamp is empty"), errs.ErrInvalidTimeRange)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err == nil {
		return t.UTC(), nil
	}
	for _, layout := range naiveLayouts {
		if _, nerr := time.Parse(layout, s); nerr == nil {
			return time.Time{}, errs.Mark(
				errs.Newf("timestamp %q has no UTC offset", s), errs.ErrInvalidTimeRange)
		}
	}
	return time.Time{}, errs.Mark(errs.Wrapf(err, "malformed timestamp %q", s), errs.ErrInvalidTimeRange)
}

// ParseDate parses YYYY-MM-DD as a calendar date at midnight UTC.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, errs.Mark(errs.Wrapf(err, "malformed date %q", raw), errs.ErrInvalidTimeRange)
	}
	return d, nil
}

// LoadLocation resolves an IANA zone name. Empty means UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" || name == "UTC" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errs.Mark(errs.Wrapf(err, "unknown timezone %q", name), errs.ErrInvalidTimeRange)
	}
	return loc, nil
}

// StartOfDay returns local midnight of t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	l := t.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, loc)
}

// DayBounds returns [midnight, next midnight) of the calendar date d in loc, as UTC.
func DayBounds(d time.Time, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	end := time.Date(d.Year(), d.Month(), d.Day()+1, 0, 0, 0, 0, loc)
	return start.UTC(), end.UTC()
}
