package appointment

import (
	"fmt"
	"time"

	"appointment-engine/internal/pkg/errs"
)

// Interval is a half-open [start, end) span of absolute time, held in UTC.
type Interval struct {
	start time.Time
	end   time.Time
}

func NewInterval(start, end time.Time) (Interval, error) {
	if start.IsZero() || end.IsZero() {
		return Interval{}, errs.Mark(errs.New("interval bounds must be set"), errs.ErrInvalidTimeRange)
	}
	if !start.Before(end) {
		return Interval{}, errs.Mark(
			errs.Newf("start %s must be before end %s", start.Format(time.RFC3339), end.Format(time.RFC3339)),
			errs.ErrInvalidTimeRange,
		)
	}
	return Interval{start: start.UTC(), end: end.UTC()}, nil
}

// NewIntervalFor is NewInterval(start, start+d).
func NewIntervalFor(start time.Time, d time.Duration) (Interval, error) {
	if d <= 0 {
		return Interval{}, errs.Mark(errs.Newf("duration %s must be positive", d), errs.ErrInvalidTimeRange)
	}
	return NewInterval(start, start.Add(d))
}

// MustInterval panics on invalid input. Test and fixture use only.
func MustInterval(start, end time.Time) Interval {
	iv, err := NewInterval(start, end)
	if err != nil {
		panic(err)
	}
	return iv
}

func (i Interval) Start() time.Time        { return i.start }
func (i Interval) End() time.Time          { return i.end }
func (i Interval) Duration() time.Duration { return i.end.Sub(i.start) }
func (i Interval) IsZero() bool            { return i.start.IsZero() && i.end.IsZero() }

// Overlaps is false for intervals that only touch at a boundary.
func (i Interval) Overlaps(o Interval) bool {
	return i.start.Before(o.end) && o.start.Before(i.end)
}

func (i Interval) Contains(o Interval) bool {
	return !o.start.Before(i.start) && !o.end.After(i.end)
}

func (i Interval) Equal(o Interval) bool {
	return i.start.Equal(o.start) && i.end.Equal(o.end)
}

func (i Interval) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", i.start.Format(time.RFC3339Nano), i.end.Format(time.RFC3339Nano))
}

func (i Interval) String() string {
	return i.ToTstzrange()
}
