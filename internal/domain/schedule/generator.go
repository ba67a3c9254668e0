package schedule

import (
	"iter"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/timeutil"
)

// SlotQuery describes one availability request. Zero Duration or a nil
// Buffer fall back to the owner's settings.
type SlotQuery struct {
	Range    appointment.Interval
	Duration time.Duration
	Buffer   *time.Duration
	Now      time.Time
}

var ErrInvalidQueryDuration = errs.Mark(errs.Newf("slot duration must be between 1 and %d minutes", MaxSlotMinutes), errs.ErrInvalidTimeRange)

// MaxQueryRange bounds how many days one availability query may span.
const MaxQueryRange = 62 * 24 * time.Hour

// Slots returns the candidate grid for q. The sequence is pure: ranging it
// again recomputes the same slots.
//
// Per local date the grid is anchored at the business-hours start and steps
// by duration+buffer. A slot is kept only when it lies fully inside both the
// window and q.Range and starts no earlier than now+min_advance. Dates after
// today+max_advance_days and closed days yield nothing.
func Slots(s *Settings, q SlotQuery) (iter.Seq[appointment.Interval], error) {
	if q.Range.IsZero() {
		return nil, errs.Mark(errs.New("availability range is required"), errs.ErrInvalidTimeRange)
	}
	if q.Range.Duration() > MaxQueryRange {
		return nil, errs.Mark(errs.Newf("availability range exceeds %s", MaxQueryRange), errs.ErrInvalidTimeRange)
	}
	duration := q.Duration
	if duration == 0 {
		duration = s.SlotDuration()
	}
	if duration < time.Minute || duration > MaxSlotMinutes*time.Minute {
		return nil, ErrInvalidQueryDuration
	}
	buffer := s.Buffer()
	if q.Buffer != nil {
		if *q.Buffer < 0 {
			return nil, ErrInvalidBuffer
		}
		buffer = *q.Buffer
	}

	loc := s.Location()
	step := duration + buffer
	earliest := q.Now.Add(s.MinAdvance())
	lastDate := s.LastBookableDate(q.Now)
	firstDate := timeutil.StartOfDay(q.Range.Start(), loc)
	// End is exclusive, so the final date is the one holding the last instant.
	finalDate := timeutil.StartOfDay(q.Range.End().Add(-time.Nanosecond), loc)

	return func(yield func(appointment.Interval) bool) {
		for day := firstDate; !day.After(finalDate); day = day.AddDate(0, 0, 1) {
			if day.After(lastDate) {
				return
			}
			window, open := s.Hours().WindowOn(day, loc)
			if !open {
				continue
			}
			for start := window.Start(); !start.Add(duration).After(window.End()); start = start.Add(step) {
				end := start.Add(duration)
				if end.After(q.Range.End()) {
					return
				}
				if start.Before(q.Range.Start()) || start.Before(earliest) {
					continue
				}
				if !yield(appointment.MustInterval(start, end)) {
					return
				}
			}
		}
	}, nil
}
