package schedule

import (
	"fmt"
	"time"

	"appointment-engine/internal/domain/appointment"
	"appointment-engine/internal/pkg/errs"
	"appointment-engine/internal/pkg/timeutil"
)

// ConstraintViolation carries the reason a requested interval can never be
// booked under the current settings, independent of other appointments.
type ConstraintViolation struct {
	Reason Reason
	Detail string
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Detail)
}

func newViolation(reason Reason, format string, args ...any) error {
	return errs.Mark(&ConstraintViolation{Reason: reason, Detail: fmt.Sprintf(format, args...)}, errs.ErrConstraintViolation)
}

// AsViolation extracts the violation from a wrapped error.
func AsViolation(err error) (*ConstraintViolation, bool) {
	var cv *ConstraintViolation
	if errs.As(err, &cv) {
		return cv, true
	}
	return nil, false
}

type Policy struct {
	settings *Settings
}

func NewPolicy(s *Settings) Policy {
	return Policy{settings: s}
}

// Check applies the advance window and business hours to a booking request.
func (p Policy) Check(iv appointment.Interval, now time.Time) error {
	s := p.settings
	loc := s.Location()

	if earliest := now.Add(s.MinAdvance()); iv.Start().Before(earliest) {
		return newViolation(ReasonTooSoon, "appointments need %d hours notice", s.MinAdvanceHours())
	}

	day := timeutil.StartOfDay(iv.Start(), loc)
	if day.After(s.LastBookableDate(now)) {
		return newViolation(ReasonTooFar, "appointments can be booked at most %d days ahead", s.MaxAdvanceDays())
	}

	window, open := s.Hours().WindowOn(day, loc)
	if !open {
		return newViolation(ReasonOutsideHours, "%s is not a working day", day.Weekday())
	}
	if !window.Contains(iv) {
		h, _ := s.Hours().For(WeekdayOf(day))
		return newViolation(ReasonOutsideHours, "business hours are %s-%s %s", h.Start, h.End, s.Timezone())
	}
	return nil
}
