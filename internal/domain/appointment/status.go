package appointment

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusConfirmed   Status = "confirmed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
	StatusNoShow      Status = "no_show"
	StatusCompleted   Status = "completed"
)

var transitions = map[Status][]Status{
	StatusScheduled: {StatusConfirmed, StatusCancelled, StatusRescheduled, StatusNoShow, StatusCompleted},
	StatusConfirmed: {StatusCancelled, StatusRescheduled, StatusNoShow, StatusCompleted},
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCancelled, StatusRescheduled, StatusNoShow, StatusCompleted:
		return true
	default:
		return false
	}
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// IsActive reports whether the appointment still holds its interval.
func (s Status) IsActive() bool {
	return s != StatusCancelled
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

// IsResting reports whether s may be persisted as the current status.
// rescheduled is an audit annotation, never a resting state.
func (s Status) IsResting() bool {
	return s.IsValid() && s != StatusRescheduled
}

func (s Status) CanTransitionTo(to Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}
