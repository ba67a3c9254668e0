package schedule

import (
	"iter"

	"appointment-engine/internal/domain/appointment"
)

// Availability generates the grid for q and resolves it against the owner's
// active appointments and blocked periods.
func Availability(s *Settings, q SlotQuery, booked, blocked []appointment.Interval) (iter.Seq[AvailabilitySlot], error) {
	grid, err := Slots(s, q)
	if err != nil {
		return nil, err
	}
	return Resolve(grid, booked, blocked), nil
}
