package schedule

import (
	"iter"
	"slices"

	"appointment-engine/internal/domain/appointment"
)

type Reason string

const (
	ReasonBooked       Reason = "booked"
	ReasonOutsideHours Reason = "outside_hours"
	ReasonTooSoon      Reason = "too_soon"
	ReasonTooFar       Reason = "too_far"
	ReasonBlocked      Reason = "blocked"
)

func (r Reason) String() string { return string(r) }

// AvailabilitySlot is derived per request and never stored.
type AvailabilitySlot struct {
	Interval  appointment.Interval
	Available bool
	Reason    Reason
}

// Resolve annotates a chronological slot sequence against the busy intervals.
// Both busy lists are sorted and coalesced once; each slot then advances a
// pointer per list, so a full pass is O(n+m). A slot that only touches a busy
// interval stays available. booked wins over blocked.
func Resolve(slots iter.Seq[appointment.Interval], booked, blocked []appointment.Interval) iter.Seq[AvailabilitySlot] {
	bookedBlocks := coalesce(booked)
	blockedBlocks := coalesce(blocked)

	return func(yield func(AvailabilitySlot) bool) {
		bi, ki := 0, 0
		for slot := range slots {
			out := AvailabilitySlot{Interval: slot, Available: true}
			switch {
			case hits(bookedBlocks, &bi, slot):
				out.Available, out.Reason = false, ReasonBooked
			case hits(blockedBlocks, &ki, slot):
				out.Available, out.Reason = false, ReasonBlocked
			}
			if !yield(out) {
				return
			}
		}
	}
}

// AvailableOnly filters a resolved sequence down to free slots.
func AvailableOnly(in iter.Seq[AvailabilitySlot]) iter.Seq[AvailabilitySlot] {
	return func(yield func(AvailabilitySlot) bool) {
		for s := range in {
			if s.Available && !yield(s) {
				return
			}
		}
	}
}

// hits skips blocks that end at or before the slot start, then tests the
// next one. Slots arrive in start order, so the pointer never moves back.
func hits(blocks []appointment.Interval, i *int, slot appointment.Interval) bool {
	for *i < len(blocks) && !blocks[*i].End().After(slot.Start()) {
		*i++
	}
	return *i < len(blocks) && blocks[*i].Overlaps(slot)
}

// coalesce sorts by start and merges overlapping intervals. Touching
// intervals are merged too; the half-open rule keeps the result identical.
func coalesce(in []appointment.Interval) []appointment.Interval {
	if len(in) == 0 {
		return nil
	}
	sorted := slices.Clone(in)
	slices.SortFunc(sorted, func(a, b appointment.Interval) int {
		return a.Start().Compare(b.Start())
	})

	out := make([]appointment.Interval, 0, len(sorted))
	cur := sorted[0]
	for _, iv := range sorted[1:] {
		if !iv.Start().After(cur.End()) {
			if iv.End().After(cur.End()) {
				cur = appointment.MustInterval(cur.Start(), iv.End())
			}
			continue
		}
		out = append(out, cur)
		cur = iv
	}
	return append(out, cur)
}
