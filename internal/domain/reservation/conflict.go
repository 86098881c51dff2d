package reservation

import "time"

// Slot is a half-open booking interval [StartsAt, EndsAt): the start is
// occupied, the end is free. Back-to-back visits share a boundary without
// conflicting.
type Slot struct {
	StartsAt time.Time
	EndsAt   time.Time
}

func (s Slot) Overlaps(o Slot) bool {
	return s.StartsAt.Before(o.EndsAt) && o.StartsAt.Before(s.EndsAt)
}

// BookedSlot is a snapshot of a persisted reservation as seen by the
// conflict check.
type BookedSlot struct {
	Slot
	Status Status
}

// HasConflict reports whether the candidate overlaps any existing slot
// that still occupies its time. Cancelled reservations free their slot;
// reserved and completed ones keep it. Existential check: stops at the
// first hit, ordering of existing is irrelevant.
//
// The caller must run this check and the subsequent insert inside one
// transaction (or behind a DB exclusion constraint); two concurrent
// requests can otherwise both see a free slot.
func HasConflict(existing []BookedSlot, candidate Slot) bool {
	for _, b := range existing {
		if b.Status == StatusCancelled {
			continue
		}
		if b.Overlaps(candidate) {
			return true
		}
	}
	return false
}
