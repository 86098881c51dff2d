package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, min int) time.Time {
	return time.Date(2026, time.April, 6, hour, min, 0, 0, time.UTC)
}

func booked(startH, startM, endH, endM int, status Status) BookedSlot {
	return BookedSlot{
		Slot: Slot{
			StartsAt: at(startH, startM),
			EndsAt:   at(endH, endM),
		},
		Status: status,
	}
}

func TestHasConflict(t *testing.T) {
	tests := []struct {
		name      string
		existing  []BookedSlot
		candidate Slot
		expected  bool
	}{
		{
			name:      "back-to-back does not conflict",
			existing:  []BookedSlot{booked(10, 0, 11, 0, StatusReserved)},
			candidate: Slot{StartsAt: at(11, 0), EndsAt: at(12, 0)},
			expected:  false,
		},
		{
			name:      "back-to-back before does not conflict",
			existing:  []BookedSlot{booked(10, 0, 11, 0, StatusReserved)},
			candidate: Slot{StartsAt: at(9, 0), EndsAt: at(10, 0)},
			expected:  false,
		},
		{
			name:      "partial overlap conflicts",
			existing:  []BookedSlot{booked(10, 0, 11, 0, StatusReserved)},
			candidate: Slot{StartsAt: at(10, 30), EndsAt: at(11, 30)},
			expected:  true,
		},
		{
			name:      "candidate fully inside conflicts",
			existing:  []BookedSlot{booked(10, 0, 12, 0, StatusReserved)},
			candidate: Slot{StartsAt: at(10, 30), EndsAt: at(11, 0)},
			expected:  true,
		},
		{
			name:      "candidate fully covering conflicts",
			existing:  []BookedSlot{booked(10, 30, 11, 0, StatusReserved)},
			candidate: Slot{StartsAt: at(10, 0), EndsAt: at(12, 0)},
			expected:  true,
		},
		{
			name:      "cancelled reservation frees the slot",
			existing:  []BookedSlot{booked(10, 0, 11, 0, StatusCancelled)},
			candidate: Slot{StartsAt: at(10, 0), EndsAt: at(11, 0)},
			expected:  false,
		},
		{
			name:      "completed reservation still occupies the slot",
			existing:  []BookedSlot{booked(10, 0, 11, 0, StatusCompleted)},
			candidate: Slot{StartsAt: at(10, 30), EndsAt: at(11, 30)},
			expected:  true,
		},
		{
			name: "one conflicting slot among many is enough",
			existing: []BookedSlot{
				booked(9, 0, 9, 30, StatusReserved),
				booked(10, 0, 11, 0, StatusCancelled),
				booked(14, 0, 15, 0, StatusReserved),
			},
			candidate: Slot{StartsAt: at(14, 30), EndsAt: at(15, 30)},
			expected:  true,
		},
		{
			name:      "no existing reservations",
			existing:  nil,
			candidate: Slot{StartsAt: at(10, 0), EndsAt: at(11, 0)},
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HasConflict(tt.existing, tt.candidate))
		})
	}
}

func TestSlot_Overlaps_Symmetric(t *testing.T) {
	a := Slot{StartsAt: at(10, 0), EndsAt: at(11, 0)}
	b := Slot{StartsAt: at(10, 30), EndsAt: at(11, 30)}

	assert.True(t, a.Overlaps(b))
	assert.True(t, b.Overlaps(a))
}
