package reservation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonlink/salon-scheduler/internal/httperr"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in       string
		expected ClockMinutes
		wantErr  bool
	}{
		{in: "00:00", expected: 0},
		{in: "09:00", expected: 540},
		{in: "09:30", expected: 570},
		{in: "23:59", expected: 1439},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "09:0", wantErr: true},
		{in: "09-00", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "+9:00", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, httperr.IsBusiness(err, "invalid_time_format"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseClock_Monotonic(t *testing.T) {
	// chronological order within a day maps to numeric order
	ordered := []string{"00:00", "00:01", "08:59", "09:00", "12:30", "18:00", "23:59"}

	var prev ClockMinutes = -1
	for _, s := range ordered {
		cur, err := ParseClock(s)
		require.NoError(t, err)
		assert.Greater(t, cur, prev, "expected %s to come after previous value", s)
		prev = cur
	}
}

func TestClockMinutes_At(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	day := time.Date(2026, time.March, 2, 15, 44, 59, 0, loc)

	m, err := ParseClock("09:30")
	require.NoError(t, err)

	anchored := m.At(day)
	assert.Equal(t, time.Date(2026, time.March, 2, 9, 30, 0, 0, loc), anchored)
	assert.Equal(t, m, ClockOf(anchored))
}

func TestClockMinutes_String(t *testing.T) {
	m, err := ParseClock("07:05")
	require.NoError(t, err)
	assert.Equal(t, "07:05", m.String())
}
