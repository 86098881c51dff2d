package reservation

import (
	"fmt"
	"time"

	"github.com/salonlink/salon-scheduler/internal/httperr"
)

// ClockMinutes is a wall-clock time of day as minutes since midnight.
// The model is day-relative on purpose: windows that span midnight cannot
// be expressed and are rejected at parse/validate time.
type ClockMinutes int

// ParseClock parses a strict "HH:MM" string (00:00 .. 23:59).
func ParseClock(s string) (ClockMinutes, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, httperr.ErrBusiness("invalid_time_format")
	}

	hh, ok1 := twoDigits(s[0], s[1])
	mm, ok2 := twoDigits(s[3], s[4])
	if !ok1 || !ok2 || hh > 23 || mm > 59 {
		return 0, httperr.ErrBusiness("invalid_time_format")
	}

	return ClockMinutes(hh*60 + mm), nil
}

func twoDigits(a, b byte) (int, bool) {
	if a < '0' || a > '9' || b < '0' || b > '9' {
		return 0, false
	}
	return int(a-'0')*10 + int(b-'0'), true
}

// ClockOf projects an instant onto its minute of day, in the instant's
// own location.
func ClockOf(t time.Time) ClockMinutes {
	return ClockMinutes(t.Hour()*60 + t.Minute())
}

// At anchors the clock value on a calendar day, keeping the day's location.
func (m ClockMinutes) At(day time.Time) time.Time {
	return time.Date(
		day.Year(), day.Month(), day.Day(),
		int(m)/60, int(m)%60, 0, 0,
		day.Location(),
	)
}

func (m ClockMinutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}
