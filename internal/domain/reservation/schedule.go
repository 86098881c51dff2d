package reservation

import (
	"time"

	"github.com/salonlink/salon-scheduler/internal/httperr"
)

// ===============================
// Weekdays
// ===============================

// WeekdaySet is a bitmask over time.Weekday (Sunday = bit 0).
type WeekdaySet uint8

func Weekdays(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s |= 1 << uint(d)
	}
	return s
}

func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// ContainsAll reports whether every day in req is also in s. A schedule
// open seven days satisfies a one-day request; equality is not required.
func (s WeekdaySet) ContainsAll(req WeekdaySet) bool {
	return req&^s == 0
}

func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// ===============================
// Window
// ===============================

// Window is a same-day working window. Start must be strictly before End.
type Window struct {
	Start ClockMinutes
	End   ClockMinutes
}

func (w Window) Validate() error {
	if w.Start >= w.End {
		return httperr.ErrBusiness("invalid_schedule_window")
	}
	return nil
}

// Contains reports whether [start, end] lies entirely inside the window.
// Boundaries are inclusive: a visit ending exactly at closing time is
// valid, and a zero-length request on the boundary is valid. A request
// with end < start (it would cross midnight) is never contained; it is
// rejected outright rather than clipped or split.
func (w Window) Contains(start, end ClockMinutes) bool {
	if end < start {
		return false
	}
	return w.Start <= start && end <= w.End
}

// ===============================
// Schedule
// ===============================

// Schedule is a recurring weekly availability: one window plus the days
// it applies to.
type Schedule struct {
	Window Window
	Days   WeekdaySet
}

func (s Schedule) Validate() error {
	if err := s.Window.Validate(); err != nil {
		return err
	}
	if s.Days.IsEmpty() {
		return httperr.ErrBusiness("empty_working_days")
	}
	return nil
}

// Covers reports whether the requested days and time range both fit the
// schedule: days must be a subset of the working days, and the time range
// must lie entirely inside the window.
func (s Schedule) Covers(days WeekdaySet, start, end ClockMinutes) bool {
	if !s.Days.ContainsAll(days) {
		return false
	}
	return s.Window.Contains(start, end)
}

// CoversOn is the single-day form used on the booking path.
func (s Schedule) CoversOn(day time.Weekday, start, end ClockMinutes) bool {
	return s.Covers(Weekdays(day), start, end)
}
