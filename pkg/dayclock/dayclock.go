// Package dayclock provides calendar-day arithmetic for streak and
// recurrence logic. A Day identifies a calendar day in the local
// timezone; all day-boundary decisions in the engine go through this
// package so that "today", "yesterday" and "consecutive" mean the same
// thing everywhere.
package dayclock

import (
	"fmt"
	"time"
)

// dayLayout is the canonical encoding of a Day.
const dayLayout = "2006-01-02"

// Day identifies a calendar day. The zero value is "no day".
// Days compare with == and order lexically, which matches
// chronological order for the YYYY-MM-DD encoding.
type Day string

// DayOf returns the Day containing t, in t's location.
func DayOf(t time.Time) Day {
	return Day(t.Format(dayLayout))
}

// Today returns the Day containing the given instant. It exists so
// callers with an injected clock read naturally.
func Today(now time.Time) Day {
	return DayOf(now)
}

// IsZero reports whether d is the "no day" value.
func (d Day) IsZero() bool {
	return d == ""
}

// Time returns midnight (local) of the day, or the zero time if the
// day is malformed.
func (d Day) Time() time.Time {
	t, err := time.ParseInLocation(dayLayout, string(d), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Next returns the calendar day after d.
func (d Day) Next() Day {
	return DayOf(d.Time().AddDate(0, 0, 1))
}

// Prev returns the calendar day before d.
func (d Day) Prev() Day {
	return DayOf(d.Time().AddDate(0, 0, -1))
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	return d < other
}

// IsConsecutive reports whether b is exactly one calendar day after a.
// DST transitions are handled by date arithmetic, not 24h offsets.
func IsConsecutive(a, b Day) bool {
	if a.IsZero() || b.IsZero() {
		return false
	}
	return a.Next() == b
}

// FormatElapsed renders a second count as MM:SS, or H:MM:SS once the
// duration reaches an hour.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatRelative renders a timestamp relative to now: clock time for
// today, "Yesterday", otherwise a short date.
func FormatRelative(t, now time.Time) string {
	switch DayOf(t) {
	case DayOf(now):
		return t.Format("15:04")
	case DayOf(now).Prev():
		return "Yesterday"
	default:
		return t.Format("Jan 2")
	}
}
