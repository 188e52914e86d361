// Package streak tracks consecutive calendar days on which the full
// task list was completed.
package streak

import (
	"time"

	"github.com/stefanpenner/tally/pkg/dayclock"
)

// Tracker holds the day-over-day completion streak plus a lifetime
// completed-task counter. The counter is independent of the streak: it
// advances on every completion, while the streak advances at most once
// per day and only when the whole list is done.
type Tracker struct {
	now func() time.Time

	current        int
	longest        int
	lastCompleted  dayclock.Day
	totalCompleted int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{now: time.Now}
}

// SetClock overrides the wall clock, for tests.
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// CheckAndUpdate records today as a completed day when allComplete is
// true. A day already recorded is left alone, so calling this twice on
// the same day is harmless. A gap of two or more days starts a fresh
// streak at 1 rather than 0: the day just completed still counts.
// It returns the current streak and whether today was newly recorded.
func (t *Tracker) CheckAndUpdate(allComplete bool) (int, bool) {
	if !allComplete {
		return t.current, false
	}
	today := dayclock.Today(t.now())
	if t.lastCompleted == today {
		return t.current, false
	}
	if !t.lastCompleted.IsZero() && dayclock.IsConsecutive(t.lastCompleted, today) {
		t.current++
	} else {
		t.current = 1
	}
	if t.current > t.longest {
		t.longest = t.current
	}
	t.lastCompleted = today
	return t.current, true
}

// IncrementCompleted advances the lifetime completed-task counter.
func (t *Tracker) IncrementCompleted() int {
	t.totalCompleted++
	return t.totalCompleted
}

// Current returns the current streak length in days.
func (t *Tracker) Current() int {
	return t.current
}

// Longest returns the longest streak ever recorded.
func (t *Tracker) Longest() int {
	return t.longest
}

// TotalCompleted returns the lifetime number of completed tasks.
func (t *Tracker) TotalCompleted() int {
	return t.totalCompleted
}

// Status is a read-only projection of the streak for display.
type Status struct {
	Current          int  `json:"currentStreak"`
	Longest          int  `json:"longestStreak"`
	IsCompletedToday bool `json:"isCompletedToday"`
	IsPending        bool `json:"isPending"`
	IsActive         bool `json:"isActive"`
	PotentialStreak  int  `json:"potentialStreak"`
}

// Status reports where the streak stands right now. Pending means
// yesterday was banked but today is not yet, so the streak is alive
// but at risk. PotentialStreak is what the streak would become if
// today were completed this instant.
func (t *Tracker) Status() Status {
	today := dayclock.Today(t.now())
	yesterday := today.Prev()

	s := Status{
		Current:          t.current,
		Longest:          t.longest,
		IsCompletedToday: t.lastCompleted == today,
	}
	s.IsPending = t.lastCompleted == yesterday
	s.IsActive = s.IsCompletedToday || s.IsPending
	switch {
	case s.IsCompletedToday:
		s.PotentialStreak = t.current
	case s.IsPending:
		s.PotentialStreak = t.current + 1
	default:
		s.PotentialStreak = 1
	}
	return s
}

// RepairOnLoad zeroes a stale streak. A streak whose last completed
// day is neither today nor yesterday is already broken; this runs once
// at startup, before anything reads streak state, so the UI never
// shows a streak the user has in fact lost. Reports whether anything
// changed so the caller can persist the repair immediately.
func (t *Tracker) RepairOnLoad() bool {
	if t.lastCompleted.IsZero() || t.current == 0 {
		return false
	}
	today := dayclock.Today(t.now())
	if t.lastCompleted == today || t.lastCompleted == today.Prev() {
		return false
	}
	t.current = 0
	return true
}

// Snapshot is the persisted form of the tracker.
type Snapshot struct {
	CurrentStreak  int          `json:"currentStreak"`
	LongestStreak  int          `json:"longestStreak"`
	LastCompleted  dayclock.Day `json:"lastCompletedDate"`
	TotalCompleted int          `json:"totalTasksCompleted"`
}

// Snapshot returns the persistable state.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{
		CurrentStreak:  t.current,
		LongestStreak:  t.longest,
		LastCompleted:  t.lastCompleted,
		TotalCompleted: t.totalCompleted,
	}
}

// Restore replaces the tracker from a persisted snapshot.
func (t *Tracker) Restore(s Snapshot) {
	t.current = s.CurrentStreak
	t.longest = s.LongestStreak
	t.lastCompleted = s.LastCompleted
	t.totalCompleted = s.TotalCompleted
}

// Reset clears the tracker to zero.
func (t *Tracker) Reset() {
	t.current = 0
	t.longest = 0
	t.lastCompleted = ""
	t.totalCompleted = 0
}
