// Package scoring computes points for completed tasks and accumulates
// lifetime and per-day totals.
package scoring

import (
	"math"
	"time"

	"github.com/stefanpenner/tally/pkg/dayclock"
	"github.com/stefanpenner/tally/pkg/tasks"
)

// Scoring constants. Finishing instantly approaches a 3x early bonus
// on top of the priority weight; finishing at the estimate earns no
// bonus at all.
const (
	BasePoints = 10
	EarlyBonus = 2.0
)

// Multiplier returns the scoring weight for a priority. Unknown values
// weigh the same as low.
func Multiplier(p tasks.Priority) int {
	switch p {
	case tasks.PriorityHigh:
		return 3
	case tasks.PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Points computes the score for a completion. estimatedMinutes <= 0
// means no estimate, which disables the early bonus entirely; actual
// time at or over the estimate earns no bonus and no penalty.
func Points(estimatedMinutes, actualSeconds int, priority tasks.Priority) int {
	points := float64(BasePoints * Multiplier(priority))

	if estimatedMinutes > 0 {
		estimatedSeconds := estimatedMinutes * 60
		if actualSeconds < estimatedSeconds {
			ratio := float64(actualSeconds) / float64(estimatedSeconds)
			points *= 1 + (1-ratio)*EarlyBonus
		}
	}

	return int(math.Round(points))
}

// UnderEstimate reports whether a completion beat its estimate. Tasks
// without an estimate never qualify.
func UnderEstimate(estimatedMinutes, actualSeconds int) bool {
	return estimatedMinutes > 0 && actualSeconds < estimatedMinutes*60
}

// Ledger accumulates earned points: a lifetime total, a daily total
// that resets when a new calendar day is first observed, and a counter
// of under-estimate completions feeding the sniper badge.
type Ledger struct {
	now func() time.Time

	total          int
	daily          int
	dailyDay       dayclock.Day
	underEstimates int
}

// NewLedger creates an empty ledger using the wall clock.
func NewLedger() *Ledger {
	return &Ledger{now: time.Now}
}

// SetClock overrides the ledger's notion of "now". Tests only.
func (l *Ledger) SetClock(now func() time.Time) {
	l.now = now
}

// Add credits points to the lifetime and daily totals.
func (l *Ledger) Add(points int, wasUnderEstimate bool) {
	l.rollover()
	l.total += points
	l.daily += points
	if wasUnderEstimate {
		l.underEstimates++
	}
}

// Total returns the lifetime point total.
func (l *Ledger) Total() int {
	return l.total
}

// Daily returns today's point total.
func (l *Ledger) Daily() int {
	l.rollover()
	return l.daily
}

// UnderEstimates returns the lifetime count of tasks completed under
// their estimate.
func (l *Ledger) UnderEstimates() int {
	return l.underEstimates
}

// Snapshot is the persisted form of the ledger. The daily total is
// stamped with its day so a load on a later day discards it.
type Snapshot struct {
	TotalPoints    int          `json:"totalPoints"`
	DailyPoints    int          `json:"dailyPoints"`
	DailyDate      dayclock.Day `json:"dailyDate"`
	UnderEstimates int          `json:"tasksUnderEstimate"`
}

// Snapshot returns the persistable state.
func (l *Ledger) Snapshot() Snapshot {
	l.rollover()
	return Snapshot{
		TotalPoints:    l.total,
		DailyPoints:    l.daily,
		DailyDate:      l.dailyDay,
		UnderEstimates: l.underEstimates,
	}
}

// Restore replaces the ledger from a persisted snapshot. A daily total
// stamped with a previous day is dropped.
func (l *Ledger) Restore(s Snapshot) {
	l.total = s.TotalPoints
	l.underEstimates = s.UnderEstimates
	l.dailyDay = dayclock.Today(l.now())
	if s.DailyDate == l.dailyDay {
		l.daily = s.DailyPoints
	} else {
		l.daily = 0
	}
}

// Reset clears the ledger to zero.
func (l *Ledger) Reset() {
	l.total = 0
	l.daily = 0
	l.dailyDay = ""
	l.underEstimates = 0
}

func (l *Ledger) rollover() {
	today := dayclock.Today(l.now())
	if l.dailyDay != today {
		l.dailyDay = today
		l.daily = 0
	}
}
