package stopwatch

import (
	"time"

	"github.com/stefanpenner/tally/pkg/dayclock"
)

// PomodoroSeconds is the minimum session length that counts as one
// pomodoro, matching the classic 25-minute work interval.
const PomodoroSeconds = 25 * 60

// PomodoroLog counts qualifying focus sessions per calendar day. The
// count feeds an achievement and a daily stat; it resets silently the
// first time it is touched on a new day.
type PomodoroLog struct {
	now   func() time.Time
	day   dayclock.Day
	count int
}

// NewPomodoroLog returns an empty log.
func NewPomodoroLog() *PomodoroLog {
	return &PomodoroLog{now: time.Now}
}

// SetClock overrides the wall clock, for tests.
func (l *PomodoroLog) SetClock(now func() time.Time) {
	l.now = now
}

// Record counts a finished session when it ran long enough to qualify
// as a pomodoro. Returns the day's count after the session.
func (l *PomodoroLog) Record(elapsedSeconds int) int {
	l.rollover()
	if elapsedSeconds >= PomodoroSeconds {
		l.count++
	}
	return l.count
}

// Count returns the number of pomodoros finished today.
func (l *PomodoroLog) Count() int {
	l.rollover()
	return l.count
}

// PomodoroSnapshot is the persisted form of the log.
type PomodoroSnapshot struct {
	Date  dayclock.Day `json:"date"`
	Count int          `json:"dailyPomodorosCompleted"`
}

// Snapshot returns the persistable state.
func (l *PomodoroLog) Snapshot() PomodoroSnapshot {
	l.rollover()
	return PomodoroSnapshot{Date: l.day, Count: l.count}
}

// Restore replaces the log from a persisted snapshot. A count stamped
// with a previous day is dropped.
func (l *PomodoroLog) Restore(s PomodoroSnapshot) {
	l.day = dayclock.Today(l.now())
	if s.Date == l.day {
		l.count = s.Count
	} else {
		l.count = 0
	}
}

// Reset clears the log.
func (l *PomodoroLog) Reset() {
	l.day = ""
	l.count = 0
}

func (l *PomodoroLog) rollover() {
	today := dayclock.Today(l.now())
	if l.day != today {
		l.day = today
		l.count = 0
	}
}
