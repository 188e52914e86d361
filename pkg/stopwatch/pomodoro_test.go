package stopwatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stefanpenner/tally/pkg/dayclock"
)

func TestPomodoroRecord(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 7, 3, 9, 0, 0, 0, time.Local)}
	l := NewPomodoroLog()
	l.SetClock(clock.now)

	assert.Equal(t, 1, l.Record(PomodoroSeconds))
	assert.Equal(t, 1, l.Record(PomodoroSeconds-1), "short sessions don't count")
	assert.Equal(t, 2, l.Record(40*60))
	assert.Equal(t, 2, l.Count())
}

func TestPomodoroDailyRollover(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 7, 3, 23, 50, 0, 0, time.Local)}
	l := NewPomodoroLog()
	l.SetClock(clock.now)

	l.Record(30 * 60)
	assert.Equal(t, 1, l.Count())

	clock.advance(20 * time.Minute) // past midnight
	assert.Equal(t, 0, l.Count())
	assert.Equal(t, 1, l.Record(30*60))
}

func TestPomodoroSnapshotRestore(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 7, 3, 9, 0, 0, 0, time.Local)}
	l := NewPomodoroLog()
	l.SetClock(clock.now)
	l.Record(30 * 60)

	snap := l.Snapshot()
	assert.Equal(t, dayclock.Day("2026-07-03"), snap.Date)
	assert.Equal(t, 1, snap.Count)

	sameDay := NewPomodoroLog()
	sameDay.SetClock(clock.now)
	sameDay.Restore(snap)
	assert.Equal(t, 1, sameDay.Count())

	nextDay := NewPomodoroLog()
	nextDay.SetClock(func() time.Time { return clock.t.AddDate(0, 0, 1) })
	nextDay.Restore(snap)
	assert.Equal(t, 0, nextDay.Count())
}
