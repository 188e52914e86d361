package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stefanpenner/tally/pkg/dayclock"
)

func trackerAt(t time.Time, s Snapshot) *Tracker {
	tr := NewTracker()
	tr.SetClock(func() time.Time { return t })
	tr.Restore(s)
	return tr
}

func TestFirstCompletion(t *testing.T) {
	now := time.Date(2026, 6, 10, 20, 0, 0, 0, time.Local)
	tr := trackerAt(now, Snapshot{})

	streak, updated := tr.CheckAndUpdate(true)
	assert.True(t, updated)
	assert.Equal(t, 1, streak)
	assert.Equal(t, 1, tr.Longest())
}

func TestContinuesFromYesterday(t *testing.T) {
	now := time.Date(2026, 6, 10, 20, 0, 0, 0, time.Local)
	tr := trackerAt(now, Snapshot{
		CurrentStreak: 5,
		LongestStreak: 5,
		LastCompleted: dayclock.Day("2026-06-09"),
	})

	streak, updated := tr.CheckAndUpdate(true)
	assert.True(t, updated)
	assert.Equal(t, 6, streak)
	assert.Equal(t, 6, tr.Longest())
	assert.Equal(t, dayclock.Day("2026-06-10"), tr.Snapshot().LastCompleted)
}

func TestGapResetsToOne(t *testing.T) {
	now := time.Date(2026, 6, 10, 20, 0, 0, 0, time.Local)
	tr := trackerAt(now, Snapshot{
		CurrentStreak: 10,
		LongestStreak: 10,
		LastCompleted: dayclock.Day("2026-06-08"),
	})

	streak, _ := tr.CheckAndUpdate(true)
	assert.Equal(t, 1, streak)
	assert.Equal(t, 10, tr.Longest(), "longest survives the reset")
}

func TestIdempotentWithinADay(t *testing.T) {
	now := time.Date(2026, 6, 10, 20, 0, 0, 0, time.Local)
	tr := trackerAt(now, Snapshot{
		CurrentStreak: 5,
		LongestStreak: 5,
		LastCompleted: dayclock.Day("2026-06-09"),
	})

	first, updated := tr.CheckAndUpdate(true)
	assert.True(t, updated)
	second, updated := tr.CheckAndUpdate(true)
	assert.False(t, updated)
	assert.Equal(t, first, second)
	assert.Equal(t, 6, tr.Current())
}

func TestNoOpWhenIncomplete(t *testing.T) {
	now := time.Date(2026, 6, 10, 20, 0, 0, 0, time.Local)
	tr := trackerAt(now, Snapshot{CurrentStreak: 3, LongestStreak: 3, LastCompleted: dayclock.Day("2026-06-09")})

	streak, updated := tr.CheckAndUpdate(false)
	assert.False(t, updated)
	assert.Equal(t, 3, streak)
}

func TestStatusProjection(t *testing.T) {
	now := time.Date(2026, 6, 10, 20, 0, 0, 0, time.Local)

	t.Run("completed today", func(t *testing.T) {
		tr := trackerAt(now, Snapshot{CurrentStreak: 4, LongestStreak: 4, LastCompleted: dayclock.Day("2026-06-10")})
		s := tr.Status()
		assert.True(t, s.IsCompletedToday)
		assert.False(t, s.IsPending)
		assert.True(t, s.IsActive)
		assert.Equal(t, 4, s.PotentialStreak)
	})

	t.Run("pending from yesterday", func(t *testing.T) {
		tr := trackerAt(now, Snapshot{CurrentStreak: 4, LongestStreak: 4, LastCompleted: dayclock.Day("2026-06-09")})
		s := tr.Status()
		assert.False(t, s.IsCompletedToday)
		assert.True(t, s.IsPending)
		assert.True(t, s.IsActive)
		assert.Equal(t, 5, s.PotentialStreak)
	})

	t.Run("broken", func(t *testing.T) {
		tr := trackerAt(now, Snapshot{CurrentStreak: 4, LongestStreak: 4, LastCompleted: dayclock.Day("2026-06-01")})
		s := tr.Status()
		assert.False(t, s.IsActive)
		assert.Equal(t, 1, s.PotentialStreak)
	})
}

func TestRepairOnLoad(t *testing.T) {
	now := time.Date(2026, 6, 10, 9, 0, 0, 0, time.Local)

	stale := trackerAt(now, Snapshot{CurrentStreak: 7, LongestStreak: 7, LastCompleted: dayclock.Day("2026-06-05")})
	assert.True(t, stale.RepairOnLoad())
	assert.Equal(t, 0, stale.Current())
	assert.Equal(t, 7, stale.Longest())

	alive := trackerAt(now, Snapshot{CurrentStreak: 7, LongestStreak: 7, LastCompleted: dayclock.Day("2026-06-09")})
	assert.False(t, alive.RepairOnLoad())
	assert.Equal(t, 7, alive.Current())

	fresh := trackerAt(now, Snapshot{})
	assert.False(t, fresh.RepairOnLoad())
}

func TestIncrementCompleted(t *testing.T) {
	tr := NewTracker()
	assert.Equal(t, 1, tr.IncrementCompleted())
	assert.Equal(t, 2, tr.IncrementCompleted())
	assert.Equal(t, 2, tr.TotalCompleted())
}

func TestReset(t *testing.T) {
	now := time.Date(2026, 6, 10, 9, 0, 0, 0, time.Local)
	tr := trackerAt(now, Snapshot{CurrentStreak: 3, LongestStreak: 9, LastCompleted: dayclock.Day("2026-06-10"), TotalCompleted: 40})
	tr.Reset()
	assert.Zero(t, tr.Current())
	assert.Zero(t, tr.Longest())
	assert.Zero(t, tr.TotalCompleted())
	assert.True(t, tr.Snapshot().LastCompleted.IsZero())
}
