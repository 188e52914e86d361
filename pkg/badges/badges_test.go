package badges

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineAt(t time.Time) *Engine {
	e := NewEngine()
	e.SetClock(func() time.Time { return t })
	return e
}

func TestFirstTaskUnlock(t *testing.T) {
	now := time.Date(2026, 7, 1, 12, 0, 0, 0, time.Local)
	e := engineAt(now)

	b := e.CheckUnlock(Context{TasksCompleted: 1})
	require.NotNil(t, b)
	assert.Equal(t, "first-blood", b.ID)
	assert.Equal(t, "First Blood", b.Name)
	require.NotNil(t, b.UnlockedAt)
	assert.True(t, b.UnlockedAt.Equal(now))
}

func TestUnlockIsMonotonic(t *testing.T) {
	e := engineAt(time.Now())

	first := e.CheckUnlock(Context{TasksCompleted: 1})
	require.NotNil(t, first)

	again := e.CheckUnlock(Context{TasksCompleted: 1})
	assert.Nil(t, again, "an unlocked badge is never returned twice")
}

func TestOnlyFirstMatchUnlocksPerCall(t *testing.T) {
	e := engineAt(time.Now())

	// A 7-day streak satisfies both on-fire and unstoppable, but a
	// single call only unlocks the earlier catalog entry.
	b := e.CheckUnlock(Context{CurrentStreak: 7})
	require.NotNil(t, b)
	assert.Equal(t, "on-fire", b.ID)

	b = e.CheckUnlock(Context{CurrentStreak: 7})
	require.NotNil(t, b)
	assert.Equal(t, "unstoppable", b.ID)

	assert.Nil(t, e.CheckUnlock(Context{CurrentStreak: 7}))
}

func TestZeroContextUnlocksNothing(t *testing.T) {
	e := engineAt(time.Now())
	assert.Nil(t, e.CheckUnlock(Context{}))
}

func TestPredicates(t *testing.T) {
	for _, tc := range []struct {
		id  string
		ctx Context
	}{
		{"legend", Context{CurrentStreak: 30}},
		{"centurion", Context{TasksCompleted: 100}},
		{"time-lord", Context{DailyPomodoros: 10}},
		{"sniper", Context{CompletedUnderEstimate: true}},
	} {
		t.Run(tc.id, func(t *testing.T) {
			e := engineAt(time.Now())
			// Drain earlier catalog entries the context also satisfies.
			var got *Badge
			for b := e.CheckUnlock(tc.ctx); b != nil; b = e.CheckUnlock(tc.ctx) {
				got = b
			}
			require.NotNil(t, got)
			assert.Equal(t, tc.id, got.ID)
		})
	}
}

func TestMergeUnlocked(t *testing.T) {
	at := time.Date(2026, 6, 1, 9, 0, 0, 0, time.Local)
	saved := []Badge{
		{ID: "on-fire", Name: "Stale Name", UnlockedAt: &at},
		{ID: "retired-badge", UnlockedAt: &at},
		{ID: "sniper"}, // locked, carries nothing
	}

	e := NewEngine()
	e.MergeUnlocked(saved)

	all := e.Badges()
	assert.Len(t, all, 7, "catalog membership is authoritative")

	unlocked := e.Unlocked()
	require.Len(t, unlocked, 1)
	assert.Equal(t, "on-fire", unlocked[0].ID)
	assert.Equal(t, "On Fire", unlocked[0].Name, "display metadata comes from the catalog")
	assert.True(t, unlocked[0].UnlockedAt.Equal(at), "unlock timestamp comes from the save")
}

func TestMergeUnlockedEmptySave(t *testing.T) {
	e := NewEngine()
	e.MergeUnlocked(nil)
	assert.Len(t, e.Badges(), 7)
	assert.Empty(t, e.Unlocked())
}

func TestReset(t *testing.T) {
	e := engineAt(time.Now())
	require.NotNil(t, e.CheckUnlock(Context{TasksCompleted: 1}))
	e.Reset()
	assert.Empty(t, e.Unlocked())
	// Unlockable again after the reset.
	assert.NotNil(t, e.CheckUnlock(Context{TasksCompleted: 1}))
}
