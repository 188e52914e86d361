package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry(t *testing.T, at time.Time) *Registry {
	t.Helper()
	r := NewRegistry()
	r.SetClock(func() time.Time { return at })
	return r
}

func titles(ts []Task) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Title
	}
	return out
}

func TestAddAssignsDenseOrder(t *testing.T) {
	r := testRegistry(t, time.Now())

	a := r.Add("A", PriorityHigh, 30)
	b := r.Add("B", PriorityLow, 0)

	assert.Equal(t, 0, a.Order)
	assert.Equal(t, 1, b.Order)
	assert.False(t, a.Completed)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestUpdatePatch(t *testing.T) {
	r := testRegistry(t, time.Now())
	task := r.Add("draft", PriorityLow, 0)

	title := "final"
	prio := PriorityHigh
	got := r.Update(task.ID, TaskPatch{Title: &title, Priority: &prio})
	require.NotNil(t, got)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, PriorityHigh, got.Priority)
	assert.Equal(t, 0, got.Order) // untouched

	assert.Nil(t, r.Update("missing", TaskPatch{Title: &title}))
}

func TestDeleteIdempotent(t *testing.T) {
	r := testRegistry(t, time.Now())
	task := r.Add("X", PriorityMedium, 0)

	r.Delete(task.ID)
	assert.Nil(t, r.Get(task.ID))

	// Second delete and unknown ids are safe no-ops.
	r.Delete(task.ID)
	r.Delete("nope")
}

func TestCompleteRoundTrip(t *testing.T) {
	now := time.Date(2026, 4, 2, 10, 0, 0, 0, time.Local)
	r := testRegistry(t, now)
	task := r.Add("X", PriorityHigh, 30)

	got := r.Complete(task.ID, 900, 75)
	require.NotNil(t, got)
	assert.True(t, got.Completed)
	require.NotNil(t, got.CompletedAt)
	assert.Equal(t, now, *got.CompletedAt)
	assert.Equal(t, 900, got.ElapsedSeconds)
	assert.Equal(t, 15, got.ActualMinutes) // 900s rounds up to 15m exactly
	assert.Equal(t, 75, got.PointsEarned)
}

func TestCompleteRoundsMinutesUp(t *testing.T) {
	r := testRegistry(t, time.Now())
	task := r.Add("X", PriorityLow, 0)

	got := r.Complete(task.ID, 61, 10)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.ActualMinutes)
}

func TestCompleteUnknownReturnsNil(t *testing.T) {
	r := testRegistry(t, time.Now())
	assert.Nil(t, r.Complete("gone", 60, 10))
}

func TestReorder(t *testing.T) {
	r := testRegistry(t, time.Now())
	r.Add("A", PriorityLow, 0)
	r.Add("B", PriorityLow, 0)
	r.Add("C", PriorityLow, 0)

	r.Reorder(0, 2)

	got := r.Tasks()
	assert.Equal(t, []string{"B", "C", "A"}, titles(got))
	for i, task := range got {
		assert.Equal(t, i, task.Order)
	}
}

func TestReorderOutOfRange(t *testing.T) {
	r := testRegistry(t, time.Now())
	r.Add("A", PriorityLow, 0)

	r.Reorder(0, 5)
	r.Reorder(-1, 0)
	assert.Equal(t, []string{"A"}, titles(r.Tasks()))
}

func TestReorderIncompleteSkipsCompleted(t *testing.T) {
	r := testRegistry(t, time.Now())
	a := r.Add("A", PriorityLow, 0)
	r.Add("B", PriorityLow, 0)
	r.Add("C", PriorityLow, 0)
	r.Complete(a.ID, 0, 10)

	// A completed task ahead of the selection must not absorb the move:
	// position 0 among incomplete tasks is B, not A.
	r.ReorderIncomplete(0, 1)

	assert.Equal(t, []string{"C", "B"}, titles(r.Incomplete()))
	got := r.Tasks()
	for i, task := range got {
		assert.Equal(t, i, task.Order)
	}
}

func TestReorderIncompleteOutOfRange(t *testing.T) {
	r := testRegistry(t, time.Now())
	a := r.Add("A", PriorityLow, 0)
	r.Add("B", PriorityLow, 0)
	r.Complete(a.ID, 0, 10)

	// Only one incomplete task: every move is out of range.
	r.ReorderIncomplete(0, 1)
	r.ReorderIncomplete(1, 0)
	assert.Equal(t, []string{"B"}, titles(r.Incomplete()))
}

func TestMaterializeDaily(t *testing.T) {
	now := time.Date(2026, 4, 2, 8, 0, 0, 0, time.Local)
	r := testRegistry(t, now)
	tmpl := r.AddRecurring("standup", PriorityMedium, FrequencyDaily, 15, 0)

	created := r.Materialize()
	require.Len(t, created, 1)
	assert.Equal(t, "standup", created[0].Title)
	assert.True(t, created[0].IsRecurring)
	assert.Equal(t, tmpl.ID, created[0].RecurringID)

	// Same day again: lastGenerated guard holds.
	assert.Empty(t, r.Materialize())

	// Next day spawns a fresh instance.
	r.SetClock(func() time.Time { return now.AddDate(0, 0, 1) })
	assert.Len(t, r.Materialize(), 1)
}

func TestMaterializeWeekly(t *testing.T) {
	// 2026-04-02 is a Thursday.
	now := time.Date(2026, 4, 2, 8, 0, 0, 0, time.Local)
	require.Equal(t, time.Thursday, now.Weekday())

	r := testRegistry(t, now)
	r.AddRecurring("review", PriorityHigh, FrequencyWeekly, 60, time.Friday)
	assert.Empty(t, r.Materialize())

	r.SetClock(func() time.Time { return now.AddDate(0, 0, 1) }) // Friday
	assert.Len(t, r.Materialize(), 1)
}

func TestMaterializeSkipsInactive(t *testing.T) {
	r := testRegistry(t, time.Now())
	tmpl := r.AddRecurring("gym", PriorityLow, FrequencyDaily, 0, 0)
	r.ToggleRecurring(tmpl.ID)

	assert.Empty(t, r.Materialize())

	r.ToggleRecurring(tmpl.ID)
	assert.Len(t, r.Materialize(), 1)
}

func TestMaterializeDuplicateGuardSurvivesRestore(t *testing.T) {
	now := time.Date(2026, 4, 2, 8, 0, 0, 0, time.Local)
	r := testRegistry(t, now)
	r.AddRecurring("standup", PriorityMedium, FrequencyDaily, 0, 0)
	require.Len(t, r.Materialize(), 1)

	// Simulate a reload where lastGenerated was lost but the spawned
	// task survived: the existing-task check still prevents a twin.
	recurring := r.Recurring()
	recurring[0].LastGenerated = ""
	r.Restore(r.Tasks(), recurring)
	assert.Empty(t, r.Materialize())
}

func TestAllComplete(t *testing.T) {
	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.Local)
	r := testRegistry(t, now)

	// Zero tasks is not "all complete".
	assert.False(t, r.AllComplete())

	a := r.Add("A", PriorityLow, 0)
	b := r.Add("B", PriorityLow, 0)
	r.Complete(a.ID, 0, 10)
	assert.False(t, r.AllComplete())

	r.Complete(b.ID, 0, 10)
	assert.True(t, r.AllComplete())
}

func TestAllCompleteBlockedByOldIncomplete(t *testing.T) {
	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.Local)
	r := testRegistry(t, start)
	old := r.Add("lingering", PriorityLow, 0)

	r.SetClock(func() time.Time { return start.AddDate(0, 0, 1) })
	fresh := r.Add("today", PriorityLow, 0)
	r.Complete(fresh.ID, 0, 10)

	// Yesterday's unfinished task still counts against today.
	assert.False(t, r.AllComplete())

	r.Complete(old.ID, 0, 10)
	assert.True(t, r.AllComplete())
}

func TestCompletedToday(t *testing.T) {
	yesterday := time.Date(2026, 4, 1, 20, 0, 0, 0, time.Local)
	r := testRegistry(t, yesterday)
	a := r.Add("A", PriorityLow, 0)
	r.Complete(a.ID, 0, 10)

	today := yesterday.AddDate(0, 0, 1)
	r.SetClock(func() time.Time { return today })
	b := r.Add("B", PriorityLow, 0)
	r.Complete(b.ID, 0, 10)

	got := r.CompletedToday()
	require.Len(t, got, 1)
	assert.Equal(t, "B", got[0].Title)
}

func TestWeeklyStats(t *testing.T) {
	now := time.Date(2026, 4, 8, 12, 0, 0, 0, time.Local)
	r := testRegistry(t, now)

	// Two days ago: one high-priority ad-hoc completion.
	r.SetClock(func() time.Time { return now.AddDate(0, 0, -2) })
	a := r.Add("old", PriorityHigh, 0)
	r.Complete(a.ID, 0, 30)

	// Today: one recurring low-priority completion.
	r.SetClock(func() time.Time { return now })
	r.AddRecurring("daily", PriorityLow, FrequencyDaily, 0, 0)
	created := r.Materialize()
	require.Len(t, created, 1)
	r.Complete(created[0].ID, 0, 10)

	stats := r.WeeklyStats()
	require.Len(t, stats, 7)

	// Oldest first, today last.
	assert.Equal(t, "2026-04-02", string(stats[0].Date))
	assert.Equal(t, "2026-04-08", string(stats[6].Date))

	assert.Equal(t, 1, stats[4].Count)
	assert.Equal(t, 1, stats[4].Regular.High)
	assert.Equal(t, 1, stats[6].Count)
	assert.Equal(t, 1, stats[6].Recurring.Low)
}

func TestPrune(t *testing.T) {
	old := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	r := testRegistry(t, old)
	stale := r.Add("stale", PriorityLow, 0)
	r.Complete(stale.ID, 0, 10)
	keepIncomplete := r.Add("still open", PriorityLow, 0)

	now := old.AddDate(0, 0, 30)
	r.SetClock(func() time.Time { return now })
	fresh := r.Add("fresh", PriorityLow, 0)
	r.Complete(fresh.ID, 0, 10)

	assert.True(t, r.Prune(RetentionWindow))

	got := r.Tasks()
	assert.Equal(t, []string{"still open", "fresh"}, titles(got))
	assert.NotNil(t, r.Get(keepIncomplete.ID)) // incomplete tasks never expire

	// Nothing left to prune.
	assert.False(t, r.Prune(RetentionWindow))
}

func TestRestoreSortsByOrder(t *testing.T) {
	r := testRegistry(t, time.Now())
	r.Restore([]Task{
		{ID: "b", Title: "B", Order: 5},
		{ID: "a", Title: "A", Order: 2},
	}, nil)

	got := r.Tasks()
	assert.Equal(t, []string{"A", "B"}, titles(got))
	assert.Equal(t, 0, got[0].Order)
	assert.Equal(t, 1, got[1].Order)
}
