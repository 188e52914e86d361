// Package tasks owns the task list and recurring-task templates: CRUD,
// manual ordering, daily materialization of templates, and the
// completion queries the streak logic depends on.
package tasks

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/stefanpenner/tally/pkg/dayclock"
)

// RetentionWindow is how long completed tasks are kept before Prune
// removes them.
const RetentionWindow = 7 * 24 * time.Hour

// Registry holds the task list and recurring templates. The tasks
// slice is kept sorted by Order, which is dense 0..n-1 across the
// whole list (completed tasks included).
type Registry struct {
	now   func() time.Time
	newID func() string

	tasks     []Task
	recurring []RecurringTask
}

// NewRegistry creates an empty registry using the wall clock.
func NewRegistry() *Registry {
	return &Registry{
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// SetClock overrides the registry's notion of "now". Tests only.
func (r *Registry) SetClock(now func() time.Time) {
	r.now = now
}

// Add appends a new incomplete task at the end of the list.
// estimatedMinutes <= 0 means no estimate. Input sanity (non-empty
// title, positive estimate) is the caller's responsibility.
func (r *Registry) Add(title string, priority Priority, estimatedMinutes int) Task {
	t := Task{
		ID:               r.newID(),
		Title:            title,
		Priority:         priority,
		Order:            len(r.tasks),
		EstimatedMinutes: estimatedMinutes,
		CreatedAt:        r.now(),
	}
	r.tasks = append(r.tasks, t)
	return t
}

// Get returns a copy of the task, or nil if the id is unknown.
func (r *Registry) Get(id string) *Task {
	if i := r.index(id); i >= 0 {
		t := r.tasks[i]
		return &t
	}
	return nil
}

// Update merges the patch onto the task and returns the result, or nil
// if the id is unknown. No cross-field consistency is enforced.
func (r *Registry) Update(id string, patch TaskPatch) *Task {
	i := r.index(id)
	if i < 0 {
		return nil
	}
	t := &r.tasks[i]
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Notes != nil {
		t.Notes = *patch.Notes
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.EstimatedMinutes != nil {
		t.EstimatedMinutes = *patch.EstimatedMinutes
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	if patch.CompletedAt != nil {
		t.CompletedAt = patch.CompletedAt
	}
	if patch.ElapsedSeconds != nil {
		t.ElapsedSeconds = *patch.ElapsedSeconds
	}
	if patch.PointsEarned != nil {
		t.PointsEarned = *patch.PointsEarned
	}
	out := *t
	return &out
}

// Delete removes the task. No-op on unknown ids.
func (r *Registry) Delete(id string) {
	i := r.index(id)
	if i < 0 {
		return
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
}

// Complete marks the task complete, records its tracked time and
// earned points, and returns the updated task by value. Returns nil on
// unknown ids; the caller treats that as "vanished, award nothing".
func (r *Registry) Complete(id string, elapsedSeconds, points int) *Task {
	i := r.index(id)
	if i < 0 {
		return nil
	}
	t := &r.tasks[i]
	now := r.now()
	t.Completed = true
	t.CompletedAt = &now
	t.ElapsedSeconds = elapsedSeconds
	t.ActualMinutes = (elapsedSeconds + 59) / 60
	t.PointsEarned = points
	out := *t
	return &out
}

// Reorder moves the element at from to position to and renumbers Order
// densely over the entire list. Out-of-range indices are no-ops.
func (r *Registry) Reorder(from, to int) {
	n := len(r.tasks)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return
	}
	moved := r.tasks[from]
	rest := append(append([]Task{}, r.tasks[:from]...), r.tasks[from+1:]...)
	r.tasks = append(append(append([]Task{}, rest[:to]...), moved), rest[to:]...)
	for i := range r.tasks {
		r.tasks[i].Order = i
	}
}

// ReorderIncomplete moves an incomplete task from one position to
// another, where both positions count incomplete tasks only, in list
// order. This is the index space a UI that hides completed tasks works
// in; completed tasks keep their relative slots. Out-of-range indices
// are no-ops.
func (r *Registry) ReorderIncomplete(from, to int) {
	var idx []int
	for i := range r.tasks {
		if !r.tasks[i].Completed {
			idx = append(idx, i)
		}
	}
	if from < 0 || from >= len(idx) || to < 0 || to >= len(idx) || from == to {
		return
	}
	r.Reorder(idx[from], idx[to])
}

// AddRecurring creates an active recurring template.
func (r *Registry) AddRecurring(title string, priority Priority, freq Frequency, estimatedMinutes int, dayOfWeek time.Weekday) RecurringTask {
	rt := RecurringTask{
		ID:               r.newID(),
		Title:            title,
		Priority:         priority,
		EstimatedMinutes: estimatedMinutes,
		Frequency:        freq,
		DayOfWeek:        dayOfWeek,
		IsActive:         true,
	}
	r.recurring = append(r.recurring, rt)
	return rt
}

// UpdateRecurring merges the patch onto a template. Returns nil on
// unknown ids.
func (r *Registry) UpdateRecurring(id string, patch RecurringPatch) *RecurringTask {
	i := r.recurringIndex(id)
	if i < 0 {
		return nil
	}
	rt := &r.recurring[i]
	if patch.Title != nil {
		rt.Title = *patch.Title
	}
	if patch.Priority != nil {
		rt.Priority = *patch.Priority
	}
	if patch.EstimatedMinutes != nil {
		rt.EstimatedMinutes = *patch.EstimatedMinutes
	}
	if patch.Frequency != nil {
		rt.Frequency = *patch.Frequency
	}
	if patch.DayOfWeek != nil {
		rt.DayOfWeek = *patch.DayOfWeek
	}
	if patch.IsActive != nil {
		rt.IsActive = *patch.IsActive
	}
	out := *rt
	return &out
}

// DeleteRecurring removes a template. Tasks already spawned from it
// are untouched. No-op on unknown ids.
func (r *Registry) DeleteRecurring(id string) {
	i := r.recurringIndex(id)
	if i < 0 {
		return
	}
	r.recurring = append(r.recurring[:i], r.recurring[i+1:]...)
}

// ToggleRecurring flips a template's active flag. Returns the new
// state, or nil on unknown ids.
func (r *Registry) ToggleRecurring(id string) *RecurringTask {
	i := r.recurringIndex(id)
	if i < 0 {
		return nil
	}
	r.recurring[i].IsActive = !r.recurring[i].IsActive
	out := r.recurring[i]
	return &out
}

// Materialize spawns today's tasks from active templates: daily
// templates always, weekly templates only on their configured weekday,
// and never twice for the same (template, day). Returns the newly
// created tasks.
func (r *Registry) Materialize() []Task {
	now := r.now()
	today := dayclock.Today(now)
	weekday := now.Weekday()

	var created []Task
	for i := range r.recurring {
		rt := &r.recurring[i]
		if !rt.IsActive || rt.LastGenerated == today {
			continue
		}
		if rt.Frequency == FrequencyWeekly && rt.DayOfWeek != weekday {
			continue
		}
		if r.spawnedToday(rt.ID, today) {
			continue
		}
		t := Task{
			ID:               r.newID(),
			Title:            rt.Title,
			Priority:         rt.Priority,
			Order:            len(r.tasks),
			EstimatedMinutes: rt.EstimatedMinutes,
			CreatedAt:        now,
			IsRecurring:      true,
			RecurringID:      rt.ID,
		}
		r.tasks = append(r.tasks, t)
		rt.LastGenerated = today
		created = append(created, t)
	}
	return created
}

func (r *Registry) spawnedToday(templateID string, today dayclock.Day) bool {
	for i := range r.tasks {
		t := &r.tasks[i]
		if t.RecurringID == templateID && t.CreatedOn() == today {
			return true
		}
	}
	return false
}

// Incomplete returns the incomplete tasks in display order.
func (r *Registry) Incomplete() []Task {
	var out []Task
	for _, t := range r.tasks {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// CompletedToday returns tasks whose completion falls on today's
// calendar day.
func (r *Registry) CompletedToday() []Task {
	today := dayclock.Today(r.now())
	var out []Task
	for _, t := range r.tasks {
		if t.Completed && t.CompletedOn() == today {
			out = append(out, t)
		}
	}
	return out
}

// todays returns "today's tasks": tasks created today plus any
// still-incomplete task regardless of creation day. An old incomplete
// task therefore keeps blocking AllComplete until it is finished or
// deleted.
func (r *Registry) todays() []Task {
	today := dayclock.Today(r.now())
	var out []Task
	for _, t := range r.tasks {
		if t.CreatedOn() == today || !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// AllComplete reports whether today's task set is non-empty and fully
// completed. An empty set is not "all complete" — a day with zero
// tasks must not bank a streak.
func (r *Registry) AllComplete() bool {
	todays := r.todays()
	if len(todays) == 0 {
		return false
	}
	for _, t := range todays {
		if !t.Completed {
			return false
		}
	}
	return true
}

// WeeklyStats returns the trailing 7 calendar days, oldest first and
// ending with today, with completion counts split by priority and by
// recurring vs. ad-hoc origin.
func (r *Registry) WeeklyStats() []DayStats {
	now := r.now()

	byDay := make(map[dayclock.Day]*DayStats, 7)
	stats := make([]DayStats, 7)
	for i := 0; i < 7; i++ {
		d := now.AddDate(0, 0, i-6)
		stats[i] = DayStats{
			Date:    dayclock.DayOf(d),
			DayName: d.Format("Mon"),
		}
	}
	for i := range stats {
		byDay[stats[i].Date] = &stats[i]
	}

	for i := range r.tasks {
		t := &r.tasks[i]
		if !t.Completed {
			continue
		}
		ds, ok := byDay[t.CompletedOn()]
		if !ok {
			continue
		}
		ds.Count++
		if t.IsRecurring {
			ds.Recurring.add(t.Priority)
		} else {
			ds.Regular.add(t.Priority)
		}
	}
	return stats
}

// Prune drops completed tasks whose completion (or creation, if the
// timestamp is missing) is older than the retention window. Returns
// whether anything was removed so the caller can decide to persist.
func (r *Registry) Prune(retention time.Duration) bool {
	cutoff := r.now().Add(-retention)
	kept := r.tasks[:0]
	for _, t := range r.tasks {
		if t.Completed {
			ref := t.CreatedAt
			if t.CompletedAt != nil {
				ref = *t.CompletedAt
			}
			if ref.Before(cutoff) {
				continue
			}
		}
		kept = append(kept, t)
	}
	pruned := len(kept) != len(r.tasks)
	r.tasks = kept
	if pruned {
		for i := range r.tasks {
			r.tasks[i].Order = i
		}
	}
	return pruned
}

// Tasks returns a copy of the full task list in display order.
func (r *Registry) Tasks() []Task {
	out := make([]Task, len(r.tasks))
	copy(out, r.tasks)
	return out
}

// Recurring returns a copy of the recurring templates.
func (r *Registry) Recurring() []RecurringTask {
	out := make([]RecurringTask, len(r.recurring))
	copy(out, r.recurring)
	return out
}

// Restore replaces the registry contents from persisted snapshots,
// re-sorting by Order so display order survives any on-disk shuffle.
func (r *Registry) Restore(tasks []Task, recurring []RecurringTask) {
	r.tasks = append([]Task(nil), tasks...)
	sort.SliceStable(r.tasks, func(i, j int) bool {
		return r.tasks[i].Order < r.tasks[j].Order
	})
	for i := range r.tasks {
		r.tasks[i].Order = i
	}
	r.recurring = append([]RecurringTask(nil), recurring...)
}

func (r *Registry) index(id string) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (r *Registry) recurringIndex(id string) int {
	for i := range r.recurring {
		if r.recurring[i].ID == id {
			return i
		}
	}
	return -1
}
