package app

import (
	"time"

	"github.com/stefanpenner/tally/pkg/badges"
	"github.com/stefanpenner/tally/pkg/logging"
	"github.com/stefanpenner/tally/pkg/stopwatch"
	"github.com/stefanpenner/tally/pkg/storage"
	"github.com/stefanpenner/tally/pkg/streak"
	"github.com/stefanpenner/tally/pkg/tasks"
)

// AddTask appends a new task to the bottom of the list.
func (a *App) AddTask(title string, priority tasks.Priority, estimatedMinutes int) tasks.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	t := a.registry.Add(title, priority, estimatedMinutes)
	a.markDirty(storage.KeyTasks)
	a.scheduleFlush()
	return t
}

// UpdateTask merges patch into the task. Nil on unknown id.
func (a *App) UpdateTask(id string, patch tasks.TaskPatch) *tasks.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	t := a.registry.Update(id, patch)
	if t != nil {
		a.markDirty(storage.KeyTasks)
		a.scheduleFlush()
	}
	return t
}

// DeleteTask removes the task. No-op on unknown id. A task being
// tracked by the stopwatch keeps its session running; completing or
// restarting the stopwatch resolves it.
func (a *App) DeleteTask(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.registry.Delete(id)
	a.markDirty(storage.KeyTasks)
	a.scheduleFlush()
}

// ReorderTasks moves an incomplete task from one position to another.
// Positions count incomplete tasks only, matching what task lists
// display.
func (a *App) ReorderTasks(from, to int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.registry.ReorderIncomplete(from, to)
	a.markDirty(storage.KeyTasks)
	a.scheduleFlush()
}

// AddRecurring creates a recurring template.
func (a *App) AddRecurring(title string, priority tasks.Priority, freq tasks.Frequency, estimatedMinutes int, dayOfWeek time.Weekday) tasks.RecurringTask {
	a.mu.Lock()
	defer a.mu.Unlock()
	rt := a.registry.AddRecurring(title, priority, freq, estimatedMinutes, dayOfWeek)
	a.markDirty(storage.KeyRecurringTasks)
	a.scheduleFlush()
	return rt
}

// UpdateRecurring merges patch into the template. Nil on unknown id.
func (a *App) UpdateRecurring(id string, patch tasks.RecurringPatch) *tasks.RecurringTask {
	a.mu.Lock()
	defer a.mu.Unlock()
	rt := a.registry.UpdateRecurring(id, patch)
	if rt != nil {
		a.markDirty(storage.KeyRecurringTasks)
		a.scheduleFlush()
	}
	return rt
}

// DeleteRecurring removes the template. Already-spawned tasks stay.
func (a *App) DeleteRecurring(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.registry.DeleteRecurring(id)
	a.markDirty(storage.KeyRecurringTasks)
	a.scheduleFlush()
}

// ToggleRecurring flips a template between active and paused.
func (a *App) ToggleRecurring(id string) *tasks.RecurringTask {
	a.mu.Lock()
	defer a.mu.Unlock()
	rt := a.registry.ToggleRecurring(id)
	if rt != nil {
		a.markDirty(storage.KeyRecurringTasks)
		a.scheduleFlush()
	}
	return rt
}

// StartStopwatch begins tracking taskID. If another session was
// active its elapsed time is banked onto that task rather than lost.
func (a *App) StartStopwatch(taskID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if interrupted := a.watch.Start(taskID); interrupted != nil {
		a.bankElapsed(interrupted.TaskID, interrupted.ElapsedSeconds)
	}
	logging.Debug("stopwatch", "tracking task %s", logging.Truncate(taskID, 8))
}

// PauseStopwatch freezes the running session.
func (a *App) PauseStopwatch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.watch.Pause()
}

// ResumeStopwatch continues a paused session.
func (a *App) ResumeStopwatch() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.watch.Resume()
}

// StopStopwatch ends the session, banks the elapsed time onto the
// task, and counts the session toward the daily pomodoro total. A
// badge earned by that count (if any) is returned for display.
func (a *App) StopStopwatch() (int, *badges.Badge) {
	a.mu.Lock()
	defer a.mu.Unlock()
	taskID := a.watch.ActiveTaskID()
	if taskID == "" {
		return 0, nil
	}
	elapsed := a.watch.Stop()
	unlocked := a.bankElapsed(taskID, elapsed)
	a.scheduleFlush()
	return elapsed, unlocked
}

// bankElapsed accumulates a finished session onto the task and records
// it in the pomodoro log. Callers hold a.mu.
func (a *App) bankElapsed(taskID string, elapsedSeconds int) *badges.Badge {
	if t := a.registry.Get(taskID); t != nil {
		total := t.ElapsedSeconds + elapsedSeconds
		a.registry.Update(taskID, tasks.TaskPatch{ElapsedSeconds: &total})
		a.markDirty(storage.KeyTasks)
	}
	count := a.pomodoros.Record(elapsedSeconds)
	a.markDirty(storage.KeyStopwatch)
	unlocked := a.badges.CheckUnlock(badges.Context{DailyPomodoros: count})
	if unlocked != nil {
		a.markDirty(storage.KeyStreak)
	}
	return unlocked
}

// Tick refreshes the running session's elapsed time from the wall
// clock. Safe to call at any rate, in any state.
func (a *App) Tick() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.watch.Tick()
}

// StopwatchStatus reports the session state for display.
func (a *App) StopwatchStatus() (stopwatch.Status, string, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.watch.Tick()
	return a.watch.Status(), a.watch.ActiveTaskID(), a.watch.ElapsedSeconds()
}

// IncompleteTasks returns active tasks in manual order.
func (a *App) IncompleteTasks() []tasks.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.Incomplete()
}

// CompletedToday returns tasks completed on today's calendar day.
func (a *App) CompletedToday() []tasks.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.CompletedToday()
}

// AllTasks returns every retained task.
func (a *App) AllTasks() []tasks.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.Tasks()
}

// RecurringTasks returns every template.
func (a *App) RecurringTasks() []tasks.RecurringTask {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.Recurring()
}

// WeeklyStats returns per-day completion counts for the trailing week.
func (a *App) WeeklyStats() []tasks.DayStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.WeeklyStats()
}

// AllComplete reports whether today's task list is non-empty and done.
func (a *App) AllComplete() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.registry.AllComplete()
}

// StreakStatus returns the display projection of the streak.
func (a *App) StreakStatus() streak.Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.streak.Status()
}

// Badges returns the catalog with unlock state.
func (a *App) Badges() []badges.Badge {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.badges.Badges()
}

// Points reports the scoring totals: lifetime, today, and the count of
// tasks finished under their estimate.
func (a *App) Points() (total, daily, underEstimates int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Total(), a.ledger.Daily(), a.ledger.UnderEstimates()
}

// DailyPomodoros returns today's completed pomodoro count.
func (a *App) DailyPomodoros() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pomodoros.Count()
}

// TotalCompleted returns the lifetime completed-task count.
func (a *App) TotalCompleted() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.streak.TotalCompleted()
}

// Settings returns the current user preferences.
func (a *App) Settings() Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.settings
}

// UpdateSettings replaces the user preferences.
func (a *App) UpdateSettings(s Settings) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.settings = s
	a.markDirty(storage.KeySettings)
	a.scheduleFlush()
}

// CheckBadge evaluates an arbitrary context against the catalog.
func (a *App) CheckBadge(ctx badges.Context) *badges.Badge {
	a.mu.Lock()
	defer a.mu.Unlock()
	b := a.badges.CheckUnlock(ctx)
	if b != nil {
		a.markDirty(storage.KeyStreak)
		a.scheduleFlush()
	}
	return b
}
