package app

import (
	"github.com/stefanpenner/tally/pkg/badges"
	"github.com/stefanpenner/tally/pkg/logging"
	"github.com/stefanpenner/tally/pkg/scoring"
	"github.com/stefanpenner/tally/pkg/storage"
	"github.com/stefanpenner/tally/pkg/tasks"
)

// CompletionResult is what a completion hands back to the UI: the
// finished task, its reward, and any badges newly earned by it.
type CompletionResult struct {
	Task          tasks.Task
	Points        int
	UnderEstimate bool
	Unlocked      []badges.Badge
}

// CompleteTask runs the completion cascade for one task and returns
// nil if the task no longer exists or is already complete — a task is
// rewarded exactly once, no matter how many times its completion is
// requested. The sequence is fixed: stop the
// stopwatch if it is tracking this task, score the elapsed time, mark
// the task complete, bank the points, advance the lifetime counter,
// evaluate badges against the post-update totals, and finally, if the
// whole list is now done, bank the day into the streak and re-check
// the streak-tier badges. A vanished task short-circuits before any
// totals move, so nothing is rewarded retroactively.
func (a *App) CompleteTask(id string) *CompletionResult {
	a.mu.Lock()
	defer a.mu.Unlock()

	task := a.registry.Get(id)
	if task == nil || task.Completed {
		return nil
	}

	var unlocked []badges.Badge

	elapsed := task.ElapsedSeconds
	if a.watch.ActiveTaskID() == id {
		elapsed = a.watch.Stop()
		count := a.pomodoros.Record(elapsed)
		a.markDirty(storage.KeyStopwatch)
		if b := a.badges.CheckUnlock(badges.Context{DailyPomodoros: count}); b != nil {
			unlocked = append(unlocked, *b)
		}
	}

	points := scoring.Points(task.EstimatedMinutes, elapsed, task.Priority)
	under := scoring.UnderEstimate(task.EstimatedMinutes, elapsed)

	completed := a.registry.Complete(id, elapsed, points)
	if completed == nil {
		return nil
	}
	a.markDirty(storage.KeyTasks)

	a.ledger.Add(points, under)
	a.markDirty(storage.KeyStopwatch)

	total := a.streak.IncrementCompleted()
	a.markDirty(storage.KeyStreak)

	if b := a.badges.CheckUnlock(badges.Context{
		TasksCompleted:         total,
		CurrentStreak:          a.streak.Current(),
		DailyPomodoros:         a.pomodoros.Count(),
		CompletedUnderEstimate: under,
	}); b != nil {
		unlocked = append(unlocked, *b)
	}

	result := &CompletionResult{Task: *completed, Points: points, UnderEstimate: under, Unlocked: unlocked}

	if a.registry.AllComplete() {
		if newStreak, updated := a.streak.CheckAndUpdate(true); updated {
			logging.Debug("app", "streak extended to %d", newStreak)
			if b := a.badges.CheckUnlock(badges.Context{CurrentStreak: newStreak}); b != nil {
				result.Unlocked = append(result.Unlocked, *b)
			}
		}
	}

	a.scheduleFlush()
	return result
}
