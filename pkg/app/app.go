// Package app wires the engines together: it owns the task registry,
// stopwatch, scoring ledger, streak tracker and badge engine, routes
// every mutation through dirty-key tracking, and flushes snapshots to
// the store in the background.
package app

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/stefanpenner/tally/pkg/badges"
	"github.com/stefanpenner/tally/pkg/logging"
	"github.com/stefanpenner/tally/pkg/scoring"
	"github.com/stefanpenner/tally/pkg/stopwatch"
	"github.com/stefanpenner/tally/pkg/storage"
	"github.com/stefanpenner/tally/pkg/streak"
	"github.com/stefanpenner/tally/pkg/tasks"
)

// Settings are user preferences. They live in the store alongside the
// rest of the user's data, not in the process environment.
type Settings struct {
	SoundEnabled         bool `json:"soundEnabled"`
	NotificationsEnabled bool `json:"notificationsEnabled"`
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	return Settings{SoundEnabled: true, NotificationsEnabled: true}
}

// streakDoc is the persisted shape of the streakData key: the streak
// counters plus the badge catalog with unlock state.
type streakDoc struct {
	streak.Snapshot
	Badges []badges.Badge `json:"badges"`
}

// stopwatchDoc is the persisted shape of the stopwatchData key: the
// points accumulator plus the daily pomodoro count. The running
// session itself is ephemeral and never persisted.
type stopwatchDoc struct {
	scoring.Snapshot
	stopwatch.PomodoroSnapshot
}

// App is the completion coordinator plus lifecycle glue. All methods
// are safe for concurrent use; the scheduler ticks from its own
// goroutine.
type App struct {
	mu    sync.Mutex
	store storage.Store
	now   func() time.Time

	registry  *tasks.Registry
	watch     *stopwatch.Engine
	pomodoros *stopwatch.PomodoroLog
	ledger    *scoring.Ledger
	streak    *streak.Tracker
	badges    *badges.Engine
	settings  Settings

	debounce   time.Duration
	dirty      map[string]bool
	flushTimer *time.Timer
}

// New creates an App over the given store. Nothing is read from the
// store until Load.
func New(store storage.Store, debounce time.Duration) *App {
	return &App{
		store:     store,
		now:       time.Now,
		registry:  tasks.NewRegistry(),
		watch:     stopwatch.New(),
		pomodoros: stopwatch.NewPomodoroLog(),
		ledger:    scoring.NewLedger(),
		streak:    streak.NewTracker(),
		badges:    badges.NewEngine(),
		settings:  DefaultSettings(),
		debounce:  debounce,
		dirty:     map[string]bool{},
	}
}

// SetClock overrides the wall clock on the app and every engine, for
// tests.
func (a *App) SetClock(now func() time.Time) {
	a.now = now
	a.registry.SetClock(now)
	a.watch.SetClock(now)
	a.pomodoros.SetClock(now)
	a.ledger.SetClock(now)
	a.streak.SetClock(now)
	a.badges.SetClock(now)
}

// Load reads every snapshot from the store and rebuilds engine state.
// A missing or unreadable key loads as defaults: the store is a cache
// of the in-memory truth, never an authority that can fail startup.
// Load then runs the startup maintenance pass: retention pruning,
// badge-catalog merge, streak repair and recurring materialization,
// flushing whatever that pass changed.
func (a *App) Load(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var taskList []tasks.Task
	var recurring []tasks.RecurringTask
	a.read(ctx, storage.KeyTasks, &taskList)
	a.read(ctx, storage.KeyRecurringTasks, &recurring)
	a.registry.Restore(taskList, recurring)

	var sd streakDoc
	if a.read(ctx, storage.KeyStreak, &sd) {
		a.streak.Restore(sd.Snapshot)
	} else {
		// First run: write the fully-populated default back.
		a.markDirty(storage.KeyStreak)
	}
	// The catalog is authoritative over the persisted copy.
	a.badges.MergeUnlocked(sd.Badges)

	var wd stopwatchDoc
	if a.read(ctx, storage.KeyStopwatch, &wd) {
		a.ledger.Restore(wd.Snapshot)
		a.pomodoros.Restore(wd.PomodoroSnapshot)
	}

	var s Settings
	if a.read(ctx, storage.KeySettings, &s) {
		a.settings = s
	}

	if a.registry.Prune(tasks.RetentionWindow) {
		a.markDirty(storage.KeyTasks)
	}
	if a.streak.RepairOnLoad() {
		logging.Info("app", "streak broken, resetting current streak")
		a.markDirty(storage.KeyStreak)
	}
	if created := a.registry.Materialize(); len(created) > 0 {
		logging.Debug("app", "materialized %d recurring task(s)", len(created))
		a.markDirty(storage.KeyTasks, storage.KeyRecurringTasks)
	}

	a.flushLocked(ctx)
}

// read unmarshals the value under key into v. Returns false when the
// key is missing; decode failures are logged and treated as misses.
func (a *App) read(ctx context.Context, key string, v any) bool {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		logging.Info("app", "reading %s failed: %v", key, err)
		return false
	}
	if data == nil {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logging.Info("app", "corrupt %s snapshot ignored: %v", key, err)
		return false
	}
	return true
}

// markDirty records keys that need flushing. Callers hold a.mu.
func (a *App) markDirty(keys ...string) {
	for _, key := range keys {
		a.dirty[key] = true
	}
}

// scheduleFlush arms (or re-arms) the debounced background flush.
// Callers hold a.mu.
func (a *App) scheduleFlush() {
	if a.flushTimer != nil {
		a.flushTimer.Stop()
	}
	a.flushTimer = time.AfterFunc(a.debounce, func() {
		a.Flush(context.Background())
	})
}

// Flush writes every dirty snapshot to the store. Failures are logged
// and the key stays dirty for the next flush; the in-memory state is
// authoritative either way.
func (a *App) Flush(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.flushLocked(ctx)
}

func (a *App) flushLocked(ctx context.Context) {
	for key := range a.dirty {
		data, err := json.Marshal(a.snapshot(key))
		if err != nil {
			logging.Info("app", "encoding %s failed: %v", key, err)
			continue
		}
		if err := a.store.Set(ctx, key, data); err != nil {
			logging.Info("app", "writing %s failed: %v", key, err)
			continue
		}
		delete(a.dirty, key)
	}
}

// snapshot builds the persistable document for one key. Callers hold
// a.mu.
func (a *App) snapshot(key string) any {
	switch key {
	case storage.KeyTasks:
		return a.registry.Tasks()
	case storage.KeyRecurringTasks:
		return a.registry.Recurring()
	case storage.KeyStreak:
		return streakDoc{Snapshot: a.streak.Snapshot(), Badges: a.badges.Badges()}
	case storage.KeyStopwatch:
		return stopwatchDoc{Snapshot: a.ledger.Snapshot(), PomodoroSnapshot: a.pomodoros.Snapshot()}
	case storage.KeySettings:
		return a.settings
	}
	return nil
}

// Reset clears all state back to defaults and deletes every persisted
// key. The running stopwatch session is discarded.
func (a *App) Reset(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.registry.Restore(nil, nil)
	a.watch.Stop()
	a.pomodoros.Reset()
	a.ledger.Reset()
	a.streak.Reset()
	a.badges.Reset()
	a.settings = DefaultSettings()
	a.dirty = map[string]bool{}

	for _, key := range storage.AllKeys {
		if err := a.store.Delete(ctx, key); err != nil {
			logging.Info("app", "deleting %s failed: %v", key, err)
		}
	}
}

// Close flushes outstanding writes and releases the store.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	if a.flushTimer != nil {
		a.flushTimer.Stop()
	}
	a.flushLocked(ctx)
	a.mu.Unlock()
	return a.store.Close()
}
