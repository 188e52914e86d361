package app

import (
	"github.com/robfig/cron/v3"

	"github.com/stefanpenner/tally/pkg/logging"
	"github.com/stefanpenner/tally/pkg/storage"
)

// Scheduler drives the app's two periodic jobs: a 1 Hz stopwatch tick
// and a midnight rollover that materializes recurring tasks and rolls
// the daily counters.
type Scheduler struct {
	cron *cron.Cron
}

// StartScheduler begins the periodic jobs. onTick (may be nil) runs
// after each tick so a UI can refresh its display.
func (a *App) StartScheduler(onTick func()) (*Scheduler, error) {
	c := cron.New(cron.WithSeconds())

	if _, err := c.AddFunc("@every 1s", func() {
		a.Tick()
		if onTick != nil {
			onTick()
		}
	}); err != nil {
		return nil, err
	}

	// second minute hour dom month dow
	if _, err := c.AddFunc("0 0 0 * * *", a.rollover); err != nil {
		return nil, err
	}

	c.Start()
	return &Scheduler{cron: c}, nil
}

// rollover runs just after midnight: spawn today's recurring tasks and
// let the day-stamped counters reset themselves.
func (a *App) rollover() {
	a.mu.Lock()
	defer a.mu.Unlock()

	logging.Debug("app", "midnight rollover")
	if created := a.registry.Materialize(); len(created) > 0 {
		a.markDirty(storage.KeyTasks, storage.KeyRecurringTasks)
	}
	// Touching the day-stamped counters rolls them onto the new day.
	a.ledger.Daily()
	a.pomodoros.Count()
	a.markDirty(storage.KeyStopwatch)
	a.scheduleFlush()
}

// Stop halts the periodic jobs, waiting for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
