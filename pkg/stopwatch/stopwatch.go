// Package stopwatch tracks elapsed time for a single active task.
// Elapsed time is recomputed from a recorded start instant on every
// tick, so irregular ticks (a suspended process, a slow UI) never
// cause drift.
package stopwatch

import (
	"time"

	"github.com/stefanpenner/tally/pkg/dayclock"
)

// Status is the state of the engine.
type Status string

const (
	Idle    Status = "idle"
	Running Status = "running"
	Paused  Status = "paused"
)

// Engine is the single-session stopwatch state machine. The active
// task id is set iff status is not idle.
type Engine struct {
	now func() time.Time

	status       Status
	activeTaskID string
	elapsed      int
	startedAt    time.Time
}

// New creates an idle engine using the wall clock.
func New() *Engine {
	return &Engine{now: time.Now, status: Idle}
}

// SetClock overrides the engine's notion of "now". Tests only.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Status returns the current state.
func (e *Engine) Status() Status {
	return e.status
}

// ActiveTaskID returns the tracked task id, or "" when idle.
func (e *Engine) ActiveTaskID() string {
	return e.activeTaskID
}

// ElapsedSeconds returns the current session's elapsed time.
func (e *Engine) ElapsedSeconds() int {
	return e.elapsed
}

// IsTracking reports whether the engine is running against taskID.
func (e *Engine) IsTracking(taskID string) bool {
	return e.status == Running && e.activeTaskID == taskID
}

// Interrupted reports a session that was implicitly stopped by Start.
type Interrupted struct {
	TaskID         string
	ElapsedSeconds int
}

// Start begins tracking taskID from zero. If a session is active on a
// different task it is stopped first and its accrued time is returned
// so the caller can persist it rather than lose it. Starting the task
// that is already running is a no-op.
func (e *Engine) Start(taskID string) *Interrupted {
	if e.status == Running && e.activeTaskID == taskID {
		return nil
	}

	var interrupted *Interrupted
	if e.status != Idle {
		prevID := e.activeTaskID
		elapsed := e.Stop()
		interrupted = &Interrupted{TaskID: prevID, ElapsedSeconds: elapsed}
	}

	e.status = Running
	e.activeTaskID = taskID
	e.elapsed = 0
	e.startedAt = e.now()
	return interrupted
}

// Pause freezes the session. No-op unless running.
func (e *Engine) Pause() {
	if e.status != Running {
		return
	}
	e.Tick()
	e.status = Paused
}

// Resume continues a paused session. The start instant is rebased
// backward by the already-elapsed duration so the next tick continues
// from where Pause left off.
func (e *Engine) Resume() {
	if e.status != Paused {
		return
	}
	e.status = Running
	e.startedAt = e.now().Add(-time.Duration(e.elapsed) * time.Second)
}

// Stop ends the session and returns its final elapsed seconds. The
// engine resets to idle. Stopping an idle engine returns 0.
func (e *Engine) Stop() int {
	e.Tick()
	elapsed := e.elapsed
	e.status = Idle
	e.activeTaskID = ""
	e.elapsed = 0
	e.startedAt = time.Time{}
	return elapsed
}

// Tick recomputes elapsed time from the start instant. No-op unless
// running, so stray ticks after a stop are harmless.
func (e *Engine) Tick() {
	if e.status != Running {
		return
	}
	e.elapsed = int(e.now().Sub(e.startedAt) / time.Second)
}

// FormattedTime returns the current elapsed time as MM:SS (or H:MM:SS
// past the hour).
func (e *Engine) FormattedTime() string {
	e.Tick()
	return dayclock.FormatElapsed(e.elapsed)
}
