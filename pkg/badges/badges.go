// Package badges evaluates a fixed catalog of achievements against
// completion events and unlocks them one at a time.
package badges

import (
	"time"
)

// Badge is one entry in the achievement catalog. UnlockedAt is nil
// until the badge is earned and, barring a full data reset, never
// cleared afterward.
type Badge struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Condition   string     `json:"condition"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

// Context is a snapshot of the totals a predicate may look at. Zero
// values never satisfy a predicate, so callers populate only the
// fields relevant to the event being checked.
type Context struct {
	TasksCompleted         int
	CurrentStreak          int
	DailyPomodoros         int
	CompletedUnderEstimate bool
}

// catalog returns the authoritative badge definitions in unlock-check
// order. A fresh copy each call: engines mutate their own slice.
func catalog() []Badge {
	return []Badge{
		{ID: "first-blood", Name: "First Blood", Description: "Complete your first task", Icon: "🎖️", Condition: "Complete 1 task"},
		{ID: "on-fire", Name: "On Fire", Description: "3-day streak achieved", Icon: "🔥", Condition: "3-day streak"},
		{ID: "unstoppable", Name: "Unstoppable", Description: "7-day streak achieved", Icon: "⚡", Condition: "7-day streak"},
		{ID: "legend", Name: "Legend", Description: "30-day streak achieved", Icon: "👑", Condition: "30-day streak"},
		{ID: "centurion", Name: "Centurion", Description: "Complete 100 tasks", Icon: "💯", Condition: "100 tasks completed"},
		{ID: "time-lord", Name: "Time Lord", Description: "10 pomodoros in one day", Icon: "⏱️", Condition: "10 daily pomodoros"},
		{ID: "sniper", Name: "Sniper", Description: "Complete a task under estimated time", Icon: "🎯", Condition: "Beat your estimate"},
	}
}

func satisfied(id string, ctx Context) bool {
	switch id {
	case "first-blood":
		return ctx.TasksCompleted >= 1
	case "on-fire":
		return ctx.CurrentStreak >= 3
	case "unstoppable":
		return ctx.CurrentStreak >= 7
	case "legend":
		return ctx.CurrentStreak >= 30
	case "centurion":
		return ctx.TasksCompleted >= 100
	case "time-lord":
		return ctx.DailyPomodoros >= 10
	case "sniper":
		return ctx.CompletedUnderEstimate
	}
	return false
}

// Engine holds the catalog with its unlock state.
type Engine struct {
	now    func() time.Time
	badges []Badge
}

// NewEngine returns an engine with a pristine catalog.
func NewEngine() *Engine {
	return &Engine{now: time.Now, badges: catalog()}
}

// SetClock overrides the wall clock, for tests.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// CheckUnlock walks the catalog in order and unlocks the first badge
// that is both still locked and satisfied by ctx, returning a copy of
// it. Later badges are not evaluated in the same call; callers that
// fire an event which could plausibly earn several badges check once
// per context. Returns nil when nothing new unlocked.
func (e *Engine) CheckUnlock(ctx Context) *Badge {
	for i := range e.badges {
		if e.badges[i].UnlockedAt != nil {
			continue
		}
		if !satisfied(e.badges[i].ID, ctx) {
			continue
		}
		at := e.now()
		e.badges[i].UnlockedAt = &at
		b := e.badges[i]
		return &b
	}
	return nil
}

// Badges returns a copy of the catalog with current unlock state.
func (e *Engine) Badges() []Badge {
	out := make([]Badge, len(e.badges))
	copy(out, e.badges)
	return out
}

// Unlocked returns only the earned badges, in catalog order.
func (e *Engine) Unlocked() []Badge {
	var out []Badge
	for _, b := range e.badges {
		if b.UnlockedAt != nil {
			out = append(out, b)
		}
	}
	return out
}

// MergeUnlocked overlays persisted unlock timestamps onto the current
// catalog, matched by id. The catalog definitions win for everything
// else, so renamed or added badges don't corrupt unlock history, and
// persisted badges absent from the catalog are dropped.
func (e *Engine) MergeUnlocked(saved []Badge) {
	unlocked := make(map[string]*time.Time, len(saved))
	for _, b := range saved {
		if b.UnlockedAt != nil {
			unlocked[b.ID] = b.UnlockedAt
		}
	}
	e.badges = catalog()
	for i := range e.badges {
		if at, ok := unlocked[e.badges[i].ID]; ok {
			e.badges[i].UnlockedAt = at
		}
	}
}

// Reset relocks every badge.
func (e *Engine) Reset() {
	e.badges = catalog()
}
