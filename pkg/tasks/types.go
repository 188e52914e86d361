package tasks

import (
	"time"

	"github.com/stefanpenner/tally/pkg/dayclock"
)

// Priority is the scoring weight class of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Frequency describes how often a recurring template spawns tasks.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Task is a single unit of work. Completed tasks are retained for a
// rolling window and then pruned on load.
type Task struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Notes            string     `json:"notes,omitempty"`
	Priority         Priority   `json:"priority"`
	Order            int        `json:"order"`
	Completed        bool       `json:"completed"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	EstimatedMinutes int        `json:"estimatedMinutes,omitempty"` // 0 = no estimate
	ActualMinutes    int        `json:"actualMinutes,omitempty"`
	ElapsedSeconds   int        `json:"elapsedSeconds"`
	PointsEarned     int        `json:"pointsEarned"`
	CreatedAt        time.Time  `json:"createdAt"`
	IsRecurring      bool       `json:"isRecurring"`
	RecurringID      string     `json:"recurringTemplateId,omitempty"`
}

// CreatedOn returns the calendar day the task was created.
func (t *Task) CreatedOn() dayclock.Day {
	return dayclock.DayOf(t.CreatedAt)
}

// CompletedOn returns the calendar day the task was completed, or the
// zero day for incomplete tasks.
func (t *Task) CompletedOn() dayclock.Day {
	if t.CompletedAt == nil {
		return ""
	}
	return dayclock.DayOf(*t.CompletedAt)
}

// RecurringTask is a template that spawns at most one Task per
// applicable calendar day.
type RecurringTask struct {
	ID               string       `json:"id"`
	Title            string       `json:"title"`
	Priority         Priority     `json:"priority"`
	EstimatedMinutes int          `json:"estimatedMinutes,omitempty"`
	Frequency        Frequency    `json:"frequency"`
	DayOfWeek        time.Weekday `json:"dayOfWeek,omitempty"` // weekly templates only
	LastGenerated    dayclock.Day `json:"lastGenerated,omitempty"`
	IsActive         bool         `json:"isActive"`
}

// TaskPatch is the enumerated field set Update may merge onto a task.
// Nil fields are left untouched. Completed/CompletedAt are included as
// an escape hatch for undo; Complete is the primary completion path.
type TaskPatch struct {
	Title            *string
	Notes            *string
	Priority         *Priority
	EstimatedMinutes *int
	Completed        *bool
	CompletedAt      *time.Time
	ElapsedSeconds   *int
	PointsEarned     *int
}

// RecurringPatch is the enumerated field set UpdateRecurring may merge
// onto a template.
type RecurringPatch struct {
	Title            *string
	Priority         *Priority
	EstimatedMinutes *int
	Frequency        *Frequency
	DayOfWeek        *time.Weekday
	IsActive         *bool
}

// PriorityBreakdown counts completed tasks per priority for one day.
type PriorityBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

func (b *PriorityBreakdown) add(p Priority) {
	switch p {
	case PriorityHigh:
		b.High++
	case PriorityMedium:
		b.Medium++
	default:
		b.Low++
	}
}

// Total returns the day's combined count.
func (b PriorityBreakdown) Total() int {
	return b.High + b.Medium + b.Low
}

// DayStats summarizes completions for one calendar day, split by
// recurring vs. ad-hoc origin.
type DayStats struct {
	Date      dayclock.Day      `json:"date"`
	DayName   string            `json:"dayName"`
	Count     int               `json:"count"`
	Regular   PriorityBreakdown `json:"regular"`
	Recurring PriorityBreakdown `json:"recurring"`
}
