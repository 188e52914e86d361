package app

import (
	"time"

	"github.com/stefanpenner/tally/pkg/tasks"
)

// ExportVersion identifies the backup document format.
const ExportVersion = "2.0.0"

// ExportDoc is a user-initiated backup of all state in one versioned
// document. There is no import path; the document is for the user.
type ExportDoc struct {
	Version        string                `json:"version"`
	ExportedAt     time.Time             `json:"exportedAt"`
	Tasks          []tasks.Task          `json:"tasks"`
	RecurringTasks []tasks.RecurringTask `json:"recurringTasks"`
	Streak         ExportStreak          `json:"streak"`
	Points         ExportPoints          `json:"points"`
}

// ExportStreak is the streak summary carried in a backup.
type ExportStreak struct {
	CurrentStreak  int `json:"currentStreak"`
	LongestStreak  int `json:"longestStreak"`
	TotalCompleted int `json:"totalTasksCompleted"`
}

// ExportPoints is the scoring summary carried in a backup.
type ExportPoints struct {
	TotalPoints    int `json:"totalPoints"`
	UnderEstimates int `json:"tasksUnderEstimate"`
}

// Export assembles the backup document from current state.
func (a *App) Export() ExportDoc {
	a.mu.Lock()
	defer a.mu.Unlock()

	return ExportDoc{
		Version:        ExportVersion,
		ExportedAt:     a.now(),
		Tasks:          a.registry.Tasks(),
		RecurringTasks: a.registry.Recurring(),
		Streak: ExportStreak{
			CurrentStreak:  a.streak.Current(),
			LongestStreak:  a.streak.Longest(),
			TotalCompleted: a.streak.TotalCompleted(),
		},
		Points: ExportPoints{
			TotalPoints:    a.ledger.Total(),
			UnderEstimates: a.ledger.UnderEstimates(),
		},
	}
}
