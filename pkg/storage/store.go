// Package storage is the persistence boundary: an asynchronous-friendly
// key-value capability over JSON snapshots. Engines never touch it
// directly; the app layer decides when to flush.
package storage

import "context"

// Keys for the persisted snapshots. Each key holds one JSON document.
const (
	KeyTasks          = "tasks"
	KeyRecurringTasks = "recurringTasks"
	KeyStreak         = "streakData"
	KeyStopwatch      = "stopwatchData"
	KeySettings       = "settings"
)

// AllKeys lists every snapshot key, for full reset.
var AllKeys = []string{KeyTasks, KeyRecurringTasks, KeyStreak, KeyStopwatch, KeySettings}

// Store is a string-keyed blob store. Get returns (nil, nil) when the
// key has never been written, so a first run reads as all-misses
// rather than errors.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
