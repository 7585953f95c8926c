// Package store persists the learner's record: the profile, today's task list and the finalized-day history.
package store

import (
	"context"

	"github.com/at-ishikawa/momentum/internal/tracker"
)

//go:generate mockgen -source=repository.go -destination=../mocks/store/mock_repository.go -package=mock_store

// Repository reads and writes the single persisted record.
type Repository interface {
	// LoadProfile returns nil without an error when no valid profile is stored.
	LoadProfile(ctx context.Context) (*tracker.Profile, error)
	SaveProfile(ctx context.Context, profile tracker.Profile) error
	// LoadTasks returns an empty list unless tasks were saved for today.
	LoadTasks(ctx context.Context, today tracker.Date) ([]tracker.Task, error)
	SaveTasks(ctx context.Context, today tracker.Date, tasks []tracker.Task) error
	LoadHistory(ctx context.Context) ([]tracker.HistoryEntry, error)
	// SaveHistoryEntry replaces an existing entry with the same date.
	SaveHistoryEntry(ctx context.Context, entry tracker.HistoryEntry) error
}

// upsertHistory replaces the entry dated entry.Date or appends it.
func upsertHistory(history []tracker.HistoryEntry, entry tracker.HistoryEntry) []tracker.HistoryEntry {
	for i, existing := range history {
		if existing.Date == entry.Date {
			history[i] = entry
			return history
		}
	}
	return append(history, entry)
}
