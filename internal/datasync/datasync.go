// Package datasync copies the persisted record from one store to another, e.g. from the JSON file into a database.
package datasync

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/momentum/internal/store"
	"github.com/at-ishikawa/momentum/internal/tracker"
)

// SyncResult tracks counts for each copied part of the record.
type SyncResult struct {
	ProfileNew      int
	ProfileSkipped  int
	ProfileUpdated  int
	TasksNew        int
	TasksSkipped    int
	TasksUpdated    int
	HistoryNew      int
	HistorySkipped  int
	HistoryUpdated  int
	HistoryWarnings int
}

// SyncOptions controls sync behavior.
type SyncOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Syncer reads the record from source and writes it to destination.
type Syncer struct {
	source      store.Repository
	destination store.Repository
	writer      io.Writer
}

func NewSyncer(source, destination store.Repository, writer io.Writer) *Syncer {
	return &Syncer{
		source:      source,
		destination: destination,
		writer:      writer,
	}
}

// Sync copies the profile, today's tasks and every history entry.
func (s *Syncer) Sync(ctx context.Context, today tracker.Date, opts SyncOptions) (*SyncResult, error) {
	var result SyncResult

	if err := s.syncProfile(ctx, opts, &result); err != nil {
		return nil, fmt.Errorf("syncProfile() > %w", err)
	}
	if err := s.syncTasks(ctx, today, opts, &result); err != nil {
		return nil, fmt.Errorf("syncTasks() > %w", err)
	}
	if err := s.syncHistory(ctx, opts, &result); err != nil {
		return nil, fmt.Errorf("syncHistory() > %w", err)
	}
	return &result, nil
}

func (s *Syncer) syncProfile(ctx context.Context, opts SyncOptions, result *SyncResult) error {
	profile, err := s.source.LoadProfile(ctx)
	if err != nil {
		return fmt.Errorf("source.LoadProfile() > %w", err)
	}
	if profile == nil {
		fmt.Fprintf(s.writer, "  [WARN]  no profile in the source\n")
		return nil
	}

	existing, err := s.destination.LoadProfile(ctx)
	if err != nil {
		return fmt.Errorf("destination.LoadProfile() > %w", err)
	}
	if existing != nil && !opts.UpdateExisting {
		fmt.Fprintf(s.writer, "  [SKIP]  profile\n")
		result.ProfileSkipped++
		return nil
	}

	if !opts.DryRun {
		if err := s.destination.SaveProfile(ctx, *profile); err != nil {
			return fmt.Errorf("destination.SaveProfile() > %w", err)
		}
	}
	if existing != nil {
		fmt.Fprintf(s.writer, "  [UPDATE]  profile\n")
		result.ProfileUpdated++
	} else {
		fmt.Fprintf(s.writer, "  [NEW]  profile\n")
		result.ProfileNew++
	}
	return nil
}

func (s *Syncer) syncTasks(ctx context.Context, today tracker.Date, opts SyncOptions, result *SyncResult) error {
	tasks, err := s.source.LoadTasks(ctx, today)
	if err != nil {
		return fmt.Errorf("source.LoadTasks() > %w", err)
	}
	if len(tasks) == 0 {
		return nil
	}

	existing, err := s.destination.LoadTasks(ctx, today)
	if err != nil {
		return fmt.Errorf("destination.LoadTasks() > %w", err)
	}
	if len(existing) > 0 && !opts.UpdateExisting {
		fmt.Fprintf(s.writer, "  [SKIP]  %d tasks for %s\n", len(existing), today)
		result.TasksSkipped += len(existing)
		return nil
	}

	if !opts.DryRun {
		if err := s.destination.SaveTasks(ctx, today, tasks); err != nil {
			return fmt.Errorf("destination.SaveTasks() > %w", err)
		}
	}
	if len(existing) > 0 {
		fmt.Fprintf(s.writer, "  [UPDATE]  %d tasks for %s\n", len(tasks), today)
		result.TasksUpdated += len(tasks)
	} else {
		fmt.Fprintf(s.writer, "  [NEW]  %d tasks for %s\n", len(tasks), today)
		result.TasksNew += len(tasks)
	}
	return nil
}

func (s *Syncer) syncHistory(ctx context.Context, opts SyncOptions, result *SyncResult) error {
	history, err := s.source.LoadHistory(ctx)
	if err != nil {
		return fmt.Errorf("source.LoadHistory() > %w", err)
	}
	existingHistory, err := s.destination.LoadHistory(ctx)
	if err != nil {
		return fmt.Errorf("destination.LoadHistory() > %w", err)
	}
	existingDates := make(map[string]struct{}, len(existingHistory))
	for _, entry := range existingHistory {
		existingDates[entry.Date] = struct{}{}
	}

	for _, entry := range history {
		if _, err := tracker.ParseDate(entry.Date); err != nil {
			fmt.Fprintf(s.writer, "  [WARN]  history entry with an invalid date %q\n", entry.Date)
			result.HistoryWarnings++
			continue
		}

		_, exists := existingDates[entry.Date]
		if exists && !opts.UpdateExisting {
			fmt.Fprintf(s.writer, "  [SKIP]  history %s\n", entry.Date)
			result.HistorySkipped++
			continue
		}

		if !opts.DryRun {
			if err := s.destination.SaveHistoryEntry(ctx, entry); err != nil {
				return fmt.Errorf("destination.SaveHistoryEntry(%s) > %w", entry.Date, err)
			}
		}
		if exists {
			fmt.Fprintf(s.writer, "  [UPDATE]  history %s\n", entry.Date)
			result.HistoryUpdated++
		} else {
			fmt.Fprintf(s.writer, "  [NEW]  history %s\n", entry.Date)
			result.HistoryNew++
		}
	}
	return nil
}
