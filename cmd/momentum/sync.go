package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/momentum/internal/config"
	"github.com/at-ishikawa/momentum/internal/datasync"
	"github.com/at-ishikawa/momentum/internal/store"
)

func newSyncCommand() *cobra.Command {
	var dryRun bool
	var updateExisting bool

	command := &cobra.Command{
		Use:   "sync",
		Short: "Copy the study record from the data file into the database",
		Long: `Copy the study record from storage.data_file into the database selected by storage.driver.
With the file driver, the record is copied into the SQLite database at storage.sqlite_path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			today, err := resolveToday(cfg)
			if err != nil {
				return err
			}

			source, err := store.NewFileRepository(cfg.Storage.DataFile)
			if err != nil {
				return fmt.Errorf("store.NewFileRepository(%s) > %w", cfg.Storage.DataFile, err)
			}
			storage := cfg.Storage
			if storage.Driver == config.StorageDriverFile {
				storage.Driver = config.StorageDriverSQLite
			}
			destination, closeDestination, err := openDatabaseRepository(ctx, storage, cfg.Database)
			if err != nil {
				return err
			}
			defer func() { _ = closeDestination() }()

			out := cmd.OutOrStdout()
			opts := datasync.SyncOptions{
				DryRun:         dryRun,
				UpdateExisting: updateExisting,
			}
			result, err := datasync.NewSyncer(source, destination, out).Sync(ctx, today, opts)
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}

			fmt.Fprintln(out, "\nSync Summary:")
			if opts.DryRun {
				fmt.Fprintln(out, "  (dry-run mode, no changes made)")
			}
			fmt.Fprintf(out, "  Profile:  %d new, %d skipped, %d updated\n", result.ProfileNew, result.ProfileSkipped, result.ProfileUpdated)
			fmt.Fprintf(out, "  Tasks:    %d new, %d skipped, %d updated\n", result.TasksNew, result.TasksSkipped, result.TasksUpdated)
			fmt.Fprintf(out, "  History:  %d new, %d skipped, %d updated, %d warnings\n", result.HistoryNew, result.HistorySkipped, result.HistoryUpdated, result.HistoryWarnings)
			return nil
		},
	}

	command.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without modifying the database")
	command.Flags().BoolVar(&updateExisting, "update-existing", false, "Update existing records with new data")
	return command
}
