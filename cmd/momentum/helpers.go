package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/momentum/internal/config"
	"github.com/at-ishikawa/momentum/internal/database"
	"github.com/at-ishikawa/momentum/internal/inference"
	"github.com/at-ishikawa/momentum/internal/inference/openai"
	"github.com/at-ishikawa/momentum/internal/store"
	"github.com/at-ishikawa/momentum/internal/study"
	"github.com/at-ishikawa/momentum/internal/tasks"
	"github.com/at-ishikawa/momentum/internal/tracker"
)

// environment is what every study command works with
type environment struct {
	cfg     *config.Config
	service *study.Service
	today   tracker.Date
	close   func() error
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// resolveToday returns the --today flag, or the current date in the configured time zone.
func resolveToday(cfg *config.Config) (tracker.Date, error) {
	if todayFlag != "" {
		today, err := tracker.ParseDate(todayFlag)
		if err != nil {
			return tracker.Date{}, fmt.Errorf("invalid --today: %w", err)
		}
		return today, nil
	}
	loc, err := cfg.App.Location()
	if err != nil {
		return tracker.Date{}, err
	}
	return tracker.Today(loc), nil
}

// openRepository opens the repository selected by storage.driver.
// The returned function releases the underlying database, if any.
func openRepository(ctx context.Context, cfg *config.Config) (store.Repository, func() error, error) {
	if cfg.Storage.Driver == config.StorageDriverFile {
		repo, err := store.NewFileRepository(cfg.Storage.DataFile)
		if err != nil {
			return nil, nil, fmt.Errorf("store.NewFileRepository(%s) > %w", cfg.Storage.DataFile, err)
		}
		return repo, func() error { return nil }, nil
	}
	return openDatabaseRepository(ctx, cfg.Storage, cfg.Database)
}

func openDatabaseRepository(ctx context.Context, storage config.StorageConfig, databaseConfig config.DatabaseConfig) (store.Repository, func() error, error) {
	db, err := database.Open(storage, databaseConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("database.Migrate() > %w", err)
	}
	return store.NewSQLRepository(db), db.Close, nil
}

func newEnvironment(ctx context.Context) (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	today, err := resolveToday(cfg)
	if err != nil {
		return nil, err
	}
	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}
	slog.Default().Debug("environment ready",
		"storage", cfg.Storage.Driver,
		"today", today,
	)
	return &environment{
		cfg:     cfg,
		service: study.NewService(repo, tasks.NewDefaultGenerator()),
		today:   today,
		close:   closeRepo,
	}, nil
}

// newBuddy returns the OpenAI study buddy, or the offline one without an API key.
func newBuddy(cfg *config.Config) (inference.Client, func()) {
	if cfg.OpenAI.APIKey == "" {
		slog.Default().Debug("OPENAI_API_KEY is not set, use the offline study buddy")
		return inference.OfflineClient{}, func() {}
	}
	client := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
	return client, func() {
		_ = client.Close()
	}
}
