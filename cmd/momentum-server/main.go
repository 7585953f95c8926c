package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/momentum/internal/bootstrap"
	"github.com/at-ishikawa/momentum/internal/config"
	"github.com/at-ishikawa/momentum/internal/database"
	"github.com/at-ishikawa/momentum/internal/inference"
	"github.com/at-ishikawa/momentum/internal/inference/openai"
	"github.com/at-ishikawa/momentum/internal/server"
	"github.com/at-ishikawa/momentum/internal/store"
	"github.com/at-ishikawa/momentum/internal/study"
	"github.com/at-ishikawa/momentum/internal/tasks"
	"github.com/at-ishikawa/momentum/internal/tracker"
)

var configFile string

func main() {
	var debugMode bool
	rootCmd := &cobra.Command{
		Use:           "momentum-server",
		Short:         "Study momentum HTTP API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New(bootstrap.DefaultShutdownTimeout)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}
	loc, err := cfg.App.Location()
	if err != nil {
		return err
	}

	repo, err := openRepository(ctx, cfg, app)
	if err != nil {
		return err
	}

	var buddy inference.Client = inference.OfflineClient{}
	if cfg.OpenAI.APIKey != "" {
		openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
		app.AddShutdownHook("openai client", func(context.Context) error {
			return openaiClient.Close()
		})
		buddy = openaiClient
	} else {
		slog.Default().Warn("OPENAI_API_KEY is not set, the study buddy answers offline")
	}

	service := study.NewService(repo, tasks.NewDefaultGenerator())
	today := func() tracker.Date {
		return tracker.Today(loc)
	}
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: server.NewServer(service, buddy, today, cfg.Server.CORS.AllowedOrigins).Handler(),
	}
	app.AddShutdownHook("http server", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server",
			"addr", srv.Addr,
			"storage", cfg.Storage.Driver,
			"timezone", cfg.App.Timezone,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

// openRepository opens the configured store and registers the database, if any, to be closed on shutdown.
func openRepository(ctx context.Context, cfg *config.Config, app *bootstrap.App) (store.Repository, error) {
	if cfg.Storage.Driver == config.StorageDriverFile {
		repo, err := store.NewFileRepository(cfg.Storage.DataFile)
		if err != nil {
			return nil, fmt.Errorf("store.NewFileRepository(%s) > %w", cfg.Storage.DataFile, err)
		}
		return repo, nil
	}

	db, err := database.Open(cfg.Storage, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("database.Open() > %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database.Migrate() > %w", err)
	}
	app.AddShutdownHook("database", func(context.Context) error {
		return db.Close()
	})
	return store.NewSQLRepository(db), nil
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
}
