package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/momentum/internal/bootstrap"
	"github.com/at-ishikawa/momentum/internal/config"
	"github.com/at-ishikawa/momentum/internal/testutil"
	"github.com/at-ishikawa/momentum/internal/tracker"
)

func TestOpenRepository(t *testing.T) {
	tests := []struct {
		name      string
		storage   func(tmpDir string) config.StorageConfig
		wantDBFile bool
	}{
		{
			name: "file",
			storage: func(tmpDir string) config.StorageConfig {
				return config.StorageConfig{Driver: config.StorageDriverFile, DataFile: filepath.Join(tmpDir, testutil.DataFileName)}
			},
		},
		{
			name: "sqlite",
			storage: func(tmpDir string) config.StorageConfig {
				return config.StorageConfig{Driver: config.StorageDriverSQLite, SQLitePath: filepath.Join(tmpDir, "momentum.db")}
			},
			wantDBFile: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			cfg := &config.Config{Storage: tt.storage(tmpDir)}
			app := bootstrap.New(bootstrap.DefaultShutdownTimeout)

			repo, err := openRepository(context.Background(), cfg, app)
			require.NoError(t, err)

			ctx := context.Background()
			profile := testutil.DefaultProfile(tracker.NewDate(2025, 3, 10))
			require.NoError(t, repo.SaveProfile(ctx, profile))
			got, err := repo.LoadProfile(ctx)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, profile.ExamDate, got.ExamDate)

			if tt.wantDBFile {
				_, err := os.Stat(cfg.Storage.SQLitePath)
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	configFile = testutil.SetupTestConfig(t, t.TempDir())
	t.Cleanup(func() { configFile = "" })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.StorageDriverFile, cfg.Storage.Driver)
	assert.Equal(t, "UTC", cfg.App.Timezone)
}
