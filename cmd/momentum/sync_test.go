package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/momentum/internal/config"
	"github.com/at-ishikawa/momentum/internal/database"
	"github.com/at-ishikawa/momentum/internal/store"
	"github.com/at-ishikawa/momentum/internal/testutil"
)

func TestSyncCommand(t *testing.T) {
	tmpDir := t.TempDir()
	cfgPath := testutil.SetupTestConfig(t, tmpDir)
	_, err := runAt(t, cfgPath, "2025-03-10", initArgs...)
	require.NoError(t, err)
	_, err = runAt(t, cfgPath, "2025-03-10", "task", "done", "1")
	require.NoError(t, err)
	_, err = runAt(t, cfgPath, "2025-03-10", "finalize")
	require.NoError(t, err)

	output, err := runAt(t, cfgPath, "2025-03-10", "sync", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, output, "(dry-run mode, no changes made)")

	output, err = runAt(t, cfgPath, "2025-03-10", "sync")
	require.NoError(t, err)
	assert.Contains(t, output, "[NEW]  profile")
	assert.Contains(t, output, "[NEW]  history 2025-03-10")
	assert.Contains(t, output, "Profile:  1 new, 0 skipped, 0 updated")
	assert.Contains(t, output, "Tasks:    3 new, 0 skipped, 0 updated")
	assert.Contains(t, output, "History:  1 new, 0 skipped, 0 updated, 0 warnings")

	output, err = runAt(t, cfgPath, "2025-03-10", "sync")
	require.NoError(t, err)
	assert.Contains(t, output, "[SKIP]  profile")
	assert.Contains(t, output, "Tasks:    0 new, 3 skipped, 0 updated")
	assert.Contains(t, output, "History:  0 new, 1 skipped, 0 updated, 0 warnings")

	db, err := database.Open(config.StorageConfig{
		Driver:     config.StorageDriverSQLite,
		SQLitePath: filepath.Join(tmpDir, "momentum.db"),
	}, config.DatabaseConfig{})
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := store.NewSQLRepository(db)
	profile, err := repo.LoadProfile(context.Background())
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, 5, profile.MomentumScore)
	assert.Equal(t, "2025-04-09", profile.ExamDate)

	history, err := repo.LoadHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, 1, history[0].CompletedCount)
}
