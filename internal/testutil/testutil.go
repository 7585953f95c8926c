// Package testutil provides shared test helpers for creating config files and persisted study records.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/momentum/internal/store"
	"github.com/at-ishikawa/momentum/internal/tracker"
)

const DataFileName = "study_data.json"

// SetupTestConfig creates a config file that stores the record in tmpDir/study_data.json
// and writes reports into tmpDir/reports. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "reports"), 0755))

	configContent := fmt.Sprintf(`app:
  timezone: UTC
storage:
  driver: file
  data_file: %s
  sqlite_path: %s
outputs:
  report_directory: %s
`,
		filepath.Join(tmpDir, DataFileName),
		filepath.Join(tmpDir, "momentum.db"),
		filepath.Join(tmpDir, "reports"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// SetupTestConfigWithAPIKey creates a config file with a fake OpenAI API key.
func SetupTestConfigWithAPIKey(t *testing.T, tmpDir string) string {
	t.Helper()
	cfgPath := SetupTestConfig(t, tmpDir)

	content, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	content = append(content, []byte("openai:\n  api_key: fake-key-for-testing\n  model: gpt-4o-mini\n")...)
	require.NoError(t, os.WriteFile(cfgPath, content, 0644))
	return cfgPath
}

// RecordOption configures the persisted record created by CreateRecord.
type RecordOption func(*recordConfig)

type recordConfig struct {
	profile   *tracker.Profile
	tasksDate tracker.Date
	tasks     []tracker.Task
	history   []tracker.HistoryEntry
}

// WithProfile stores profile instead of the default one.
func WithProfile(profile tracker.Profile) RecordOption {
	return func(c *recordConfig) {
		c.profile = &profile
	}
}

// WithoutProfile creates a record the onboarding has not been completed for.
func WithoutProfile() RecordOption {
	return func(c *recordConfig) {
		c.profile = nil
	}
}

func WithTasks(date tracker.Date, tasks ...tracker.Task) RecordOption {
	return func(c *recordConfig) {
		c.tasksDate = date
		c.tasks = tasks
	}
}

func WithHistory(entries ...tracker.HistoryEntry) RecordOption {
	return func(c *recordConfig) {
		c.history = entries
	}
}

// DefaultProfile is a learner who was onboarded on today and has not finalized any day.
func DefaultProfile(today tracker.Date) tracker.Profile {
	return tracker.NewProfile(7, today.AddDays(30), 60, tracker.SkillWriting, today)
}

// CreateRecord writes a study record into dataFile through the file repository.
// Without options, the record holds DefaultProfile for today and nothing else.
func CreateRecord(t *testing.T, dataFile string, today tracker.Date, opts ...RecordOption) {
	t.Helper()

	profile := DefaultProfile(today)
	cfg := &recordConfig{profile: &profile}
	for _, opt := range opts {
		opt(cfg)
	}

	repo, err := store.NewFileRepository(dataFile)
	require.NoError(t, err)

	ctx := context.Background()
	if cfg.profile != nil {
		require.NoError(t, repo.SaveProfile(ctx, *cfg.profile))
	}
	if len(cfg.tasks) > 0 {
		require.NoError(t, repo.SaveTasks(ctx, cfg.tasksDate, cfg.tasks))
	}
	for _, entry := range cfg.history {
		require.NoError(t, repo.SaveHistoryEntry(ctx, entry))
	}
}

// Date is a shorthand for tracker.NewDate in tables.
func Date(year int, month time.Month, day int) tracker.Date {
	return tracker.NewDate(year, month, day)
}
