package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/momentum/internal/tracker"
)

func TestNewFileRepository(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "json", path: "study_data.json"},
		{name: "yaml", path: "study_data.yaml"},
		{name: "yml in upper case", path: "STUDY.YML"},
		{name: "unsupported extension", path: "study_data.toml", wantErr: true},
		{name: "no extension", path: "study_data", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFileRepository(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.path, got.Path())
		})
	}
}

func TestFileRepository_EmptyRecord(t *testing.T) {
	repo, err := NewFileRepository(filepath.Join(t.TempDir(), "missing", "study_data.json"))
	require.NoError(t, err)
	ctx := context.Background()

	profile, err := repo.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)

	tasks, err := repo.LoadTasks(ctx, tracker.NewDate(2025, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, []tracker.Task{}, tasks)

	history, err := repo.LoadHistory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []tracker.HistoryEntry{}, history)
}

func TestFileRepository_RoundTrip(t *testing.T) {
	today := tracker.NewDate(2025, time.March, 10)
	profile := tracker.Profile{
		TargetScore:   7.5,
		ExamDate:      "2025-06-01",
		DailyMinutes:  60,
		WeakestSkill:  tracker.SkillWriting,
		MomentumScore: 42,
		LastCheckIn:   "2025-03-10",
		CurrentStreak: 4,
		MaxStreak:     6,
		SkipsLeft:     2,
		LastSkipGrant: "2025-03-05",
		Badges:        []string{tracker.BadgeStreak3},
	}
	tasks := []tracker.Task{
		{Skill: tracker.SkillWriting, Description: "Write Task 1 (150 words)", Minutes: 20, Completed: true},
		{Skill: tracker.SkillReading, Description: "Speed read 5 pages", Minutes: 15},
		{Skill: tracker.SkillSpeaking, Description: "Describe a picture", Minutes: 5},
	}

	for _, fileName := range []string{"study_data.json", "study_data.yml"} {
		t.Run(fileName, func(t *testing.T) {
			repo, err := NewFileRepository(filepath.Join(t.TempDir(), fileName))
			require.NoError(t, err)
			ctx := context.Background()

			require.NoError(t, repo.SaveProfile(ctx, profile))
			require.NoError(t, repo.SaveTasks(ctx, today, tasks))
			require.NoError(t, repo.SaveHistoryEntry(ctx, tracker.HistoryEntry{
				Date:           "2025-03-09",
				CompletedCount: 1,
				TotalCount:     3,
				MomentumGained: 5,
				SkillsImproved: map[tracker.Skill]int{tracker.SkillReading: 1},
				NewStreak:      3,
				NewBadges:      []tracker.Badge{},
			}))
			entry := tracker.HistoryEntry{
				Date:           "2025-03-10",
				CompletedCount: 1,
				TotalCount:     3,
				MomentumGained: 5,
				SkillsImproved: map[tracker.Skill]int{tracker.SkillWriting: 1},
				NewStreak:      4,
				NewBadges:      []tracker.Badge{},
			}
			require.NoError(t, repo.SaveHistoryEntry(ctx, entry))
			entry.CompletedCount = 3
			entry.MomentumGained = 25
			entry.SkillsImproved = map[tracker.Skill]int{tracker.SkillWriting: 1, tracker.SkillReading: 1, tracker.SkillSpeaking: 1}
			require.NoError(t, repo.SaveHistoryEntry(ctx, entry))

			gotProfile, err := repo.LoadProfile(ctx)
			require.NoError(t, err)
			require.NotNil(t, gotProfile)
			assert.Equal(t, profile, *gotProfile)

			gotTasks, err := repo.LoadTasks(ctx, today)
			require.NoError(t, err)
			assert.Equal(t, tasks, gotTasks)

			otherDayTasks, err := repo.LoadTasks(ctx, today.AddDays(1))
			require.NoError(t, err)
			assert.Empty(t, otherDayTasks)

			history, err := repo.LoadHistory(ctx)
			require.NoError(t, err)
			require.Len(t, history, 2)
			assert.Equal(t, "2025-03-09", history[0].Date)
			assert.Equal(t, entry, history[1])
		})
	}
}

func TestFileRepository_JSONLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study_data.json")
	repo, err := NewFileRepository(path)
	require.NoError(t, err)

	today := tracker.NewDate(2025, time.March, 10)
	require.NoError(t, repo.SaveProfile(context.Background(), tracker.NewProfile(7, today.AddDays(30), 60, tracker.SkillReading, today)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n    \"profile\": {\n        \"target_score\": 7,")
	assert.Contains(t, string(data), "\"history\": []")
}

func TestFileRepository_LoadProfile(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		content  string
		want     *tracker.Profile
	}{
		{
			name:     "missing optional fields take defaults",
			fileName: "study_data.json",
			content: `{
    "profile": {
        "target_score": 6.5,
        "exam_date": "2025-06-01",
        "daily_minutes": 45,
        "weakest_skill": "Listening",
        "favorite_color": "blue"
    },
    "history": []
}`,
			want: &tracker.Profile{
				TargetScore:  6.5,
				ExamDate:     "2025-06-01",
				DailyMinutes: 45,
				WeakestSkill: tracker.SkillListening,
				SkipsLeft:    1,
				Badges:       []string{},
			},
		},
		{
			name:     "zero values are kept",
			fileName: "study_data.yaml",
			content: `profile:
  target_score: 0
  exam_date: "2025-06-01"
  daily_minutes: 15
  weakest_skill: Speaking
  skips_left: 0
  badges: [streak_3]
`,
			want: &tracker.Profile{
				ExamDate:     "2025-06-01",
				DailyMinutes: 15,
				WeakestSkill: tracker.SkillSpeaking,
				Badges:       []string{tracker.BadgeStreak3},
			},
		},
		{
			name:     "missing required field",
			fileName: "study_data.json",
			content:  `{"profile": {"target_score": 7, "exam_date": "2025-06-01", "daily_minutes": 60}}`,
			want:     nil,
		},
		{
			name:     "null profile",
			fileName: "study_data.json",
			content:  `{"profile": null, "current_tasks": {"date": null, "items": []}, "history": []}`,
			want:     nil,
		},
		{
			name:     "corrupted file",
			fileName: "study_data.json",
			content:  `{"profile": {"target_score": `,
			want:     nil,
		},
		{
			name:     "empty file",
			fileName: "study_data.yml",
			content:  "",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.fileName)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			repo, err := NewFileRepository(path)
			require.NoError(t, err)

			got, err := repo.LoadProfile(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFileRepository_SaveAfterCorruptedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study_data.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	repo, err := NewFileRepository(path)
	require.NoError(t, err)
	ctx := context.Background()

	today := tracker.NewDate(2025, time.March, 10)
	profile := tracker.NewProfile(7, today.AddDays(30), 60, tracker.SkillReading, today)
	require.NoError(t, repo.SaveProfile(ctx, profile))

	got, err := repo.LoadProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, profile, *got)
}
