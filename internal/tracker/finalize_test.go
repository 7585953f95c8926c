package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTasks(completed ...bool) []Task {
	skills := []Skill{SkillReading, SkillWriting, SkillReading}
	tasks := make([]Task, len(completed))
	for i, c := range completed {
		tasks[i] = Task{
			Skill:       skills[i%len(skills)],
			Description: string(skills[i%len(skills)]) + " task",
			Minutes:     10,
			Completed:   c,
		}
	}
	return tasks
}

func badgeIDs(badges []Badge) []string {
	ids := make([]string, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestFinalizeSession(t *testing.T) {
	today := NewDate(2025, time.March, 10)

	tests := []struct {
		name          string
		profile       Profile
		tasks         []Task
		wantScore     int
		wantStreak    int
		wantMaxStreak int
		want          HistoryEntry
	}{
		{
			name:          "all tasks completed earns the bonus",
			profile:       Profile{MomentumScore: 10, CurrentStreak: 0, Badges: []string{}},
			tasks:         newTasks(true, true, true),
			wantScore:     35,
			wantStreak:    1,
			wantMaxStreak: 1,
			want: HistoryEntry{
				Date:           "2025-03-10",
				CompletedCount: 3,
				TotalCount:     3,
				MomentumGained: 25,
				SkillsImproved: map[Skill]int{SkillReading: 2, SkillWriting: 1},
				NewStreak:      1,
				NewBadges:      []Badge{mustBadge(t, BadgePerfectDay)},
			},
		},
		{
			name:          "no tasks completed still extends the streak",
			profile:       Profile{MomentumScore: 10, CurrentStreak: 1, MaxStreak: 5, Badges: []string{}},
			tasks:         newTasks(false, false, false),
			wantScore:     10,
			wantStreak:    2,
			wantMaxStreak: 5,
			want: HistoryEntry{
				Date:           "2025-03-10",
				CompletedCount: 0,
				TotalCount:     3,
				MomentumGained: 0,
				SkillsImproved: map[Skill]int{},
				NewStreak:      2,
				NewBadges:      []Badge{},
			},
		},
		{
			name:          "partial completion",
			profile:       Profile{MomentumScore: 10, CurrentStreak: 2, MaxStreak: 2, Badges: []string{}},
			tasks:         newTasks(true, false, true),
			wantScore:     20,
			wantStreak:    3,
			wantMaxStreak: 3,
			want: HistoryEntry{
				Date:           "2025-03-10",
				CompletedCount: 2,
				TotalCount:     3,
				MomentumGained: 10,
				SkillsImproved: map[Skill]int{SkillReading: 2},
				NewStreak:      3,
				NewBadges:      []Badge{mustBadge(t, BadgeStreak3)},
			},
		},
		{
			name:          "empty task list is not a perfect day",
			profile:       Profile{MomentumScore: 0, Badges: []string{}},
			tasks:         []Task{},
			wantScore:     0,
			wantStreak:    1,
			wantMaxStreak: 1,
			want: HistoryEntry{
				Date:           "2025-03-10",
				SkillsImproved: map[Skill]int{},
				NewStreak:      1,
				NewBadges:      []Badge{},
			},
		},
		{
			name:          "score is clamped and several badges unlock at once",
			profile:       Profile{MomentumScore: 95, CurrentStreak: 6, MaxStreak: 6, Badges: []string{BadgeStreak3}},
			tasks:         newTasks(true, true, true),
			wantScore:     100,
			wantStreak:    7,
			wantMaxStreak: 7,
			want: HistoryEntry{
				Date:           "2025-03-10",
				CompletedCount: 3,
				TotalCount:     3,
				MomentumGained: 25,
				SkillsImproved: map[Skill]int{SkillReading: 2, SkillWriting: 1},
				NewStreak:      7,
				NewBadges: []Badge{
					mustBadge(t, BadgeStreak7),
					mustBadge(t, BadgeMomentum50),
					mustBadge(t, BadgeMomentum100),
					mustBadge(t, BadgePerfectDay),
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := tt.profile
			got := FinalizeSession(&profile, tt.tasks, today)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantScore, profile.MomentumScore)
			assert.Equal(t, tt.wantStreak, profile.CurrentStreak)
			assert.Equal(t, tt.wantMaxStreak, profile.MaxStreak)
		})
	}
}

func TestFinalizeSession_BadgesAreNotUnlockedTwice(t *testing.T) {
	today := NewDate(2025, time.March, 10)
	profile := Profile{MomentumScore: 45, CurrentStreak: 2, Badges: []string{}}

	first := FinalizeSession(&profile, newTasks(true, true, true), today)
	assert.Equal(t, []string{BadgeStreak3, BadgeMomentum50, BadgePerfectDay}, badgeIDs(first.NewBadges))

	second := FinalizeSession(&profile, newTasks(true, true, true), today.AddDays(1))
	assert.Empty(t, second.NewBadges)
	assert.Equal(t, []string{BadgeStreak3, BadgeMomentum50, BadgePerfectDay}, profile.Badges)
}

func mustBadge(t *testing.T, id string) Badge {
	t.Helper()
	b, ok := BadgeByID(id)
	require.True(t, ok, "badge %s", id)
	return b
}
