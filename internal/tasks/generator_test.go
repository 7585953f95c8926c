package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/momentum/internal/tracker"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	require.Len(t, catalog, len(tracker.Skills))
	total := 0
	for _, skill := range tracker.Skills {
		assert.Len(t, catalog[skill], 4, "skill %s", skill)
		total += len(catalog[skill])
	}
	assert.Equal(t, 16, total)
}

func TestGenerator_Generate(t *testing.T) {
	generator := NewDefaultGenerator()
	start := tracker.NewDate(2025, time.January, 1)

	for i := 0; i < 120; i++ {
		today := start.AddDays(i)
		for _, weakest := range tracker.Skills {
			got := generator.Generate(weakest, today)

			require.Len(t, got, DailyTaskCount, "date %s", today)
			assert.Equal(t, weakest, got[0].Skill, "first task practices the weakest skill")

			seen := make(map[string]struct{})
			for _, task := range got {
				_, duplicated := seen[task.Description]
				assert.False(t, duplicated, "duplicate %q on %s", task.Description, today)
				seen[task.Description] = struct{}{}

				assert.False(t, task.Completed)
				assert.Positive(t, task.Minutes)
				assert.Contains(t, descriptionsOf(DefaultCatalog()[task.Skill]), task.Description)
			}
		}
	}
}

func TestGenerator_Generate_IsDeterministicPerDate(t *testing.T) {
	generator := NewDefaultGenerator()
	today := tracker.NewDate(2025, time.March, 10)

	first := generator.Generate(tracker.SkillWriting, today)
	second := NewDefaultGenerator().Generate(tracker.SkillWriting, today)
	assert.Equal(t, first, second)

	differs := false
	for i := 1; i <= 30; i++ {
		if !assert.ObjectsAreEqual(first, generator.Generate(tracker.SkillWriting, today.AddDays(i))) {
			differs = true
			break
		}
	}
	assert.True(t, differs, "selection should change across dates")
}

func TestGenerator_Generate_UnknownWeakestSkill(t *testing.T) {
	got := NewDefaultGenerator().Generate(tracker.Skill("Grammar"), tracker.NewDate(2025, time.March, 10))

	require.Len(t, got, DailyTaskCount)
	assert.Len(t, uniqueDescriptions(got), DailyTaskCount)
}

func TestNewGenerator(t *testing.T) {
	tests := []struct {
		name      string
		catalog   Catalog
		wantErr   bool
		wantErrIs error
	}{
		{
			name: "exactly three distinct descriptions",
			catalog: Catalog{
				tracker.SkillReading: {{Description: "a", Minutes: 5}, {Description: "b", Minutes: 5}},
				tracker.SkillWriting: {{Description: "c", Minutes: 5}},
			},
		},
		{
			name: "duplicated descriptions do not count twice",
			catalog: Catalog{
				tracker.SkillReading: {{Description: "a", Minutes: 5}, {Description: "b", Minutes: 5}},
				tracker.SkillWriting: {{Description: "a", Minutes: 5}},
			},
			wantErr:   true,
			wantErrIs: ErrCatalogTooSmall,
		},
		{
			name: "non-positive time",
			catalog: Catalog{
				tracker.SkillReading: {{Description: "a", Minutes: 0}, {Description: "b", Minutes: 5}, {Description: "c", Minutes: 5}},
			},
			wantErr: true,
		},
		{
			name: "unknown skill",
			catalog: Catalog{
				tracker.SkillReading: {{Description: "a", Minutes: 5}, {Description: "b", Minutes: 5}, {Description: "c", Minutes: 5}},
				tracker.Skill("Grammar"): {{Description: "d", Minutes: 5}},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			generator, err := NewGenerator(tt.catalog)
			if tt.wantErr {
				require.Error(t, err)
				if tt.wantErrIs != nil {
					assert.ErrorIs(t, err, tt.wantErrIs)
				}
				return
			}
			require.NoError(t, err)

			got := generator.Generate(tracker.SkillReading, tracker.NewDate(2025, time.March, 10))
			assert.Len(t, uniqueDescriptions(got), DailyTaskCount)
		})
	}
}

func descriptionsOf(templates []Template) []string {
	descriptions := make([]string, 0, len(templates))
	for _, t := range templates {
		descriptions = append(descriptions, t.Description)
	}
	return descriptions
}

func uniqueDescriptions(tasks []tracker.Task) map[string]struct{} {
	unique := make(map[string]struct{})
	for _, task := range tasks {
		unique[task.Description] = struct{}{}
	}
	return unique
}
