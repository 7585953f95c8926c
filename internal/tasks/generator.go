// Package tasks picks the daily practice tasks from a fixed catalog.
package tasks

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/samber/lo"

	"github.com/at-ishikawa/momentum/internal/tracker"
)

// DailyTaskCount is the number of tasks in a day's list.
const DailyTaskCount = 3

var ErrCatalogTooSmall = errors.New("catalog has too few distinct tasks")

// Template is a catalog entry that a daily task is created from.
type Template struct {
	Description string
	Minutes     int
}

// Catalog maps each skill to its practice templates.
type Catalog map[tracker.Skill][]Template

// DefaultCatalog returns the built-in catalog with four templates per skill.
func DefaultCatalog() Catalog {
	return Catalog{
		tracker.SkillReading: {
			{Description: "Solve 10 passages", Minutes: 40},
			{Description: "Read 2 academic articles", Minutes: 30},
			{Description: "Complete 1 full mock test section", Minutes: 60},
			{Description: "Speed read 5 pages", Minutes: 15},
		},
		tracker.SkillWriting: {
			{Description: "Write Task 1 (150 words)", Minutes: 20},
			{Description: "Write Task 2 (250 words)", Minutes: 40},
			{Description: "Review grammar rules", Minutes: 15},
			{Description: "Paraphrase 5 sentences", Minutes: 10},
		},
		tracker.SkillListening: {
			{Description: "Practice audio quiz", Minutes: 30},
			{Description: "Listen to a TED Talk", Minutes: 15},
			{Description: "Transcribe 2 mins of audio", Minutes: 20},
			{Description: "Full Listening Mock Test", Minutes: 40},
		},
		tracker.SkillSpeaking: {
			{Description: "Record 2 minute speech", Minutes: 10},
			{Description: "Practice Part 1 questions", Minutes: 15},
			{Description: "Describe a picture", Minutes: 5},
			{Description: "Shadowing exercise", Minutes: 20},
		},
	}
}

// Generator selects the same tasks for the same calendar date.
type Generator struct {
	catalog Catalog
	skills  []tracker.Skill
}

// NewGenerator validates the catalog. Skills are drawn in tracker.Skills order, so
// a catalog may only use those skills.
func NewGenerator(catalog Catalog) (*Generator, error) {
	var descriptions []string
	skills := make([]tracker.Skill, 0, len(catalog))
	for _, skill := range tracker.Skills {
		templates, ok := catalog[skill]
		if !ok || len(templates) == 0 {
			continue
		}
		for _, t := range templates {
			if t.Minutes <= 0 {
				return nil, fmt.Errorf("template %q of %s has a non-positive time %d", t.Description, skill, t.Minutes)
			}
			descriptions = append(descriptions, t.Description)
		}
		skills = append(skills, skill)
	}
	if len(catalog) != len(skills) {
		return nil, fmt.Errorf("catalog contains unknown or empty skills: %v", lo.Keys(catalog))
	}
	if distinct := len(lo.Uniq(descriptions)); distinct < DailyTaskCount {
		return nil, fmt.Errorf("%w: %d distinct descriptions, need %d", ErrCatalogTooSmall, distinct, DailyTaskCount)
	}

	return &Generator{
		catalog: catalog,
		skills:  skills,
	}, nil
}

// NewDefaultGenerator returns a generator over DefaultCatalog.
func NewDefaultGenerator() *Generator {
	generator, err := NewGenerator(DefaultCatalog())
	if err != nil {
		panic(fmt.Errorf("NewGenerator(DefaultCatalog()) > %w", err))
	}
	return generator
}

// Generate returns today's tasks. The first one practices the weakest skill, the others are drawn
// from every skill without repeating a description. The date's ordinal seeds the selection.
func (g *Generator) Generate(weakest tracker.Skill, today tracker.Date) []tracker.Task {
	seed := uint64(today.Ordinal())
	random := rand.New(rand.NewPCG(seed, seed))

	tasks := make([]tracker.Task, 0, DailyTaskCount)
	if pool, ok := g.catalog[weakest]; ok && len(pool) > 0 {
		t := pool[random.IntN(len(pool))]
		tasks = append(tasks, newTask(weakest, t))
	}

	for len(tasks) < DailyTaskCount {
		skill := g.skills[random.IntN(len(g.skills))]
		pool := g.catalog[skill]
		t := pool[random.IntN(len(pool))]

		if lo.ContainsBy(tasks, func(existing tracker.Task) bool {
			return existing.Description == t.Description
		}) {
			continue
		}
		tasks = append(tasks, newTask(skill, t))
	}
	return tasks
}

func newTask(skill tracker.Skill, t Template) tracker.Task {
	return tracker.Task{
		Skill:       skill,
		Description: t.Description,
		Minutes:     t.Minutes,
		Completed:   false,
	}
}
