package statistics

import (
	"sort"

	"github.com/at-ishikawa/momentum/internal/tracker"
)

// SkillProgressPoint is the running total of completed tasks per skill as of Date
type SkillProgressPoint struct {
	Date   tracker.Date          `json:"date"`
	Totals map[tracker.Skill]int `json:"totals"`
}

// SkillProgress builds the cumulative completed-task series per skill, oldest first.
// Every skill in tracker.Skills appears in every point, starting at zero.
func SkillProgress(history []tracker.HistoryEntry) []SkillProgressPoint {
	type datedEntry struct {
		date  tracker.Date
		entry tracker.HistoryEntry
	}

	entries := make([]datedEntry, 0, len(history))
	for _, entry := range history {
		date, err := tracker.ParseDate(entry.Date)
		if err != nil {
			continue
		}
		entries = append(entries, datedEntry{date: date, entry: entry})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].date.Before(entries[j].date)
	})

	current := make(map[tracker.Skill]int, len(tracker.Skills))
	for _, skill := range tracker.Skills {
		current[skill] = 0
	}

	points := make([]SkillProgressPoint, 0, len(entries))
	for _, e := range entries {
		for skill, count := range e.entry.SkillsImproved {
			if _, ok := current[skill]; ok {
				current[skill] += count
			}
		}

		totals := make(map[tracker.Skill]int, len(current))
		for skill, total := range current {
			totals[skill] = total
		}
		points = append(points, SkillProgressPoint{
			Date:   e.date,
			Totals: totals,
		})
	}
	return points
}

// SkillTotals returns the all-time completed tasks per skill.
func SkillTotals(history []tracker.HistoryEntry) map[tracker.Skill]int {
	points := SkillProgress(history)
	if len(points) == 0 {
		totals := make(map[tracker.Skill]int, len(tracker.Skills))
		for _, skill := range tracker.Skills {
			totals[skill] = 0
		}
		return totals
	}
	return points[len(points)-1].Totals
}
