// Package statistics aggregates the finalized-day history for dashboards and reports.
package statistics

import (
	"github.com/at-ishikawa/momentum/internal/tracker"
)

const weekDays = 7

// WeeklyStats holds totals over the last seven days, today included
type WeeklyStats struct {
	WeeklyTasks int                   `json:"weekly_tasks"`
	ActiveDays  int                   `json:"active_days"`
	SkillGains  map[tracker.Skill]int `json:"skill_gains"`
}

// Weekly aggregates history entries dated in (today-7, today].
// Entries with a missing or malformed date are skipped.
func Weekly(history []tracker.HistoryEntry, today tracker.Date) WeeklyStats {
	lastWeek := today.AddDays(-weekDays)

	stats := WeeklyStats{
		SkillGains: make(map[tracker.Skill]int),
	}
	for _, entry := range history {
		entryDate, err := tracker.ParseDate(entry.Date)
		if err != nil {
			continue
		}
		if !entryDate.After(lastWeek) || entryDate.After(today) {
			continue
		}

		stats.WeeklyTasks += entry.CompletedCount
		stats.ActiveDays++
		for skill, count := range entry.SkillsImproved {
			stats.SkillGains[skill] += count
		}
	}
	return stats
}
