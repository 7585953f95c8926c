package tracker

import "github.com/samber/lo"

const (
	momentumPerTask   = 5
	allCompletedBonus = 10
)

// FinalizeSession closes the study day: it rewards completed tasks, extends the streak and unlocks badges.
// The returned entry is the history record for today.
func FinalizeSession(p *Profile, tasks []Task, today Date) HistoryEntry {
	completed := lo.Filter(tasks, func(t Task, _ int) bool {
		return t.Completed
	})
	count := len(completed)
	total := len(tasks)
	completedAll := total > 0 && count == total

	gain := count * momentumPerTask
	if completedAll {
		gain += allCompletedBonus
	}
	p.MomentumScore = UpdateMomentumScore(p.MomentumScore, gain)

	p.CurrentStreak++
	if p.CurrentStreak > p.MaxStreak {
		p.MaxStreak = p.CurrentStreak
	}

	skillsImproved := make(map[Skill]int)
	for _, t := range completed {
		skillsImproved[t.Skill]++
	}

	newBadges := CheckForBadges(p, completedAll)

	return HistoryEntry{
		Date:           today.String(),
		CompletedCount: count,
		TotalCount:     total,
		MomentumGained: gain,
		SkillsImproved: skillsImproved,
		NewStreak:      p.CurrentStreak,
		NewBadges:      newBadges,
	}
}
