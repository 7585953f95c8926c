package tracker

type Badge struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"desc" yaml:"desc"`
}

const (
	BadgeStreak3     = "streak_3"
	BadgeStreak7     = "streak_7"
	BadgeMomentum50  = "momentum_50"
	BadgeMomentum100 = "momentum_100"
	BadgePerfectDay  = "perfect_day"
)

type badgeRule struct {
	badge  Badge
	unlock func(p *Profile, completedAll bool) bool
}

// badgeRules are evaluated in order, which is also the order of newly unlocked badges.
var badgeRules = []badgeRule{
	{
		badge: Badge{ID: BadgeStreak3, Name: "🔥 3 Day Streak", Description: "Completed tasks for 3 consecutive days"},
		unlock: func(p *Profile, _ bool) bool {
			return p.CurrentStreak >= 3
		},
	},
	{
		badge: Badge{ID: BadgeStreak7, Name: "🚀 7 Day Streak", Description: "Completed tasks for 7 consecutive days"},
		unlock: func(p *Profile, _ bool) bool {
			return p.CurrentStreak >= 7
		},
	},
	{
		badge: Badge{ID: BadgeMomentum50, Name: "⭐ Momentum Builder", Description: "Reached a momentum score of 50"},
		unlock: func(p *Profile, _ bool) bool {
			return p.MomentumScore >= 50
		},
	},
	{
		badge: Badge{ID: BadgeMomentum100, Name: "👑 Momentum Master", Description: "Reached a momentum score of 100"},
		unlock: func(p *Profile, _ bool) bool {
			return p.MomentumScore >= 100
		},
	},
	{
		badge: Badge{ID: BadgePerfectDay, Name: "✅ Perfect Day", Description: "Completed all daily tasks"},
		unlock: func(_ *Profile, completedAll bool) bool {
			return completedAll
		},
	},
}

// BadgeCatalog returns every badge definition in evaluation order.
func BadgeCatalog() []Badge {
	badges := make([]Badge, 0, len(badgeRules))
	for _, rule := range badgeRules {
		badges = append(badges, rule.badge)
	}
	return badges
}

// BadgeByID looks up a badge definition.
func BadgeByID(id string) (Badge, bool) {
	for _, rule := range badgeRules {
		if rule.badge.ID == id {
			return rule.badge, true
		}
	}
	return Badge{}, false
}

// CheckForBadges unlocks every badge whose condition holds and that the profile does not own yet.
// completedAll must only be true for a non-empty task list that is fully completed.
func CheckForBadges(p *Profile, completedAll bool) []Badge {
	newBadges := make([]Badge, 0)
	for _, rule := range badgeRules {
		if !rule.unlock(p, completedAll) || p.HasBadge(rule.badge.ID) {
			continue
		}
		p.Badges = append(p.Badges, rule.badge.ID)
		newBadges = append(newBadges, rule.badge)
	}
	return newBadges
}
