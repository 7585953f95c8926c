package tracker

const (
	penaltyPerMissedDay = 3
	skipReplenishDays   = 7
)

// CheckInResult describes what a check-in did to the profile.
type CheckInResult struct {
	Penalty          int  `json:"penalty"`
	DaysMissed       int  `json:"days_missed"`
	SkipsUsed        int  `json:"skips_used"`
	ScoreUpdated     bool `json:"score_updated"`
	DateUpdated      bool `json:"date_updated"`
	OldScore         int  `json:"old_score"`
	NewScore         int  `json:"new_score"`
	StreakReset      bool `json:"streak_reset"`
	SkipsReplenished int  `json:"skips_replenished"`

	skipGrantReset bool
}

// Changed reports whether the profile was modified and needs to be saved.
func (r CheckInResult) Changed() bool {
	return r.ScoreUpdated || r.DateUpdated || r.SkipsReplenished > 0 || r.skipGrantReset
}

// SkippedPenalty returns the penalty for the days missed between lastCheckIn and today.
// Checking in on the next day is not a miss. An empty or malformed lastCheckIn has no penalty.
func SkippedPenalty(lastCheckIn string, today Date) int {
	if lastCheckIn == "" {
		return 0
	}
	last, err := ParseDate(lastCheckIn)
	if err != nil {
		return 0
	}
	diff := today.DaysSince(last)
	if diff <= 1 {
		return 0
	}
	return (diff - 1) * penaltyPerMissedDay
}

// ProcessCheckIn records a visit on today.
// It grants a weekly skip credit, then charges missed days since the last check-in either against
// skip credits or, when there are not enough of them, against the momentum score and the streak.
// A second call on the same date changes nothing except a due skip grant.
func ProcessCheckIn(p *Profile, today Date) CheckInResult {
	todayStr := today.String()

	result := CheckInResult{
		OldScore: p.MomentumScore,
		NewScore: p.MomentumScore,
	}

	lastGrant, err := ParseDate(p.LastSkipGrant)
	if err != nil {
		p.LastSkipGrant = todayStr
		result.skipGrantReset = true
	} else if today.DaysSince(lastGrant) >= skipReplenishDays {
		if p.SkipsLeft < MaxSkips {
			p.SkipsLeft++
			result.SkipsReplenished = 1
		}
		p.LastSkipGrant = todayStr
		result.skipGrantReset = true
	}

	if p.LastCheckIn == todayStr {
		return result
	}

	penalty := SkippedPenalty(p.LastCheckIn, today)
	if penalty > 0 {
		daysMissed := penalty / penaltyPerMissedDay
		result.Penalty = penalty
		result.DaysMissed = daysMissed

		if p.SkipsLeft >= daysMissed {
			p.SkipsLeft -= daysMissed
			result.SkipsUsed = daysMissed
			result.Penalty = 0
		} else {
			p.MomentumScore = UpdateMomentumScore(p.MomentumScore, -penalty)
			p.CurrentStreak = 0
			result.NewScore = p.MomentumScore
			result.ScoreUpdated = true
			result.StreakReset = true
		}
	}

	p.LastCheckIn = todayStr
	result.DateUpdated = true
	return result
}
