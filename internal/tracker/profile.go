// Package tracker implements the study momentum rules: daily check-ins with missed-day penalties and
// skip credits, end-of-day finalization with streaks, and badge unlocking.
package tracker

import (
	"fmt"
	"slices"
)

type Skill string

const (
	SkillReading   Skill = "Reading"
	SkillWriting   Skill = "Writing"
	SkillListening Skill = "Listening"
	SkillSpeaking  Skill = "Speaking"
)

// Skills lists every skill in display order.
var Skills = []Skill{SkillReading, SkillWriting, SkillListening, SkillSpeaking}

// ParseSkill accepts a skill name as written in Skills.
func ParseSkill(s string) (Skill, error) {
	for _, skill := range Skills {
		if string(skill) == s {
			return skill, nil
		}
	}
	return "", fmt.Errorf("unknown skill %q, valid values are %v", s, Skills)
}

const (
	MinMomentumScore = 0
	MaxMomentumScore = 100
	MaxSkips         = 3

	defaultSkipsLeft = 1
)

// Profile is the persistent state of the single learner.
type Profile struct {
	TargetScore   float64  `json:"target_score" yaml:"target_score"`
	ExamDate      string   `json:"exam_date" yaml:"exam_date"`
	DailyMinutes  int      `json:"daily_minutes" yaml:"daily_minutes"`
	WeakestSkill  Skill    `json:"weakest_skill" yaml:"weakest_skill"`
	MomentumScore int      `json:"momentum_score" yaml:"momentum_score"`
	LastCheckIn   string   `json:"last_check_in" yaml:"last_check_in"`
	CurrentStreak int      `json:"current_streak" yaml:"current_streak"`
	MaxStreak     int      `json:"max_streak" yaml:"max_streak"`
	SkipsLeft     int      `json:"skips_left" yaml:"skips_left"`
	LastSkipGrant string   `json:"last_skip_grant" yaml:"last_skip_grant"`
	Badges        []string `json:"badges" yaml:"badges"`
}

// NewProfile creates the profile written at onboarding.
func NewProfile(targetScore float64, examDate Date, dailyMinutes int, weakestSkill Skill, today Date) Profile {
	return Profile{
		TargetScore:   targetScore,
		ExamDate:      examDate.String(),
		DailyMinutes:  dailyMinutes,
		WeakestSkill:  weakestSkill,
		LastCheckIn:   today.String(),
		SkipsLeft:     defaultSkipsLeft,
		LastSkipGrant: today.String(),
		Badges:        []string{},
	}
}

func (p Profile) HasBadge(id string) bool {
	return slices.Contains(p.Badges, id)
}

// DaysUntilExam returns the days left until the exam date.
// ok is false when the exam date cannot be parsed.
func (p Profile) DaysUntilExam(today Date) (days int, ok bool) {
	exam, err := ParseDate(p.ExamDate)
	if err != nil {
		return 0, false
	}
	return exam.DaysSince(today), true
}

// Task is one practice item of a day's list.
type Task struct {
	Skill       Skill  `json:"skill" yaml:"skill"`
	Description string `json:"desc" yaml:"desc"`
	Minutes     int    `json:"time" yaml:"time"`
	Completed   bool   `json:"completed" yaml:"completed"`
}

// HistoryEntry summarizes one finalized day.
type HistoryEntry struct {
	Date           string        `json:"date" yaml:"date"`
	CompletedCount int           `json:"completed_count" yaml:"completed_count"`
	TotalCount     int           `json:"total_count" yaml:"total_count"`
	MomentumGained int           `json:"momentum_gained" yaml:"momentum_gained"`
	SkillsImproved map[Skill]int `json:"skills_improved" yaml:"skills_improved"`
	NewStreak      int           `json:"new_streak" yaml:"new_streak"`
	NewBadges      []Badge       `json:"new_badges" yaml:"new_badges"`
}

// UpdateMomentumScore applies delta to current and clamps the result to [0, 100].
func UpdateMomentumScore(current, delta int) int {
	return max(MinMomentumScore, min(MaxMomentumScore, current+delta))
}
