package store

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/at-ishikawa/momentum/internal/tracker"
)

// record is the document stored by FileRepository
type record struct {
	Profile      *profileDocument       `json:"profile" yaml:"profile"`
	CurrentTasks *taskList              `json:"current_tasks" yaml:"current_tasks"`
	History      []tracker.HistoryEntry `json:"history" yaml:"history"`
}

type taskList struct {
	Date  string         `json:"date" yaml:"date"`
	Items []tracker.Task `json:"items" yaml:"items"`
}

// profileDocument keeps track of which profile fields were present in the stored document.
type profileDocument struct {
	TargetScore   *float64       `json:"target_score" yaml:"target_score" validate:"required"`
	ExamDate      *string        `json:"exam_date" yaml:"exam_date" validate:"required"`
	DailyMinutes  *int           `json:"daily_minutes" yaml:"daily_minutes" validate:"required"`
	WeakestSkill  *tracker.Skill `json:"weakest_skill" yaml:"weakest_skill" validate:"required"`
	MomentumScore *int           `json:"momentum_score,omitempty" yaml:"momentum_score,omitempty"`
	LastCheckIn   *string        `json:"last_check_in,omitempty" yaml:"last_check_in,omitempty"`
	CurrentStreak *int           `json:"current_streak,omitempty" yaml:"current_streak,omitempty"`
	MaxStreak     *int           `json:"max_streak,omitempty" yaml:"max_streak,omitempty"`
	SkipsLeft     *int           `json:"skips_left,omitempty" yaml:"skips_left,omitempty"`
	LastSkipGrant *string        `json:"last_skip_grant,omitempty" yaml:"last_skip_grant,omitempty"`
	Badges        []string       `json:"badges" yaml:"badges"`
}

func newProfileDocument(p tracker.Profile) *profileDocument {
	badges := p.Badges
	if badges == nil {
		badges = []string{}
	}
	return &profileDocument{
		TargetScore:   &p.TargetScore,
		ExamDate:      &p.ExamDate,
		DailyMinutes:  &p.DailyMinutes,
		WeakestSkill:  &p.WeakestSkill,
		MomentumScore: &p.MomentumScore,
		LastCheckIn:   &p.LastCheckIn,
		CurrentStreak: &p.CurrentStreak,
		MaxStreak:     &p.MaxStreak,
		SkipsLeft:     &p.SkipsLeft,
		LastSkipGrant: &p.LastSkipGrant,
		Badges:        badges,
	}
}

// toProfile fills missing optional fields with the onboarding defaults.
// Missing dates stay empty; the next check-in repairs them.
func (doc profileDocument) toProfile() tracker.Profile {
	defaults := tracker.NewProfile(0, tracker.Date{}, 0, "", tracker.Date{})

	profile := tracker.Profile{
		TargetScore:   *doc.TargetScore,
		ExamDate:      *doc.ExamDate,
		DailyMinutes:  *doc.DailyMinutes,
		WeakestSkill:  *doc.WeakestSkill,
		MomentumScore: valueOr(doc.MomentumScore, defaults.MomentumScore),
		LastCheckIn:   valueOr(doc.LastCheckIn, ""),
		CurrentStreak: valueOr(doc.CurrentStreak, defaults.CurrentStreak),
		MaxStreak:     valueOr(doc.MaxStreak, defaults.MaxStreak),
		SkipsLeft:     valueOr(doc.SkipsLeft, defaults.SkipsLeft),
		LastSkipGrant: valueOr(doc.LastSkipGrant, ""),
		Badges:        doc.Badges,
	}
	if profile.Badges == nil {
		profile.Badges = []string{}
	}
	return profile
}

func valueOr[T any](value *T, fallback T) T {
	if value == nil {
		return fallback
	}
	return *value
}

var profileValidator = newProfileValidator()

func newProfileValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return validate
}

func validateProfileDocument(doc *profileDocument) error {
	if err := profileValidator.Struct(doc); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("profileValidator.Struct() > %w", err)
		}
		missing := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			missing = append(missing, e.Field())
		}
		return fmt.Errorf("profile is missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}
