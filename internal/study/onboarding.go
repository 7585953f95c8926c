package study

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/at-ishikawa/momentum/internal/tracker"
)

// OnboardingInput is what the learner enters before the first visit.
type OnboardingInput struct {
	TargetScore  float64 `json:"target_score" validate:"min=0,max=9"`
	ExamDate     string  `json:"exam_date" validate:"required,datetime=2006-01-02"`
	DailyMinutes int     `json:"daily_minutes" validate:"min=15,max=300"`
	WeakestSkill string  `json:"weakest_skill" validate:"oneof=Reading Writing Listening Speaking"`
}

// ValidationError lists every invalid field of an input.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Messages, ", ")
}

type inputValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

var onboardingValidator = mustNewInputValidator()

func mustNewInputValidator() inputValidator {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		panic(fmt.Errorf("enTranslations.RegisterDefaultTranslations() > %w", err))
	}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	return inputValidator{
		validate:   validate,
		translator: trans,
	}
}

func (input OnboardingInput) validate(today tracker.Date) (tracker.Date, tracker.Skill, error) {
	if err := onboardingValidator.validate.Struct(input); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return tracker.Date{}, "", fmt.Errorf("validate.Struct() > %w", err)
		}
		messages := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			messages = append(messages, e.Translate(onboardingValidator.translator))
		}
		return tracker.Date{}, "", &ValidationError{Messages: messages}
	}

	examDate, err := tracker.ParseDate(input.ExamDate)
	if err != nil {
		return tracker.Date{}, "", &ValidationError{Messages: []string{err.Error()}}
	}
	if examDate.Before(today) {
		return tracker.Date{}, "", &ValidationError{Messages: []string{
			fmt.Sprintf("exam_date must be today (%s) or later", today),
		}}
	}
	skill, err := tracker.ParseSkill(input.WeakestSkill)
	if err != nil {
		return tracker.Date{}, "", &ValidationError{Messages: []string{err.Error()}}
	}
	return examDate, skill, nil
}
