// Package study runs a learner's day: the visit check-in, the task list and the end-of-day finalization.
package study

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/at-ishikawa/momentum/internal/inference"
	"github.com/at-ishikawa/momentum/internal/statistics"
	"github.com/at-ishikawa/momentum/internal/store"
	"github.com/at-ishikawa/momentum/internal/tasks"
	"github.com/at-ishikawa/momentum/internal/tracker"
)

var (
	ErrNoProfile           = errors.New("no profile found, complete the onboarding first")
	ErrProfileExists       = errors.New("a profile already exists")
	ErrTaskIndexOutOfRange = errors.New("task index is out of range")
)

// Dashboard is everything shown after a visit.
type Dashboard struct {
	Today          tracker.Date           `json:"today"`
	Profile        tracker.Profile        `json:"profile"`
	CheckIn        tracker.CheckInResult  `json:"check_in"`
	Tasks          []tracker.Task         `json:"tasks"`
	Weekly         statistics.WeeklyStats `json:"weekly"`
	Badges         []tracker.Badge        `json:"badges"`
	DaysUntilExam  *int                   `json:"days_until_exam"`
	FinalizedToday bool                   `json:"finalized_today"`
}

// CompletedTasks counts the completed tasks of today's list.
func (d Dashboard) CompletedTasks() int {
	completed := 0
	for _, task := range d.Tasks {
		if task.Completed {
			completed++
		}
	}
	return completed
}

// BuddyRequest describes the day to the study buddy.
func (d Dashboard) BuddyRequest() inference.EncourageRequest {
	return inference.EncourageRequest{
		WeakestSkill:   string(d.Profile.WeakestSkill),
		MomentumScore:  d.Profile.MomentumScore,
		CurrentStreak:  d.Profile.CurrentStreak,
		CompletedTasks: d.CompletedTasks(),
		TotalTasks:     len(d.Tasks),
		DaysUntilExam:  d.DaysUntilExam,
	}
}

// BadgeStatus is a catalog badge and whether the learner has it.
type BadgeStatus struct {
	tracker.Badge
	Unlocked bool `json:"unlocked"`
}

// Service serializes every read-modify-write of the record.
type Service struct {
	repo      store.Repository
	generator *tasks.Generator
	mu        sync.Mutex
}

func NewService(repo store.Repository, generator *tasks.Generator) *Service {
	return &Service{
		repo:      repo,
		generator: generator,
	}
}

// Onboard creates the profile. It fails with ErrProfileExists when one is stored.
func (s *Service) Onboard(ctx context.Context, input OnboardingInput, today tracker.Date) (*tracker.Profile, error) {
	examDate, skill, err := input.validate(today)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.repo.LoadProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.LoadProfile() > %w", err)
	}
	if existing != nil {
		return nil, ErrProfileExists
	}

	profile := tracker.NewProfile(input.TargetScore, examDate, input.DailyMinutes, skill, today)
	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("repo.SaveProfile() > %w", err)
	}
	slog.Default().Info("profile created",
		"target_score", profile.TargetScore,
		"exam_date", profile.ExamDate,
		"weakest_skill", profile.WeakestSkill,
	)
	return &profile, nil
}

// Visit checks in for today and returns the dashboard.
// The profile is saved only when the check-in changed it, and today's tasks are generated once.
func (s *Service) Visit(ctx context.Context, today tracker.Date) (*Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.loadProfile(ctx)
	if err != nil {
		return nil, err
	}

	result, err := s.checkIn(ctx, profile, today)
	if err != nil {
		return nil, err
	}

	todayTasks, err := s.ensureTasks(ctx, profile, today)
	if err != nil {
		return nil, err
	}
	history, err := s.repo.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.LoadHistory() > %w", err)
	}

	dashboard := &Dashboard{
		Today:   today,
		Profile: *profile,
		CheckIn: result,
		Tasks:   todayTasks,
		Weekly:  statistics.Weekly(history, today),
		Badges:  unlockedBadges(*profile),
	}
	if days, ok := profile.DaysUntilExam(today); ok {
		dashboard.DaysUntilExam = &days
	}
	for _, entry := range history {
		if entry.Date == today.String() {
			dashboard.FinalizedToday = true
			break
		}
	}
	return dashboard, nil
}

// SetTaskCompleted marks the task at the 0-based index of today's list.
func (s *Service) SetTaskCompleted(ctx context.Context, today tracker.Date, index int, completed bool) ([]tracker.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.loadProfile(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.checkIn(ctx, profile, today); err != nil {
		return nil, err
	}
	todayTasks, err := s.ensureTasks(ctx, profile, today)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(todayTasks) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrTaskIndexOutOfRange, index, len(todayTasks))
	}
	if todayTasks[index].Completed == completed {
		return todayTasks, nil
	}

	todayTasks[index].Completed = completed
	if err := s.repo.SaveTasks(ctx, today, todayTasks); err != nil {
		return nil, fmt.Errorf("repo.SaveTasks() > %w", err)
	}
	return todayTasks, nil
}

// Finalize scores today's tasks and records the day in the history.
func (s *Service) Finalize(ctx context.Context, today tracker.Date) (*tracker.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, err := s.loadProfile(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.checkIn(ctx, profile, today); err != nil {
		return nil, err
	}
	todayTasks, err := s.ensureTasks(ctx, profile, today)
	if err != nil {
		return nil, err
	}

	entry := tracker.FinalizeSession(profile, todayTasks, today)
	if err := s.repo.SaveProfile(ctx, *profile); err != nil {
		return nil, fmt.Errorf("repo.SaveProfile() > %w", err)
	}
	if err := s.repo.SaveHistoryEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("repo.SaveHistoryEntry() > %w", err)
	}
	slog.Default().Info("day finalized",
		"date", entry.Date,
		"completed", entry.CompletedCount,
		"momentum_gained", entry.MomentumGained,
		"new_streak", entry.NewStreak,
		"new_badges", len(entry.NewBadges),
	)
	return &entry, nil
}

// Weekly returns the statistics of the last seven days.
func (s *Service) Weekly(ctx context.Context, today tracker.Date) (statistics.WeeklyStats, error) {
	history, err := s.History(ctx)
	if err != nil {
		return statistics.WeeklyStats{}, err
	}
	return statistics.Weekly(history, today), nil
}

// Progress returns the cumulative completed tasks per skill by date.
func (s *Service) Progress(ctx context.Context) ([]statistics.SkillProgressPoint, error) {
	history, err := s.History(ctx)
	if err != nil {
		return nil, err
	}
	return statistics.SkillProgress(history), nil
}

func (s *Service) History(ctx context.Context) ([]tracker.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.repo.LoadHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.LoadHistory() > %w", err)
	}
	return history, nil
}

// Profile returns the stored profile without checking in.
func (s *Service) Profile(ctx context.Context) (*tracker.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadProfile(ctx)
}

// Badges lists the whole catalog with the unlocked state.
func (s *Service) Badges(ctx context.Context) ([]BadgeStatus, error) {
	profile, err := s.Profile(ctx)
	if err != nil {
		return nil, err
	}

	catalog := tracker.BadgeCatalog()
	statuses := make([]BadgeStatus, 0, len(catalog))
	for _, badge := range catalog {
		statuses = append(statuses, BadgeStatus{
			Badge:    badge,
			Unlocked: profile.HasBadge(badge.ID),
		})
	}
	return statuses, nil
}

func (s *Service) loadProfile(ctx context.Context) (*tracker.Profile, error) {
	profile, err := s.repo.LoadProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("repo.LoadProfile() > %w", err)
	}
	if profile == nil {
		return nil, ErrNoProfile
	}
	return profile, nil
}

// checkIn applies today's check-in to profile and saves it when it changed.
// Every operation on a day checks in before touching tasks or the history.
func (s *Service) checkIn(ctx context.Context, profile *tracker.Profile, today tracker.Date) (tracker.CheckInResult, error) {
	result := tracker.ProcessCheckIn(profile, today)
	slog.Default().Debug("checked in",
		"today", today,
		"penalty", result.Penalty,
		"skips_used", result.SkipsUsed,
		"skips_replenished", result.SkipsReplenished,
	)
	if result.Changed() {
		if err := s.repo.SaveProfile(ctx, *profile); err != nil {
			return result, fmt.Errorf("repo.SaveProfile() > %w", err)
		}
	}
	return result, nil
}

// ensureTasks returns today's saved tasks, generating and saving them on the first call of the day.
func (s *Service) ensureTasks(ctx context.Context, profile *tracker.Profile, today tracker.Date) ([]tracker.Task, error) {
	saved, err := s.repo.LoadTasks(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("repo.LoadTasks() > %w", err)
	}
	if len(saved) > 0 {
		return saved, nil
	}

	generated := s.generator.Generate(profile.WeakestSkill, today)
	if err := s.repo.SaveTasks(ctx, today, generated); err != nil {
		return nil, fmt.Errorf("repo.SaveTasks() > %w", err)
	}
	slog.Default().Debug("generated today's tasks", "today", today, "count", len(generated))
	return generated, nil
}

func unlockedBadges(profile tracker.Profile) []tracker.Badge {
	badges := make([]tracker.Badge, 0, len(profile.Badges))
	for _, id := range profile.Badges {
		if badge, ok := tracker.BadgeByID(id); ok {
			badges = append(badges, badge)
		}
	}
	return badges
}
