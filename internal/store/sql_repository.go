package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/momentum/internal/tracker"
)

// the single learner's profile row
const profileID = 1

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type profileRow struct {
	ID            int64   `db:"id"`
	TargetScore   float64 `db:"target_score"`
	ExamDate      string  `db:"exam_date"`
	DailyMinutes  int     `db:"daily_minutes"`
	WeakestSkill  string  `db:"weakest_skill"`
	MomentumScore int     `db:"momentum_score"`
	LastCheckIn   string  `db:"last_check_in"`
	CurrentStreak int     `db:"current_streak"`
	MaxStreak     int     `db:"max_streak"`
	SkipsLeft     int     `db:"skips_left"`
	LastSkipGrant string  `db:"last_skip_grant"`
	Badges        string  `db:"badges"`
}

type taskRow struct {
	Position    int    `db:"position"`
	TaskDate    string `db:"task_date"`
	Skill       string `db:"skill"`
	Description string `db:"description"`
	Minutes     int    `db:"minutes"`
	Completed   bool   `db:"completed"`
}

type historyRow struct {
	EntryDate      string `db:"entry_date"`
	CompletedCount int    `db:"completed_count"`
	TotalCount     int    `db:"total_count"`
	MomentumGained int    `db:"momentum_gained"`
	SkillsImproved string `db:"skills_improved"`
	NewStreak      int    `db:"new_streak"`
	NewBadges      string `db:"new_badges"`
}

var (
	profileColumns = []string{
		"id", "target_score", "exam_date", "daily_minutes", "weakest_skill", "momentum_score",
		"last_check_in", "current_streak", "max_streak", "skips_left", "last_skip_grant", "badges",
	}
	taskColumns    = []string{"position", "task_date", "skill", "description", "minutes", "completed"}
	historyColumns = []string{
		"entry_date", "completed_count", "total_count", "momentum_gained", "skills_improved", "new_streak", "new_badges",
	}
)

// SQLRepository stores the record in the profiles, current_tasks and history tables.
type SQLRepository struct {
	db *sqlx.DB
}

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (repo *SQLRepository) LoadProfile(ctx context.Context) (*tracker.Profile, error) {
	query, args, err := sqlBuilder.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"id": profileID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("squirrel.ToSql() > %w", err)
	}

	var row profileRow
	err = repo.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(profiles) > %w", err)
	}

	badges := []string{}
	if row.Badges != "" {
		if err := json.Unmarshal([]byte(row.Badges), &badges); err != nil {
			slog.Default().Warn("ignore malformed badges of the stored profile",
				"badges", row.Badges,
				"error", err,
			)
			badges = []string{}
		}
	}

	return &tracker.Profile{
		TargetScore:   row.TargetScore,
		ExamDate:      row.ExamDate,
		DailyMinutes:  row.DailyMinutes,
		WeakestSkill:  tracker.Skill(row.WeakestSkill),
		MomentumScore: row.MomentumScore,
		LastCheckIn:   row.LastCheckIn,
		CurrentStreak: row.CurrentStreak,
		MaxStreak:     row.MaxStreak,
		SkipsLeft:     row.SkipsLeft,
		LastSkipGrant: row.LastSkipGrant,
		Badges:        badges,
	}, nil
}

func (repo *SQLRepository) SaveProfile(ctx context.Context, profile tracker.Profile) error {
	badges := profile.Badges
	if badges == nil {
		badges = []string{}
	}
	encodedBadges, err := json.Marshal(badges)
	if err != nil {
		return fmt.Errorf("json.Marshal(badges) > %w", err)
	}

	return repo.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := execBuilder(ctx, tx, sqlBuilder.Delete("profiles").Where(squirrel.Eq{"id": profileID})); err != nil {
			return fmt.Errorf("delete profiles > %w", err)
		}
		insert := sqlBuilder.Insert("profiles").
			Columns(profileColumns...).
			Values(
				profileID, profile.TargetScore, profile.ExamDate, profile.DailyMinutes, string(profile.WeakestSkill),
				profile.MomentumScore, profile.LastCheckIn, profile.CurrentStreak, profile.MaxStreak,
				profile.SkipsLeft, profile.LastSkipGrant, string(encodedBadges),
			)
		if err := execBuilder(ctx, tx, insert); err != nil {
			return fmt.Errorf("insert profiles > %w", err)
		}
		return nil
	})
}

func (repo *SQLRepository) LoadTasks(ctx context.Context, today tracker.Date) ([]tracker.Task, error) {
	query, args, err := sqlBuilder.Select(taskColumns...).
		From("current_tasks").
		Where(squirrel.Eq{"task_date": today.String()}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("squirrel.ToSql() > %w", err)
	}

	var rows []taskRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(current_tasks) > %w", err)
	}

	tasks := make([]tracker.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, tracker.Task{
			Skill:       tracker.Skill(row.Skill),
			Description: row.Description,
			Minutes:     row.Minutes,
			Completed:   row.Completed,
		})
	}
	return tasks, nil
}

// SaveTasks replaces the stored list, so only one day's tasks are ever kept.
func (repo *SQLRepository) SaveTasks(ctx context.Context, today tracker.Date, tasks []tracker.Task) error {
	return repo.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := execBuilder(ctx, tx, sqlBuilder.Delete("current_tasks")); err != nil {
			return fmt.Errorf("delete current_tasks > %w", err)
		}
		if len(tasks) == 0 {
			return nil
		}

		insert := sqlBuilder.Insert("current_tasks").Columns(taskColumns...)
		for i, task := range tasks {
			insert = insert.Values(i, today.String(), string(task.Skill), task.Description, task.Minutes, task.Completed)
		}
		if err := execBuilder(ctx, tx, insert); err != nil {
			return fmt.Errorf("insert current_tasks > %w", err)
		}
		return nil
	})
}

func (repo *SQLRepository) LoadHistory(ctx context.Context) ([]tracker.HistoryEntry, error) {
	query, args, err := sqlBuilder.Select(historyColumns...).
		From("history").
		OrderBy("entry_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("squirrel.ToSql() > %w", err)
	}

	var rows []historyRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(history) > %w", err)
	}

	history := make([]tracker.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entry := tracker.HistoryEntry{
			Date:           row.EntryDate,
			CompletedCount: row.CompletedCount,
			TotalCount:     row.TotalCount,
			MomentumGained: row.MomentumGained,
			SkillsImproved: map[tracker.Skill]int{},
			NewStreak:      row.NewStreak,
			NewBadges:      []tracker.Badge{},
		}
		if err := unmarshalJSONColumn(row.SkillsImproved, &entry.SkillsImproved); err != nil {
			slog.Default().Warn("ignore malformed skills_improved", "date", row.EntryDate, "error", err)
		}
		if err := unmarshalJSONColumn(row.NewBadges, &entry.NewBadges); err != nil {
			slog.Default().Warn("ignore malformed new_badges", "date", row.EntryDate, "error", err)
		}
		history = append(history, entry)
	}
	return history, nil
}

func (repo *SQLRepository) SaveHistoryEntry(ctx context.Context, entry tracker.HistoryEntry) error {
	skills := entry.SkillsImproved
	if skills == nil {
		skills = map[tracker.Skill]int{}
	}
	encodedSkills, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("json.Marshal(skills_improved) > %w", err)
	}
	badges := entry.NewBadges
	if badges == nil {
		badges = []tracker.Badge{}
	}
	encodedBadges, err := json.Marshal(badges)
	if err != nil {
		return fmt.Errorf("json.Marshal(new_badges) > %w", err)
	}

	return repo.withTx(ctx, func(tx *sqlx.Tx) error {
		if err := execBuilder(ctx, tx, sqlBuilder.Delete("history").Where(squirrel.Eq{"entry_date": entry.Date})); err != nil {
			return fmt.Errorf("delete history > %w", err)
		}
		insert := sqlBuilder.Insert("history").
			Columns(historyColumns...).
			Values(
				entry.Date, entry.CompletedCount, entry.TotalCount, entry.MomentumGained,
				string(encodedSkills), entry.NewStreak, string(encodedBadges),
			)
		if err := execBuilder(ctx, tx, insert); err != nil {
			return fmt.Errorf("insert history > %w", err)
		}
		return nil
	})
}

func (repo *SQLRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

func execBuilder(ctx context.Context, tx *sqlx.Tx, builder squirrel.Sqlizer) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("squirrel.ToSql() > %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("tx.ExecContext(%s) > %w", query, err)
	}
	return nil
}

func unmarshalJSONColumn[T any](value string, dest *T) error {
	if value == "" {
		return nil
	}
	return json.Unmarshal([]byte(value), dest)
}
