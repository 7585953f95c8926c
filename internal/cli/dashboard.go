package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/momentum/internal/statistics"
	"github.com/at-ishikawa/momentum/internal/study"
	"github.com/at-ishikawa/momentum/internal/tracker"
)

const progressBarWidth = 20

// Renderer writes the study screens to a terminal
type Renderer struct {
	w      io.Writer
	bold   *color.Color
	faint  *color.Color
	red    *color.Color
	yellow *color.Color
	green  *color.Color
	cyan   *color.Color
}

func NewRenderer(w io.Writer) *Renderer {
	return &Renderer{
		w:      w,
		bold:   color.New(color.Bold),
		faint:  color.New(color.Faint),
		red:    color.New(color.FgRed),
		yellow: color.New(color.FgYellow),
		green:  color.New(color.FgGreen),
		cyan:   color.New(color.FgCyan, color.Bold),
	}
}

// Dashboard prints the check-in consequences followed by the daily dashboard.
func (r *Renderer) Dashboard(dashboard *study.Dashboard) {
	r.CheckIn(dashboard.CheckIn, dashboard.Profile)

	profile := dashboard.Profile
	_, _ = r.cyan.Fprintf(r.w, "Daily Dashboard 📅 %s\n", dashboard.Today)
	_, _ = r.bold.Fprintf(r.w, "Momentum Score: %d/%d ", profile.MomentumScore, tracker.MaxMomentumScore)
	_, _ = fmt.Fprintln(r.w, progressBar(profile.MomentumScore, tracker.MaxMomentumScore))

	daysLeft := "N/A"
	if dashboard.DaysUntilExam != nil {
		daysLeft = fmt.Sprintf("%d days", *dashboard.DaysUntilExam)
	}
	_, _ = fmt.Fprintf(r.w, "Target: %g | Days Left: %s | Focus: %s\n", profile.TargetScore, daysLeft, profile.WeakestSkill)
	_, _ = fmt.Fprintf(r.w, "Current Streak: %d days | Skips Available: %d 🛡️\n", profile.CurrentStreak, profile.SkipsLeft)
	_, _ = fmt.Fprintln(r.w)

	r.Tasks(dashboard.Tasks)
	if dashboard.FinalizedToday {
		_, _ = r.faint.Fprintln(r.w, "Today is already finalized.")
	}
	_, _ = fmt.Fprintln(r.w)

	r.Weekly(dashboard.Weekly)
	_, _ = fmt.Fprintln(r.w)

	_, _ = r.bold.Fprintln(r.w, "Badges 🏆")
	if len(dashboard.Badges) == 0 {
		_, _ = r.faint.Fprintln(r.w, "  No badges yet")
	}
	for _, badge := range dashboard.Badges {
		_, _ = fmt.Fprintf(r.w, "  %s\n", badge.Name)
	}
}

// CheckIn prints what the check-in did. Nothing is printed for a regular daily visit.
func (r *Renderer) CheckIn(result tracker.CheckInResult, profile tracker.Profile) {
	if result.Penalty > 0 {
		_, _ = r.red.Fprintf(r.w, "⚠️ Missed %d days! Penalty: -%d (Score: %d)\n", result.DaysMissed, result.Penalty, result.NewScore)
		if result.StreakReset {
			_, _ = r.yellow.Fprintln(r.w, "🔥 Streak reset to 0!")
		}
	} else if result.SkipsUsed > 0 {
		_, _ = r.yellow.Fprintf(r.w, "🛡️ Missed %d day(s). Streak saved! (%d skips left)\n", result.SkipsUsed, profile.SkipsLeft)
	}
	if result.SkipsReplenished > 0 {
		_, _ = r.green.Fprintf(r.w, "🎁 Weekly Skip Replenished! (+%d 🛡️)\n", result.SkipsReplenished)
	}
}

// Tasks prints today's list numbered from 1.
func (r *Renderer) Tasks(tasks []tracker.Task) {
	_, _ = r.bold.Fprintln(r.w, "Today's Tasks")
	for i, task := range tasks {
		line := fmt.Sprintf("%d. [%s] %s: %s (%dm)", i+1, checkMark(task.Completed), task.Skill, task.Description, task.Minutes)
		if task.Completed {
			_, _ = r.faint.Fprintln(r.w, line)
			continue
		}
		_, _ = fmt.Fprintln(r.w, line)
	}
}

func (r *Renderer) Weekly(stats statistics.WeeklyStats) {
	_, _ = r.bold.Fprintln(r.w, "Weekly Summary 🗓️")
	_, _ = fmt.Fprintf(r.w, "Tasks (7d): %d | Active Days (7d): %d\n", stats.WeeklyTasks, stats.ActiveDays)
	for _, skill := range tracker.Skills {
		if gain := stats.SkillGains[skill]; gain > 0 {
			_, _ = fmt.Fprintf(r.w, "  %-10s +%d\n", skill, gain)
		}
	}
}

// Progress prints the cumulative completed tasks per skill, one line per finalized day.
func (r *Renderer) Progress(points []statistics.SkillProgressPoint) {
	_, _ = r.bold.Fprintln(r.w, "Skill Progress 📈")
	if len(points) == 0 {
		_, _ = r.faint.Fprintln(r.w, "  No finalized days yet")
		return
	}

	header := make([]string, 0, len(tracker.Skills)+1)
	header = append(header, fmt.Sprintf("%-10s", "Date"))
	for _, skill := range tracker.Skills {
		header = append(header, fmt.Sprintf("%9s", skill))
	}
	_, _ = r.faint.Fprintln(r.w, strings.Join(header, " "))
	for _, point := range points {
		columns := make([]string, 0, len(tracker.Skills)+1)
		columns = append(columns, fmt.Sprintf("%-10s", point.Date))
		for _, skill := range tracker.Skills {
			columns = append(columns, fmt.Sprintf("%9d", point.Totals[skill]))
		}
		_, _ = fmt.Fprintln(r.w, strings.Join(columns, " "))
	}
}

// Badges prints the whole catalog, marking the unlocked ones.
func (r *Renderer) Badges(statuses []study.BadgeStatus) {
	_, _ = r.bold.Fprintln(r.w, "Badges 🏆")
	for _, status := range statuses {
		if status.Unlocked {
			_, _ = r.green.Fprintf(r.w, "[%s] %s: %s\n", checkMark(true), status.Name, status.Description)
			continue
		}
		_, _ = r.faint.Fprintf(r.w, "[%s] %s: %s\n", checkMark(false), status.Name, status.Description)
	}
}

// Finalized prints the summary of a finalized day.
func (r *Renderer) Finalized(entry *tracker.HistoryEntry) {
	_, _ = r.cyan.Fprintf(r.w, "🏁 Day %s finalized: %d/%d tasks\n", entry.Date, entry.CompletedCount, entry.TotalCount)
	for _, badge := range entry.NewBadges {
		_, _ = r.green.Fprintf(r.w, "🏆 Unlocked: %s!\n", badge.Name)
	}
	_, _ = r.green.Fprintf(r.w, "Momentum Gained: +%d\n", entry.MomentumGained)
	_, _ = fmt.Fprintf(r.w, "Streak: %d days\n", entry.NewStreak)
}

// Buddy prints a study buddy message.
func (r *Renderer) Buddy(message string) {
	_, _ = r.bold.Fprint(r.w, "🤖 Buddy: ")
	_, _ = fmt.Fprintln(r.w, message)
}

func checkMark(completed bool) string {
	if completed {
		return "x"
	}
	return " "
}

func progressBar(value, maxValue int) string {
	filled := 0
	if maxValue > 0 {
		filled = max(0, min(progressBarWidth, value*progressBarWidth/maxValue))
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", progressBarWidth-filled) + "]"
}
