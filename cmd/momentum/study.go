package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/momentum/internal/cli"
	"github.com/at-ishikawa/momentum/internal/inference"
	"github.com/at-ishikawa/momentum/internal/study"
)

func newInitCommand() *cobra.Command {
	var input study.OnboardingInput
	weakestSkill := SkillFlag("")

	command := &cobra.Command{
		Use:   "init",
		Short: "Set up your study plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = env.close() }()

			input.WeakestSkill = weakestSkill.String()
			profile, err := env.service.Onboard(ctx, input, env.today)
			if errors.Is(err, study.ErrProfileExists) {
				return fmt.Errorf("%w: remove the stored record to start over", err)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Welcome to Study Momentum! 🎓")
			fmt.Fprintf(out, "Target %g on %s, %d minutes a day, focusing on %s.\n", profile.TargetScore, profile.ExamDate, profile.DailyMinutes, profile.WeakestSkill)
			fmt.Fprintln(out, "Run `momentum status` to see today's tasks.")
			return nil
		},
	}

	flags := command.Flags()
	flags.Float64Var(&input.TargetScore, "target-score", 7.0, "Target band score, from 0 to 9")
	flags.StringVar(&input.ExamDate, "exam-date", "", "Exam date (YYYY-MM-DD)")
	flags.IntVar(&input.DailyMinutes, "daily-minutes", 60, "Minutes available every day, from 15 to 300")
	flags.Var(&weakestSkill, "weakest-skill", "Skill to focus on. Options: Reading, Writing, Listening, Speaking")
	_ = command.MarkFlagRequired("exam-date")
	_ = command.MarkFlagRequired("weakest-skill")
	return command
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check in for today and show the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = env.close() }()

			dashboard, err := env.service.Visit(ctx, env.today)
			if err != nil {
				return err
			}
			cli.NewRenderer(cmd.OutOrStdout()).Dashboard(dashboard)
			return nil
		},
	}
}

func newTaskCommand() *cobra.Command {
	taskCommand := &cobra.Command{
		Use:   "task",
		Short: "Mark today's tasks as done or not done",
	}
	taskCommand.AddCommand(
		newTaskUpdateCommand("done", "Mark the task <n> as done", true),
		newTaskUpdateCommand("undo", "Mark the task <n> as not done", false),
	)
	return taskCommand
}

func newTaskUpdateCommand(use, short string, completed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <n>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("task number %q is not a number", args[0])
			}

			ctx := cmd.Context()
			env, err := newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = env.close() }()

			todayTasks, err := env.service.SetTaskCompleted(ctx, env.today, number-1, completed)
			if err != nil {
				return err
			}
			cli.NewRenderer(cmd.OutOrStdout()).Tasks(todayTasks)
			return nil
		},
	}
}

func newFinalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "finalize",
		Short: "Finish the day: score today's tasks and extend the streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = env.close() }()

			entry, err := env.service.Finalize(ctx, env.today)
			if err != nil {
				return err
			}
			cli.NewRenderer(cmd.OutOrStdout()).Finalized(entry)
			return nil
		},
	}
}

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the weekly summary and the skill progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = env.close() }()

			weekly, err := env.service.Weekly(ctx, env.today)
			if err != nil {
				return err
			}
			progress, err := env.service.Progress(ctx)
			if err != nil {
				return err
			}

			renderer := cli.NewRenderer(cmd.OutOrStdout())
			renderer.Weekly(weekly)
			fmt.Fprintln(cmd.OutOrStdout())
			renderer.Progress(progress)
			return nil
		},
	}
}

func newBadgesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "badges",
		Short: "List every badge and the ones you unlocked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = env.close() }()

			badges, err := env.service.Badges(ctx)
			if err != nil {
				return err
			}
			cli.NewRenderer(cmd.OutOrStdout()).Badges(badges)
			return nil
		},
	}
}

func newStudyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "study",
		Short: "Interactive session to tick off today's tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = env.close() }()

			studyCLI := cli.NewStudyCLI(env.service, env.today, cmd.InOrStdin(), cmd.OutOrStdout())
			if err := studyCLI.Start(ctx); err != nil {
				return err
			}
			return cli.Run(ctx, studyCLI, cmd.OutOrStdout())
		},
	}
}

func newBuddyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "buddy",
		Short: "Wave to your study buddy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = env.close() }()

			dashboard, err := env.service.Visit(ctx, env.today)
			if err != nil {
				return err
			}

			buddy, closeBuddy := newBuddy(env.cfg)
			defer closeBuddy()
			message := inference.Encourage(ctx, buddy, dashboard.BuddyRequest())
			cli.NewRenderer(cmd.OutOrStdout()).Buddy(message)
			return nil
		},
	}
}
