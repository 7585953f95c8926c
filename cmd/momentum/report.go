package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/momentum/internal/report"
)

func newReportCommand() *cobra.Command {
	format := FormatFlag(report.FormatMarkdown)

	command := &cobra.Command{
		Use:   "report",
		Short: "Export your progress as a markdown, PDF or XLSX report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, err := newEnvironment(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = env.close() }()

			profile, err := env.service.Profile(ctx)
			if err != nil {
				return err
			}
			history, err := env.service.History(ctx)
			if err != nil {
				return err
			}
			badges, err := env.service.Badges(ctx)
			if err != nil {
				return err
			}

			generator := report.NewGenerator(env.cfg.Templates.ReportTemplate, env.cfg.Outputs.ReportDirectory)
			path, err := generator.Generate(report.NewData(env.today, *profile, history, badges), report.Format(format))
			if err != nil {
				return fmt.Errorf("generator.Generate() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
			return nil
		},
	}
	command.Flags().Var(&format, "format", "Report format. Options: markdown, pdf, xlsx")
	return command
}
