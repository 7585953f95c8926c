package report

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/at-ishikawa/momentum/internal/tracker"
)

const fallbackTemplateName = "progress-report.md.go.tmpl"

//go:embed templates/progress-report.md.go.tmpl
var fallbackProgressReportTemplate string

var templateFuncs = template.FuncMap{
	"join": strings.Join,
	"badgeNames": badgeNames,
}

func badgeNames(badges []tracker.Badge) string {
	names := make([]string, 0, len(badges))
	for _, badge := range badges {
		names = append(names, badge.Name)
	}
	return strings.Join(names, ", ")
}

// ParseTemplate parses templatePath, or the embedded template when the path is empty, missing or invalid.
func ParseTemplate(templatePath string) (*template.Template, error) {
	if templatePath != "" {
		if _, err := os.Stat(templatePath); err == nil {
			tmpl, err := template.New(filepath.Base(templatePath)).
				Funcs(templateFuncs).
				ParseFiles(templatePath)
			if err == nil {
				return tmpl, nil
			}
			slog.Default().Warn("failed to parse a report template, use the embedded one",
				slog.String("templatePath", templatePath),
				slog.Any("error", err),
			)
		}
	}

	tmpl, err := template.New(fallbackTemplateName).
		Funcs(templateFuncs).
		Parse(fallbackProgressReportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded template: %w", err)
	}
	return tmpl, nil
}
