// Package report exports the learner's progress as a markdown or PDF report and an XLSX workbook.
package report

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/at-ishikawa/momentum/internal/statistics"
	"github.com/at-ishikawa/momentum/internal/study"
	"github.com/at-ishikawa/momentum/internal/tracker"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatPDF      Format = "pdf"
	FormatXLSX     Format = "xlsx"
)

var Formats = []Format{FormatMarkdown, FormatPDF, FormatXLSX}

func ParseFormat(s string) (Format, error) {
	format := Format(s)
	if !slices.Contains(Formats, format) {
		return "", fmt.Errorf("unknown report format %q, valid values are %v", s, Formats)
	}
	return format, nil
}

// Data is what every report format is rendered from
type Data struct {
	Today    tracker.Date
	Profile  tracker.Profile
	DaysLeft string
	Skills   []tracker.Skill
	Totals   map[tracker.Skill]int
	Weekly   statistics.WeeklyStats
	Progress []statistics.SkillProgressPoint
	History  []tracker.HistoryEntry
	Badges   []study.BadgeStatus
}

func NewData(today tracker.Date, profile tracker.Profile, history []tracker.HistoryEntry, badges []study.BadgeStatus) Data {
	daysLeft := "N/A"
	if days, ok := profile.DaysUntilExam(today); ok {
		daysLeft = fmt.Sprintf("%d days", days)
	}

	sorted := slices.Clone(history)
	slices.SortStableFunc(sorted, func(a, b tracker.HistoryEntry) int {
		return strings.Compare(a.Date, b.Date)
	})

	return Data{
		Today:    today,
		Profile:  profile,
		DaysLeft: daysLeft,
		Skills:   tracker.Skills,
		Totals:   statistics.SkillTotals(history),
		Weekly:   statistics.Weekly(history, today),
		Progress: statistics.SkillProgress(history),
		History:  sorted,
		Badges:   badges,
	}
}

type Generator struct {
	templatePath string
	outputDir    string
}

// NewGenerator writes reports into outputDir. An empty templatePath uses the embedded template.
func NewGenerator(templatePath, outputDir string) *Generator {
	return &Generator{
		templatePath: templatePath,
		outputDir:    outputDir,
	}
}

// Generate writes the report in format and returns the path of the written file.
func (g *Generator) Generate(data Data, format Format) (string, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", g.outputDir, err)
	}
	basePath := filepath.Join(g.outputDir, "momentum-report-"+data.Today.String())

	var path string
	switch format {
	case FormatMarkdown, FormatPDF:
		path = basePath + ".md"
		var buf bytes.Buffer
		if err := g.WriteMarkdown(&buf, data); err != nil {
			return "", err
		}
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
		}
		if format == FormatPDF {
			pdfPath, err := ConvertMarkdownToPDF(path)
			if err != nil {
				return "", fmt.Errorf("ConvertMarkdownToPDF(%s) > %w", path, err)
			}
			path = pdfPath
		}
	case FormatXLSX:
		path = basePath + ".xlsx"
		if err := SaveWorkbook(path, data); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("unknown report format %q", format)
	}

	slog.Default().Info("report generated", "format", format, "path", path)
	return path, nil
}

func (g *Generator) WriteMarkdown(w io.Writer, data Data) error {
	tmpl, err := ParseTemplate(g.templatePath)
	if err != nil {
		return fmt.Errorf("ParseTemplate(%s) > %w", g.templatePath, err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
