package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/at-ishikawa/momentum/internal/tracker"
)

const (
	historySheet  = "History"
	progressSheet = "Skill Progress"
)

var historyHeader = []interface{}{"Date", "Completed", "Total", "Momentum Gained", "Streak", "Reading", "Writing", "Listening", "Speaking", "New Badges"}

// WriteWorkbook writes the history and the skill progress as an XLSX workbook.
func WriteWorkbook(w io.Writer, data Data) error {
	f, err := newWorkbook(data)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("f.Write() > %w", err)
	}
	return nil
}

func SaveWorkbook(path string, data Data) error {
	f, err := newWorkbook(data)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("f.SaveAs(%s) > %w", path, err)
	}
	return nil
}

func newWorkbook(data Data) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", historySheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("f.NewStyle() > %w", err)
	}

	rows := make([][]interface{}, 0, len(data.History))
	for _, entry := range data.History {
		row := []interface{}{entry.Date, entry.CompletedCount, entry.TotalCount, entry.MomentumGained, entry.NewStreak}
		for _, skill := range tracker.Skills {
			row = append(row, entry.SkillsImproved[skill])
		}
		row = append(row, badgeNames(entry.NewBadges))
		rows = append(rows, row)
	}
	if err := writeSheet(f, historySheet, historyHeader, rows, headerStyle); err != nil {
		f.Close()
		return nil, err
	}

	f.NewSheet(progressSheet)
	progressHeader := []interface{}{"Date"}
	for _, skill := range tracker.Skills {
		progressHeader = append(progressHeader, string(skill))
	}
	rows = make([][]interface{}, 0, len(data.Progress))
	for _, point := range data.Progress {
		row := []interface{}{point.Date.String()}
		for _, skill := range tracker.Skills {
			row = append(row, point.Totals[skill])
		}
		rows = append(rows, row)
	}
	if err := writeSheet(f, progressSheet, progressHeader, rows, headerStyle); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("f.SetSheetRow(%s) > %w", sheet, err)
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("excelize.CoordinatesToCellName() > %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeaderCell, headerStyle); err != nil {
		return fmt.Errorf("f.SetCellStyle(%s) > %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excelize.CoordinatesToCellName() > %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("f.SetSheetRow(%s, %s) > %w", sheet, cell, err)
		}
	}
	return nil
}
