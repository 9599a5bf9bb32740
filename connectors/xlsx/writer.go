package xlsx

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"jira-timesheet/domain/timesheet"
)

const sheet = "Sheet1"

var headers = []string{"Created at", "Closed at", "Branch / id", "Title", "Link", "Description"}

const dateFormat = "yyyy-mm-dd"

type styleSet struct {
	header    int
	group     int
	groupDate int
	date      int
}

func newStyles(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error

	if s.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	}); err != nil {
		return s, err
	}

	groupFill := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}}
	groupFont := &excelize.Font{Bold: true, Color: "FFFFFF"}
	if s.group, err = f.NewStyle(&excelize.Style{Font: groupFont, Fill: groupFill}); err != nil {
		return s, err
	}
	fmtDate := dateFormat
	if s.groupDate, err = f.NewStyle(&excelize.Style{
		Font: groupFont, Fill: groupFill, CustomNumFmt: &fmtDate,
	}); err != nil {
		return s, err
	}
	if s.date, err = f.NewStyle(&excelize.Style{CustomNumFmt: &fmtDate}); err != nil {
		return s, err
	}
	return s, nil
}

// Write renders the report rows as a styled workbook at path. Group header
// rows get a dark fill, dates a plain yyyy-mm-dd format, and link cells a
// live hyperlink. Column widths follow the longest value seen.
func Write(path string, rows []timesheet.ReportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	widths := make([]float64, len(headers))
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, styles.header); err != nil {
			return err
		}
		track(widths, col, h)
	}

	r := 2
	for _, row := range rows {
		switch row.Kind {
		case timesheet.RowSeparator:
		case timesheet.RowGroupHeader:
			if err := writeRow(f, styles, widths, r, row, true); err != nil {
				return err
			}
			if err := f.SetRowHeight(sheet, r, 18); err != nil {
				return err
			}
		case timesheet.RowIssueDetail:
			if err := writeRow(f, styles, widths, r, row, false); err != nil {
				return err
			}
		}
		r++
	}

	for col := range headers {
		name, _ := excelize.ColumnNumberToName(col + 1)
		w := widths[col] + 2
		if w > 80 {
			w = 80
		}
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	slog.Info("xlsx.write.done", "path", path, "rows", len(rows))
	return nil
}

func writeRow(f *excelize.File, styles styleSet, widths []float64, r int, row timesheet.ReportRow, group bool) error {
	textStyle, dateStyle := 0, styles.date
	if group {
		textStyle, dateStyle = styles.group, styles.groupDate
	}

	if err := setDate(f, 1, r, row.Start, dateStyle, widths); err != nil {
		return err
	}
	if err := setDate(f, 2, r, row.End, dateStyle, widths); err != nil {
		return err
	}
	texts := []string{row.Ref, row.Title, row.Link, row.Description}
	for i, v := range texts {
		col := i + 3
		cell, _ := excelize.CoordinatesToCellName(col, r)
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
		if textStyle != 0 {
			if err := f.SetCellStyle(sheet, cell, cell, textStyle); err != nil {
				return err
			}
		}
		track(widths, col-1, v)
	}
	if row.Link != "" {
		cell, _ := excelize.CoordinatesToCellName(5, r)
		if err := f.SetCellHyperLink(sheet, cell, row.Link, "External"); err != nil {
			return err
		}
	}
	if group {
		// Dates in a group row still need the fill even when absent.
		for col := 1; col <= 2; col++ {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			if err := f.SetCellStyle(sheet, cell, cell, dateStyle); err != nil {
				return err
			}
		}
	}
	return nil
}

func setDate(f *excelize.File, col, r int, t *time.Time, style int, widths []float64) error {
	if t == nil {
		return nil
	}
	cell, _ := excelize.CoordinatesToCellName(col, r)
	if err := f.SetCellValue(sheet, cell, *t); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
		return err
	}
	track(widths, col-1, dateFormat)
	return nil
}

func track(widths []float64, col int, v string) {
	if w := float64(len(v)); w > widths[col] {
		widths[col] = w
	}
}
