package csv

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"jira-timesheet/domain/timesheet"
)

// Summary is the per-run roll-up written next to the workbook so the web
// command can serve it.
type Summary struct {
	Title        string
	Hours        int
	PullRequests int
	Issues       int
	StoryPoints  float64
}

var kindNames = map[timesheet.RowKind]string{
	timesheet.RowGroupHeader: "group",
	timesheet.RowIssueDetail: "issue",
	timesheet.RowSeparator:   "separator",
}

// WriteReportRows writes a flat CSV snapshot of the report rows.
// Headers: kind, start, end, ref, title, link
func WriteReportRows(path string, rows []timesheet.ReportRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"kind", "start", "end", "ref", "title", "link"}); err != nil {
		return err
	}
	for _, row := range rows {
		rec := []string{
			kindNames[row.Kind],
			formatTime(row.Start),
			formatTime(row.End),
			row.Ref,
			row.Title,
			row.Link,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteSummary writes the run roll-up.
// Headers: title, hours, pull_requests, issues, story_points
func WriteSummary(path string, s Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	defer w.Flush()
	if err := w.Write([]string{"title", "hours", "pull_requests", "issues", "story_points"}); err != nil {
		return err
	}
	rec := []string{
		s.Title,
		strconv.Itoa(s.Hours),
		strconv.Itoa(s.PullRequests),
		strconv.Itoa(s.Issues),
		strconv.FormatFloat(s.StoryPoints, 'f', -1, 64),
	}
	if err := w.Write(rec); err != nil {
		return err
	}
	return w.Error()
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
