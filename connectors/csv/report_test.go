package csv

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jira-timesheet/domain/timesheet"
)

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	recs, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return recs
}

func TestWriteReportRows(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)
	rows := []timesheet.ReportRow{
		{Kind: timesheet.RowGroupHeader, Start: &start, Ref: "bugfix/abc-7", Title: "Fix ABC-7 flow", Link: "https://github.com/acme/widgets/pull/42"},
		{Kind: timesheet.RowIssueDetail, Ref: "ABC-7", Title: "Login crash"},
		{Kind: timesheet.RowSeparator},
	}
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, WriteReportRows(path, rows))

	recs := readAll(t, path)
	require.Len(t, recs, 4)
	assert.Equal(t, []string{"kind", "start", "end", "ref", "title", "link"}, recs[0])
	assert.Equal(t, []string{"group", "2024-01-05T09:00:00Z", "", "bugfix/abc-7", "Fix ABC-7 flow", "https://github.com/acme/widgets/pull/42"}, recs[1])
	assert.Equal(t, "issue", recs[2][0])
	assert.Equal(t, "separator", recs[3][0])
}

func TestWriteSummary(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "summary.csv")
	require.NoError(t, WriteSummary(path, Summary{
		Title:        "2024_01-2024_01",
		Hours:        184,
		PullRequests: 5,
		Issues:       7,
		StoryPoints:  12.5,
	}))

	recs := readAll(t, path)
	require.Len(t, recs, 2)
	assert.Equal(t, []string{"title", "hours", "pull_requests", "issues", "story_points"}, recs[0])
	assert.Equal(t, []string{"2024_01-2024_01", "184", "5", "7", "12.5"}, recs[1])
}
