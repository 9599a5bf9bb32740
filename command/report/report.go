package report

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	lo "github.com/samber/lo"

	"jira-timesheet/connectors/config"
	csvconn "jira-timesheet/connectors/csv"
	ghconn "jira-timesheet/connectors/github"
	"jira-timesheet/connectors/jira"
	"jira-timesheet/connectors/xlsx"
	"jira-timesheet/domain/timesheet"
)

// Run executes the report command: fetch the month range's Jira issues and
// GitHub pull requests, correlate them, and write the timesheet workbook plus
// CSV snapshots into the output directory.
//
// Usage:
//
//	jira-timesheet report [-start 2024/01] [-end 2024/02] [-days 21] [-f] [-out ./data]
func Run(args []string) error {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	startFlag := fs.String("start", "", "first month of the range (YYYY/MM), default current month")
	endFlag := fs.String("end", "", "last month of the range (YYYY/MM), default same as -start")
	days := fs.Int("days", 0, "business days actually worked, overrides the weekday count")
	force := fs.Bool("f", false, "overwrite an existing report file")
	outFlag := fs.String("out", "", "output directory, overrides report.output_dir")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "./config.yml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	start, end, err := monthRange(*startFlag, *endFlag, time.Now())
	if err != nil {
		return err
	}
	from := start
	toExclusive := end.AddDate(0, 1, 0)
	toInclusive := toExclusive.AddDate(0, 0, -1)

	title := start.Format("2006_01") + "-" + end.Format("2006_01")
	outDir := cfg.Report.OutputDir
	if *outFlag != "" {
		outDir = *outFlag
	}
	filename := filepath.Join(outDir, "Jira_"+title+".xlsx")
	if _, err := os.Stat(filename); err == nil && !*force {
		return fmt.Errorf("%s already exists, pass -f to overwrite", filename)
	}

	hours := monthHours(from, toExclusive, *days)
	slog.Info("report.start", "title", title, "hours", hours)

	owner, repo, ok := strings.Cut(cfg.GitHub.Repo, "/")
	if !ok {
		return fmt.Errorf("github.repo must be owner/name, got %q", cfg.GitHub.Repo)
	}

	ctx := context.Background()
	jc := jira.New(cfg.Jira.Server, cfg.Jira.Username, cfg.Jira.APIToken)
	issues, jiraErr := jc.SearchAssignedIssues(ctx, from, toInclusive)

	gc := ghconn.New(ctx, cfg.GitHub.Token)
	crs, ghErr := gc.ListClosedPullRequests(ctx, owner, repo, cfg.GitHub.Username, from, toExclusive)

	if jiraErr != nil && ghErr != nil {
		return fmt.Errorf("no input available: jira: %v; github: %v", jiraErr, ghErr)
	}
	if jiraErr != nil {
		slog.Warn("report.jira.unavailable", "err", jiraErr)
	}
	if ghErr != nil {
		slog.Warn("report.github.unavailable", "err", ghErr)
	}

	if len(issues) == 0 {
		slog.Info("report.notasks", "title", title)
		return nil
	}
	slog.Info(fmt.Sprintf("found %d tasks", len(issues)))

	rows := timesheet.BuildRows(crs, issues, timesheet.BuildOptions{
		PullURLBase: "https://github.com/" + cfg.GitHub.Repo,
	})

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	if err := xlsx.Write(filename, rows); err != nil {
		return err
	}
	if err := csvconn.WriteReportRows(filepath.Join(outDir, "report_rows.csv"), rows); err != nil {
		return err
	}
	summary := csvconn.Summary{
		Title:        title,
		Hours:        hours,
		PullRequests: len(crs),
		Issues:       len(issues),
		StoryPoints: lo.SumBy(issues, func(is timesheet.Issue) float64 {
			if is.StoryPoints == nil {
				return 0
			}
			return *is.StoryPoints
		}),
	}
	if err := csvconn.WriteSummary(filepath.Join(outDir, "report_summary.csv"), summary); err != nil {
		return err
	}

	slog.Info("report.done", "file", filename, "rows", len(rows))
	return nil
}

// monthRange resolves the -start/-end flags into the first day of each month.
// Both default to the current month; -end alone defaults to -start.
func monthRange(startFlag, endFlag string, now time.Time) (time.Time, time.Time, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if startFlag != "" {
		t, err := time.Parse("2006/01", startFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad -start %q: want YYYY/MM", startFlag)
		}
		start = t
	}
	end := start
	if endFlag != "" {
		t, err := time.Parse("2006/01", endFlag)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad -end %q: want YYYY/MM", endFlag)
		}
		end = t
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("-end %s is before -start %s", end.Format("2006/01"), start.Format("2006/01"))
	}
	return start, end, nil
}

// monthHours sums the working hours of every month in [from, toExclusive).
// An explicit -days value wins over the weekday count and applies once to the
// whole range.
func monthHours(from, toExclusive time.Time, explicitDays int) int {
	if explicitDays > 0 {
		return timesheet.BusinessHours(from, explicitDays)
	}
	hours := 0
	for m := from; m.Before(toExclusive); m = m.AddDate(0, 1, 0) {
		hours += timesheet.BusinessHours(m, 0)
	}
	return hours
}
