package timesheet

import (
	"fmt"
	"sort"
	"time"
)

// maxDescriptionLen bounds detail-row descriptions; longer text is cut and
// marked with an ellipsis.
const maxDescriptionLen = 1000

// BuildOptions carries the report-level settings the row builder needs.
type BuildOptions struct {
	// PullURLBase is the change-request permalink prefix, e.g.
	// "https://github.com/acme/widgets". The number is appended as /pull/N.
	PullURLBase string
}

type group struct {
	cr        ChangeRequest
	issues    []Issue
	intervals []WorkInterval
	start     time.Time
}

// BuildRows correlates each change request with the issue set and flattens
// the result into ordered report rows: one header row per change request,
// one detail row per matched issue, one blank separator per group.
//
// A group's effective start is the minimum derived issue start that is
// strictly earlier than the change request's own creation time, falling back
// to the creation time itself; groups are ordered by that value.
func BuildRows(crs []ChangeRequest, issues []Issue, opts BuildOptions) []ReportRow {
	groups := make([]group, 0, len(crs))
	for _, cr := range crs {
		g := group{cr: cr, issues: Correlate(cr, issues), start: cr.CreatedAt}
		for _, is := range g.issues {
			iv := DeriveInterval(is)
			g.intervals = append(g.intervals, iv)
			if iv.Start != nil && !iv.Start.IsZero() && iv.Start.Before(g.start) {
				g.start = *iv.Start
			}
		}
		groups = append(groups, g)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].start.Equal(groups[j].start) {
			return groups[i].cr.CreatedAt.Before(groups[j].cr.CreatedAt)
		}
		return groups[i].start.Before(groups[j].start)
	})

	var rows []ReportRow
	for _, g := range groups {
		start := g.start
		rows = append(rows, ReportRow{
			Kind:  RowGroupHeader,
			Start: &start,
			End:   g.cr.ClosedAt,
			Ref:   g.cr.Branch,
			Title: g.cr.Title,
			Link:  fmt.Sprintf("%s/pull/%d", opts.PullURLBase, g.cr.Number),
		})
		for i, is := range g.issues {
			rows = append(rows, ReportRow{
				Kind:        RowIssueDetail,
				Start:       g.intervals[i].Start,
				End:         g.intervals[i].End,
				Ref:         is.Key,
				Title:       is.Summary,
				Link:        is.Permalink,
				Description: describe(is, g.cr),
			})
		}
		rows = append(rows, ReportRow{Kind: RowSeparator})
	}
	return rows
}

// describe picks the issue description, falling back to the change-request
// body when the issue has none.
func describe(is Issue, cr ChangeRequest) string {
	d := is.Description
	if d == "" {
		d = cr.Body
	}
	if r := []rune(d); len(r) > maxDescriptionLen {
		return string(r[:maxDescriptionLen]) + " ..."
	}
	return d
}
