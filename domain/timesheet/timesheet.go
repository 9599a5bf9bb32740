package timesheet

import "time"

// ChangeEvent is a single field transition from an issue's changelog.
// At is timezone-naive: the wall-clock of the tracker's timestamp with the
// offset stripped, so comparisons between events are well-defined.
type ChangeEvent struct {
	Field string
	To    string
	At    time.Time
}

// Issue is a work-tracking ticket with its changelog already expanded.
// Immutable once fetched.
type Issue struct {
	Key         string
	Summary     string
	Description string
	Permalink   string
	StoryPoints *float64
	Changelog   []ChangeEvent
}

// ChangeRequest is a code-hosting pull request. ClosedAt is nil while the
// request is still open.
type ChangeRequest struct {
	Number    int
	Title     string
	Body      string
	Branch    string
	Author    string
	CreatedAt time.Time
	ClosedAt  *time.Time
}

// WorkInterval is the derived (start, end) pair for an issue. Either side may
// be nil when the changelog gives no signal.
type WorkInterval struct {
	Start *time.Time
	End   *time.Time
}

// RowKind discriminates the flattened report rows.
type RowKind int

const (
	// RowGroupHeader carries the change-request fields for a group.
	RowGroupHeader RowKind = iota
	// RowIssueDetail carries one matched issue and its derived interval.
	RowIssueDetail
	// RowSeparator is the blank spacer emitted after each group.
	RowSeparator
)

// ReportRow is one output unit for the spreadsheet sink.
type ReportRow struct {
	Kind        RowKind
	Start       *time.Time
	End         *time.Time
	Ref         string // branch name on headers, issue key on details
	Title       string // pull-request title on headers, issue summary on details
	Link        string
	Description string
}
