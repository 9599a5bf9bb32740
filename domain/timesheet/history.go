package timesheet

// Status values recognised in changelog transitions.
const (
	statusDone       = "Done"
	statusInProgress = "In Progress"
	statusToDo       = "To Do"
)

// DeriveInterval scans the changelog once, in the order the tracker returned
// it, and keeps two candidates: start and end. Every visited event bumps the
// start candidate to its own timestamp; a status transition to "In Progress"
// or "To Do" sets it explicitly, and a transition to "Done" records the end.
// An issue with no history yields (nil, nil).
//
// The start candidate is bumped even by events that never touch status, so a
// late edit to an unrelated field wins over an earlier real start. That
// mirrors how the source tracker reports work and is pinned by
// TestDeriveInterval_UnrelatedEventOverwritesStart rather than corrected here.
func DeriveInterval(is Issue) WorkInterval {
	var iv WorkInterval
	for _, ev := range is.Changelog {
		at := ev.At
		iv.Start = &at
		if ev.Field == "status" {
			switch ev.To {
			case statusDone:
				end := at
				iv.End = &end
			case statusInProgress, statusToDo:
				start := at
				iv.Start = &start
			}
		}
	}
	return iv
}
