package hours

import (
	"flag"
	"fmt"
	"time"

	"jira-timesheet/domain/timesheet"
)

// Run executes the hours command: print the billable hours of a month, either
// from its weekday count or from an explicit number of days worked.
//
// Usage:
//
//	jira-timesheet hours [-month 2024/03] [-days 21]
func Run(args []string) error {
	fs := flag.NewFlagSet("hours", flag.ContinueOnError)
	monthFlag := fs.String("month", "", "month to compute (YYYY/MM), default current month")
	days := fs.Int("days", 0, "business days actually worked, overrides the weekday count")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ref := time.Now()
	if *monthFlag != "" {
		t, err := time.Parse("2006/01", *monthFlag)
		if err != nil {
			return fmt.Errorf("bad -month %q: want YYYY/MM", *monthFlag)
		}
		ref = t
	}

	h := timesheet.BusinessHours(ref, *days)
	fmt.Printf("%s: %d hours\n", ref.Format("2006/01"), h)
	return nil
}
