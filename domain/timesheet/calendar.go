package timesheet

import "time"

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BusinessHours returns the number of work hours in the month of ref.
// When explicitDays > 0 the count is taken as-is; otherwise Mon-Fri days
// between the 1st and the last day of the month are counted. Weekends only,
// no holiday calendar. A business day is 8 hours.
func BusinessHours(ref time.Time, explicitDays int) int {
	days := explicitDays
	if days <= 0 {
		last := DaysInMonth(ref.Year(), ref.Month())
		for d := 1; d <= last; d++ {
			wd := time.Date(ref.Year(), ref.Month(), d, 0, 0, 0, 0, time.UTC).Weekday()
			if wd != time.Saturday && wd != time.Sunday {
				days++
			}
		}
	}
	return days * 8
}
