package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysInMonth(t *testing.T) {
	t.Parallel()
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{2024, time.April, 30},
		{2024, time.December, 31},
		{2021, time.March, 31},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, DaysInMonth(tc.year, tc.month), "%d/%s", tc.year, tc.month)
	}
}

func TestBusinessHours_ExplicitDays(t *testing.T) {
	t.Parallel()
	ref := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 168, BusinessHours(ref, 21))
	assert.Equal(t, 8, BusinessHours(ref, 1))
}

func TestBusinessHours_CountsWeekdays(t *testing.T) {
	t.Parallel()
	// March 2021 starts on a Monday and has 23 business days.
	ref := time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 184, BusinessHours(ref, 0))

	// February 2021 has exactly 4 full weeks, 20 business days.
	ref = time.Date(2021, time.February, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 160, BusinessHours(ref, 0))
}
