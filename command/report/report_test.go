package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthRange(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, time.March, 17, 15, 0, 0, 0, time.UTC)

	start, end, err := monthRange("", "", now)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.Equal(start), "end defaults to start")

	start, end, err = monthRange("2024/01", "2024/02", now)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, end.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))

	_, _, err = monthRange("2024-01", "", now)
	assert.Error(t, err)

	_, _, err = monthRange("2024/02", "2024/01", now)
	assert.Error(t, err)
}

func TestMonthHours(t *testing.T) {
	t.Parallel()
	// March 2021 has 23 business days, April 2021 has 22.
	march := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	may := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, (23+22)*8, monthHours(march, may, 0))
	assert.Equal(t, 168, monthHours(march, may, 21), "explicit days cover the whole range")
}
