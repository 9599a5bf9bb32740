package timesheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day int) time.Time {
	return time.Date(2024, time.March, day, 12, 0, 0, 0, time.UTC)
}

func TestDeriveInterval_NoHistory(t *testing.T) {
	t.Parallel()
	iv := DeriveInterval(Issue{Key: "PROJ-1"})
	assert.Nil(t, iv.Start)
	assert.Nil(t, iv.End)
}

func TestDeriveInterval_DoneOnly(t *testing.T) {
	t.Parallel()
	done := at(7)
	iv := DeriveInterval(Issue{
		Key:       "PROJ-2",
		Changelog: []ChangeEvent{{Field: "status", To: "Done", At: done}},
	})
	require.NotNil(t, iv.End)
	assert.True(t, iv.End.Equal(done))
	// The lone event also bumps the fallback start to its own timestamp.
	require.NotNil(t, iv.Start)
	assert.True(t, iv.Start.Equal(done))
}

func TestDeriveInterval_StartAndEnd(t *testing.T) {
	t.Parallel()
	iv := DeriveInterval(Issue{
		Key: "PROJ-3",
		Changelog: []ChangeEvent{
			{Field: "status", To: "To Do", At: at(1)},
			{Field: "status", To: "In Progress", At: at(2)},
			{Field: "status", To: "Done", At: at(9)},
		},
	})
	require.NotNil(t, iv.End)
	assert.True(t, iv.End.Equal(at(9)))
	// The Done event itself is the last visited entry, so the fallback start
	// lands on it too.
	require.NotNil(t, iv.Start)
	assert.True(t, iv.Start.Equal(at(9)))
}

// Pins the fallback behaviour: any visited event overwrites the start
// candidate, even one that never touches status. A true start transition does
// not survive a later unrelated edit.
func TestDeriveInterval_UnrelatedEventOverwritesStart(t *testing.T) {
	t.Parallel()
	iv := DeriveInterval(Issue{
		Key: "PROJ-4",
		Changelog: []ChangeEvent{
			{Field: "status", To: "In Progress", At: at(2)},
			{Field: "assignee", To: "jdoe", At: at(20)},
		},
	})
	require.NotNil(t, iv.Start)
	assert.True(t, iv.Start.Equal(at(20)))
	assert.Nil(t, iv.End)
}

func TestDeriveInterval_ReopenedNeverDone(t *testing.T) {
	t.Parallel()
	iv := DeriveInterval(Issue{
		Key: "PROJ-5",
		Changelog: []ChangeEvent{
			{Field: "status", To: "In Progress", At: at(3)},
			{Field: "status", To: "Blocked", At: at(4)},
		},
	})
	require.NotNil(t, iv.Start)
	assert.True(t, iv.Start.Equal(at(4)))
	assert.Nil(t, iv.End)
}
