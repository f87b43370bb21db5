package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScalars(t *testing.T) {
	s := Seed()

	tests := []struct {
		path  string
		want  interface{}
		found bool
	}{
		{"workspace", "Atlas", true},
		{"view", "board", true},
		{"sprint", "Sprint 12", true},
		{"briefLocked", false, true},
		{"committed", false, true},
		{"label", "Initial state", true},
		{"wipLimits.In Progress", 3, true},
		{"wipLimits.Done", nil, false},
		{"tasks.T-101.status", "In Progress", true},
		{"tasks.T-101.assignee", "mara", true},
		{"tasks.T-101.points", 5, true},
		{"tasks.T-101.id", "T-101", true},
		{"tasks.T-999.status", nil, false},
		{"tasks.T-101.unknown", nil, false},
		{"tasks.T-101.status.extra", nil, false},
		{"workspace.extra", nil, false},
		{"unknown", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, found := s.Resolve(tt.path)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveCollections(t *testing.T) {
	s := Seed()

	tasks, found := s.Resolve("tasks")
	require.True(t, found)
	assert.Len(t, tasks, 4)

	task, found := s.Resolve("tasks.T-104")
	require.True(t, found)
	assert.Equal(t, "Email templates", task.(Task).Title)

	timeline, found := s.Resolve("schedule.timeline")
	require.True(t, found)
	assert.Len(t, timeline, 2)

	calendar, found := s.Resolve("schedule.calendar")
	require.True(t, found)
	assert.Len(t, calendar, 1)

	_, found = s.Resolve("schedule.unknown")
	assert.False(t, found)
}

func TestResolveNilSnapshot(t *testing.T) {
	var s *Snapshot
	_, found := s.Resolve("workspace")
	assert.False(t, found)
}
