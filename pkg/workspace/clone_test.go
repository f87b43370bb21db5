package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneIsIndependent(t *testing.T) {
	original := Seed()
	copied := original.Clone()

	copied.View = "calendar"
	copied.Tasks[0].Status = "Done"
	copied.Tasks[0].Tags[0] = "mutated"
	copied.WIPLimits["In Progress"] = 99
	copied.Schedule.Timeline[0].End = "2026-09-01"
	copied.Docs[0].Title = "mutated"
	copied.Files[0].Name = "mutated.png"

	assert.Equal(t, "board", original.View)
	assert.Equal(t, "In Progress", original.Tasks[0].Status)
	assert.Equal(t, []string{"design"}, original.Tasks[0].Tags)
	assert.Equal(t, 3, original.WIPLimits["In Progress"])
	assert.Equal(t, "2026-08-21", original.Schedule.Timeline[0].End)
	assert.Equal(t, "Onboarding notes", original.Docs[0].Title)
	assert.Equal(t, "funnel.png", original.Files[0].Name)
}

func TestCloneNil(t *testing.T) {
	var s *Snapshot
	assert.Nil(t, s.Clone())
}

func TestClonePreservesNilCollections(t *testing.T) {
	s := &Snapshot{Workspace: "Atlas"}
	copied := s.Clone()

	assert.Nil(t, copied.Tasks)
	assert.Nil(t, copied.WIPLimits)
	assert.Nil(t, copied.Docs)
	assert.Nil(t, copied.Files)
}

func TestTaskLookup(t *testing.T) {
	s := Seed()

	task := s.Task("T-102")
	require.NotNil(t, task)
	assert.Equal(t, "Welcome checklist API", task.Title)

	assert.Nil(t, s.Task("T-999"))
}
