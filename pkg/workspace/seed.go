package workspace

import "time"

// Columns of the default board, in display order.
var DefaultColumns = []string{"Backlog", "To Do", "In Progress", "Review", "Done"}

// Seed builds the initial workspace snapshot used by the CLI and tests.
// It mirrors the demo dataset: a small sprint with a handful of tasks, a
// project brief, one doc, and matching schedule entries.
func Seed() *Snapshot {
	now := time.Now()

	return &Snapshot{
		ID:           0,
		Label:        "Initial state",
		Timestamp:    now,
		Workspace:    "Atlas",
		View:         "board",
		Sprint:       "Sprint 12",
		ProjectBrief: "Ship the onboarding revamp: new signup flow, welcome checklist, and activation metrics.",
		Tasks: []Task{
			{ID: "T-101", Title: "Design signup flow", Status: "In Progress", Assignee: "mara", Priority: "high", Points: 5, Tags: []string{"design"}},
			{ID: "T-102", Title: "Welcome checklist API", Status: "To Do", Assignee: "devon", Priority: "medium", Points: 3, Tags: []string{"backend"}},
			{ID: "T-103", Title: "Activation dashboard", Status: "Backlog", Priority: "low", Points: 8, Tags: []string{"analytics"}},
			{ID: "T-104", Title: "Email templates", Status: "Review", Assignee: "mara", Priority: "medium", Points: 2},
		},
		WIPLimits: map[string]int{
			"In Progress": 3,
			"Review":      2,
		},
		Schedule: Schedule{
			Timeline: []TimelineItem{
				{TaskID: "T-101", Start: "2026-08-17", End: "2026-08-21"},
				{TaskID: "T-102", Start: "2026-08-19", End: "2026-08-24"},
			},
			Calendar: []CalendarEntry{
				{Date: "2026-08-28", Title: "Sprint review"},
			},
		},
		Docs: []Doc{
			{ID: "D-1", Title: "Onboarding notes", Body: "Signup funnel drop-off is at the email verification step.", Created: now},
		},
		Files: []FileEntry{
			{Name: "funnel.png", Size: 48231, Kind: "image"},
		},
	}
}
