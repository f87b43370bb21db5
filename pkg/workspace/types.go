// Package workspace defines the value types that make up one point-in-time
// snapshot of the project workspace: board tasks, schedule, docs, files,
// and the project brief.
package workspace

import (
	"time"

	"github.com/dshills/boardflow/pkg/domain/types"
)

// Task is one card on the board.
type Task struct {
	ID       types.TaskID `json:"id" yaml:"id"`
	Title    string       `json:"title" yaml:"title"`
	Status   string       `json:"status" yaml:"status"`
	Assignee string       `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Priority string       `json:"priority,omitempty" yaml:"priority,omitempty"`
	Points   int          `json:"points,omitempty" yaml:"points,omitempty"`
	Tags     []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// TimelineItem places a task on the sprint timeline.
type TimelineItem struct {
	TaskID types.TaskID `json:"task_id" yaml:"task_id"`
	Start  string       `json:"start" yaml:"start"` // ISO date
	End    string       `json:"end" yaml:"end"`     // ISO date
}

// CalendarEntry is one dated entry on the workspace calendar.
type CalendarEntry struct {
	Date  string `json:"date" yaml:"date"` // ISO date
	Title string `json:"title" yaml:"title"`
}

// Schedule groups the timeline and calendar views of the same task set.
type Schedule struct {
	Timeline []TimelineItem  `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	Calendar []CalendarEntry `json:"calendar,omitempty" yaml:"calendar,omitempty"`
}

// Doc is a workspace document.
type Doc struct {
	ID      string    `json:"id" yaml:"id"`
	Title   string    `json:"title" yaml:"title"`
	Body    string    `json:"body,omitempty" yaml:"body,omitempty"`
	Created time.Time `json:"created,omitempty" yaml:"created,omitempty"`
}

// FileEntry is a file attached to the workspace.
type FileEntry struct {
	Name string `json:"name" yaml:"name"`
	Size int64  `json:"size,omitempty" yaml:"size,omitempty"`
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// Snapshot is one immutable point-in-time copy of the entire workspace
// state. Snapshots are created only by the history engine and must never
// be mutated in place; use Clone to obtain an independent copy first.
type Snapshot struct {
	ID           int            `json:"id"`
	Label        string         `json:"label"`
	Timestamp    time.Time      `json:"timestamp"`
	Workspace    string         `json:"workspace"`
	View         string         `json:"view"`
	Sprint       string         `json:"sprint"`
	ProjectBrief string         `json:"project_brief"`
	BriefLocked  bool           `json:"brief_locked"`
	Tasks        []Task         `json:"tasks"`
	WIPLimits    map[string]int `json:"wip_limits,omitempty"`
	Schedule     Schedule       `json:"schedule"`
	Docs         []Doc          `json:"docs,omitempty"`
	Files        []FileEntry    `json:"files,omitempty"`
	Committed    bool           `json:"committed,omitempty"`
}

// Task returns a pointer to the task with the given ID, or nil.
// The pointer addresses this snapshot's own storage, so callers holding a
// read-only view must not write through it.
func (s *Snapshot) Task(id types.TaskID) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}
