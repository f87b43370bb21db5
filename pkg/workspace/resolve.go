package workspace

import (
	"strings"

	"github.com/dshills/boardflow/pkg/domain/types"
)

// Resolve looks up a dotted path against the snapshot and reports whether
// the path exists. It is an explicit traversal over the typed snapshot
// tree: condition fields and interpolation tokens that miss the event
// payload fall back to this lookup.
//
// Supported paths:
//
//	workspace, view, sprint, projectBrief, briefLocked, committed, label
//	wipLimits.<column>
//	tasks.<id> and tasks.<id>.<field>
//	schedule.timeline, schedule.calendar
//	docs, files (counts are not exposed; the values themselves resolve)
func (s *Snapshot) Resolve(path string) (interface{}, bool) {
	if s == nil || path == "" {
		return nil, false
	}
	return s.resolveSegments(strings.Split(path, "."))
}

func (s *Snapshot) resolveSegments(segments []string) (interface{}, bool) {
	head, rest := segments[0], segments[1:]

	switch head {
	case "workspace":
		return terminal(s.Workspace, rest)
	case "view":
		return terminal(s.View, rest)
	case "sprint":
		return terminal(s.Sprint, rest)
	case "projectBrief":
		return terminal(s.ProjectBrief, rest)
	case "briefLocked":
		return terminal(s.BriefLocked, rest)
	case "committed":
		return terminal(s.Committed, rest)
	case "label":
		return terminal(s.Label, rest)
	case "wipLimits":
		if len(rest) != 1 {
			return nil, false
		}
		limit, ok := s.WIPLimits[rest[0]]
		if !ok {
			return nil, false
		}
		return limit, true
	case "tasks":
		if len(rest) == 0 {
			return s.Tasks, true
		}
		task := s.Task(types.TaskID(rest[0]))
		if task == nil {
			return nil, false
		}
		return resolveTask(task, rest[1:])
	case "schedule":
		if len(rest) != 1 {
			return nil, false
		}
		switch rest[0] {
		case "timeline":
			return s.Schedule.Timeline, true
		case "calendar":
			return s.Schedule.Calendar, true
		}
		return nil, false
	case "docs":
		return terminal(s.Docs, rest)
	case "files":
		return terminal(s.Files, rest)
	}

	return nil, false
}

func resolveTask(t *Task, segments []string) (interface{}, bool) {
	if len(segments) == 0 {
		return *t, true
	}
	if len(segments) > 1 {
		return nil, false
	}
	switch segments[0] {
	case "id":
		return t.ID.String(), true
	case "title":
		return t.Title, true
	case "status":
		return t.Status, true
	case "assignee":
		return t.Assignee, true
	case "priority":
		return t.Priority, true
	case "points":
		return t.Points, true
	case "tags":
		return t.Tags, true
	}
	return nil, false
}

// terminal returns value only when no path segments remain.
func terminal(value interface{}, rest []string) (interface{}, bool) {
	if len(rest) != 0 {
		return nil, false
	}
	return value, true
}
