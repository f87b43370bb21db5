// Package dispatch translates typed workspace commands into history
// mutations and derives the domain events that drive the flow engine.
// Flow actions issue commands back through the same dispatcher, closing
// the automation loop.
package dispatch

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dshills/boardflow/pkg/domain/types"
	"github.com/dshills/boardflow/pkg/flow"
	"github.com/dshills/boardflow/pkg/history"
	"github.com/dshills/boardflow/pkg/workspace"
)

// Dispatcher applies commands through the history engine and forwards
// derived events to the flow engine. It is the single logical owner of
// both; callers must not invoke it concurrently.
type Dispatcher struct {
	history *history.Engine
	flows   *flow.Engine
	logSink flow.LogSink
}

// New creates a dispatcher. The flow engine may be nil when automation
// is not wired (commands still mutate history).
func New(h *history.Engine, flows *flow.Engine, logSink flow.LogSink) *Dispatcher {
	if logSink == nil {
		logSink = discardSink{}
	}
	return &Dispatcher{history: h, flows: flows, logSink: logSink}
}

// History returns the underlying history engine.
func (d *Dispatcher) History() *history.Engine {
	return d.history
}

// Dispatch applies one command. Unknown command types are logged and
// ignored; they never surface as errors.
func (d *Dispatcher) Dispatch(cmd workspace.Command) error {
	switch cmd.Type {
	case workspace.CmdSetView:
		return d.setView(cmd)
	case workspace.CmdCreateTask:
		return d.createTask(cmd)
	case workspace.CmdMoveTask:
		return d.moveTask(cmd)
	case workspace.CmdUpdateTaskField:
		return d.updateTaskField(cmd)
	case workspace.CmdUpdateBrief:
		return d.updateBrief(cmd)
	case workspace.CmdLockBrief:
		return d.setBriefLock(true)
	case workspace.CmdUnlockBrief:
		return d.setBriefLock(false)
	case workspace.CmdGenerateTasksFromBrief:
		return d.generateTasksFromBrief()
	case workspace.CmdUpdateTimeline:
		return d.updateTimeline(cmd)
	case workspace.CmdCreateDoc:
		return d.createDoc(cmd)
	case workspace.CmdCommit:
		return d.commit()
	default:
		d.logSink.Log("warn", fmt.Sprintf("ignoring unknown command type %q", cmd.Type))
		return nil
	}
}

func (d *Dispatcher) setView(cmd workspace.Command) error {
	return d.history.ApplyChange(fmt.Sprintf("Switch view to %s", cmd.View), func(s *workspace.Snapshot) error {
		s.View = cmd.View
		return nil
	})
}

func (d *Dispatcher) createTask(cmd workspace.Command) error {
	var created workspace.Task

	err := d.history.ApplyChange(fmt.Sprintf("Create task %q", cmd.Title), func(s *workspace.Snapshot) error {
		if cmd.Title == "" {
			return fmt.Errorf("task title cannot be empty")
		}
		id := cmd.TaskID
		if id == "" {
			id = nextTaskID(s)
		} else if s.Task(id) != nil {
			return fmt.Errorf("task %s already exists", id)
		}
		status := cmd.Status
		if status == "" {
			status = "Backlog"
		}
		created = workspace.Task{ID: id, Title: cmd.Title, Status: status}
		s.Tasks = append(s.Tasks, created)
		return nil
	})
	if err != nil {
		return err
	}

	d.emit(flow.Event{
		Type:      flow.EventTaskCreated,
		TargetKey: types.TaskTarget(created.ID),
		Payload: map[string]interface{}{
			"taskId": created.ID.String(),
			"title":  created.Title,
			"status": created.Status,
		},
	})
	return nil
}

func (d *Dispatcher) moveTask(cmd workspace.Command) error {
	var fromStatus string

	err := d.history.ApplyChange(fmt.Sprintf("Move %s to %s", cmd.TaskID, cmd.ToStatus), func(s *workspace.Snapshot) error {
		task := s.Task(cmd.TaskID)
		if task == nil {
			return fmt.Errorf("task %s not found", cmd.TaskID)
		}
		if cmd.ToStatus == "" {
			return fmt.Errorf("move target column cannot be empty")
		}
		fromStatus = task.Status
		task.Status = cmd.ToStatus
		return nil
	})
	if err != nil {
		return err
	}

	payload := map[string]interface{}{
		"taskId":     cmd.TaskID.String(),
		"fromStatus": fromStatus,
		"toStatus":   cmd.ToStatus,
	}
	d.emit(flow.Event{Type: flow.EventTaskDropped, TargetKey: types.TaskTarget(cmd.TaskID), Payload: payload})
	if fromStatus != cmd.ToStatus {
		d.emit(flow.Event{Type: flow.EventTaskStatusChanged, TargetKey: types.TaskTarget(cmd.TaskID), Payload: payload})
	}
	return nil
}

func (d *Dispatcher) updateTaskField(cmd workspace.Command) error {
	err := d.history.ApplyChange(fmt.Sprintf("Update %s.%s", cmd.TaskID, cmd.Field), func(s *workspace.Snapshot) error {
		task := s.Task(cmd.TaskID)
		if task == nil {
			return fmt.Errorf("task %s not found", cmd.TaskID)
		}
		return setTaskField(task, cmd.Field, cmd.Value)
	})
	if err != nil {
		return err
	}

	payload := map[string]interface{}{
		"taskId": cmd.TaskID.String(),
		"field":  cmd.Field,
		"value":  cmd.Value,
	}
	d.emit(flow.Event{Type: flow.EventFieldUpdated, TargetKey: types.TaskTarget(cmd.TaskID), Payload: payload})
	d.emit(flow.Event{Type: flow.EventTaskUpdated, TargetKey: types.TaskTarget(cmd.TaskID), Payload: payload})
	return nil
}

func (d *Dispatcher) updateBrief(cmd workspace.Command) error {
	return d.history.ApplyChange("Update project brief", func(s *workspace.Snapshot) error {
		if s.BriefLocked {
			return fmt.Errorf("project brief is locked")
		}
		s.ProjectBrief = cmd.Brief
		return nil
	})
}

func (d *Dispatcher) setBriefLock(locked bool) error {
	label := "Lock project brief"
	if !locked {
		label = "Unlock project brief"
	}
	return d.history.ApplyChange(label, func(s *workspace.Snapshot) error {
		s.BriefLocked = locked
		return nil
	})
}

func (d *Dispatcher) generateTasksFromBrief() error {
	var created []workspace.Task

	err := d.history.ApplyChange("Generate tasks from brief", func(s *workspace.Snapshot) error {
		titles := briefSegments(s.ProjectBrief)
		if len(titles) == 0 {
			return fmt.Errorf("project brief has no content to generate from")
		}
		for _, title := range titles {
			task := workspace.Task{
				ID:     nextTaskID(s),
				Title:  title,
				Status: "To Do",
				Tags:   []string{"generated"},
			}
			s.Tasks = append(s.Tasks, task)
			created = append(created, task)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, task := range created {
		d.emit(flow.Event{
			Type:      flow.EventTaskCreated,
			TargetKey: types.TaskTarget(task.ID),
			Payload: map[string]interface{}{
				"taskId": task.ID.String(),
				"title":  task.Title,
				"status": task.Status,
			},
		})
	}
	return nil
}

func (d *Dispatcher) updateTimeline(cmd workspace.Command) error {
	return d.history.ApplyChange("Update timeline", func(s *workspace.Snapshot) error {
		items := make([]workspace.TimelineItem, len(cmd.Timeline))
		copy(items, cmd.Timeline)
		s.Schedule.Timeline = items
		return nil
	})
}

func (d *Dispatcher) createDoc(cmd workspace.Command) error {
	return d.history.ApplyChange(fmt.Sprintf("Create doc %q", cmd.DocTitle), func(s *workspace.Snapshot) error {
		if cmd.DocTitle == "" {
			return fmt.Errorf("doc title cannot be empty")
		}
		s.Docs = append(s.Docs, workspace.Doc{
			ID:      fmt.Sprintf("D-%d", len(s.Docs)+1),
			Title:   cmd.DocTitle,
			Body:    cmd.DocBody,
			Created: time.Now(),
		})
		return nil
	})
}

func (d *Dispatcher) commit() error {
	d.history.Commit()
	d.emit(flow.Event{
		Type: flow.EventWorkspaceCommitted,
		Payload: map[string]interface{}{
			"commitIndex": d.history.CommitIndex(),
		},
	})
	return nil
}

// emit forwards a derived event to the flow engine, when one is wired.
func (d *Dispatcher) emit(event flow.Event) {
	if d.flows == nil {
		return
	}
	d.flows.HandleEvent(event)
}

// briefSegments splits a project brief into candidate task titles, one
// per non-empty line, with list markers stripped.
func briefSegments(brief string) []string {
	var titles []string
	for _, line := range strings.Split(brief, "\n") {
		title := strings.TrimSpace(line)
		title = strings.TrimLeft(title, "-*• \t")
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}
		titles = append(titles, title)
	}
	return titles
}

// setTaskField applies one whitelisted field update.
func setTaskField(task *workspace.Task, field, value string) error {
	switch field {
	case "title":
		task.Title = value
	case "status":
		task.Status = value
	case "assignee":
		task.Assignee = value
	case "priority":
		task.Priority = value
	case "points":
		points, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("points must be numeric: %q", value)
		}
		task.Points = points
	default:
		return fmt.Errorf("unsupported task field: %q", field)
	}
	return nil
}

// nextTaskID returns the next sequential ID after the highest numeric
// T-suffix in the snapshot.
func nextTaskID(s *workspace.Snapshot) types.TaskID {
	max := 100
	for _, task := range s.Tasks {
		id := task.ID.String()
		if !strings.HasPrefix(id, "T-") {
			continue
		}
		if n, err := strconv.Atoi(id[2:]); err == nil && n > max {
			max = n
		}
	}
	return types.TaskID(fmt.Sprintf("T-%d", max+1))
}

// discardSink drops log output; used when no sink is wired.
type discardSink struct{}

func (discardSink) Log(string, string) {}
