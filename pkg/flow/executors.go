package flow

import (
	"fmt"

	"github.com/dshills/boardflow/pkg/domain/types"
	"github.com/dshills/boardflow/pkg/workspace"
)

// actionResult is the internal outcome of one action execution.
type actionResult struct {
	success bool
	detail  string
	err     error
}

// executeAction dispatches on the action's concrete type. Every config
// string is interpolated against the event payload with snapshot
// fallback before use.
func (e *Engine) executeAction(action Action, event Event, snap *workspace.Snapshot) actionResult {
	switch a := action.(type) {
	case *ShowNotificationAction:
		return e.execShowNotification(a, event, snap)
	case *RunCommandAction:
		return e.execRunCommand(a, event, snap)
	case *UpdateFieldAction:
		return e.execUpdateField(a, event, snap)
	case *LogMessageAction:
		return e.execLogMessage(a, event, snap)
	default:
		return actionResult{err: fmt.Errorf("%w: %T", ErrUnknownAction, action)}
	}
}

// execShowNotification emits to the notification sink, falling back to
// the log sink when none is wired. Side effect only, no state mutation.
func (e *Engine) execShowNotification(a *ShowNotificationAction, event Event, snap *workspace.Snapshot) actionResult {
	title := Interpolate(a.Title, event.Payload, snap)
	message := Interpolate(a.Message, event.Payload, snap)

	if e.notifier != nil {
		if err := e.notifier.Notify(title, message); err != nil {
			return actionResult{err: fmt.Errorf("notification sink: %w", err)}
		}
		return actionResult{success: true, detail: title}
	}

	e.logSink.Log("info", fmt.Sprintf("notification: %s: %s", title, message))
	return actionResult{success: true, detail: title}
}

// execRunCommand builds a typed command from interpolated parameters and
// forwards it to the dispatcher.
func (e *Engine) execRunCommand(a *RunCommandAction, event Event, snap *workspace.Snapshot) actionResult {
	if e.dispatcher == nil {
		return actionResult{detail: ReasonNoDispatcher, err: ErrNoDispatcher}
	}

	params := interpolateParams(a.Params, event.Payload, snap)
	cmd := workspace.CommandFromParams(a.CommandType, params)

	if err := e.dispatcher.Dispatch(cmd); err != nil {
		return actionResult{err: fmt.Errorf("dispatching %s: %w", a.CommandType, err)}
	}
	return actionResult{success: true, detail: a.CommandType}
}

// execUpdateField supports task targets only; anything else fails with
// unsupported_target_type.
func (e *Engine) execUpdateField(a *UpdateFieldAction, event Event, snap *workspace.Snapshot) actionResult {
	if a.TargetType != "task" {
		return actionResult{
			detail: ReasonUnsupportedTargetType,
			err:    fmt.Errorf("%w: target type %q", ErrInvalidAction, a.TargetType),
		}
	}
	if e.dispatcher == nil {
		return actionResult{detail: ReasonNoDispatcher, err: ErrNoDispatcher}
	}

	targetID := Interpolate(a.TargetID, event.Payload, snap)
	value := Interpolate(a.Value, event.Payload, snap)

	cmd := workspace.Command{
		Type:   workspace.CmdUpdateTaskField,
		TaskID: types.TaskID(targetID),
		Field:  a.Field,
		Value:  value,
	}

	if err := e.dispatcher.Dispatch(cmd); err != nil {
		return actionResult{err: fmt.Errorf("updating task %s: %w", targetID, err)}
	}
	return actionResult{success: true, detail: targetID}
}

// execLogMessage writes to the leveled log sink; it always succeeds.
func (e *Engine) execLogMessage(a *LogMessageAction, event Event, snap *workspace.Snapshot) actionResult {
	level := a.Level
	if level == "" {
		level = "info"
	}

	message := Interpolate(a.Message, event.Payload, snap)
	e.logSink.Log(level, message)

	return actionResult{success: true, detail: message}
}
