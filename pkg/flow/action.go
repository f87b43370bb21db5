package flow

import (
	"fmt"
)

// ActionKind discriminates the action union.
type ActionKind string

// Action kinds. The set is closed; unknown kinds are rejected at parse
// and validation time.
const (
	ActionShowNotification ActionKind = "show_notification"
	ActionRunCommand       ActionKind = "run_command"
	ActionUpdateField      ActionKind = "update_field"
	ActionLogMessage       ActionKind = "log_message"
)

// Action is one step in a flow's action list. Each concrete action type
// carries its own strongly-typed configuration.
type Action interface {
	// Kind returns the discriminator for this action.
	Kind() ActionKind
	// Validate checks the action configuration for structural problems.
	Validate() error
}

// ShowNotificationAction emits a notification to the OS/UI sink, falling
// back to the log sink when no notifier is available. Title and Message
// support {{path}} interpolation.
type ShowNotificationAction struct {
	Title   string `json:"title,omitempty" yaml:"title,omitempty"`
	Message string `json:"message" yaml:"message"`
}

// Kind implements Action.
func (a *ShowNotificationAction) Kind() ActionKind { return ActionShowNotification }

// Validate implements Action.
func (a *ShowNotificationAction) Validate() error {
	if a.Message == "" && a.Title == "" {
		return fmt.Errorf("%w: show_notification needs a title or message", ErrInvalidAction)
	}
	return nil
}

// RunCommandAction builds a typed workspace command from interpolated
// parameters and forwards it to the command dispatcher.
type RunCommandAction struct {
	CommandType string            `json:"command_type" yaml:"command_type"`
	Params      map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// Kind implements Action.
func (a *RunCommandAction) Kind() ActionKind { return ActionRunCommand }

// Validate implements Action.
func (a *RunCommandAction) Validate() error {
	if a.CommandType == "" {
		return fmt.Errorf("%w: run_command needs a command_type", ErrInvalidAction)
	}
	return nil
}

// UpdateFieldAction forwards an UpdateTaskField command for a task
// target. Only "task" targets are supported.
type UpdateFieldAction struct {
	TargetType string `json:"target_type" yaml:"target_type"`
	TargetID   string `json:"target_id" yaml:"target_id"`
	Field      string `json:"field" yaml:"field"`
	Value      string `json:"value" yaml:"value"`
}

// Kind implements Action.
func (a *UpdateFieldAction) Kind() ActionKind { return ActionUpdateField }

// Validate implements Action.
func (a *UpdateFieldAction) Validate() error {
	if a.TargetID == "" {
		return fmt.Errorf("%w: update_field needs a target_id", ErrInvalidAction)
	}
	if a.Field == "" {
		return fmt.Errorf("%w: update_field needs a field", ErrInvalidAction)
	}
	return nil
}

// LogMessageAction writes an interpolated message to the leveled log
// sink. It always succeeds at execution time.
type LogMessageAction struct {
	Level   string `json:"level,omitempty" yaml:"level,omitempty"` // info, warn, error
	Message string `json:"message" yaml:"message"`
}

// Kind implements Action.
func (a *LogMessageAction) Kind() ActionKind { return ActionLogMessage }

// Validate implements Action.
func (a *LogMessageAction) Validate() error {
	if a.Message == "" {
		return fmt.Errorf("%w: log_message needs a message", ErrInvalidAction)
	}
	switch a.Level {
	case "", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidAction, a.Level)
	}
}
