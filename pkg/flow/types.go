// Package flow implements the rule-based automation engine: declarative
// trigger/conditions/actions flows bound to workspace targets, evaluated
// against domain events, with a bounded execution audit log.
package flow

import (
	"github.com/dshills/boardflow/pkg/domain/types"
)

// Event types recognized in this domain.
const (
	EventTaskDropped        = "task.dropped"
	EventTaskDragStart      = "task.dragstart"
	EventTaskCreated        = "task.created"
	EventTaskUpdated        = "task.updated"
	EventTaskStatusChanged  = "task.status_changed"
	EventButtonClicked      = "button.clicked"
	EventFieldUpdated       = "field.updated"
	EventWorkspaceCommitted = "workspace.committed"
)

// KnownEventTypes lists every event type the engine recognizes.
var KnownEventTypes = []string{
	EventTaskDropped,
	EventTaskDragStart,
	EventTaskCreated,
	EventTaskUpdated,
	EventTaskStatusChanged,
	EventButtonClicked,
	EventFieldUpdated,
	EventWorkspaceCommitted,
}

// IsKnownEventType reports whether t is one of the recognized event types.
func IsKnownEventType(t string) bool {
	for _, known := range KnownEventTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Event is a domain event derived from a command or UI interaction.
// Payload fields resolve first during condition evaluation and
// interpolation; the current snapshot is the fallback.
type Event struct {
	Type      string                 `json:"type"`
	TargetKey types.TargetKey        `json:"target_key,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty"`
}

// Target returns the binding key for the event: the explicit TargetKey if
// set, otherwise synthesized from a taskId payload field as "task:<id>".
func (e Event) Target() types.TargetKey {
	if e.TargetKey != "" {
		return e.TargetKey
	}
	if id, ok := e.Payload["taskId"].(string); ok && id != "" {
		return types.TaskTarget(types.TaskID(id))
	}
	return ""
}

// Operator is a condition comparison operator.
type Operator string

// Condition operators. Unknown operators evaluate to false (fail closed).
const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpExists      Operator = "exists"
	OpNotExists   Operator = "not_exists"
)

// KnownOperators lists every supported condition operator.
var KnownOperators = []Operator{
	OpEquals, OpNotEquals, OpContains, OpGreaterThan, OpLessThan,
	OpExists, OpNotExists,
}

// IsKnownOperator reports whether op is a supported operator.
func IsKnownOperator(op Operator) bool {
	for _, known := range KnownOperators {
		if op == known {
			return true
		}
	}
	return false
}

// Condition is one declarative check against the event payload and the
// current snapshot. Either Field/Operator/Value is set, or Expression
// carries a sandboxed boolean expression evaluated over the same merged
// context.
type Condition struct {
	Field      string      `json:"field,omitempty" yaml:"field,omitempty"`
	Operator   Operator    `json:"operator,omitempty" yaml:"operator,omitempty"`
	Value      interface{} `json:"value,omitempty" yaml:"value,omitempty"`
	Expression string      `json:"expression,omitempty" yaml:"expression,omitempty"`
}

// Trigger declares what kind of event a flow responds to.
type Trigger struct {
	Type string `json:"type" yaml:"type"`
}

// Flow is a declarative trigger/conditions/actions automation rule.
// Flows are immutable once stored; replace by ID via SaveFlow.
type Flow struct {
	ID             types.FlowID `json:"id" yaml:"id"`
	Name           string       `json:"name" yaml:"name"`
	Description    string       `json:"description,omitempty" yaml:"description,omitempty"`
	Enabled        bool         `json:"enabled" yaml:"enabled"`
	SendToBackend  *bool        `json:"send_to_backend,omitempty" yaml:"send_to_backend,omitempty"`
	Trigger        Trigger      `json:"trigger" yaml:"trigger"`
	DefaultTrigger string       `json:"default_trigger,omitempty" yaml:"default_trigger,omitempty"`
	Conditions     []Condition  `json:"conditions,omitempty" yaml:"conditions,omitempty"`
	Actions        []Action     `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// ShouldRelay reports whether executions of this flow are forwarded to
// the backend relay sink. Unset means yes; only an explicit false opts
// out.
func (f *Flow) ShouldRelay() bool {
	return f.SendToBackend == nil || *f.SendToBackend
}

// Binding associates a flow with a workspace target, scoped by event
// type. An empty EventType matches any event on the target.
type Binding struct {
	ID        types.BindingID `json:"id"`
	FlowID    types.FlowID    `json:"flow_id"`
	EventType string          `json:"event_type,omitempty"`
}

// Matches reports whether the binding fires for the given event type.
func (b Binding) Matches(eventType string) bool {
	return b.EventType == "" || b.EventType == eventType
}
