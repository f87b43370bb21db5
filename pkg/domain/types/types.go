// Package types defines core domain type aliases and identifiers for Boardflow.
package types

import "github.com/google/uuid"

// FlowID is a unique identifier for an automation flow.
type FlowID string

// NewFlowID generates a new unique flow ID.
func NewFlowID() FlowID {
	return FlowID(uuid.NewString())
}

// String returns the string representation of a FlowID.
func (id FlowID) String() string {
	return string(id)
}

// IsZero returns true if the FlowID is the zero value.
func (id FlowID) IsZero() bool {
	return id == ""
}

// BindingID is a unique identifier for a flow binding on a workspace target.
type BindingID string

// NewBindingID generates a new unique binding ID.
func NewBindingID() BindingID {
	return BindingID(uuid.NewString())
}

// String returns the string representation of a BindingID.
func (id BindingID) String() string {
	return string(id)
}

// ExecutionID is a unique identifier for one flow execution.
type ExecutionID string

// NewExecutionID generates a new unique execution ID.
func NewExecutionID() ExecutionID {
	return ExecutionID(uuid.NewString())
}

// String returns the string representation of an ExecutionID.
func (id ExecutionID) String() string {
	return string(id)
}

// IsZero returns true if the ExecutionID is the zero value.
func (id ExecutionID) IsZero() bool {
	return id == ""
}

// TaskID identifies a task on the board (e.g. "T-101").
type TaskID string

// String returns the string representation of a TaskID.
func (id TaskID) String() string {
	return string(id)
}

// TargetKey identifies a bindable workspace target (e.g. "task:T-101").
type TargetKey string

// TaskTarget builds the target key for a task.
func TaskTarget(id TaskID) TargetKey {
	return TargetKey("task:" + string(id))
}

// String returns the string representation of a TargetKey.
func (k TargetKey) String() string {
	return string(k)
}
