package errors

import (
	"fmt"
	"time"
)

// OperationalError represents enhanced error information for debugging.
//
// It wraps errors with operational context including the flow ID and the
// event type that was being handled. This enables better error tracking
// when diagnosing automation runs.
type OperationalError struct {
	Operation  string                 // What operation was being performed
	FlowID     string                 // Which flow
	EventType  string                 // Which event was being handled (if applicable)
	Timestamp  time.Time              // When error occurred
	Attributes map[string]interface{} // Additional context (optional)
	Cause      error                  // Underlying error
}

// NewOperationalError creates an OperationalError wrapping an error.
//
// Returns nil if cause is nil (no error to wrap).
//
// Example:
//
//	if err != nil {
//	    return NewOperationalError("executing action", flowID, eventType, err)
//	}
func NewOperationalError(operation, flowID, eventType string, cause error) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation: operation,
		FlowID:    flowID,
		EventType: eventType,
		Timestamp: time.Now(),
		Cause:     cause,
	}
}

// NewOperationalErrorWithAttrs creates an OperationalError with additional attributes.
//
// Returns nil if cause is nil (no error to wrap).
func NewOperationalErrorWithAttrs(operation, flowID, eventType string, cause error, attrs map[string]interface{}) *OperationalError {
	if cause == nil {
		return nil
	}

	return &OperationalError{
		Operation:  operation,
		FlowID:     flowID,
		EventType:  eventType,
		Timestamp:  time.Now(),
		Attributes: attrs,
		Cause:      cause,
	}
}

// Error implements the error interface.
//
// Format: "[timestamp] operation: flow={id} event={type}: {cause}"
// If the event type is empty, it's omitted from the message.
func (e *OperationalError) Error() string {
	if e == nil {
		return "<nil OperationalError>"
	}

	timestamp := e.Timestamp.Format(time.RFC3339)

	var msg string
	if e.EventType != "" {
		msg = fmt.Sprintf("[%s] %s: flow=%s event=%s: %v",
			timestamp,
			e.Operation,
			e.FlowID,
			e.EventType,
			e.Cause)
	} else {
		msg = fmt.Sprintf("[%s] %s: flow=%s: %v",
			timestamp,
			e.Operation,
			e.FlowID,
			e.Cause)
	}

	return msg
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperationalError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
