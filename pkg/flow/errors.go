package flow

import "errors"

// Sentinel errors shared across flow parsing, validation, and execution.
var (
	ErrFlowNotFound   = errors.New("flow not found")
	ErrInvalidFlow    = errors.New("invalid flow definition")
	ErrInvalidAction  = errors.New("invalid action configuration")
	ErrUnknownAction  = errors.New("unknown action kind")
	ErrInvalidToken   = errors.New("invalid interpolation token")
	ErrNoDispatcher   = errors.New("no command dispatcher wired")
	ErrBindingMissing = errors.New("binding not found")
)

// Failure reasons reported in ExecutionResult. These are stable strings
// consumed by UI diagnostics, not error values.
const (
	ReasonDisabledOrNotFound    = "disabled_or_not_found"
	ReasonConditionsNotMet      = "conditions_not_met"
	ReasonNoDispatcher          = "no_dispatcher"
	ReasonUnsupportedTargetType = "unsupported_target_type"
)
