package flow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/boardflow/pkg/validation"
)

// ValidateFlow checks all flow invariants and returns every problem
// found, joined into one error.
func ValidateFlow(f *Flow) error {
	if f == nil {
		return fmt.Errorf("%w: nil flow", ErrInvalidFlow)
	}

	var problems []string

	if f.ID.IsZero() {
		problems = append(problems, "flow ID cannot be empty")
	} else if !validation.IsValidIdentifier(f.ID.String()) {
		problems = append(problems, fmt.Sprintf("invalid flow ID: %s", f.ID))
	}

	if f.Name == "" {
		problems = append(problems, "flow name cannot be empty")
	}

	if f.Trigger.Type != "" && !IsKnownEventType(f.Trigger.Type) {
		problems = append(problems, fmt.Sprintf("unknown trigger type: %s", f.Trigger.Type))
	}

	for i, cond := range f.Conditions {
		if err := validateCondition(cond); err != nil {
			problems = append(problems, fmt.Sprintf("condition %d: %v", i, err))
		}
	}

	for i, action := range f.Actions {
		if action == nil {
			problems = append(problems, fmt.Sprintf("action %d: nil action", i))
			continue
		}
		if err := action.Validate(); err != nil {
			problems = append(problems, fmt.Sprintf("action %d: %v", i, err))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidFlow, strings.Join(problems, "; "))
	}
	return nil
}

func validateCondition(cond Condition) error {
	if cond.Expression != "" {
		if cond.Field != "" || cond.Operator != "" {
			return errors.New("expression conditions cannot also set field/operator")
		}
		return nil
	}

	if !validation.IsValidDottedPath(cond.Field) {
		return fmt.Errorf("invalid field path: %q", cond.Field)
	}
	if !IsKnownOperator(cond.Operator) {
		return fmt.Errorf("unknown operator: %q", cond.Operator)
	}

	switch cond.Operator {
	case OpExists, OpNotExists:
		if cond.Value != nil {
			return fmt.Errorf("%s takes no value", cond.Operator)
		}
	}
	return nil
}
