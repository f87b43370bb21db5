package flow

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/dshills/boardflow/pkg/workspace"
)

// ConditionEvaluator evaluates flow conditions against the merged event
// payload / snapshot context. Compiled expression programs are cached by
// source string.
//
// Not goroutine-safe; the engine invokes it from its single logical
// owner.
type ConditionEvaluator struct {
	programs map[string]*vm.Program
}

// NewConditionEvaluator creates an evaluator with an empty program cache.
func NewConditionEvaluator() *ConditionEvaluator {
	return &ConditionEvaluator{
		programs: make(map[string]*vm.Program),
	}
}

// EvaluateAll performs conjunctive (AND) evaluation. An empty condition
// list is vacuously true. Each condition resolves its field against the
// event payload first, falling back to the current snapshot.
func (ce *ConditionEvaluator) EvaluateAll(conditions []Condition, payload map[string]interface{}, snap *workspace.Snapshot) bool {
	for _, cond := range conditions {
		if !ce.evaluate(cond, payload, snap) {
			return false
		}
	}
	return true
}

func (ce *ConditionEvaluator) evaluate(cond Condition, payload map[string]interface{}, snap *workspace.Snapshot) bool {
	if cond.Expression != "" {
		return ce.evaluateExpression(cond.Expression, payload, snap)
	}

	value, found := lookupPath(cond.Field, payload, snap)

	switch cond.Operator {
	case OpEquals:
		return found && looseEqual(value, cond.Value)
	case OpNotEquals:
		return !found || !looseEqual(value, cond.Value)
	case OpContains:
		return found && strings.Contains(stringify(value), stringify(cond.Value))
	case OpGreaterThan:
		a, aok := toNumber(value)
		b, bok := toNumber(cond.Value)
		return found && aok && bok && a > b
	case OpLessThan:
		a, aok := toNumber(value)
		b, bok := toNumber(cond.Value)
		return found && aok && bok && a < b
	case OpExists:
		return found && value != nil
	case OpNotExists:
		return !found || value == nil
	default:
		// Unknown operators fail closed.
		return false
	}
}

// evaluateExpression runs a sandboxed boolean expression over the merged
// context. Any compile or runtime error makes the condition false.
func (ce *ConditionEvaluator) evaluateExpression(expression string, payload map[string]interface{}, snap *workspace.Snapshot) bool {
	env := buildExpressionEnv(payload, snap)

	program, err := ce.getOrCompile(expression, env)
	if err != nil {
		return false
	}

	result, err := vm.Run(program, env)
	if err != nil {
		return false
	}

	b, ok := result.(bool)
	return ok && b
}

func (ce *ConditionEvaluator) getOrCompile(expression string, env map[string]interface{}) (*vm.Program, error) {
	if program, ok := ce.programs[expression]; ok {
		return program, nil
	}

	options := []expr.Option{
		expr.Env(env),
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
		expr.Function("contains", func(params ...interface{}) (interface{}, error) {
			if len(params) != 2 {
				return nil, fmt.Errorf("contains requires 2 arguments")
			}
			return strings.Contains(stringify(params[0]), stringify(params[1])), nil
		}),
	}

	program, err := expr.Compile(expression, options...)
	if err != nil {
		return nil, err
	}

	ce.programs[expression] = program
	return program, nil
}

// buildExpressionEnv merges the event payload with the snapshot's scalar
// fields. Payload keys win on collision, matching field resolution order.
func buildExpressionEnv(payload map[string]interface{}, snap *workspace.Snapshot) map[string]interface{} {
	env := make(map[string]interface{}, len(payload)+6)
	if snap != nil {
		env["workspace"] = snap.Workspace
		env["view"] = snap.View
		env["sprint"] = snap.Sprint
		env["projectBrief"] = snap.ProjectBrief
		env["briefLocked"] = snap.BriefLocked
		env["taskCount"] = len(snap.Tasks)
	}
	for k, v := range payload {
		env[k] = v
	}
	return env
}

// looseEqual compares two values, treating all numeric types as numbers
// so YAML ints compare equal to JSON floats. Everything else uses deep
// equality.
func looseEqual(a, b interface{}) bool {
	an, aok := toStrictNumber(a)
	bn, bok := toStrictNumber(b)
	if aok && bok {
		return an == bn
	}
	if aok != bok {
		return false
	}
	return reflect.DeepEqual(a, b)
}

// toStrictNumber converts numeric types only; strings do not coerce.
func toStrictNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// toNumber coerces numbers and numeric strings, for the ordering
// operators.
func toNumber(v interface{}) (float64, bool) {
	if n, ok := toStrictNumber(v); ok {
		return n, true
	}
	if s, ok := v.(string); ok {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err == nil {
			return n, true
		}
	}
	return 0, false
}
