package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validFlow() *Flow {
	return &Flow{
		ID:      "flow-valid",
		Name:    "Valid",
		Enabled: true,
		Trigger: Trigger{Type: EventTaskDropped},
		Conditions: []Condition{
			{Field: "toStatus", Operator: OpEquals, Value: "Done"},
		},
		Actions: []Action{&LogMessageAction{Message: "ok"}},
	}
}

func TestValidateFlowAccepts(t *testing.T) {
	assert.NoError(t, ValidateFlow(validFlow()))

	// Empty trigger type is allowed; the binding decides the event scope.
	f := validFlow()
	f.Trigger.Type = ""
	assert.NoError(t, ValidateFlow(f))

	// Expression conditions are allowed.
	f = validFlow()
	f.Conditions = []Condition{{Expression: `toStatus == "Done"`}}
	assert.NoError(t, ValidateFlow(f))

	// exists takes no value.
	f = validFlow()
	f.Conditions = []Condition{{Field: "assignee", Operator: OpExists}}
	assert.NoError(t, ValidateFlow(f))
}

func TestValidateFlowRejects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Flow)
		message string
	}{
		{"empty name", func(f *Flow) { f.Name = "" }, "name cannot be empty"},
		{"empty ID", func(f *Flow) { f.ID = "" }, "ID cannot be empty"},
		{"bad ID characters", func(f *Flow) { f.ID = "has spaces!" }, "invalid flow ID"},
		{"unknown trigger", func(f *Flow) { f.Trigger.Type = "task.vanished" }, "unknown trigger type"},
		{"unknown operator", func(f *Flow) {
			f.Conditions = []Condition{{Field: "x", Operator: "matches", Value: "y"}}
		}, "unknown operator"},
		{"invalid field path", func(f *Flow) {
			f.Conditions = []Condition{{Field: "a..b", Operator: OpEquals, Value: 1}}
		}, "invalid field path"},
		{"expression plus field", func(f *Flow) {
			f.Conditions = []Condition{{Expression: "true", Field: "x", Operator: OpEquals}}
		}, "cannot also set field/operator"},
		{"exists with value", func(f *Flow) {
			f.Conditions = []Condition{{Field: "x", Operator: OpExists, Value: "y"}}
		}, "takes no value"},
		{"nil action", func(f *Flow) { f.Actions = []Action{nil} }, "nil action"},
		{"invalid action", func(f *Flow) {
			f.Actions = []Action{&RunCommandAction{}}
		}, "needs a command_type"},
		{"bad log level", func(f *Flow) {
			f.Actions = []Action{&LogMessageAction{Message: "x", Level: "trace"}}
		}, "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFlow()
			tt.mutate(f)
			err := ValidateFlow(f)
			assert.ErrorIs(t, err, ErrInvalidFlow)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidateFlowCollectsAllProblems(t *testing.T) {
	f := validFlow()
	f.Name = ""
	f.Trigger.Type = "task.vanished"

	err := ValidateFlow(f)
	assert.ErrorIs(t, err, ErrInvalidFlow)
	assert.Contains(t, err.Error(), "name cannot be empty")
	assert.Contains(t, err.Error(), "unknown trigger type")
}

func TestValidateFlowNil(t *testing.T) {
	assert.ErrorIs(t, ValidateFlow(nil), ErrInvalidFlow)
}
