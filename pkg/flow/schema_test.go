package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singleFlowJSON = `{
  "id": "flow-json",
  "name": "JSON import",
  "trigger": {"type": "task.dropped"},
  "conditions": [
    {"field": "toStatus", "operator": "equals", "value": "Done"}
  ],
  "actions": [
    {"type": "log_message", "level": "warn", "message": "{{taskId}} done"}
  ]
}`

const flowListJSON = `{
  "flows": [
    {"name": "A", "actions": [{"type": "log_message", "message": "a"}]},
    {"name": "B", "enabled": false, "actions": [{"type": "show_notification", "message": "b"}]}
  ]
}`

func TestValidateJSONDefinition(t *testing.T) {
	assert.NoError(t, ValidateJSONDefinition([]byte(singleFlowJSON)))
	assert.NoError(t, ValidateJSONDefinition([]byte(flowListJSON)))
}

func TestValidateJSONDefinitionRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing name", `{"actions": [{"type": "log_message", "message": "x"}]}`},
		{"unknown action type", `{"name": "X", "actions": [{"type": "teleport_task"}]}`},
		{"unknown operator", `{"name": "X", "conditions": [{"field": "a", "operator": "matches"}]}`},
		{"extra property", `{"name": "X", "color": "red"}`},
		{"bad log level", `{"name": "X", "actions": [{"type": "log_message", "message": "x", "level": "trace"}]}`},
		{"actions not a list", `{"name": "X", "actions": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateJSONDefinition([]byte(tt.doc)), ErrInvalidFlow)
		})
	}
}

func TestParseFlowsJSONSingle(t *testing.T) {
	flows, err := ParseFlowsJSON([]byte(singleFlowJSON))
	require.NoError(t, err)
	require.Len(t, flows, 1)

	f := flows[0]
	assert.Equal(t, "JSON import", f.Name)
	assert.True(t, f.Enabled)
	assert.Equal(t, EventTaskDropped, f.Trigger.Type)

	require.Len(t, f.Actions, 1)
	logAction, ok := f.Actions[0].(*LogMessageAction)
	require.True(t, ok)
	assert.Equal(t, "warn", logAction.Level)
}

func TestParseFlowsJSONList(t *testing.T) {
	flows, err := ParseFlowsJSON([]byte(flowListJSON))
	require.NoError(t, err)
	require.Len(t, flows, 2)
	assert.True(t, flows[0].Enabled)
	assert.False(t, flows[1].Enabled)
}

func TestParseFlowsJSONRejectsInvalidDocument(t *testing.T) {
	_, err := ParseFlowsJSON([]byte(`{"name": "X", "actions": [{"type": "teleport_task"}]}`))
	assert.Error(t, err)
}
