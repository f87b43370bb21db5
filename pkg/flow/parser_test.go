package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/boardflow/pkg/domain/types"
)

const singleFlowYAML = `
id: flow-done-notify
name: Done notifier
description: Notify when a task lands in Done
trigger:
  type: task.dropped
conditions:
  - field: toStatus
    operator: equals
    value: Done
actions:
  - type: show_notification
    title: Task complete
    message: "{{taskId}} is done"
  - type: log_message
    level: info
    message: "{{taskId}} -> Done"
`

const flowListYAML = `
flows:
  - id: flow-one
    name: First
    actions:
      - type: log_message
        message: one
  - id: flow-two
    name: Second
    enabled: false
    send_to_backend: false
    actions:
      - type: run_command
        command: MoveTask
        params:
          taskId: "{{taskId}}"
          toStatus: Done
`

func TestParseFlowSingleDocument(t *testing.T) {
	f, err := ParseFlow([]byte(singleFlowYAML))
	require.NoError(t, err)

	assert.Equal(t, types.FlowID("flow-done-notify"), f.ID)
	assert.Equal(t, "Done notifier", f.Name)
	assert.True(t, f.Enabled) // enabled defaults to true
	assert.Nil(t, f.SendToBackend)
	assert.Equal(t, EventTaskDropped, f.Trigger.Type)

	require.Len(t, f.Conditions, 1)
	assert.Equal(t, OpEquals, f.Conditions[0].Operator)
	assert.Equal(t, "Done", f.Conditions[0].Value)

	require.Len(t, f.Actions, 2)
	notify, ok := f.Actions[0].(*ShowNotificationAction)
	require.True(t, ok)
	assert.Equal(t, "Task complete", notify.Title)
	logAction, ok := f.Actions[1].(*LogMessageAction)
	require.True(t, ok)
	assert.Equal(t, "info", logAction.Level)
}

func TestParseFlowsList(t *testing.T) {
	flows, err := ParseFlows([]byte(flowListYAML))
	require.NoError(t, err)
	require.Len(t, flows, 2)

	assert.True(t, flows[0].Enabled)

	second := flows[1]
	assert.False(t, second.Enabled)
	require.NotNil(t, second.SendToBackend)
	assert.False(t, *second.SendToBackend)

	run, ok := second.Actions[0].(*RunCommandAction)
	require.True(t, ok)
	assert.Equal(t, "MoveTask", run.CommandType)
	assert.Equal(t, "{{taskId}}", run.Params["taskId"])
}

func TestParseFlowGeneratesMissingID(t *testing.T) {
	f, err := ParseFlow([]byte("name: No ID\nactions:\n  - type: log_message\n    message: hi\n"))
	require.NoError(t, err)
	assert.False(t, f.ID.IsZero())
}

func TestParseFlowsRejectsUnknownAction(t *testing.T) {
	_, err := ParseFlows([]byte("name: Bad\nactions:\n  - type: teleport_task\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestParseFlowsRejectsInvalidFlow(t *testing.T) {
	_, err := ParseFlows([]byte("id: flow-x\nactions:\n  - type: log_message\n    message: hi\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFlow)
}

func TestParseFlowsEmptyInput(t *testing.T) {
	_, err := ParseFlows(nil)
	assert.Error(t, err)
}

func TestExportImportRoundTrip(t *testing.T) {
	original, err := ParseFlow([]byte(singleFlowYAML))
	require.NoError(t, err)

	data, err := ExportFlow(original)
	require.NoError(t, err)

	parsed, err := ParseFlow(data)
	require.NoError(t, err)

	assert.Equal(t, original.ID, parsed.ID)
	assert.Equal(t, original.Name, parsed.Name)
	assert.Equal(t, original.Trigger, parsed.Trigger)
	assert.Equal(t, original.Conditions, parsed.Conditions)
	assert.Equal(t, original.Actions, parsed.Actions)
}

func TestExportFlowsDocument(t *testing.T) {
	flows, err := ParseFlows([]byte(flowListYAML))
	require.NoError(t, err)

	data, err := ExportFlows(flows)
	require.NoError(t, err)

	parsed, err := ParseFlows(data)
	require.NoError(t, err)
	require.Len(t, parsed, 2)
	assert.Equal(t, flows[0].Name, parsed[0].Name)
	assert.Equal(t, flows[1].Enabled, parsed[1].Enabled)
}

func TestExportFlowNil(t *testing.T) {
	_, err := ExportFlow(nil)
	assert.ErrorIs(t, err, ErrInvalidFlow)
}
