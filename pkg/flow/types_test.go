package flow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/boardflow/pkg/domain/types"
)

func TestEventTarget(t *testing.T) {
	explicit := Event{Type: EventTaskDropped, TargetKey: "task:T-5"}
	assert.Equal(t, types.TargetKey("task:T-5"), explicit.Target())

	synthesized := Event{Type: EventTaskDropped, Payload: map[string]interface{}{"taskId": "T-7"}}
	assert.Equal(t, types.TargetKey("task:T-7"), synthesized.Target())

	// Explicit key wins over the payload.
	both := Event{TargetKey: "task:T-5", Payload: map[string]interface{}{"taskId": "T-7"}}
	assert.Equal(t, types.TargetKey("task:T-5"), both.Target())

	none := Event{Type: EventWorkspaceCommitted}
	assert.Equal(t, types.TargetKey(""), none.Target())

	nonString := Event{Payload: map[string]interface{}{"taskId": 7}}
	assert.Equal(t, types.TargetKey(""), nonString.Target())
}

func TestBindingMatches(t *testing.T) {
	anyEvent := Binding{EventType: ""}
	assert.True(t, anyEvent.Matches(EventTaskDropped))
	assert.True(t, anyEvent.Matches(EventTaskCreated))

	scoped := Binding{EventType: EventTaskDropped}
	assert.True(t, scoped.Matches(EventTaskDropped))
	assert.False(t, scoped.Matches(EventTaskCreated))
}

func TestShouldRelay(t *testing.T) {
	unset := &Flow{}
	assert.True(t, unset.ShouldRelay())

	explicit := &Flow{SendToBackend: boolPtr(true)}
	assert.True(t, explicit.ShouldRelay())

	optOut := &Flow{SendToBackend: boolPtr(false)}
	assert.False(t, optOut.ShouldRelay())
}

func TestIsKnownEventType(t *testing.T) {
	assert.True(t, IsKnownEventType(EventTaskDropped))
	assert.True(t, IsKnownEventType(EventWorkspaceCommitted))
	assert.False(t, IsKnownEventType("task.vanished"))
	assert.False(t, IsKnownEventType(""))
}

func TestIsKnownOperator(t *testing.T) {
	for _, op := range KnownOperators {
		assert.True(t, IsKnownOperator(op))
	}
	assert.False(t, IsKnownOperator("matches"))
	assert.False(t, IsKnownOperator(""))
}
