package flow

import (
	"time"

	"github.com/dshills/boardflow/pkg/domain/types"
	"github.com/dshills/boardflow/pkg/workspace"
)

// CommandDispatcher is the boundary through which flow actions issue
// commands back into the workspace. The dispatcher applies the command to
// the history engine and derives follow-up events.
type CommandDispatcher interface {
	Dispatch(cmd workspace.Command) error
}

// SnapshotProvider supplies the current workspace snapshot for condition
// evaluation and interpolation. The history engine satisfies this.
type SnapshotProvider interface {
	Current() *workspace.Snapshot
}

// NotificationSink receives OS/UI notifications. When none is wired the
// engine falls back to the log sink.
type NotificationSink interface {
	Notify(title, body string) error
}

// RelaySummary is the per-execution record forwarded to the backend
// relay sink. Delivery is fire-and-forget.
type RelaySummary struct {
	FlowID      types.FlowID           `json:"flow_id"`
	FlowName    string                 `json:"flow_name"`
	EventType   string                 `json:"event_type"`
	TargetKey   types.TargetKey        `json:"target_key,omitempty"`
	Payload     map[string]interface{} `json:"payload,omitempty"`
	ExecutionID types.ExecutionID      `json:"execution_id"`
	Timestamp   time.Time              `json:"timestamp"`
}

// RelaySink receives execution summaries for external delivery. Failures
// are logged by the engine, never propagated.
type RelaySink interface {
	Relay(summary RelaySummary) error
}

// LogSink is the leveled log output used by log_message actions, the
// notification fallback, and engine diagnostics.
type LogSink interface {
	Log(level, message string)
}
