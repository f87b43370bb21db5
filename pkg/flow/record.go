package flow

import (
	"sync"
	"time"

	"github.com/dshills/boardflow/pkg/domain/types"
)

// ExecutionStatus is the lifecycle state of one flow execution.
type ExecutionStatus string

// Execution statuses.
const (
	StatusRunning             ExecutionStatus = "running"
	StatusSkipped             ExecutionStatus = "skipped"
	StatusCompleted           ExecutionStatus = "completed"
	StatusCompletedWithErrors ExecutionStatus = "completed_with_errors"
	StatusFailed              ExecutionStatus = "failed"
)

// ActionOutcome records the result of one executed action.
type ActionOutcome struct {
	Index   int        `json:"index"`
	Kind    ActionKind `json:"kind"`
	Success bool       `json:"success"`
	Detail  string     `json:"detail,omitempty"`
}

// ExecutionError captures a single action failure by index.
type ExecutionError struct {
	ActionIndex int    `json:"action_index"`
	Message     string `json:"message"`
}

// ExecutionRecord is the audit entry produced by one flow firing. Records
// are created exactly once per execution and never mutated after the
// engine returns; consumers receive them read-only.
type ExecutionRecord struct {
	ID               types.ExecutionID `json:"id"`
	FlowID           types.FlowID      `json:"flow_id"`
	FlowName         string            `json:"flow_name"`
	EventType        string            `json:"event_type"`
	StartTime        time.Time         `json:"start_time"`
	Status           ExecutionStatus   `json:"status"`
	ActionsPerformed []ActionOutcome   `json:"actions_performed,omitempty"`
	Errors           []ExecutionError  `json:"errors,omitempty"`
	Duration         time.Duration     `json:"duration"`
}

// DefaultLogCapacity bounds the in-memory execution log.
const DefaultLogCapacity = 100

// Log is the bounded, append-only execution record buffer. The oldest
// record is evicted synchronously on append once capacity is reached.
// One Log instance is owned by one engine; there is no ambient global.
type Log struct {
	mu       sync.RWMutex
	records  []*ExecutionRecord
	capacity int
}

// NewLog creates a log with the given capacity (DefaultLogCapacity when
// capacity <= 0).
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &Log{
		records:  make([]*ExecutionRecord, 0, capacity),
		capacity: capacity,
	}
}

// Append adds a record, evicting the oldest when at capacity.
func (l *Log) Append(record *ExecutionRecord) {
	if record == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if len(l.records) >= l.capacity {
		copy(l.records, l.records[1:])
		l.records[len(l.records)-1] = record
		return
	}
	l.records = append(l.records, record)
}

// Records returns a copy of the log, most recent first.
func (l *Log) Records() []*ExecutionRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]*ExecutionRecord, len(l.records))
	for i, r := range l.records {
		out[len(l.records)-1-i] = r
	}
	return out
}

// Len returns the number of stored records.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
