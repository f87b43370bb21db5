package flow

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/boardflow/pkg/domain/types"
)

func makeRecord(n int) *ExecutionRecord {
	return &ExecutionRecord{
		ID:       types.ExecutionID(fmt.Sprintf("exec-%d", n)),
		FlowName: fmt.Sprintf("flow %d", n),
		Status:   StatusCompleted,
	}
}

func TestLogAppendAndOrder(t *testing.T) {
	l := NewLog(10)

	for i := 1; i <= 3; i++ {
		l.Append(makeRecord(i))
	}

	records := l.Records()
	require.Len(t, records, 3)
	assert.Equal(t, types.ExecutionID("exec-3"), records[0].ID)
	assert.Equal(t, types.ExecutionID("exec-1"), records[2].ID)
}

func TestLogEvictsOldestAtCapacity(t *testing.T) {
	l := NewLog(DefaultLogCapacity)

	for i := 1; i <= DefaultLogCapacity+5; i++ {
		l.Append(makeRecord(i))
	}

	assert.Equal(t, DefaultLogCapacity, l.Len())

	records := l.Records()
	require.Len(t, records, DefaultLogCapacity)
	// Most recent first; the five oldest records are gone.
	assert.Equal(t, types.ExecutionID("exec-105"), records[0].ID)
	assert.Equal(t, types.ExecutionID("exec-6"), records[DefaultLogCapacity-1].ID)
}

func TestLogDefaultCapacity(t *testing.T) {
	l := NewLog(0)
	assert.Equal(t, DefaultLogCapacity, l.capacity)

	l = NewLog(-3)
	assert.Equal(t, DefaultLogCapacity, l.capacity)
}

func TestLogIgnoresNil(t *testing.T) {
	l := NewLog(5)
	l.Append(nil)
	assert.Equal(t, 0, l.Len())
}

func TestLogRecordsReturnsCopy(t *testing.T) {
	l := NewLog(5)
	l.Append(makeRecord(1))

	records := l.Records()
	records[0] = makeRecord(99)

	assert.Equal(t, types.ExecutionID("exec-1"), l.Records()[0].ID)
}
