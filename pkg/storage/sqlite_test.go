package storage

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/boardflow/pkg/domain/types"
	"github.com/dshills/boardflow/pkg/flow"
)

func testArchive(t *testing.T) *SQLiteExecutionRepository {
	t.Helper()
	archive, err := NewSQLiteExecutionRepositoryWithPath(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = archive.Close() })
	return archive
}

func archivedRecord(n int, flowID types.FlowID, status flow.ExecutionStatus) *flow.ExecutionRecord {
	return &flow.ExecutionRecord{
		ID:        types.ExecutionID(fmt.Sprintf("exec-%03d", n)),
		FlowID:    flowID,
		FlowName:  "archived flow",
		EventType: flow.EventTaskDropped,
		StartTime: time.Unix(0, int64(n)*int64(time.Second)),
		Status:    status,
		ActionsPerformed: []flow.ActionOutcome{
			{Index: 0, Kind: flow.ActionLogMessage, Success: true, Detail: "logged"},
		},
		Duration: 42 * time.Millisecond,
	}
}

func TestSQLiteSaveAndList(t *testing.T) {
	archive := testArchive(t)

	record := archivedRecord(1, "flow-a", flow.StatusCompleted)
	record.Errors = []flow.ExecutionError{{ActionIndex: 0, Message: "partial"}}
	require.NoError(t, archive.Save(record))

	records, err := archive.List(ListOptions{})
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.FlowID, got.FlowID)
	assert.Equal(t, record.Status, got.Status)
	assert.Equal(t, record.Duration, got.Duration)
	assert.True(t, record.StartTime.Equal(got.StartTime))
	require.Len(t, got.ActionsPerformed, 1)
	assert.Equal(t, flow.ActionLogMessage, got.ActionsPerformed[0].Kind)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "partial", got.Errors[0].Message)
}

func TestSQLiteSaveNil(t *testing.T) {
	archive := testArchive(t)
	assert.Error(t, archive.Save(nil))
}

func TestSQLiteSaveReplacesByID(t *testing.T) {
	archive := testArchive(t)

	record := archivedRecord(1, "flow-a", flow.StatusRunning)
	require.NoError(t, archive.Save(record))
	record.Status = flow.StatusCompleted
	require.NoError(t, archive.Save(record))

	records, err := archive.List(ListOptions{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, flow.StatusCompleted, records[0].Status)
}

func TestSQLiteListOrderAndPaging(t *testing.T) {
	archive := testArchive(t)
	for i := 1; i <= 5; i++ {
		require.NoError(t, archive.Save(archivedRecord(i, "flow-a", flow.StatusCompleted)))
	}

	records, err := archive.List(ListOptions{Limit: 2})
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Most recent first.
	assert.Equal(t, types.ExecutionID("exec-005"), records[0].ID)
	assert.Equal(t, types.ExecutionID("exec-004"), records[1].ID)

	records, err = archive.List(ListOptions{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, types.ExecutionID("exec-003"), records[0].ID)
}

func TestSQLiteListFilters(t *testing.T) {
	archive := testArchive(t)
	require.NoError(t, archive.Save(archivedRecord(1, "flow-a", flow.StatusCompleted)))
	require.NoError(t, archive.Save(archivedRecord(2, "flow-b", flow.StatusSkipped)))
	require.NoError(t, archive.Save(archivedRecord(3, "flow-a", flow.StatusSkipped)))

	records, err := archive.List(ListOptions{FlowID: "flow-a"})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = archive.List(ListOptions{Status: flow.StatusSkipped})
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = archive.List(ListOptions{FlowID: "flow-a", Status: flow.StatusSkipped})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, types.ExecutionID("exec-003"), records[0].ID)
}

func TestSQLiteSaveAll(t *testing.T) {
	archive := testArchive(t)

	batch := []*flow.ExecutionRecord{
		archivedRecord(1, "flow-a", flow.StatusCompleted),
		nil, // skipped, not an error
		archivedRecord(2, "flow-a", flow.StatusCompleted),
	}
	require.NoError(t, archive.SaveAll(batch))

	records, err := archive.List(ListOptions{})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestSQLiteDelete(t *testing.T) {
	archive := testArchive(t)
	require.NoError(t, archive.Save(archivedRecord(1, "flow-a", flow.StatusCompleted)))

	require.NoError(t, archive.Delete("exec-001"))
	assert.Error(t, archive.Delete("exec-001"))
}

func TestSQLitePrune(t *testing.T) {
	archive := testArchive(t)
	for i := 1; i <= 10; i++ {
		require.NoError(t, archive.Save(archivedRecord(i, "flow-a", flow.StatusCompleted)))
	}

	require.NoError(t, archive.Prune(3))

	records, err := archive.List(ListOptions{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, types.ExecutionID("exec-010"), records[0].ID)
	assert.Equal(t, types.ExecutionID("exec-008"), records[2].ID)
}
