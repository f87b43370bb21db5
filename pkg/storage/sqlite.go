package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/dshills/boardflow/pkg/domain/types"
	"github.com/dshills/boardflow/pkg/flow"
)

// SQLiteExecutionRepository is the durable execution record archive. The
// flow engine's in-memory ring buffer stays authoritative for the
// session; this archive backs the CLI's execution history view.
type SQLiteExecutionRepository struct {
	db *sql.DB
}

// ListOptions filters and pages execution queries.
type ListOptions struct {
	Limit  int
	Offset int
	FlowID types.FlowID
	Status flow.ExecutionStatus
}

// NewSQLiteExecutionRepository opens (or creates) the archive at
// ~/.boardflow/boardflow.db.
func NewSQLiteExecutionRepository() (*SQLiteExecutionRepository, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewSQLiteExecutionRepositoryWithPath(filepath.Join(homeDir, ".boardflow", "boardflow.db"))
}

// NewSQLiteExecutionRepositoryWithPath opens the archive at a custom
// path. Useful for testing.
func NewSQLiteExecutionRepositoryWithPath(dbPath string) (*SQLiteExecutionRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := InitializeDatabase(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &SQLiteExecutionRepository{db: db}, nil
}

// Close closes the database connection.
func (r *SQLiteExecutionRepository) Close() error {
	return r.db.Close()
}

// Save persists an execution record, replacing any row with the same ID.
func (r *SQLiteExecutionRepository) Save(record *flow.ExecutionRecord) error {
	if record == nil {
		return fmt.Errorf("cannot save nil execution record")
	}

	actions, err := json.Marshal(record.ActionsPerformed)
	if err != nil {
		return fmt.Errorf("failed to serialize action outcomes: %w", err)
	}
	errs, err := json.Marshal(record.Errors)
	if err != nil {
		return fmt.Errorf("failed to serialize errors: %w", err)
	}

	_, err = r.db.Exec(`
		INSERT OR REPLACE INTO executions
			(id, flow_id, flow_name, event_type, start_time, status, actions, errors, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID.String(),
		record.FlowID.String(),
		record.FlowName,
		record.EventType,
		record.StartTime.UnixNano(),
		string(record.Status),
		string(actions),
		string(errs),
		int64(record.Duration),
	)
	if err != nil {
		return fmt.Errorf("failed to save execution record: %w", err)
	}
	return nil
}

// SaveAll persists a batch of records inside one transaction.
func (r *SQLiteExecutionRepository) SaveAll(records []*flow.ExecutionRecord) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO executions
			(id, flow_id, flow_name, event_type, start_time, status, actions, errors, duration_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, record := range records {
		if record == nil {
			continue
		}
		actions, err := json.Marshal(record.ActionsPerformed)
		if err != nil {
			return fmt.Errorf("failed to serialize action outcomes: %w", err)
		}
		errs, err := json.Marshal(record.Errors)
		if err != nil {
			return fmt.Errorf("failed to serialize errors: %w", err)
		}
		if _, err := stmt.Exec(
			record.ID.String(),
			record.FlowID.String(),
			record.FlowName,
			record.EventType,
			record.StartTime.UnixNano(),
			string(record.Status),
			string(actions),
			string(errs),
			int64(record.Duration),
		); err != nil {
			return fmt.Errorf("failed to save execution record %s: %w", record.ID, err)
		}
	}

	return tx.Commit()
}

// List returns archived records, most recent first.
func (r *SQLiteExecutionRepository) List(opts ListOptions) ([]*flow.ExecutionRecord, error) {
	query := `SELECT id, flow_id, flow_name, event_type, start_time, status, actions, errors, duration_ns
		FROM executions`
	var args []interface{}
	var where []string

	if !opts.FlowID.IsZero() {
		where = append(where, "flow_id = ?")
		args = append(args, opts.FlowID.String())
	}
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(opts.Status))
	}
	for i, clause := range where {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}

	query += " ORDER BY start_time DESC"
	if opts.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query executions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*flow.ExecutionRecord
	for rows.Next() {
		record, err := scanExecution(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Delete removes one archived record.
func (r *SQLiteExecutionRepository) Delete(id types.ExecutionID) error {
	result, err := r.db.Exec("DELETE FROM executions WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("failed to delete execution: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("execution not found: %s", id)
	}
	return nil
}

// Prune keeps the most recent keep records and deletes the rest.
func (r *SQLiteExecutionRepository) Prune(keep int) error {
	if keep < 0 {
		keep = 0
	}
	_, err := r.db.Exec(`
		DELETE FROM executions WHERE id NOT IN (
			SELECT id FROM executions ORDER BY start_time DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("failed to prune executions: %w", err)
	}
	return nil
}

func scanExecution(rows *sql.Rows) (*flow.ExecutionRecord, error) {
	var (
		id, flowID, flowName, eventType, status string
		actions, errs                           sql.NullString
		startNano, durationNano                 int64
	)
	if err := rows.Scan(&id, &flowID, &flowName, &eventType, &startNano, &status, &actions, &errs, &durationNano); err != nil {
		return nil, fmt.Errorf("failed to scan execution row: %w", err)
	}

	record := &flow.ExecutionRecord{
		ID:        types.ExecutionID(id),
		FlowID:    types.FlowID(flowID),
		FlowName:  flowName,
		EventType: eventType,
		StartTime: time.Unix(0, startNano),
		Status:    flow.ExecutionStatus(status),
		Duration:  time.Duration(durationNano),
	}

	if actions.Valid && actions.String != "" {
		if err := json.Unmarshal([]byte(actions.String), &record.ActionsPerformed); err != nil {
			return nil, fmt.Errorf("failed to decode action outcomes: %w", err)
		}
	}
	if errs.Valid && errs.String != "" {
		if err := json.Unmarshal([]byte(errs.String), &record.Errors); err != nil {
			return nil, fmt.Errorf("failed to decode errors: %w", err)
		}
	}
	return record, nil
}
