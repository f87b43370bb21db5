package storage

import (
	"database/sql"
	"fmt"
)

// schemaStatements are applied in order on open. Statements are
// idempotent (IF NOT EXISTS) so re-opening an existing database is safe.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS executions (
		id          TEXT PRIMARY KEY,
		flow_id     TEXT NOT NULL,
		flow_name   TEXT NOT NULL,
		event_type  TEXT NOT NULL,
		start_time  INTEGER NOT NULL,
		status      TEXT NOT NULL,
		actions     TEXT,
		errors      TEXT,
		duration_ns INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS idx_executions_flow_id ON executions(flow_id)`,
	`CREATE INDEX IF NOT EXISTS idx_executions_start_time ON executions(start_time DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_executions_status ON executions(status)`,
}

// InitializeDatabase creates the execution archive schema.
func InitializeDatabase(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
