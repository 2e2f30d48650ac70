// Package repository provides a SQLite-backed store for the event log.
package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // register sqlite driver
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
    event_id    TEXT PRIMARY KEY,
    user_id     TEXT NOT NULL,
    event_type  TEXT NOT NULL,
    timestamp   TEXT NOT NULL,
    value       REAL
);

CREATE INDEX IF NOT EXISTS idx_events_user ON events(user_id);
`

// OpenMemory opens an in-memory event database and creates the schema.
// The pool is pinned to a single connection: each sqlite connection would
// otherwise get its own private in-memory database.
func OpenMemory() (*sql.DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening event db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return db, nil
}
