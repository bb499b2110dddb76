// audit_backend.go: Storage backends for the Hermes audit trail
//
// Defines the pluggable backend contract and its two implementations:
// append-only JSONL files (grep-able, ships straight into log
// aggregators) and SQLite (queryable single-file trail, WAL mode).
// Backend selection degrades gracefully: SQLite, then JSONL, then
// error, so audit storage trouble never takes the CLI down with it.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package hermes

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver registration
)

// auditBackend is the minimal storage contract: persist a batch, make
// it durable, release resources. Implementations must tolerate
// concurrent Write calls.
type auditBackend interface {
	Write(events []AuditEvent) error
	Flush() error
	Close() error
}

// createAuditBackend selects and initializes the backend for a
// configuration. Disabled configurations get no backend at all.
func createAuditBackend(config AuditConfig) (auditBackend, error) {
	if !config.Enabled {
		return nil, nil
	}

	path := config.OutputFile
	if path == "" {
		path = defaultAuditPath()
	}

	if strings.HasSuffix(path, ".jsonl") {
		return newJSONLBackend(path)
	}

	backend, err := newSQLiteBackend(path)
	if err == nil {
		return backend, nil
	}

	// Graceful degradation: fall back to JSONL next to the intended
	// database so events are never dropped at startup.
	fallback := strings.TrimSuffix(path, filepath.Ext(path)) + ".jsonl"
	jsonl, jerr := newJSONLBackend(fallback)
	if jerr != nil {
		return nil, fmt.Errorf("sqlite backend failed (%v) and jsonl fallback failed: %w", err, jerr)
	}
	return jsonl, nil
}

// defaultAuditPath places the audit database in the user cache
// directory, falling back to the system temp directory.
func defaultAuditPath() string {
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "hermes", "audit.db")
}

// jsonlBackend appends one JSON document per line to a regular file.
type jsonlBackend struct {
	mu   sync.Mutex
	file *os.File
}

func newJSONLBackend(path string) (*jsonlBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file: %w", err)
	}
	return &jsonlBackend{file: file}, nil
}

func (b *jsonlBackend) Write(events []AuditEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range events {
		line, err := json.Marshal(&events[i])
		if err != nil {
			return fmt.Errorf("failed to encode audit event: %w", err)
		}
		line = append(line, '\n')
		if _, err := b.file.Write(line); err != nil {
			return fmt.Errorf("failed to append audit event: %w", err)
		}
	}
	return nil
}

func (b *jsonlBackend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.file.Sync()
}

func (b *jsonlBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.file.Close()
}

// sqliteBackend stores events in a single-table SQLite database with
// WAL journaling for concurrent readers.
type sqliteBackend struct {
	mu sync.Mutex
	db *sql.DB
}

const auditSchema = `
CREATE TABLE IF NOT EXISTS audit_events (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp     INTEGER NOT NULL,
	level         TEXT    NOT NULL,
	event         TEXT    NOT NULL,
	component     TEXT    NOT NULL,
	command_path  TEXT,
	outcome       TEXT,
	code          TEXT,
	process_id    INTEGER,
	process_name  TEXT,
	context       TEXT,
	checksum      TEXT
);
CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_events(timestamp);
CREATE INDEX IF NOT EXISTS idx_audit_command ON audit_events(command_path);
`

func newSQLiteBackend(path string) (*sqliteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	if _, err := db.Exec(auditSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize audit schema: %w", err)
	}
	return &sqliteBackend{db: db}, nil
}

func (b *sqliteBackend) Write(events []AuditEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin audit transaction: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO audit_events
		(timestamp, level, event, component, command_path, outcome, code, process_id, process_name, context, checksum)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare audit insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range events {
		e := &events[i]
		context := ""
		if e.Context != nil {
			if encoded, err := json.Marshal(e.Context); err == nil {
				context = string(encoded)
			}
		}
		if _, err := stmt.Exec(
			e.Timestamp.UnixNano(), e.Level.String(), e.Event, e.Component,
			e.CommandPath, e.Outcome, e.Code, e.ProcessID, e.ProcessName,
			context, e.Checksum,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert audit event: %w", err)
		}
	}
	return tx.Commit()
}

func (b *sqliteBackend) Flush() error {
	// SQLite commits are durable at transaction boundaries; nothing
	// extra to do here.
	return nil
}

func (b *sqliteBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.db.Close()
}
