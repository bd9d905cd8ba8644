// Package journal keeps a local audit log of RPC invocations in SQLite.
//
// The journal is strictly best-effort: it never influences the result
// envelope or the exit code. A host that cannot write its journal still
// gets its RPC performed.
package journal

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - Initial schema
const currentSchemaVersion = 1

// Journal provides durable storage for invocation records.
// Uses SQLite with WAL mode for concurrent read access.
type Journal struct {
	db *sql.DB
}

// Entry is one journaled invocation.
type Entry struct {
	ID         string
	RecordedAt string
	Node       string
	Module     string
	Function   string
	Args       string
	TimeoutMS  int64 // -1 means infinity
	Status     string
	Msg        string
	Duration   time.Duration
}

// Open creates or opens the journal database at the given path.
// Applies required pragmas and migrations automatically; idempotent.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect journal: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure journal: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record inserts one entry. A missing ID is filled with a fresh UUIDv7 so
// rows sort by creation time; RecordedAt is assigned by the database.
// Uses ON CONFLICT(id) DO NOTHING so replaying a record is idempotent.
func (j *Journal) Record(ctx context.Context, e Entry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.Must(uuid.NewV7()).String()
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO invocations
		(id, node, module, function, args, timeout_ms, status, msg, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		e.Node,
		e.Module,
		e.Function,
		e.Args,
		e.TimeoutMS,
		e.Status,
		e.Msg,
		e.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("record invocation: %w", err)
	}
	return e.ID, nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, recorded_at, node, module, function, args, timeout_ms, status, msg, duration_ms
		FROM invocations
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var durMS int64
		if err := rows.Scan(&e.ID, &e.RecordedAt, &e.Node, &e.Module, &e.Function,
			&e.Args, &e.TimeoutMS, &e.Status, &e.Msg, &durMS); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		e.Duration = time.Duration(durMS) * time.Millisecond
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	return entries, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

// applySchema creates tables if they don't exist and stamps the schema
// version. This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version < currentSchemaVersion {
		if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
			return fmt.Errorf("set user_version: %w", err)
		}
	}
	return nil
}
