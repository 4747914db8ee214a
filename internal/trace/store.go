// Package trace persists parse-session outcomes to SQLite for later
// inspection. It records sessions, never rules for reuse: a row is a
// diagnostic artifact, not a serialized rule.
package trace

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - Initial schema (pre-migration)
// 1 - Current layout
const currentSchemaVersion = 1

// Store is a SQLite-backed session log. WAL mode allows concurrent
// readers while the CLI writes.
type Store struct {
	db *sql.DB
}

// Session is one recorded parse session.
type Session struct {
	ID        string
	CreatedAt string
	Rules     string
	Input     string
	InputKind string
	Matched   bool
	Result    string
	Progress  int
	Furthest  int
}

// Open creates or opens the session log at path. Pragmas and schema
// migrations apply automatically; calling Open twice on the same path is
// safe.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite supports one writer at a time; a single connection avoids
	// SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one session row.
func (s *Store) Record(ctx context.Context, sess Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, rules, input, input_kind, matched, result, progress, furthest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.Rules, sess.Input, sess.InputKind,
		boolToInt(sess.Matched), sess.Result, sess.Progress, sess.Furthest,
	)
	if err != nil {
		return fmt.Errorf("record session %s: %w", sess.ID, err)
	}
	return nil
}

// List returns the most recent sessions, newest first. limit <= 0 means
// all.
func (s *Store) List(ctx context.Context, limit int) ([]Session, error) {
	query := `
		SELECT id, created_at, rules, input, input_kind, matched, result, progress, furthest
		FROM sessions ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		var matched int
		if err := rows.Scan(&sess.ID, &sess.CreatedAt, &sess.Rules, &sess.Input,
			&sess.InputKind, &matched, &sess.Result, &sess.Progress, &sess.Furthest); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.Matched = matched != 0
		out = append(out, sess)
	}
	return out, rows.Err()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
