// Package history records every invocation that passed through the
// execution core: what ran, how it ended, and how long it took.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Invocation is one recorded command execution.
type Invocation struct {
	ID         int64
	RunID      string
	Argv       []string
	Mode       string // "run" or "call"
	ExitCode   int
	ErrorKind  string // empty on success
	Duration   time.Duration
	StartedAt  time.Time
}

// Store wraps a SQLite database holding the invocation log.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path with WAL
// mode. Use ":memory:" for in-memory databases in tests.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db %s: %w", dbPath, err)
	}

	// WAL mode for better concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// SQLite handles one writer at a time
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert appends one invocation to the log.
func (s *Store) Insert(ctx context.Context, inv *Invocation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO invocations (run_id, argv, mode, exit_code, error_kind, duration_ms, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		inv.RunID, strings.Join(inv.Argv, " "), inv.Mode, inv.ExitCode,
		nullString(inv.ErrorKind), inv.Duration.Milliseconds(), inv.StartedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("inserting invocation %s: %w", inv.RunID, err)
	}
	return nil
}

// Recent returns the latest n invocations, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Invocation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, argv, mode, exit_code, error_kind, duration_ms, started_at
		 FROM invocations ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying invocations: %w", err)
	}
	defer rows.Close()

	var out []Invocation
	for rows.Next() {
		var inv Invocation
		var argv string
		var kind sql.NullString
		var durationMS, startedAt int64
		if err := rows.Scan(&inv.ID, &inv.RunID, &argv, &inv.Mode, &inv.ExitCode, &kind, &durationMS, &startedAt); err != nil {
			return nil, fmt.Errorf("scanning invocation: %w", err)
		}
		inv.Argv = strings.Fields(argv)
		inv.ErrorKind = kind.String
		inv.Duration = time.Duration(durationMS) * time.Millisecond
		inv.StartedAt = time.Unix(startedAt, 0)
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Prune deletes entries older than the cutoff and returns how many went.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM invocations WHERE started_at < ?`, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("pruning invocations: %w", err)
	}
	return res.RowsAffected()
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
