package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Status is the outcome of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID           uuid.UUID
	Kind         string
	StreamID     string
	Date         string
	Output       string
	Status       Status
	ErrorKind    string
	ErrorMessage string
	StartedAt    time.Time
	Duration     time.Duration
}

// Store persists runs in a SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or connects to the history database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("history database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record inserts run, assigning an ID when it has none.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.Status == "" {
		run.Status = StatusSucceeded
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, kind, stream_id, run_date, output_path, status,
            error_kind, error_message, started_at, duration_ms
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(),
		run.Kind,
		run.StreamID,
		run.Date,
		nullableString(run.Output),
		string(run.Status),
		nullableString(run.ErrorKind),
		nullableString(run.ErrorMessage),
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Duration.Milliseconds(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, kind, stream_id, run_date, output_path, status,
            error_kind, error_message, started_at, duration_ms
        FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run                         Run
		id, status, startedAt       string
		output, errorKind, errorMsg sql.NullString
		durationMS                  int64
	)
	if err := rows.Scan(&id, &run.Kind, &run.StreamID, &run.Date, &output, &status,
		&errorKind, &errorMsg, &startedAt, &durationMS); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return Run{}, fmt.Errorf("parse run id %q: %w", id, err)
	}
	started, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse started_at %q: %w", startedAt, err)
	}

	run.ID = parsedID
	run.Output = output.String
	run.Status = Status(status)
	run.ErrorKind = errorKind.String
	run.ErrorMessage = errorMsg.String
	run.StartedAt = started
	run.Duration = time.Duration(durationMS) * time.Millisecond
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
