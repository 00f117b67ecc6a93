// Package sqlite persists run history in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/opinelab/opine/pkg/opine/internalerr"
	"github.com/opinelab/opine/pkg/opine/report"
	"github.com/opinelab/opine/pkg/opine/store"
)

// sqliteStore implements store.Store using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	source TEXT,
	positive INTEGER NOT NULL DEFAULT 0,
	neutral INTEGER NOT NULL DEFAULT 0,
	negative INTEGER NOT NULL DEFAULT 0,
	report_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveRun implements store.Store.
func (s *sqliteStore) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("%w: run id required", internalerr.ErrInvalidInput)
	}

	reportJSON, err := json.Marshal(r.Report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO runs (id, started_at, source, positive, neutral, negative, report_json)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	started_at = excluded.started_at,
	source = excluded.source,
	positive = excluded.positive,
	neutral = excluded.neutral,
	negative = excluded.negative,
	report_json = excluded.report_json`,
		r.ID,
		r.StartedAt.UTC().Format(time.RFC3339),
		r.Source,
		r.Report.Stats.Positive,
		r.Report.Stats.Neutral,
		r.Report.Stats.Negative,
		string(reportJSON),
	)
	return err
}

// GetRun implements store.Store.
func (s *sqliteStore) GetRun(ctx context.Context, id string) (store.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, source, report_json FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Run{}, fmt.Errorf("%w: run %s", internalerr.ErrNotFound, id)
	}
	return run, err
}

// ListRuns implements store.Store.
func (s *sqliteStore) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, source, report_json FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []store.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// SentimentBreakdown implements store.Store.
func (s *sqliteStore) SentimentBreakdown(ctx context.Context) (store.Breakdown, error) {
	var b store.Breakdown
	err := s.db.QueryRowContext(ctx, `
SELECT COUNT(*),
	COALESCE(SUM(positive), 0),
	COALESCE(SUM(neutral), 0),
	COALESCE(SUM(negative), 0)
FROM runs`).Scan(&b.Runs, &b.Positive, &b.Neutral, &b.Negative)
	return b, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (store.Run, error) {
	var run store.Run
	var startedAt, reportJSON string
	if err := row.Scan(&run.ID, &startedAt, &run.Source, &reportJSON); err != nil {
		return store.Run{}, err
	}

	ts, err := time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return store.Run{}, fmt.Errorf("parse started_at: %w", err)
	}
	run.StartedAt = ts

	var rep report.Report
	if err := json.Unmarshal([]byte(reportJSON), &rep); err != nil {
		return store.Run{}, fmt.Errorf("parse report: %w", err)
	}
	run.Report = rep
	return run, nil
}
