// Package history is an optional enrichment that persists each batch
// run's aggregate verdict to a local SQLite database, so repeated runs
// can be compared over time. It is strictly an observer: it records
// what the Analyzer and Batch Driver already decided, after the fact,
// and never influences a verdict - so it does not conflict with the
// harness's non-goal of not recovering or retrying failed tests.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the "sqlite3" database/sql driver

	"github.com/mrz1836/taprun/pkg/harness"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at    DATETIME NOT NULL,
	total         INTEGER NOT NULL,
	passed        INTEGER NOT NULL,
	failed        INTEGER NOT NULL,
	skipped       INTEGER NOT NULL,
	aborted       INTEGER NOT NULL,
	success       INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_failures (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	file   TEXT NOT NULL,
	reason TEXT NOT NULL
);
`

// Store wraps a SQLite-backed run-history database.
type Store struct {
	db *sql.DB
}

// Open creates (if necessary) and opens the SQLite database at path,
// applying the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("history: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: applying schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one completed batch run's summary.
func (s *Store) Record(startedAt time.Time, sum harness.Summary) error {
	res, err := s.db.Exec(
		`INSERT INTO runs (started_at, total, passed, failed, skipped, aborted, success) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		startedAt, sum.Total, sum.Passed, sum.Failed, sum.Skipped, sum.Aborted, boolToInt(sum.Success()),
	)
	if err != nil {
		return fmt.Errorf("history: inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("history: reading run id: %w", err)
	}

	for _, f := range sum.Failures {
		if _, err := s.db.Exec(
			`INSERT INTO run_failures (run_id, file, reason) VALUES (?, ?, ?)`,
			runID, f.File, f.Verdict.Summary,
		); err != nil {
			return fmt.Errorf("history: inserting failure for %s: %w", f.File, err)
		}
	}
	return nil
}

// RunRecord is one row from the runs table, returned by Recent.
type RunRecord struct {
	StartedAt time.Time
	Total     int
	Passed    int
	Failed    int
	Skipped   int
	Aborted   int
	Success   bool
}

// Recent returns the last n runs, most recent first.
func (s *Store) Recent(n int) ([]RunRecord, error) {
	rows, err := s.db.Query(
		`SELECT started_at, total, passed, failed, skipped, aborted, success FROM runs ORDER BY id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("history: querying recent runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		var success int
		if err := rows.Scan(&r.StartedAt, &r.Total, &r.Passed, &r.Failed, &r.Skipped, &r.Aborted, &success); err != nil {
			return nil, fmt.Errorf("history: scanning run row: %w", err)
		}
		r.Success = success != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
