package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Run statuses.
const (
	StatusPassed = "passed"
	StatusFailed = "failed"
)

// Run is one execution of one exercise.
type Run struct {
	ID        string
	Exercise  string
	Status    string
	Message   string
	StartedAt time.Time
	Duration  time.Duration
}

// ExerciseStats aggregates runs of one exercise.
type ExerciseStats struct {
	Exercise string
	Runs     int
	Passed   int
	Failed   int
	LastRun  time.Time
}

// HistoryStore records exercise runs in SQLite.
type HistoryStore struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// OpenHistory opens (or creates) the history database at path.
func OpenHistory(path string) (*HistoryStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serialises writers and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	s := &HistoryStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *HistoryStore) initialize() error {
	runsTable := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		exercise TEXT NOT NULL,
		status TEXT NOT NULL,
		message TEXT,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_runs_exercise ON runs(exercise);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	if _, err := s.db.Exec(runsTable); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (s *HistoryStore) Path() string { return s.dbPath }

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}

// Record stores a run. An empty ID is replaced with a new UUID; a zero
// StartedAt with the current time. The stored run is returned.
func (s *HistoryStore) Record(ctx context.Context, r Run) (Run, error) {
	if r.Exercise == "" {
		return Run{}, fmt.Errorf("run has no exercise name")
	}
	if r.Status != StatusPassed && r.Status != StatusFailed {
		return Run{}, fmt.Errorf("invalid run status %q", r.Status)
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}
	r.StartedAt = r.StartedAt.UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, exercise, status, message, started_at, duration_ms) VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Exercise, r.Status, r.Message, r.StartedAt.Format(timeLayout), r.Duration.Milliseconds(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("failed to record run: %w", err)
	}
	return r, nil
}

// Recent returns up to limit runs, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, exercise, status, COALESCE(message, ''), started_at, duration_ms
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r       Run
			started string
			ms      int64
		)
		if err := rows.Scan(&r.ID, &r.Exercise, &r.Status, &r.Message, &started, &ms); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.StartedAt = parseTime(started)
		r.Duration = time.Duration(ms) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Stats returns per-exercise totals ordered by exercise name.
func (s *HistoryStore) Stats(ctx context.Context) ([]ExerciseStats, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT exercise,
		       COUNT(*),
		       SUM(CASE WHEN status = ? THEN 1 ELSE 0 END),
		       SUM(CASE WHEN status = ? THEN 1 ELSE 0 END),
		       MAX(started_at)
		FROM runs GROUP BY exercise ORDER BY exercise`, StatusPassed, StatusFailed)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	var stats []ExerciseStats
	for rows.Next() {
		var (
			st   ExerciseStats
			last string
		)
		if err := rows.Scan(&st.Exercise, &st.Runs, &st.Passed, &st.Failed, &last); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		st.LastRun = parseTime(last)
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(timeLayout, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	return time.Time{}
}
