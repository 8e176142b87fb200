// Package storage provides SQLite-based persistence for renderer benchmark runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for bench history.
type Store struct {
	db *sql.DB
}

// BenchRun is one recorded `bench` invocation.
type BenchRun struct {
	ID        int64
	MapID     string
	Width     int
	Height    int
	Workers   int
	Frames    int
	Total     time.Duration
	CreatedAt time.Time
}

// PerFrame returns the mean frame time.
func (r BenchRun) PerFrame() time.Duration {
	if r.Frames <= 0 {
		return 0
	}
	return r.Total / time.Duration(r.Frames)
}

// FPS returns the mean frames per second.
func (r BenchRun) FPS() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Total.Seconds()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS bench_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			map_id TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			workers INTEGER NOT NULL DEFAULT 1,
			frames INTEGER NOT NULL,
			total_ns INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_bench_runs_map_id ON bench_runs(map_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a benchmark run.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(run BenchRun) (int64, error) {
	if run.Frames <= 0 {
		return 0, fmt.Errorf("storage: run has no frames")
	}
	result, err := s.db.Exec(
		`INSERT INTO bench_runs (map_id, width, height, workers, frames, total_ns)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.MapID, run.Width, run.Height, run.Workers, run.Frames, int64(run.Total),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns retrieves the latest runs for a map, newest first.
func (s *Store) RecentRuns(mapID string, limit int) ([]BenchRun, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, map_id, width, height, workers, frames, total_ns, created_at
		 FROM bench_runs
		 WHERE map_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		mapID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []BenchRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestRun returns the run with the lowest mean frame time for a map.
// Returns nil if no runs exist.
func (s *Store) BestRun(mapID string) (*BenchRun, error) {
	row := s.db.QueryRow(
		`SELECT id, map_id, width, height, workers, frames, total_ns, created_at
		 FROM bench_runs
		 WHERE map_id = ?
		 ORDER BY CAST(total_ns AS REAL) / frames ASC, id ASC
		 LIMIT 1`,
		mapID,
	)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ClearRuns deletes all runs for the given map.
func (s *Store) ClearRuns(mapID string) error {
	_, err := s.db.Exec("DELETE FROM bench_runs WHERE map_id = ?", mapID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// MapStats contains aggregated benchmark statistics for a map.
type MapStats struct {
	MapID   string
	Runs    int
	Frames  int64
	Total   time.Duration
	LastRun time.Time
}

// PerFrame returns the mean frame time over all runs.
func (m MapStats) PerFrame() time.Duration {
	if m.Frames <= 0 {
		return 0
	}
	return m.Total / time.Duration(m.Frames)
}

// AllStats retrieves statistics for every map that has been benchmarked.
func (s *Store) AllStats() (map[string]*MapStats, error) {
	rows, err := s.db.Query(
		`SELECT map_id, COUNT(*), SUM(frames), SUM(total_ns), MAX(created_at)
		 FROM bench_runs
		 GROUP BY map_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*MapStats)
	for rows.Next() {
		var m MapStats
		var total int64
		var lastRun any
		if err := rows.Scan(&m.MapID, &m.Runs, &m.Frames, &total, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.Total = time.Duration(total)
		m.LastRun = parseTime(lastRun)
		stats[m.MapID] = &m
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (BenchRun, error) {
	var run BenchRun
	var total int64
	var createdAt any
	err := sc.Scan(&run.ID, &run.MapID, &run.Width, &run.Height, &run.Workers, &run.Frames, &total, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return run, err
	}
	if err != nil {
		return run, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	run.Total = time.Duration(total)
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
