// Package storage keeps the ledger of finished runs for the current process.
// It uses the pure-Go modernc.org/sqlite driver against an in-memory
// database, so nothing is written to disk and the ledger ends with the process.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the in-memory SQLite database of finished runs.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished run.
type RunRecord struct {
	ID          int64
	Kills       int
	BossSpawned bool
	DurationMs  int64 // Active play time
	CreatedAt   time.Time
}

// SessionStats aggregates every run of the session.
type SessionStats struct {
	Runs      int
	BestKills int
	AvgKills  float64
	TotalMs   int64
}

// OpenMemory creates an empty in-memory ledger and runs migrations.
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

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

// migrate creates the schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kills INTEGER NOT NULL,
			boss_spawned INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(kills DESC, duration_ms DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection, discarding the ledger.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(kills int, bossSpawned bool, duration time.Duration) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (kills, boss_spawned, duration_ms) VALUES (?, ?, ?)",
		kills, bossSpawned, duration.Milliseconds(),
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

// TopRuns returns the best runs, most kills first. Ties go to the longer
// run, then to the earlier one.
func (s *Store) TopRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, kills, boss_spawned, duration_ms, created_at
		 FROM runs
		 ORDER BY kills DESC, duration_ms DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Kills, &r.BossSpawned, &r.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTimestamp(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// BestKills returns the highest kill count of the session, or 0.
func (s *Store) BestKills() (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(kills) FROM runs").Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query best kills: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// Stats aggregates all runs of the session.
func (s *Store) Stats() (SessionStats, error) {
	var st SessionStats
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(kills), 0), COALESCE(AVG(kills), 0), COALESCE(SUM(duration_ms), 0)
		 FROM runs`,
	).Scan(&st.Runs, &st.BestKills, &st.AvgKills, &st.TotalMs)
	if err != nil {
		return SessionStats{}, fmt.Errorf("storage: cannot get session stats: %w", err)
	}
	return st, nil
}

// parseTimestamp handles both driver return types for DATETIME columns.
func parseTimestamp(v any) time.Time {
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
