package storage

import (
	"fmt"
	"time"
)

// MazeRun is the outcome of one maze attempt.
type MazeRun struct {
	ID        int64
	Variant   string
	Ticks     int
	Respawns  int
	Won       bool
	CreatedAt time.Time
}

// SaveMazeRun records a finished or abandoned maze attempt.
func (s *Store) SaveMazeRun(run MazeRun) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO maze_runs (variant, ticks, respawns, won) VALUES (?, ?, ?, ?)",
		run.Variant, run.Ticks, run.Respawns, run.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save maze run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentMazeRuns returns the latest runs, newest first.
func (s *Store) RecentMazeRuns(limit int) ([]MazeRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, variant, ticks, respawns, won, created_at
		 FROM maze_runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query maze runs: %w", err)
	}
	defer rows.Close()

	var runs []MazeRun
	for rows.Next() {
		var r MazeRun
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Variant, &r.Ticks, &r.Respawns, &r.Won, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// MazeStats aggregates maze history.
type MazeStats struct {
	Runs      int
	Wins      int
	BestTicks int // fewest ticks among wins, 0 when never won
}

// GetMazeStats summarizes all maze runs.
func (s *Store) GetMazeStats() (MazeStats, error) {
	var st MazeStats
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0),
		        COALESCE(MIN(CASE WHEN won THEN ticks END), 0)
		 FROM maze_runs`,
	).Scan(&st.Runs, &st.Wins, &st.BestTicks)
	if err != nil {
		return MazeStats{}, fmt.Errorf("storage: cannot get maze stats: %w", err)
	}
	return st, nil
}
