package storage

import (
	"context"
	"fmt"
	"time"
)

// StepSample is one recorded batch of steps.
type StepSample struct {
	ID         int64
	RecordedAt time.Time
	Steps      float64
	Source     string
}

// RecordSteps stores steps counted at the given instant.
func (s *Store) RecordSteps(ctx context.Context, at time.Time, steps float64, source string) error {
	if steps < 0 {
		return fmt.Errorf("storage: negative step count %v", steps)
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO step_samples (recorded_at, steps, source) VALUES (?, ?, ?)",
		at.UnixNano(), steps, source,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record steps: %w", err)
	}
	return nil
}

// StepsBetween sums the steps recorded in [from, to).
func (s *Store) StepsBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var total float64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(steps), 0) FROM step_samples
		 WHERE recorded_at >= ? AND recorded_at < ?`,
		from.UnixNano(), to.UnixNano(),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot sum steps: %w", err)
	}
	return total, nil
}

// RecentSteps returns the newest samples first.
func (s *Store) RecentSteps(ctx context.Context, limit int) ([]StepSample, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, recorded_at, steps, source FROM step_samples
		 ORDER BY recorded_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query steps: %w", err)
	}
	defer rows.Close()

	var out []StepSample
	for rows.Next() {
		var sample StepSample
		var at int64
		if err := rows.Scan(&sample.ID, &at, &sample.Steps, &sample.Source); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sample.RecordedAt = time.Unix(0, at)
		out = append(out, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}
