package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// Preference returns a stored float preference. ok is false when the key
// has never been written.
func (s *Store) Preference(key string) (value float64, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM preferences WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot read preference %q: %w", key, err)
	}
	return value, true, nil
}

// SetPreference writes a float preference, replacing any previous value.
func (s *Store) SetPreference(key string, value float64) error {
	_, err := s.db.Exec(
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write preference %q: %w", key, err)
	}
	return nil
}

// LoadGoal returns the stored daily goal, 0 when none is stored. Applying the
// minimum is the caller's job.
func (s *Store) LoadGoal() (float64, error) {
	v, _, err := s.Preference(PrefGoal)
	return v, err
}

// SaveGoal persists the daily goal.
func (s *Store) SaveGoal(goal float64) error {
	return s.SetPreference(PrefGoal, goal)
}
