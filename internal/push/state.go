package push

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// StateDB tracks which workouts have already been pushed to which platform,
// so repeated runs don't re-send the same workout.
type StateDB struct {
	db *sql.DB
}

// OpenStateDB opens (or creates) the SQLite state database at dir/state.db.
func OpenStateDB(dir string) (*StateDB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "state.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening state db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS pushed_workouts (
		workout_id TEXT NOT NULL,
		platform   TEXT NOT NULL,
		pushed_at  TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (workout_id, platform)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state table: %w", err)
	}

	return &StateDB{db: db}, nil
}

// IsPushed checks whether a workout was already sent to the given platform.
func (s *StateDB) IsPushed(workoutID, platform string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM pushed_workouts WHERE workout_id = ? AND platform = ?`,
		workoutID, platform,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkPushed records a successful push.
func (s *StateDB) MarkPushed(workoutID, platform string) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO pushed_workouts (workout_id, platform) VALUES (?, ?)`,
		workoutID, platform,
	)
	return err
}

// Close closes the state database.
func (s *StateDB) Close() error {
	return s.db.Close()
}
