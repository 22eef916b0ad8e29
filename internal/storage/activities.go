package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dsemenov/coachd/internal/readiness"
)

// InsertActivities batch-inserts completed-session history rows.
// Returns count inserted; duplicates on (user_id, occurred_at) are
// skipped so collaborators can re-send overlapping windows.
func (db *DB) InsertActivities(ctx context.Context, userID int, sessions []readiness.Session) (int64, error) {
	if len(sessions) == 0 {
		return 0, nil
	}

	query := `INSERT INTO activity_history (user_id, occurred_at, duration_sec, intense, training_load) VALUES `
	args := make([]any, 0, len(sessions)*5)
	valueStrings := make([]string, 0, len(sessions))

	for i, s := range sessions {
		base := i * 5
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d,$%d,$%d,$%d,$%d)",
			base+1, base+2, base+3, base+4, base+5,
		))
		args = append(args, userID, s.Date, s.DurationSec, s.Intense, s.TrainingLoad)
	}

	query += strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting activities: %w", err)
	}
	return tag.RowsAffected(), nil
}

// TrainingHistory returns the completed sessions since the given
// time, oldest first, for the readiness training factors.
func (db *DB) TrainingHistory(ctx context.Context, userID int, since time.Time) (readiness.TrainingHistory, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT occurred_at, duration_sec, intense, training_load
		 FROM activity_history
		 WHERE user_id = $1 AND occurred_at >= $2
		 ORDER BY occurred_at ASC`,
		userID, since)
	if err != nil {
		return readiness.TrainingHistory{}, fmt.Errorf("querying activity history: %w", err)
	}
	defer rows.Close()

	var hist readiness.TrainingHistory
	for rows.Next() {
		var s readiness.Session
		if err := rows.Scan(&s.Date, &s.DurationSec, &s.Intense, &s.TrainingLoad); err != nil {
			return readiness.TrainingHistory{}, fmt.Errorf("scanning activity: %w", err)
		}
		hist.Sessions = append(hist.Sessions, s)
	}
	return hist, rows.Err()
}
