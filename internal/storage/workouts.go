package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dsemenov/coachd/internal/workout"
)

// ErrNotFound is returned when a workout or favorite does not exist
// for the requesting user.
var ErrNotFound = errors.New("not found")

// InsertWorkout stores a validated workout. Steps are kept as a JSON
// document: the step tree travels as one wire-format value and is
// never queried field-by-field.
func (db *DB) InsertWorkout(ctx context.Context, userID int, w *workout.Workout) error {
	steps, err := json.Marshal(w.Steps)
	if err != nil {
		return fmt.Errorf("encoding steps: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO workouts (id, user_id, name, description, sport_type, scheduled_date,
		 steps, sent_to_garmin, sent_to_intervals)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		w.ID, userID, w.Name, w.Description, string(w.SportType), w.ScheduledDate.Time,
		steps, w.SentToGarmin, w.SentToIntervals)
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}
	return nil
}

// ListWorkouts retrieves workouts scheduled inside [start, end),
// ordered by date.
func (db *DB) ListWorkouts(ctx context.Context, userID int, start, end time.Time) ([]workout.Workout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, description, sport_type, scheduled_date, steps, sent_to_garmin, sent_to_intervals
		 FROM workouts
		 WHERE user_id = $1 AND scheduled_date >= $2 AND scheduled_date < $3
		 ORDER BY scheduled_date ASC, created_at ASC`,
		userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("querying workouts: %w", err)
	}
	defer rows.Close()

	var out []workout.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

// GetWorkout retrieves one workout by ID, scoped to the owner.
func (db *DB) GetWorkout(ctx context.Context, userID int, id uuid.UUID) (*workout.Workout, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name, description, sport_type, scheduled_date, steps, sent_to_garmin, sent_to_intervals
		 FROM workouts WHERE id = $1 AND user_id = $2`,
		id, userID)

	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return w, nil
}

// DeleteWorkout removes a workout owned by the user.
func (db *DB) DeleteWorkout(ctx context.Context, userID int, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting workout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkPushed records a successful push to a platform. The flags are
// write-once-true: the update only ever sets the column to TRUE, so a
// repeated push cannot reset it. Returns whether the flag changed.
func (db *DB) MarkPushed(ctx context.Context, userID int, id uuid.UUID, platform workout.Platform) (bool, error) {
	var column string
	switch platform {
	case workout.PlatformGarmin:
		column = "sent_to_garmin"
	case workout.PlatformIntervals:
		column = "sent_to_intervals"
	default:
		return false, fmt.Errorf("unknown platform %q", platform)
	}

	tag, err := db.Pool.Exec(ctx,
		fmt.Sprintf(`UPDATE workouts SET %s = TRUE WHERE id = $1 AND user_id = $2 AND NOT %s`, column, column),
		id, userID)
	if err != nil {
		return false, fmt.Errorf("marking workout pushed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		// Either already pushed or missing; disambiguate for the caller.
		var exists bool
		if err := db.Pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM workouts WHERE id = $1 AND user_id = $2)`,
			id, userID).Scan(&exists); err != nil {
			return false, fmt.Errorf("checking workout: %w", err)
		}
		if !exists {
			return false, ErrNotFound
		}
		return false, nil
	}
	return true, nil
}

func scanWorkout(row pgx.Row) (*workout.Workout, error) {
	var w workout.Workout
	var sport string
	var scheduled time.Time
	var steps []byte

	if err := row.Scan(&w.ID, &w.Name, &w.Description, &sport, &scheduled,
		&steps, &w.SentToGarmin, &w.SentToIntervals); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning workout: %w", err)
	}

	w.SportType = workout.SportType(sport)
	w.ScheduledDate = workout.Date{Time: scheduled}
	if err := json.Unmarshal(steps, &w.Steps); err != nil {
		return nil, fmt.Errorf("decoding steps: %w", err)
	}
	return &w, nil
}
