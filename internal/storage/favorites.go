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

// SaveFavorite stores a favorite workout template.
func (db *DB) SaveFavorite(ctx context.Context, userID int, f *workout.FavoriteWorkout) error {
	steps, err := json.Marshal(f.Steps)
	if err != nil {
		return fmt.Errorf("encoding steps: %w", err)
	}

	_, err = db.Pool.Exec(ctx,
		`INSERT INTO favorite_workouts (id, user_id, name, description, sport_type, steps, saved_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		f.ID, userID, f.Name, f.Description, string(f.SportType), steps, f.SavedAt)
	if err != nil {
		return fmt.Errorf("inserting favorite: %w", err)
	}
	return nil
}

// ListFavorites retrieves the user's favorites, newest first.
func (db *DB) ListFavorites(ctx context.Context, userID int) ([]workout.FavoriteWorkout, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT id, name, description, sport_type, steps, saved_at
		 FROM favorite_workouts WHERE user_id = $1
		 ORDER BY saved_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying favorites: %w", err)
	}
	defer rows.Close()

	var out []workout.FavoriteWorkout
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

// GetFavorite retrieves one favorite by ID, scoped to the owner.
func (db *DB) GetFavorite(ctx context.Context, userID int, id uuid.UUID) (*workout.FavoriteWorkout, error) {
	row := db.Pool.QueryRow(ctx,
		`SELECT id, name, description, sport_type, steps, saved_at
		 FROM favorite_workouts WHERE id = $1 AND user_id = $2`,
		id, userID)

	f, err := scanFavorite(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// DeleteFavorite removes a favorite owned by the user.
func (db *DB) DeleteFavorite(ctx context.Context, userID int, id uuid.UUID) error {
	tag, err := db.Pool.Exec(ctx,
		`DELETE FROM favorite_workouts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PromoteFavorite creates a scheduled workout from a favorite. The
// favorite stays untouched; the new workout has fresh identity and
// clean push flags.
func (db *DB) PromoteFavorite(ctx context.Context, userID int, id uuid.UUID, date workout.Date) (*workout.Workout, error) {
	f, err := db.GetFavorite(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	w := f.Promote(date)
	if err := db.InsertWorkout(ctx, userID, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func scanFavorite(row pgx.Row) (*workout.FavoriteWorkout, error) {
	var f workout.FavoriteWorkout
	var sport string
	var steps []byte
	var savedAt time.Time

	if err := row.Scan(&f.ID, &f.Name, &f.Description, &sport, &steps, &savedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning favorite: %w", err)
	}

	f.SportType = workout.SportType(sport)
	f.SavedAt = savedAt
	if err := json.Unmarshal(steps, &f.Steps); err != nil {
		return nil, fmt.Errorf("decoding steps: %w", err)
	}
	return &f, nil
}
