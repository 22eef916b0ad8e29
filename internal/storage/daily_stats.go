package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dsemenov/coachd/internal/readiness"
)

// UpsertDailyStats stores the wearable telemetry snapshot for one
// day. Repeated ingests for the same day overwrite: the watch reports
// running totals, so the latest snapshot wins.
func (db *DB) UpsertDailyStats(ctx context.Context, userID int, day time.Time, stats readiness.DailyStats) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO daily_stats (user_id, day, stress_level, body_battery, steps)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, day) DO UPDATE
		   SET stress_level = EXCLUDED.stress_level,
		       body_battery = EXCLUDED.body_battery,
		       steps        = EXCLUDED.steps,
		       updated_at   = NOW()`,
		userID, day, stats.StressLevel, stats.BodyBattery, stats.Steps)
	if err != nil {
		return fmt.Errorf("upserting daily stats: %w", err)
	}
	return nil
}

// GetDailyStats returns the telemetry snapshot for the given day, or
// nil when the wearable reported nothing. Missing telemetry is not an
// error: readiness simply computes fewer factors.
func (db *DB) GetDailyStats(ctx context.Context, userID int, day time.Time) (*readiness.DailyStats, error) {
	var stats readiness.DailyStats
	err := db.Pool.QueryRow(ctx,
		`SELECT stress_level, body_battery, steps
		 FROM daily_stats WHERE user_id = $1 AND day = $2`,
		userID, day).Scan(&stats.StressLevel, &stats.BodyBattery, &stats.Steps)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying daily stats: %w", err)
	}
	return &stats, nil
}
