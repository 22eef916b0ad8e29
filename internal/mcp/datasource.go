package mcp

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dsemenov/coachd/internal/readiness"
	"github.com/dsemenov/coachd/internal/storage"
	"github.com/dsemenov/coachd/internal/workout"
)

// defaultUserID scopes all MCP queries in a single-user deployment.
const defaultUserID = 1

// DataSource abstracts the data layer for MCP tools. *storage.DB
// satisfies this interface.
type DataSource interface {
	ListWorkouts(ctx context.Context, userID int, start, end time.Time) ([]workout.Workout, error)
	GetWorkout(ctx context.Context, userID int, id uuid.UUID) (*workout.Workout, error)
	ListFavorites(ctx context.Context, userID int) ([]workout.FavoriteWorkout, error)
	GetDailyStats(ctx context.Context, userID int, day time.Time) (*readiness.DailyStats, error)
	TrainingHistory(ctx context.Context, userID int, since time.Time) (readiness.TrainingHistory, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)
