package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dsemenov/coachd/internal/readiness"
	"github.com/dsemenov/coachd/internal/storage"
	"github.com/dsemenov/coachd/internal/workout"
)

// defaultUserID scopes all data in a single-user deployment. The
// tsnet identity layer maps onto real users when multi-user is needed.
const defaultUserID = 1

// Store abstracts the data layer for HTTP handlers. *storage.DB
// satisfies it; tests substitute a fake.
type Store interface {
	InsertWorkout(ctx context.Context, userID int, w *workout.Workout) error
	ListWorkouts(ctx context.Context, userID int, start, end time.Time) ([]workout.Workout, error)
	GetWorkout(ctx context.Context, userID int, id uuid.UUID) (*workout.Workout, error)
	DeleteWorkout(ctx context.Context, userID int, id uuid.UUID) error
	MarkPushed(ctx context.Context, userID int, id uuid.UUID, platform workout.Platform) (bool, error)

	SaveFavorite(ctx context.Context, userID int, f *workout.FavoriteWorkout) error
	ListFavorites(ctx context.Context, userID int) ([]workout.FavoriteWorkout, error)
	DeleteFavorite(ctx context.Context, userID int, id uuid.UUID) error
	PromoteFavorite(ctx context.Context, userID int, id uuid.UUID, date workout.Date) (*workout.Workout, error)

	UpsertDailyStats(ctx context.Context, userID int, day time.Time, stats readiness.DailyStats) error
	GetDailyStats(ctx context.Context, userID int, day time.Time) (*readiness.DailyStats, error)
	InsertActivities(ctx context.Context, userID int, sessions []readiness.Session) (int64, error)
	TrainingHistory(ctx context.Context, userID int, since time.Time) (readiness.TrainingHistory, error)
}

// Compile-time check: *storage.DB satisfies Store.
var _ Store = (*storage.DB)(nil)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store  Store
	log    *slog.Logger
	apiKey string
	router chi.Router

	// now is the clock; overridable in tests for stable readiness
	// windows.
	now func() time.Time
}

// New creates a new Server with all routes configured.
func New(store Store, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		store:  store,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
		now:    time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Ingest endpoints (API key required)
	s.router.Route("/api/v1/ingest", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))
		r.Post("/daily", s.handleIngestDaily)
		r.Post("/activities", s.handleIngestActivities)
	})

	// Workout endpoints
	s.router.Post("/api/v1/workouts", s.handleCreateWorkout)
	s.router.Get("/api/v1/workouts", s.handleListWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Delete("/api/v1/workouts/{id}", s.handleDeleteWorkout)
	s.router.Get("/api/v1/workouts/{id}/summary", s.handleWorkoutSummary)
	s.router.Post("/api/v1/workouts/{id}/pushed/{platform}", s.handleMarkPushed)

	// Favorite endpoints
	s.router.Post("/api/v1/favorites", s.handleSaveFavorite)
	s.router.Get("/api/v1/favorites", s.handleListFavorites)
	s.router.Delete("/api/v1/favorites/{id}", s.handleDeleteFavorite)
	s.router.Post("/api/v1/favorites/{id}/promote", s.handlePromoteFavorite)

	// Readiness
	s.router.Get("/api/v1/readiness", s.handleReadiness)
}
