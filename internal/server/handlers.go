package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dsemenov/coachd/internal/storage"
	"github.com/dsemenov/coachd/internal/workout"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeValidationError maps the workout validation taxonomy onto a
// 422 with a machine-readable kind, so the UI can show a specific
// message per error kind.
func writeValidationError(w http.ResponseWriter, err error) {
	kind := "invalid"
	var se *workout.StructuralError
	var de *workout.DurationError
	var tre *workout.TargetRangeError
	var ne *workout.NestingError
	switch {
	case errors.As(err, &ne):
		kind = "nesting"
	case errors.As(err, &se):
		kind = "structural"
	case errors.As(err, &de):
		kind = "duration"
	case errors.As(err, &tre):
		kind = "target-range"
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]string{
		"error": err.Error(),
		"kind":  kind,
	})
}

// parseDateRange reads from/to query params (YYYY-MM-DD). The default
// window covers the past week and the upcoming two: scheduled
// workouts mostly live in the near future.
func (s *Server) parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	now := s.now().UTC().Truncate(24 * time.Hour)
	start := now.AddDate(0, 0, -7)
	end := now.AddDate(0, 0, 14)

	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(workout.DateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from date %q", v)
		}
		start = t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(workout.DateLayout, v)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to date %q", v)
		}
		end = t
	}
	return start, end, nil
}

func workoutID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var wk workout.Workout
	if err := json.NewDecoder(r.Body).Decode(&wk); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if wk.ID == uuid.Nil {
		wk.ID = uuid.New()
	}
	// Push flags are owned by the push transition, never by create.
	wk.SentToGarmin = false
	wk.SentToIntervals = false

	if err := workout.Validate(&wk); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := s.store.InsertWorkout(r.Context(), defaultUserID, &wk); err != nil {
		s.log.Error("insert workout", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, wk)
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	start, end, err := s.parseDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	workouts, err := s.store.ListWorkouts(r.Context(), defaultUserID, start, end)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := workoutID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid workout ID")
		return
	}

	wk, err := s.store.GetWorkout(r.Context(), defaultUserID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "workout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	id, err := workoutID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid workout ID")
		return
	}

	if err := s.store.DeleteWorkout(r.Context(), defaultUserID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "workout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// WorkoutSummary is the display-ready breakdown of one workout.
type WorkoutSummary struct {
	Lines    []workout.DisplayLine `json:"lines"`
	Estimate workout.Estimate      `json:"estimate"`
}

func (s *Server) handleWorkoutSummary(w http.ResponseWriter, r *http.Request) {
	id, err := workoutID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid workout ID")
		return
	}

	wk, err := s.store.GetWorkout(r.Context(), defaultUserID, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "workout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, WorkoutSummary{
		Lines:    workout.SummarizeWorkout(wk),
		Estimate: workout.EstimateDuration(wk, nil),
	})
}

func (s *Server) handleMarkPushed(w http.ResponseWriter, r *http.Request) {
	id, err := workoutID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid workout ID")
		return
	}

	platform := workout.Platform(chi.URLParam(r, "platform"))
	if !platform.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown platform %q", platform))
		return
	}

	changed, err := s.store.MarkPushed(r.Context(), defaultUserID, id, platform)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "workout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

type saveFavoriteRequest struct {
	WorkoutID uuid.UUID `json:"workoutId"`
}

func (s *Server) handleSaveFavorite(w http.ResponseWriter, r *http.Request) {
	var req saveFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	wk, err := s.store.GetWorkout(r.Context(), defaultUserID, req.WorkoutID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "workout not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	fav := wk.Favorite(s.now())
	if err := s.store.SaveFavorite(r.Context(), defaultUserID, &fav); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, fav)
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := s.store.ListFavorites(r.Context(), defaultUserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, favs)
}

func (s *Server) handleDeleteFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := workoutID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid favorite ID")
		return
	}

	if err := s.store.DeleteFavorite(r.Context(), defaultUserID, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "favorite not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type promoteRequest struct {
	ScheduledDate workout.Date `json:"scheduledDate"`
}

func (s *Server) handlePromoteFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := workoutID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid favorite ID")
		return
	}

	var req promoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.ScheduledDate.IsZero() {
		writeError(w, http.StatusBadRequest, "scheduledDate is required")
		return
	}

	wk, err := s.store.PromoteFavorite(r.Context(), defaultUserID, id, req.ScheduledDate)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "favorite not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, wk)
}
