package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dsemenov/coachd/internal/readiness"
	"github.com/dsemenov/coachd/internal/workout"
)

// historyWindowDays is how much activity history the training factors
// read. Two weeks covers the longest lookback (intense-day streaks).
const historyWindowDays = 14

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	now := s.now().UTC()
	day := now.Truncate(24 * time.Hour)

	hist, err := s.store.TrainingHistory(r.Context(), defaultUserID, now.AddDate(0, 0, -historyWindowDays))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stats, err := s.store.GetDailyStats(r.Context(), defaultUserID, day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := readiness.Aggregate(readiness.ComputeFactors(hist, stats, now))
	result.DailyStats = stats

	// Clients may keep showing a stale result this long before
	// refetching.
	w.Header().Set("Cache-Control",
		fmt.Sprintf("max-age=%d", int(readiness.StalenessWindow.Seconds())))
	writeJSON(w, http.StatusOK, result)
}

type ingestDailyRequest struct {
	Date  workout.Date         `json:"date"`
	Stats readiness.DailyStats `json:"stats"`
}

func (s *Server) handleIngestDaily(w http.ResponseWriter, r *http.Request) {
	var req ingestDailyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	day := req.Date.Time
	if day.IsZero() {
		day = s.now().UTC().Truncate(24 * time.Hour)
	}

	if err := s.store.UpsertDailyStats(r.Context(), defaultUserID, day, req.Stats); err != nil {
		s.log.Error("ingest daily stats", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type ingestActivitiesRequest struct {
	Sessions []readiness.Session `json:"sessions"`
}

func (s *Server) handleIngestActivities(w http.ResponseWriter, r *http.Request) {
	var req ingestActivitiesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	inserted, err := s.store.InsertActivities(r.Context(), defaultUserID, req.Sessions)
	if err != nil {
		s.log.Error("ingest activities", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"inserted": inserted})
}
