package mcp

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dsemenov/coachd/internal/readiness"
	"github.com/dsemenov/coachd/internal/workout"
)

// defaultDateRange returns start/end defaulting to the past week plus
// the upcoming two weeks, where scheduled workouts live.
func defaultDateRange(startStr, endStr string) (time.Time, time.Time, error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	start := now.AddDate(0, 0, -7)
	end := now.AddDate(0, 0, 14)

	var err error
	if startStr != "" {
		start, err = time.Parse("2006-01-02", startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if endStr != "" {
		end, err = time.Parse("2006-01-02", endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return start, end, nil
}

// --- Tool definitions ---

var toolGetReadiness = mcp.NewTool("get_readiness",
	mcp.WithDescription("Compute today's readiness: a 0-100 composite score with green/yellow/red level, per-factor breakdown (training load, rest, recovery, stress, energy, activity), and a short summary. Factors with missing telemetry are omitted, not zeroed."),
)

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List scheduled structured workouts. Each workout has ordered steps (warmup/interval/recovery/repeat/cooldown) with durations and targets, plus push status for Garmin and intervals.icu."),
	mcp.WithString("start", mcp.Description("Start date (YYYY-MM-DD). Defaults to 7 days ago.")),
	mcp.WithString("end", mcp.Description("End date (YYYY-MM-DD). Defaults to 14 days ahead.")),
)

var toolGetWorkoutSummary = mcp.NewTool("get_workout_summary",
	mcp.WithDescription("Get the display-ready breakdown of one workout: per-step labels, formatted durations, repeat badges, and the estimated total duration in seconds."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout ID (UUID)")),
)

var toolListFavorites = mcp.NewTool("list_favorites",
	mcp.WithDescription("List saved favorite workout templates, newest first."),
)

// --- Tool handlers ---

func (h *handlers) getReadiness(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	now := time.Now().UTC()
	day := now.Truncate(24 * time.Hour)

	hist, err := h.ds.TrainingHistory(ctx, defaultUserID, now.AddDate(0, 0, -14))
	if err != nil {
		h.log.Error("mcp get_readiness history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	stats, err := h.ds.GetDailyStats(ctx, defaultUserID, day)
	if err != nil {
		h.log.Error("mcp get_readiness stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	res := readiness.Aggregate(readiness.ComputeFactors(hist, stats, now))
	res.DailyStats = stats

	result, err := mcp.NewToolResultJSON(res)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultDateRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	workouts, err := h.ds.ListWorkouts(ctx, defaultUserID, start, end)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(workouts)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWorkoutSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	idStr, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return mcp.NewToolResultError("invalid workout ID"), nil
	}

	wk, err := h.ds.GetWorkout(ctx, defaultUserID, id)
	if err != nil {
		h.log.Error("mcp get_workout_summary", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"workout":  wk,
		"lines":    workout.SummarizeWorkout(wk),
		"estimate": workout.EstimateDuration(wk, nil),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listFavorites(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	favs, err := h.ds.ListFavorites(ctx, defaultUserID)
	if err != nil {
		h.log.Error("mcp list_favorites", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(favs)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Resource handlers ---

func (h *handlers) readinessToday(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	now := time.Now().UTC()

	hist, err := h.ds.TrainingHistory(ctx, defaultUserID, now.AddDate(0, 0, -14))
	if err != nil {
		return nil, err
	}
	stats, err := h.ds.GetDailyStats(ctx, defaultUserID, now.Truncate(24*time.Hour))
	if err != nil {
		return nil, err
	}

	res := readiness.Aggregate(readiness.ComputeFactors(hist, stats, now))
	res.DailyStats = stats

	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) upcomingWorkouts(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)

	workouts, err := h.ds.ListWorkouts(ctx, defaultUserID, now, now.AddDate(0, 0, 14))
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(workouts)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
