package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
// The chat collaborator uses it to read readiness and scheduled
// workouts when composing training advice.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("coachd", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("coachd training server. Query daily readiness, scheduled structured workouts, and favorite workout templates. All data is scoped to the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetReadiness, Handler: h.getReadiness},
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetWorkoutSummary, Handler: h.getWorkoutSummary},
		server.ServerTool{Tool: toolListFavorites, Handler: h.listFavorites},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resReadinessToday, Handler: h.readinessToday},
		server.ServerResource{Resource: resUpcomingWorkouts, Handler: h.upcomingWorkouts},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resReadinessToday = mcp.NewResource(
	"coachd://readiness/today",
	"Today's Readiness",
	mcp.WithResourceDescription("Composite readiness score, level, and per-factor breakdown for today"),
	mcp.WithMIMEType("application/json"),
)

var resUpcomingWorkouts = mcp.NewResource(
	"coachd://workouts/upcoming",
	"Upcoming Workouts",
	mcp.WithResourceDescription("Scheduled structured workouts for the next 14 days"),
	mcp.WithMIMEType("application/json"),
)
