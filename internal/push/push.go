package push

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fatih/color"

	"github.com/dsemenov/coachd/internal/workout"
)

// Stats tracks push progress across one run.
type Stats struct {
	WorkoutsTotal int
	Pushed        int
	Skipped       int
	Errored       int
	Invalid       int
}

// Pusher fetches scheduled workouts from the coachd server and sends
// the ones not yet delivered to each configured platform.
type Pusher struct {
	api     *APIClient
	state   *StateDB
	clients []PlatformClient
	horizon int
	dryRun  bool
	log     *slog.Logger
	stats   Stats
}

// New creates a new Pusher. horizon is how many days ahead of today to
// look for scheduled workouts.
func New(api *APIClient, state *StateDB, clients []PlatformClient, horizon int, dryRun bool, log *slog.Logger) *Pusher {
	return &Pusher{
		api:     api,
		state:   state,
		clients: clients,
		horizon: horizon,
		dryRun:  dryRun,
		log:     log,
	}
}

// Run executes one push pass: list upcoming workouts, push each to
// every platform that hasn't received it, and record state on both
// sides. A workout that fails validation is skipped, never sent.
func (p *Pusher) Run() (*Stats, error) {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	workouts, err := p.api.ListWorkouts(now, now.AddDate(0, 0, p.horizon))
	if err != nil {
		return &p.stats, fmt.Errorf("listing workouts: %w", err)
	}
	p.stats.WorkoutsTotal = len(workouts)

	for _, w := range workouts {
		if err := workout.Validate(&w); err != nil {
			p.log.Warn("skipping invalid workout", "id", w.ID, "name", w.Name, "error", err)
			p.stats.Invalid++
			continue
		}

		for _, client := range p.clients {
			if err := p.pushOne(w, client); err != nil {
				p.log.Warn("push failed",
					"id", w.ID,
					"name", w.Name,
					"platform", client.Platform(),
					"error", err,
				)
				p.stats.Errored++
			}
		}
	}

	return &p.stats, nil
}

func (p *Pusher) pushOne(w workout.Workout, client PlatformClient) error {
	platform := client.Platform()

	if w.SentTo(platform) {
		p.stats.Skipped++
		return nil
	}

	pushed, err := p.state.IsPushed(w.ID.String(), string(platform))
	if err != nil {
		return fmt.Errorf("state check: %w", err)
	}
	if pushed {
		p.stats.Skipped++
		return nil
	}

	if p.dryRun {
		p.log.Info("dry-run: would push", "id", w.ID, "name", w.Name, "platform", platform)
		p.stats.Pushed++
		return nil
	}

	if err := client.Push(w); err != nil {
		return fmt.Errorf("sending to %s: %w", platform, err)
	}

	// Local state first: if the server call below fails, the next run
	// still won't re-send the workout to the platform.
	if err := p.state.MarkPushed(w.ID.String(), string(platform)); err != nil {
		p.log.Warn("failed to record local push state", "id", w.ID, "error", err)
	}
	if err := p.api.MarkPushed(w, platform); err != nil {
		return fmt.Errorf("marking pushed on server: %w", err)
	}

	p.log.Info("pushed workout", "id", w.ID, "name", w.Name, "platform", platform)
	p.stats.Pushed++
	return nil
}

// PrintStats writes a colored summary of the run to stdout.
func PrintStats(stats *Stats) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	fmt.Println()
	bold.Println("=== Push Summary ===")
	fmt.Printf("  Workouts found:   %d\n", stats.WorkoutsTotal)
	green.Printf("  Pushed:           %d\n", stats.Pushed)
	fmt.Printf("  Skipped:          %d (already delivered)\n", stats.Skipped)
	if stats.Invalid > 0 {
		yellow.Printf("  Invalid:          %d\n", stats.Invalid)
	}
	if stats.Errored > 0 {
		red.Printf("  Errored:          %d\n", stats.Errored)
	}
	fmt.Println()
}
