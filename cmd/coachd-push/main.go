package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/robfig/cron"
	"github.com/spf13/cobra"

	"github.com/dsemenov/coachd/internal/push"
	"github.com/dsemenov/coachd/internal/workout"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var (
	serverURL string
	stateDir  string
	horizon   int
	dryRun    bool
	platforms []string
)

var rootCmd = &cobra.Command{
	Use:     "coachd-push",
	Short:   "Push scheduled workouts from a coachd server to training platforms",
	Version: Version,
}

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Run one push pass and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := buildPusher()
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := p.Run()
		push.PrintStats(stats)
		if err != nil {
			return fmt.Errorf("push failed: %w", err)
		}
		return nil
	},
}

var schedule string

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run push passes on a schedule until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, cleanup, err := buildPusher()
		if err != nil {
			return err
		}
		defer cleanup()

		runOnce := func() {
			stats, err := p.Run()
			if err != nil {
				color.Red("push pass failed: %v", err)
				return
			}
			push.PrintStats(stats)
		}

		// First pass immediately, then on the schedule.
		runOnce()

		c := cron.New()
		if err := c.AddFunc(schedule, runOnce); err != nil {
			return fmt.Errorf("invalid schedule %q: %w", schedule, err)
		}
		c.Start()
		defer c.Stop()

		color.Cyan("daemon running, schedule %s", schedule)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		fmt.Println("stopping")
		return nil
	},
}

// buildPusher assembles the pusher from flags and environment
// credentials. The returned cleanup closes the state database.
func buildPusher() (*push.Pusher, func(), error) {
	if serverURL == "" {
		return nil, nil, fmt.Errorf("--server is required")
	}
	serverURL = strings.TrimRight(serverURL, "/")

	clients, err := platformClients()
	if err != nil {
		return nil, nil, err
	}
	if len(clients) == 0 {
		return nil, nil, fmt.Errorf("no platforms configured (use --platforms and set credentials)")
	}

	dir := stateDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dir = filepath.Join(home, ".coachd-push")
	}

	state, err := push.OpenStateDB(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening state database: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	api := push.NewAPIClient(serverURL)
	p := push.New(api, state, clients, horizon, dryRun, log)

	return p, func() { state.Close() }, nil
}

// platformClients builds a client per requested platform. Credentials
// come from the environment (or a .env file next to the binary):
//
//	INTERVALS_ATHLETE_ID, INTERVALS_API_KEY
//	GARMIN_PROXY_URL, GARMIN_TOKEN
func platformClients() ([]push.PlatformClient, error) {
	var clients []push.PlatformClient
	for _, name := range platforms {
		switch workout.Platform(name) {
		case workout.PlatformIntervals:
			athleteID := os.Getenv("INTERVALS_ATHLETE_ID")
			apiKey := os.Getenv("INTERVALS_API_KEY")
			if athleteID == "" || apiKey == "" {
				return nil, fmt.Errorf("intervals: INTERVALS_ATHLETE_ID and INTERVALS_API_KEY must be set")
			}
			clients = append(clients, push.NewIntervalsClient(athleteID, apiKey))
		case workout.PlatformGarmin:
			proxyURL := os.Getenv("GARMIN_PROXY_URL")
			token := os.Getenv("GARMIN_TOKEN")
			if proxyURL == "" || token == "" {
				return nil, fmt.Errorf("garmin: GARMIN_PROXY_URL and GARMIN_TOKEN must be set")
			}
			clients = append(clients, push.NewGarminClient(proxyURL, token))
		default:
			return nil, fmt.Errorf("unknown platform %q", name)
		}
	}
	return clients, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", os.Getenv("COACHD_SERVER_URL"), "coachd server URL")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "push state directory (default ~/.coachd-push)")
	rootCmd.PersistentFlags().IntVar(&horizon, "horizon", 7, "days ahead to look for scheduled workouts")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "log what would be pushed without sending")
	rootCmd.PersistentFlags().StringSliceVar(&platforms, "platforms", []string{"intervals"}, "platforms to push to (garmin, intervals)")

	daemonCmd.Flags().StringVar(&schedule, "schedule", "@every 1h", "cron schedule for push passes")

	rootCmd.AddCommand(pushCmd)
	rootCmd.AddCommand(daemonCmd)
}

func main() {
	// Credentials may live in a .env file; absence is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
