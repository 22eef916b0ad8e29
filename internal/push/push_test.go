package push

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/dsemenov/coachd/internal/workout"
)

// fakePlatform records pushed workouts instead of calling out.
type fakePlatform struct {
	platform workout.Platform
	pushed   []uuid.UUID
	fail     bool
}

func (f *fakePlatform) Platform() workout.Platform { return f.platform }

func (f *fakePlatform) Push(w workout.Workout) error {
	if f.fail {
		return io.ErrUnexpectedEOF
	}
	f.pushed = append(f.pushed, w.ID)
	return nil
}

func fp(v float64) *float64 { return &v }

func testWorkouts() []workout.Workout {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	return []workout.Workout{
		{
			ID:            uuid.New(),
			Name:          "Easy run",
			SportType:     workout.SportRunning,
			ScheduledDate: workout.NewDate(tomorrow.Year(), tomorrow.Month(), tomorrow.Day()),
			Steps: []workout.Step{{
				StepType:      workout.StepWarmup,
				StepOrder:     1,
				DurationType:  workout.DurationTime,
				DurationValue: fp(1800),
				TargetType:    workout.TargetNone,
				Intensity:     workout.IntensityActive,
			}},
		},
		{
			ID:            uuid.New(),
			Name:          "Already delivered",
			SportType:     workout.SportRunning,
			ScheduledDate: workout.NewDate(tomorrow.Year(), tomorrow.Month(), tomorrow.Day()),
			SentToGarmin:  true,
			Steps: []workout.Step{{
				StepType:      workout.StepWarmup,
				StepOrder:     1,
				DurationType:  workout.DurationTime,
				DurationValue: fp(600),
				TargetType:    workout.TargetNone,
				Intensity:     workout.IntensityActive,
			}},
		},
	}
}

// newTestAPI serves the workout list and accepts mark-pushed calls.
func newTestAPI(t *testing.T, workouts []workout.Workout) (*APIClient, *[]string) {
	t.Helper()
	var marked []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/workouts":
			json.NewEncoder(w).Encode(workouts)
		case r.Method == http.MethodPost && strings.Contains(r.URL.Path, "/pushed/"):
			marked = append(marked, r.URL.Path)
			w.Write([]byte(`{}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return NewAPIClient(srv.URL), &marked
}

func newTestPusher(t *testing.T, api *APIClient, clients []PlatformClient, dryRun bool) *Pusher {
	t.Helper()
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatalf("OpenStateDB: %v", err)
	}
	t.Cleanup(func() { state.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(api, state, clients, 7, dryRun, log)
}

func TestPusherDeliversAndMarks(t *testing.T) {
	workouts := testWorkouts()
	api, marked := newTestAPI(t, workouts)
	garmin := &fakePlatform{platform: workout.PlatformGarmin}

	p := newTestPusher(t, api, []PlatformClient{garmin}, false)
	stats, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Pushed != 1 {
		t.Errorf("Pushed = %d, want 1", stats.Pushed)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1 (flagged workout must not re-send)", stats.Skipped)
	}
	if len(garmin.pushed) != 1 || garmin.pushed[0] != workouts[0].ID {
		t.Errorf("platform received %v, want [%s]", garmin.pushed, workouts[0].ID)
	}
	if len(*marked) != 1 {
		t.Errorf("server mark-pushed calls = %d, want 1", len(*marked))
	}

	// Second run against the same state: nothing new to send.
	p2 := New(api, p.state, []PlatformClient{garmin}, 7, false, p.log)
	stats2, err := p2.Run()
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if stats2.Pushed != 0 {
		t.Errorf("second run Pushed = %d, want 0", stats2.Pushed)
	}
	if len(garmin.pushed) != 1 {
		t.Errorf("platform received duplicate push: %v", garmin.pushed)
	}
}

func TestPusherDryRunSendsNothing(t *testing.T) {
	api, marked := newTestAPI(t, testWorkouts())
	garmin := &fakePlatform{platform: workout.PlatformGarmin}

	p := newTestPusher(t, api, []PlatformClient{garmin}, true)
	stats, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Pushed != 1 {
		t.Errorf("Pushed = %d, want 1", stats.Pushed)
	}
	if len(garmin.pushed) != 0 {
		t.Errorf("dry run sent %d workouts to the platform", len(garmin.pushed))
	}
	if len(*marked) != 0 {
		t.Errorf("dry run marked %d workouts on the server", len(*marked))
	}
}

func TestPusherSkipsInvalidWorkout(t *testing.T) {
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	broken := []workout.Workout{{
		ID:            uuid.New(),
		Name:          "No steps",
		SportType:     workout.SportRunning,
		ScheduledDate: workout.NewDate(tomorrow.Year(), tomorrow.Month(), tomorrow.Day()),
	}}

	api, _ := newTestAPI(t, broken)
	garmin := &fakePlatform{platform: workout.PlatformGarmin}

	p := newTestPusher(t, api, []PlatformClient{garmin}, false)
	stats, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Invalid != 1 {
		t.Errorf("Invalid = %d, want 1", stats.Invalid)
	}
	if len(garmin.pushed) != 0 {
		t.Errorf("invalid workout was sent to the platform")
	}
}

func TestPusherRecordsPlatformErrors(t *testing.T) {
	api, marked := newTestAPI(t, testWorkouts())
	garmin := &fakePlatform{platform: workout.PlatformGarmin, fail: true}

	p := newTestPusher(t, api, []PlatformClient{garmin}, false)
	stats, err := p.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Errored != 1 {
		t.Errorf("Errored = %d, want 1", stats.Errored)
	}
	if len(*marked) != 0 {
		t.Errorf("failed push was marked on the server")
	}
}
