package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dsemenov/coachd/internal/workout"
)

// PlatformClient pushes one workout to an external training platform.
type PlatformClient interface {
	Platform() workout.Platform
	Push(w workout.Workout) error
}

// --- intervals.icu ---

// IntervalsClient pushes workouts to intervals.icu as calendar events.
// Auth is HTTP basic with the literal username "API_KEY".
type IntervalsClient struct {
	baseURL    string
	athleteID  string
	apiKey     string
	httpClient *http.Client
}

// NewIntervalsClient creates an intervals.icu client.
func NewIntervalsClient(athleteID, apiKey string) *IntervalsClient {
	return &IntervalsClient{
		baseURL:   "https://intervals.icu",
		athleteID: athleteID,
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *IntervalsClient) Platform() workout.Platform { return workout.PlatformIntervals }

type intervalsEvent struct {
	Category       string `json:"category"`
	StartDateLocal string `json:"start_date_local"`
	Type           string `json:"type"`
	Name           string `json:"name"`
	Description    string `json:"description"`
}

// Push creates a planned-workout event on the athlete's calendar.
// The step structure is rendered as the event description: intervals.icu
// parses its own text format, and the display lines are close enough
// for a human-readable plan.
func (c *IntervalsClient) Push(w workout.Workout) error {
	ev := intervalsEvent{
		Category:       "WORKOUT",
		StartDateLocal: w.ScheduledDate.Format(workout.DateLayout) + "T00:00:00",
		Type:           intervalsSport(w.SportType),
		Name:           w.Name,
		Description:    renderPlan(&w),
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/athlete/%s/events", c.baseURL, c.athleteID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.SetBasicAuth("API_KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting event: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("intervals.icu rejected event (status %d): %s", resp.StatusCode, body)
	}
	return nil
}

func intervalsSport(s workout.SportType) string {
	switch s {
	case workout.SportRunning:
		return "Run"
	case workout.SportCycling:
		return "Ride"
	case workout.SportSwimming:
		return "Swim"
	default:
		return "Workout"
	}
}

// --- Garmin Connect ---

// GarminClient pushes structured workouts through a Garmin Connect
// proxy (garth-style session token handled by the proxy).
type GarminClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewGarminClient creates a Garmin client against the given proxy URL.
func NewGarminClient(baseURL, token string) *GarminClient {
	return &GarminClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *GarminClient) Platform() workout.Platform { return workout.PlatformGarmin }

type garminWorkout struct {
	Name          string         `json:"workoutName"`
	Description   string         `json:"description,omitempty"`
	SportType     string         `json:"sportType"`
	ScheduledDate string         `json:"scheduledDate"`
	Steps         []workout.Step `json:"steps"`
}

// Push sends the workout with its full step tree; the proxy translates
// step types and targets into Garmin's executable workout schema.
func (c *GarminClient) Push(w workout.Workout) error {
	payload := garminWorkout{
		Name:          w.Name,
		Description:   w.Description,
		SportType:     string(w.SportType),
		ScheduledDate: w.ScheduledDate.Format(workout.DateLayout),
		Steps:         w.Steps,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling workout: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/workouts", bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("posting workout: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("garmin rejected workout (status %d): %s", resp.StatusCode, body)
	}
	return nil
}

// renderPlan flattens the display lines into plain text, one step per
// line, children indented under their repeat block.
func renderPlan(w *workout.Workout) string {
	var b strings.Builder
	for _, line := range workout.SummarizeWorkout(w) {
		writeLine(&b, line, "")
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeLine(b *strings.Builder, line workout.DisplayLine, indent string) {
	b.WriteString(indent)
	b.WriteString(line.Label)
	if line.RepeatBadge != "" {
		b.WriteString(" ")
		b.WriteString(line.RepeatBadge)
	}
	if line.Duration != "" {
		b.WriteString(" — ")
		b.WriteString(line.Duration)
	}
	if line.Target != "" {
		b.WriteString(", ")
		b.WriteString(line.Target)
	}
	b.WriteString("\n")
	for _, child := range line.Children {
		writeLine(b, child, indent+"  ")
	}
}
