package push

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dsemenov/coachd/internal/workout"
)

// APIClient talks to the coachd server over HTTP.
type APIClient struct {
	serverURL  string
	httpClient *http.Client
}

// NewAPIClient creates a new HTTP client for the coachd server.
func NewAPIClient(serverURL string) *APIClient {
	return &APIClient{
		serverURL: serverURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// ListWorkouts fetches scheduled workouts in [from, to).
func (c *APIClient) ListWorkouts(from, to time.Time) ([]workout.Workout, error) {
	url := fmt.Sprintf("%s/api/v1/workouts?from=%s&to=%s",
		c.serverURL, from.Format("2006-01-02"), to.Format("2006-01-02"))

	resp, err := c.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching workouts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("workout list failed (status %d): %s", resp.StatusCode, body)
	}

	var workouts []workout.Workout
	if err := json.NewDecoder(resp.Body).Decode(&workouts); err != nil {
		return nil, fmt.Errorf("decoding workouts: %w", err)
	}
	return workouts, nil
}

// MarkPushed records on the server that a workout reached the platform.
// Retries up to 3 times with exponential backoff on failure.
func (c *APIClient) MarkPushed(w workout.Workout, platform workout.Platform) error {
	url := fmt.Sprintf("%s/api/v1/workouts/%s/pushed/%s", c.serverURL, w.ID, platform)

	var lastErr error
	for attempt := range 3 {
		if attempt > 0 {
			time.Sleep(time.Duration(1<<uint(attempt-1)) * time.Second)
		}

		resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(nil))
		if err != nil {
			lastErr = err
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			return nil
		}
		lastErr = fmt.Errorf("mark pushed failed (status %d): %s", resp.StatusCode, body)
	}

	return fmt.Errorf("after 3 attempts: %w", lastErr)
}
