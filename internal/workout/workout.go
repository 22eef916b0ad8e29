package workout

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used for scheduledDate.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time-of-day component. It marshals
// as "2006-01-02".
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(DateLayout, s)
	if err != nil {
		return fmt.Errorf("cannot parse date %q: %w", s, err)
	}
	d.Time = parsed
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// NewDate builds a Date from year, month, day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// SportType is the sport a workout targets.
type SportType string

const (
	SportRunning  SportType = "running"
	SportCycling  SportType = "cycling"
	SportSwimming SportType = "swimming"
	SportStrength SportType = "strength"
	SportOther    SportType = "other"
)

// Platform identifies a downstream fitness platform a workout can be
// pushed to.
type Platform string

const (
	PlatformGarmin    Platform = "garmin"
	PlatformIntervals Platform = "intervals"
)

// Valid reports whether p is a known push platform.
func (p Platform) Valid() bool {
	return p == PlatformGarmin || p == PlatformIntervals
}

// Workout is a scheduled structured training session. The push flags
// are write-once-true: once a workout has been sent to a platform the
// flag never resets, even if the workout is later edited upstream.
type Workout struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	SportType       SportType `json:"sportType"`
	ScheduledDate   Date      `json:"scheduledDate"`
	Steps           []Step    `json:"steps"`
	SentToGarmin    bool      `json:"sentToGarmin"`
	SentToIntervals bool      `json:"sentToIntervals"`
}

// SentTo reports whether the workout has already been pushed to the
// given platform.
func (w *Workout) SentTo(p Platform) bool {
	switch p {
	case PlatformGarmin:
		return w.SentToGarmin
	case PlatformIntervals:
		return w.SentToIntervals
	}
	return false
}

// FavoriteWorkout is a saved workout template. It carries no push
// flags and no schedule; promoting it produces a fresh Workout.
type FavoriteWorkout struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SportType   SportType `json:"sportType"`
	Steps       []Step    `json:"steps"`
	SavedAt     time.Time `json:"savedAt"`
}

// Promote turns the favorite into a new schedulable Workout. The new
// workout gets a fresh identity and clean push flags.
func (f *FavoriteWorkout) Promote(scheduledDate Date) Workout {
	steps := make([]Step, len(f.Steps))
	copy(steps, f.Steps)
	return Workout{
		ID:            uuid.New(),
		Name:          f.Name,
		Description:   f.Description,
		SportType:     f.SportType,
		ScheduledDate: scheduledDate,
		Steps:         steps,
	}
}

// Favorite saves the workout as a template, stripping schedule and
// push state.
func (w *Workout) Favorite(savedAt time.Time) FavoriteWorkout {
	steps := make([]Step, len(w.Steps))
	copy(steps, w.Steps)
	return FavoriteWorkout{
		ID:          uuid.New(),
		Name:        w.Name,
		Description: w.Description,
		SportType:   w.SportType,
		Steps:       steps,
		SavedAt:     savedAt,
	}
}
