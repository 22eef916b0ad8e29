package readiness

import "time"

// Session is one completed training session from the activity history.
type Session struct {
	Date        time.Time `json:"date"`
	DurationSec float64   `json:"durationSec"`
	Intense     bool      `json:"intense"`
	// TrainingLoad is the platform's load figure for the session
	// (TRIMP-like). Optional; zero means not reported.
	TrainingLoad float64 `json:"trainingLoad,omitempty"`
}

// TrainingHistory is the completed-session window the training
// factors read. Fourteen days is enough for every factor; extra
// history is ignored.
type TrainingHistory struct {
	Sessions []Session
}

// DailyStats is the wearable telemetry snapshot for one day. Every
// field is optional: a nil pointer means the reading is unavailable
// and the matching factor is omitted, never zero-scored.
type DailyStats struct {
	StressLevel *int `json:"stressLevel,omitempty"` // 0–100, higher is worse
	BodyBattery *int `json:"bodyBattery,omitempty"` // 5–100 energy reserve
	Steps       *int `json:"steps,omitempty"`
}
