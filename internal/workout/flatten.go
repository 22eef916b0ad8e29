package workout

// Flatten expands repeat blocks into a flat ordered step sequence:
// each repeated child appears RepeatCount times in original order.
// The result is a view; the source workout is never mutated.
func Flatten(w *Workout) []Step {
	var out []Step
	for _, s := range w.Steps {
		if !s.IsRepeat() {
			out = append(out, s)
			continue
		}
		for rep := 0; rep < s.RepeatCount; rep++ {
			out = append(out, s.ChildSteps...)
		}
	}
	return out
}

// PaceEstimator converts a distance step into an expected duration.
// The conversion depends on athlete pace, which this package does not
// own; callers inject it or pass nil.
type PaceEstimator interface {
	SecondsForDistance(sport SportType, meters float64) float64
}

// Estimate is a best-effort total duration for a workout.
// Approximate is set when any step could not be resolved exactly:
// lap-button steps have no length, and distance steps need a pace
// estimator. Unresolvable steps contribute zero seconds.
type Estimate struct {
	Seconds     float64 `json:"seconds"`
	Approximate bool    `json:"approximate"`
}

// EstimateDuration sums resolved step durations across the workout,
// multiplying repeat blocks by their count. pace may be nil.
func EstimateDuration(w *Workout, pace PaceEstimator) Estimate {
	var est Estimate
	for _, s := range Flatten(w) {
		switch s.DurationType {
		case DurationTime:
			if s.DurationValue != nil {
				est.Seconds += *s.DurationValue
			}
		case DurationDistance:
			if s.DurationValue == nil {
				continue
			}
			if pace == nil {
				est.Approximate = true
				continue
			}
			est.Seconds += pace.SecondsForDistance(w.SportType, *s.DurationValue)
		case DurationLapButton:
			est.Approximate = true
		}
	}
	return est
}
