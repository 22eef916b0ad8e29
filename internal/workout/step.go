package workout

// StepType classifies a workout step. The string values are the wire
// contract shared with the plan generator and the platform-push services.
type StepType string

const (
	StepWarmup   StepType = "warmup"
	StepInterval StepType = "interval"
	StepRecovery StepType = "recovery"
	StepRepeat   StepType = "repeat"
	StepCooldown StepType = "cooldown"
	StepRest     StepType = "rest"
)

// Valid reports whether t is a known step type.
func (t StepType) Valid() bool {
	switch t {
	case StepWarmup, StepInterval, StepRecovery, StepRepeat, StepCooldown, StepRest:
		return true
	}
	return false
}

// DurationType says how a step's length is measured.
type DurationType string

const (
	DurationTime      DurationType = "time"       // seconds
	DurationDistance  DurationType = "distance"   // meters
	DurationLapButton DurationType = "lap-button" // athlete presses lap manually
)

// Valid reports whether t is a known duration type.
func (t DurationType) Valid() bool {
	switch t {
	case DurationTime, DurationDistance, DurationLapButton:
		return true
	}
	return false
}

// TargetType is the physiological band a step prescribes.
type TargetType string

const (
	TargetNone          TargetType = "no-target"
	TargetHeartRateZone TargetType = "heart-rate-zone"
	TargetPaceZone      TargetType = "pace-zone"
	TargetPowerZone     TargetType = "power-zone"
	TargetCadence       TargetType = "cadence"
)

// Valid reports whether t is a known target type.
func (t TargetType) Valid() bool {
	switch t {
	case TargetNone, TargetHeartRateZone, TargetPaceZone, TargetPowerZone, TargetCadence:
		return true
	}
	return false
}

// Intensity marks a step as work or rest for downstream platforms.
type Intensity string

const (
	IntensityActive  Intensity = "active"
	IntensityResting Intensity = "resting"
)

// Valid reports whether i is a known intensity.
func (i Intensity) Valid() bool {
	return i == IntensityActive || i == IntensityResting
}

// Step is one unit of a structured workout. A repeat step groups
// ChildSteps to be executed RepeatCount times and carries no duration
// or target of its own; every other step type is a leaf.
//
// DurationValue is seconds for DurationTime and meters for
// DurationDistance; it is null for lap-button steps and repeat
// containers. Target bounds are both null iff TargetType is no-target.
type Step struct {
	StepType      StepType     `json:"stepType"`
	StepOrder     int          `json:"stepOrder"`
	DurationType  DurationType `json:"durationType,omitempty"`
	DurationValue *float64     `json:"durationValue"`

	TargetType      TargetType `json:"targetType,omitempty"`
	TargetValueLow  *float64   `json:"targetValueLow"`
	TargetValueHigh *float64   `json:"targetValueHigh"`

	Intensity Intensity `json:"intensity,omitempty"`

	RepeatCount int    `json:"repeatCount,omitempty"`
	ChildSteps  []Step `json:"childSteps,omitempty"`
}

// IsRepeat reports whether the step is a repeat container.
func (s *Step) IsRepeat() bool {
	return s.StepType == StepRepeat
}
