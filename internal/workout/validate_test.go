package workout

import (
	"errors"
	"testing"
	"time"
)

func fp(v float64) *float64 { return &v }

func timeStep(order int, seconds float64) Step {
	return Step{
		StepType:      StepInterval,
		StepOrder:     order,
		DurationType:  DurationTime,
		DurationValue: fp(seconds),
		TargetType:    TargetNone,
		Intensity:     IntensityActive,
	}
}

func testWorkout(steps ...Step) *Workout {
	return &Workout{
		Name:          "Интервалы 4×400",
		SportType:     SportRunning,
		ScheduledDate: NewDate(2026, time.March, 14),
		Steps:         steps,
	}
}

// TestValidateOK verifies that a well-formed workout with a repeat
// block passes validation.
func TestValidateOK(t *testing.T) {
	w := testWorkout(
		Step{StepType: StepWarmup, StepOrder: 1, DurationType: DurationTime, DurationValue: fp(600), TargetType: TargetNone, Intensity: IntensityActive},
		Step{
			StepType:    StepRepeat,
			StepOrder:   2,
			RepeatCount: 4,
			ChildSteps: []Step{
				{StepType: StepInterval, StepOrder: 1, DurationType: DurationDistance, DurationValue: fp(400),
					TargetType: TargetHeartRateZone, TargetValueLow: fp(160), TargetValueHigh: fp(175), Intensity: IntensityActive},
				{StepType: StepRecovery, StepOrder: 2, DurationType: DurationTime, DurationValue: fp(90), TargetType: TargetNone, Intensity: IntensityResting},
			},
		},
		Step{StepType: StepCooldown, StepOrder: 3, DurationType: DurationLapButton, TargetType: TargetNone, Intensity: IntensityResting},
	)

	if err := Validate(w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestValidateStructural verifies that malformed repeat containers are
// rejected with StructuralError.
func TestValidateStructural(t *testing.T) {
	tests := []struct {
		name string
		step Step
	}{
		{
			name: "repeat without count",
			step: Step{StepType: StepRepeat, StepOrder: 1, ChildSteps: []Step{timeStep(1, 60)}},
		},
		{
			name: "repeat without children",
			step: Step{StepType: StepRepeat, StepOrder: 1, RepeatCount: 3},
		},
		{
			name: "repeat with its own duration",
			step: Step{StepType: StepRepeat, StepOrder: 1, RepeatCount: 3, DurationType: DurationTime,
				DurationValue: fp(120), ChildSteps: []Step{timeStep(1, 60)}},
		},
		{
			name: "unknown step type",
			step: Step{StepType: "sprint", StepOrder: 1, DurationType: DurationTime, DurationValue: fp(60)},
		},
		{
			name: "children on a leaf step",
			step: Step{StepType: StepInterval, StepOrder: 1, DurationType: DurationTime, DurationValue: fp(60),
				ChildSteps: []Step{timeStep(1, 30)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(testWorkout(tt.step))
			var se *StructuralError
			if !errors.As(err, &se) {
				t.Fatalf("error = %v, want StructuralError", err)
			}
		})
	}
}

// TestValidateEmptyWorkout verifies that a workout without steps is a
// structural failure, not a panic or a pass.
func TestValidateEmptyWorkout(t *testing.T) {
	err := Validate(testWorkout())
	var se *StructuralError
	if !errors.As(err, &se) {
		t.Fatalf("error = %v, want StructuralError", err)
	}
}

// TestValidateDuration verifies the duration rules: a non-repeat,
// non-lap-button step must carry a positive duration, and a lap-button
// step must not carry one.
func TestValidateDuration(t *testing.T) {
	tests := []struct {
		name string
		step Step
	}{
		{
			name: "missing value",
			step: Step{StepType: StepInterval, StepOrder: 1, DurationType: DurationTime},
		},
		{
			name: "zero value",
			step: Step{StepType: StepInterval, StepOrder: 1, DurationType: DurationTime, DurationValue: fp(0)},
		},
		{
			name: "negative distance",
			step: Step{StepType: StepInterval, StepOrder: 1, DurationType: DurationDistance, DurationValue: fp(-400)},
		},
		{
			name: "lap-button with value",
			step: Step{StepType: StepCooldown, StepOrder: 1, DurationType: DurationLapButton, DurationValue: fp(60)},
		},
		{
			name: "unknown duration type",
			step: Step{StepType: StepInterval, StepOrder: 1, DurationType: "open", DurationValue: fp(60)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(testWorkout(tt.step))
			var de *DurationError
			if !errors.As(err, &de) {
				t.Fatalf("error = %v, want DurationError", err)
			}
		})
	}
}

// TestValidateTargetRange verifies that inverted or half-missing
// target bands are rejected with TargetRangeError.
func TestValidateTargetRange(t *testing.T) {
	tests := []struct {
		name      string
		low, high *float64
	}{
		{name: "low above high", low: fp(180), high: fp(150)},
		{name: "missing high", low: fp(150), high: nil},
		{name: "missing low", low: nil, high: fp(180)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := timeStep(1, 300)
			s.TargetType = TargetHeartRateZone
			s.TargetValueLow = tt.low
			s.TargetValueHigh = tt.high
			err := Validate(testWorkout(s))
			var tre *TargetRangeError
			if !errors.As(err, &tre) {
				t.Fatalf("error = %v, want TargetRangeError", err)
			}
		})
	}
}

// TestValidateEqualBounds verifies that low == high is a legal band
// (a single-value target like cadence 90).
func TestValidateEqualBounds(t *testing.T) {
	s := timeStep(1, 300)
	s.TargetType = TargetCadence
	s.TargetValueLow = fp(90)
	s.TargetValueHigh = fp(90)
	if err := Validate(testWorkout(s)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestValidateNesting verifies that a repeat inside a repeat is
// rejected with NestingError: repeat blocks are flat.
func TestValidateNesting(t *testing.T) {
	w := testWorkout(Step{
		StepType:    StepRepeat,
		StepOrder:   1,
		RepeatCount: 2,
		ChildSteps: []Step{
			{
				StepType:    StepRepeat,
				StepOrder:   1,
				RepeatCount: 3,
				ChildSteps:  []Step{timeStep(1, 60)},
			},
		},
	})

	err := Validate(w)
	var ne *NestingError
	if !errors.As(err, &ne) {
		t.Fatalf("error = %v, want NestingError", err)
	}
}
