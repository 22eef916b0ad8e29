package workout

import "testing"

// TestFlattenLength verifies the flatten length property: repeat
// blocks contribute repeatCount × len(childSteps) entries, everything
// else contributes one.
func TestFlattenLength(t *testing.T) {
	w := testWorkout(
		timeStep(1, 600),
		Step{
			StepType:    StepRepeat,
			StepOrder:   2,
			RepeatCount: 4,
			ChildSteps:  []Step{timeStep(1, 120), timeStep(2, 180)},
		},
		timeStep(3, 300),
	)

	flat := Flatten(w)
	want := 1 + 4*2 + 1
	if len(flat) != want {
		t.Fatalf("len(flat) = %d, want %d", len(flat), want)
	}

	// Children repeat in original order.
	if *flat[1].DurationValue != 120 || *flat[2].DurationValue != 180 {
		t.Errorf("first repetition = (%v, %v), want (120, 180)",
			*flat[1].DurationValue, *flat[2].DurationValue)
	}
	if *flat[7].DurationValue != 120 || *flat[8].DurationValue != 180 {
		t.Errorf("last repetition = (%v, %v), want (120, 180)",
			*flat[7].DurationValue, *flat[8].DurationValue)
	}
}

// TestFlattenDoesNotMutate verifies that Flatten is a pure view over
// the source workout.
func TestFlattenDoesNotMutate(t *testing.T) {
	w := testWorkout(Step{
		StepType:    StepRepeat,
		StepOrder:   1,
		RepeatCount: 2,
		ChildSteps:  []Step{timeStep(1, 60)},
	})

	_ = Flatten(w)

	if len(w.Steps) != 1 || !w.Steps[0].IsRepeat() || len(w.Steps[0].ChildSteps) != 1 {
		t.Fatal("Flatten mutated the source workout")
	}
}

// TestEstimateDurationRepeat verifies that a 4× repeat of 120s + 180s
// children estimates to 1200 seconds.
func TestEstimateDurationRepeat(t *testing.T) {
	w := testWorkout(Step{
		StepType:    StepRepeat,
		StepOrder:   1,
		RepeatCount: 4,
		ChildSteps:  []Step{timeStep(1, 120), timeStep(2, 180)},
	})

	est := EstimateDuration(w, nil)
	if est.Seconds != 1200 {
		t.Errorf("seconds = %v, want 1200", est.Seconds)
	}
	if est.Approximate {
		t.Error("approximate = true, want false for time-only steps")
	}
}

type fixedPace struct {
	secPerKm float64
}

func (p fixedPace) SecondsForDistance(_ SportType, meters float64) float64 {
	return meters / 1000 * p.secPerKm
}

// TestEstimateDurationDistance verifies that distance steps use the
// injected pace estimator, and are flagged approximate without one.
func TestEstimateDurationDistance(t *testing.T) {
	dist := Step{StepType: StepInterval, StepOrder: 1, DurationType: DurationDistance,
		DurationValue: fp(2000), TargetType: TargetNone, Intensity: IntensityActive}
	w := testWorkout(dist, timeStep(2, 300))

	est := EstimateDuration(w, fixedPace{secPerKm: 330})
	if est.Seconds != 2*330+300 {
		t.Errorf("seconds = %v, want %v", est.Seconds, 2*330+300)
	}
	if est.Approximate {
		t.Error("approximate = true with estimator, want false")
	}

	est = EstimateDuration(w, nil)
	if est.Seconds != 300 {
		t.Errorf("seconds without estimator = %v, want 300", est.Seconds)
	}
	if !est.Approximate {
		t.Error("approximate = false without estimator, want true")
	}
}

// TestEstimateDurationLapButton verifies that lap-button steps add
// nothing but mark the estimate approximate.
func TestEstimateDurationLapButton(t *testing.T) {
	lap := Step{StepType: StepCooldown, StepOrder: 2, DurationType: DurationLapButton,
		TargetType: TargetNone, Intensity: IntensityResting}
	w := testWorkout(timeStep(1, 600), lap)

	est := EstimateDuration(w, nil)
	if est.Seconds != 600 {
		t.Errorf("seconds = %v, want 600", est.Seconds)
	}
	if !est.Approximate {
		t.Error("approximate = false, want true with a lap-button step")
	}
}
