package workout

import "fmt"

// StructuralError reports a malformed step: unknown enum value, a
// repeat container without a count or children, or duration/target
// data on a container.
type StructuralError struct {
	StepOrder int
	Reason    string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("step %d: %s", e.StepOrder, e.Reason)
}

// DurationError reports a missing or non-positive duration on a step
// that requires one.
type DurationError struct {
	StepOrder int
	Reason    string
}

func (e *DurationError) Error() string {
	return fmt.Sprintf("step %d: %s", e.StepOrder, e.Reason)
}

// TargetRangeError reports an invalid target band (low > high, or a
// missing bound on a targeted step).
type TargetRangeError struct {
	StepOrder int
	Low, High *float64
	Reason    string
}

func (e *TargetRangeError) Error() string {
	return fmt.Sprintf("step %d: %s", e.StepOrder, e.Reason)
}

// NestingError reports a repeat step inside another repeat step.
// Repeat blocks are flat: exactly one level of nesting is supported.
type NestingError struct {
	StepOrder int
}

func (e *NestingError) Error() string {
	return fmt.Sprintf("step %d: repeat blocks cannot contain repeat steps", e.StepOrder)
}

// Validate checks the workout against the structural rules: repeat
// containers need a positive count and at least one child, children
// may not themselves be repeats, non-repeat steps need a resolvable
// duration, and target bands must be ordered. The first violation is
// returned; a nil error means the workout is safe to store, display,
// and push.
func Validate(w *Workout) error {
	if len(w.Steps) == 0 {
		return &StructuralError{StepOrder: 0, Reason: "workout has no steps"}
	}
	for i := range w.Steps {
		if err := validateStep(&w.Steps[i], false); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(s *Step, insideRepeat bool) error {
	if !s.StepType.Valid() {
		return &StructuralError{StepOrder: s.StepOrder, Reason: fmt.Sprintf("unknown step type %q", s.StepType)}
	}

	if s.IsRepeat() {
		if insideRepeat {
			return &NestingError{StepOrder: s.StepOrder}
		}
		return validateRepeat(s)
	}

	if s.RepeatCount != 0 {
		return &StructuralError{StepOrder: s.StepOrder, Reason: "repeatCount on a non-repeat step"}
	}
	if len(s.ChildSteps) != 0 {
		return &StructuralError{StepOrder: s.StepOrder, Reason: "childSteps on a non-repeat step"}
	}

	if err := validateDuration(s); err != nil {
		return err
	}
	return validateTarget(s)
}

func validateRepeat(s *Step) error {
	if s.RepeatCount < 1 {
		return &StructuralError{StepOrder: s.StepOrder, Reason: "repeat step requires repeatCount >= 1"}
	}
	if len(s.ChildSteps) == 0 {
		return &StructuralError{StepOrder: s.StepOrder, Reason: "repeat step has no child steps"}
	}
	// The container itself carries no duration or target; only its
	// children do.
	if s.DurationValue != nil || s.DurationType != "" {
		return &StructuralError{StepOrder: s.StepOrder, Reason: "repeat step carries its own duration"}
	}
	if s.TargetType != "" && s.TargetType != TargetNone {
		return &StructuralError{StepOrder: s.StepOrder, Reason: "repeat step carries its own target"}
	}
	for i := range s.ChildSteps {
		if err := validateStep(&s.ChildSteps[i], true); err != nil {
			return err
		}
	}
	return nil
}

func validateDuration(s *Step) error {
	if !s.DurationType.Valid() {
		return &DurationError{StepOrder: s.StepOrder, Reason: fmt.Sprintf("unknown duration type %q", s.DurationType)}
	}
	if s.DurationType == DurationLapButton {
		if s.DurationValue != nil {
			return &DurationError{StepOrder: s.StepOrder, Reason: "lap-button step must not carry a duration value"}
		}
		return nil
	}
	if s.DurationValue == nil {
		return &DurationError{StepOrder: s.StepOrder, Reason: "missing duration value"}
	}
	if *s.DurationValue <= 0 {
		return &DurationError{StepOrder: s.StepOrder, Reason: fmt.Sprintf("duration value %v must be positive", *s.DurationValue)}
	}
	return nil
}

func validateTarget(s *Step) error {
	if s.TargetType != "" && !s.TargetType.Valid() {
		return &StructuralError{StepOrder: s.StepOrder, Reason: fmt.Sprintf("unknown target type %q", s.TargetType)}
	}
	if s.TargetType == "" || s.TargetType == TargetNone {
		if s.TargetValueLow != nil || s.TargetValueHigh != nil {
			return &TargetRangeError{StepOrder: s.StepOrder, Low: s.TargetValueLow, High: s.TargetValueHigh,
				Reason: "target bounds set without a target type"}
		}
		return nil
	}
	if s.TargetValueLow == nil || s.TargetValueHigh == nil {
		return &TargetRangeError{StepOrder: s.StepOrder, Low: s.TargetValueLow, High: s.TargetValueHigh,
			Reason: "targeted step requires both bounds"}
	}
	if *s.TargetValueLow > *s.TargetValueHigh {
		return &TargetRangeError{StepOrder: s.StepOrder, Low: s.TargetValueLow, High: s.TargetValueHigh,
			Reason: fmt.Sprintf("target low %v above high %v", *s.TargetValueLow, *s.TargetValueHigh)}
	}
	return nil
}
