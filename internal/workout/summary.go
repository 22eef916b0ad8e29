package workout

import "fmt"

// DisplayLine is a render-ready breakdown of one step. All strings
// are in the product UI language (Russian).
type DisplayLine struct {
	Label       string        `json:"label"`
	Duration    string        `json:"duration,omitempty"`
	Target      string        `json:"target,omitempty"`
	RepeatBadge string        `json:"repeatBadge,omitempty"`
	Children    []DisplayLine `json:"children,omitempty"`
}

var stepLabels = map[StepType]string{
	StepWarmup:   "Разминка",
	StepInterval: "Интервал",
	StepRecovery: "Восстановление",
	StepRepeat:   "Повтор",
	StepCooldown: "Заминка",
	StepRest:     "Отдых",
}

var targetLabels = map[TargetType]string{
	TargetHeartRateZone: "Пульс",
	TargetPaceZone:      "Темп",
	TargetPowerZone:     "Мощность",
	TargetCadence:       "Каденс",
}

// Summarize produces the display line for a step. It is pure and
// idempotent: calling it repeatedly on the same step yields the same
// result and touches no state. A repeat step renders a ×N badge and
// summarizes its children individually.
func Summarize(s Step) DisplayLine {
	line := DisplayLine{Label: stepLabels[s.StepType]}

	if s.IsRepeat() {
		line.RepeatBadge = fmt.Sprintf("×%d", s.RepeatCount)
		for _, child := range s.ChildSteps {
			line.Children = append(line.Children, Summarize(child))
		}
		return line
	}

	line.Duration = FormatDuration(s.DurationType, s.DurationValue)
	line.Target = formatTarget(s)
	return line
}

// FormatDuration renders a step duration for display:
//
//	time, whole minutes  -> "N мин"
//	time, otherwise      -> "M:SS"
//	distance >= 1000 m   -> one decimal in km, "1.5 км"
//	distance < 1000 m    -> "950 м"
//	lap-button           -> manual lap marker
func FormatDuration(dt DurationType, value *float64) string {
	if dt == DurationLapButton {
		return "По кнопке Lap"
	}
	if value == nil {
		return ""
	}
	switch dt {
	case DurationTime:
		total := int(*value)
		if total%60 == 0 {
			return fmt.Sprintf("%d мин", total/60)
		}
		return fmt.Sprintf("%d:%02d", total/60, total%60)
	case DurationDistance:
		meters := *value
		if meters >= 1000 {
			return fmt.Sprintf("%.1f км", meters/1000)
		}
		return fmt.Sprintf("%.0f м", meters)
	}
	return ""
}

func formatTarget(s Step) string {
	label, ok := targetLabels[s.TargetType]
	if !ok || s.TargetValueLow == nil || s.TargetValueHigh == nil {
		return ""
	}
	if *s.TargetValueLow == *s.TargetValueHigh {
		return fmt.Sprintf("%s %g", label, *s.TargetValueLow)
	}
	return fmt.Sprintf("%s %g–%g", label, *s.TargetValueLow, *s.TargetValueHigh)
}

// SummarizeWorkout renders every top-level step of a workout.
func SummarizeWorkout(w *Workout) []DisplayLine {
	lines := make([]DisplayLine, 0, len(w.Steps))
	for _, s := range w.Steps {
		lines = append(lines, Summarize(s))
	}
	return lines
}
