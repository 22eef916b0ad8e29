package readiness

import (
	"fmt"
	"math"
	"time"
)

// FactorName identifies one readiness sub-score. The values are the
// wire contract with the UI's factor grouping.
type FactorName string

const (
	FactorWeeklyLoad         FactorName = "weeklyLoad"
	FactorConsecutiveIntense FactorName = "consecutiveIntense"
	FactorRestDays           FactorName = "restDays"
	FactorRecovery           FactorName = "recovery"
	FactorStress             FactorName = "stress"
	FactorBodyBattery        FactorName = "bodyBattery"
	FactorSteps              FactorName = "steps"
)

// Group separates factors for display: training factors come from the
// activity history, health factors from wearable telemetry. Both
// groups feed the single composite score.
type Group string

const (
	GroupTraining Group = "training"
	GroupHealth   Group = "health"
)

// Factor is one bounded readiness sub-score.
type Factor struct {
	Name        FactorName `json:"name"`
	Group       Group      `json:"group"`
	Score       int        `json:"score"`
	MaxScore    int        `json:"maxScore"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
}

// Ratio is the factor's score relative to its ceiling, used by the
// summary to find the weakest signal.
func (f Factor) Ratio() float64 {
	if f.MaxScore == 0 {
		return 1
	}
	return float64(f.Score) / float64(f.MaxScore)
}

// Factor ceilings. The full set sums to 100 so that the composite
// score needs no scaling when every signal is present.
const (
	maxWeeklyLoad         = 20
	maxConsecutiveIntense = 15
	maxRestDays           = 15
	maxRecovery           = 20
	maxStress             = 10
	maxBodyBattery        = 10
	maxSteps              = 10

	stepsGoal = 8000
)

// ComputeFactors computes every available factor for the given
// signals. Training factors are always present (an empty history is
// real data: a fully rested athlete). Health factors are omitted when
// their telemetry reading is missing. Deterministic given identical
// inputs and now; order matches the declaration order used for
// summary tie-breaking.
func ComputeFactors(hist TrainingHistory, stats *DailyStats, now time.Time) []Factor {
	factors := []Factor{
		computeWeeklyLoad(hist, now),
		computeConsecutiveIntense(hist, now),
		computeRestDays(hist, now),
		computeRecovery(hist, now),
	}
	if stats != nil {
		if stats.StressLevel != nil {
			factors = append(factors, computeStress(*stats.StressLevel))
		}
		if stats.BodyBattery != nil {
			factors = append(factors, computeBodyBattery(*stats.BodyBattery))
		}
		if stats.Steps != nil {
			factors = append(factors, computeSteps(*stats.Steps))
		}
	}
	return factors
}

// weekSessions returns sessions within the trailing 7-day window,
// cutoff included, future-dated rows excluded.
func weekSessions(hist TrainingHistory, now time.Time) []Session {
	cutoff := now.AddDate(0, 0, -7)
	var out []Session
	for _, s := range hist.Sessions {
		if !s.Date.Before(cutoff) && !s.Date.After(now) {
			out = append(out, s)
		}
	}
	return out
}

func computeWeeklyLoad(hist TrainingHistory, now time.Time) Factor {
	var hours float64
	for _, s := range weekSessions(hist, now) {
		hours += s.DurationSec / 3600
	}

	var score int
	var label string
	switch {
	case hours <= 4:
		score, label = maxWeeklyLoad, "низкая"
	case hours <= 7:
		score, label = 15, "умеренная"
	case hours <= 10:
		score, label = 10, "высокая"
	case hours <= 13:
		score, label = 5, "очень высокая"
	default:
		score, label = 2, "чрезмерная"
	}

	return Factor{
		Name:        FactorWeeklyLoad,
		Group:       GroupTraining,
		Score:       score,
		MaxScore:    maxWeeklyLoad,
		Label:       label,
		Description: fmt.Sprintf("%.1f ч тренировок за последние 7 дней", hours),
	}
}

func computeConsecutiveIntense(hist TrainingHistory, now time.Time) Factor {
	// Count back from today while each calendar day has an intense
	// session. Future-dated rows never feed the streak.
	intenseDays := make(map[string]bool)
	for _, s := range hist.Sessions {
		if s.Intense && !s.Date.After(now) {
			intenseDays[s.Date.Format("2006-01-02")] = true
		}
	}

	streak := 0
	for d := 0; d < 14; d++ {
		day := now.AddDate(0, 0, -d).Format("2006-01-02")
		if !intenseDays[day] {
			break
		}
		streak++
	}

	var score int
	var label string
	switch streak {
	case 0:
		score, label = maxConsecutiveIntense, "нет"
	case 1:
		score, label = 10, "1 день"
	case 2:
		score, label = 5, "2 дня"
	default:
		score, label = 0, fmt.Sprintf("%d дней", streak)
	}

	return Factor{
		Name:        FactorConsecutiveIntense,
		Group:       GroupTraining,
		Score:       score,
		MaxScore:    maxConsecutiveIntense,
		Label:       label,
		Description: fmt.Sprintf("Интенсивных дней подряд: %d", streak),
	}
}

func computeRestDays(hist TrainingHistory, now time.Time) Factor {
	trainedDays := make(map[string]bool)
	for _, s := range weekSessions(hist, now) {
		trainedDays[s.Date.Format("2006-01-02")] = true
	}
	rest := 7 - len(trainedDays)
	if rest < 0 {
		rest = 0
	}

	var score int
	var label string
	switch {
	case rest >= 2:
		score, label = maxRestDays, "достаточно"
	case rest == 1:
		score, label = 8, "мало"
	default:
		score, label = 3, "нет"
	}

	return Factor{
		Name:        FactorRestDays,
		Group:       GroupTraining,
		Score:       score,
		MaxScore:    maxRestDays,
		Label:       label,
		Description: fmt.Sprintf("Дней отдыха за неделю: %d", rest),
	}
}

func computeRecovery(hist TrainingHistory, now time.Time) Factor {
	var lastIntense time.Time
	for _, s := range hist.Sessions {
		if s.Intense && s.Date.After(lastIntense) && !s.Date.After(now) {
			lastIntense = s.Date
		}
	}

	if lastIntense.IsZero() {
		return Factor{
			Name:        FactorRecovery,
			Group:       GroupTraining,
			Score:       maxRecovery,
			MaxScore:    maxRecovery,
			Label:       "полное",
			Description: "Интенсивных тренировок не было",
		}
	}

	hours := now.Sub(lastIntense).Hours()
	var score int
	var label string
	switch {
	case hours >= 48:
		score, label = maxRecovery, "полное"
	case hours >= 36:
		score, label = 15, "почти полное"
	case hours >= 24:
		score, label = 10, "частичное"
	case hours >= 12:
		score, label = 5, "слабое"
	default:
		score, label = 2, "минимальное"
	}

	return Factor{
		Name:        FactorRecovery,
		Group:       GroupTraining,
		Score:       score,
		MaxScore:    maxRecovery,
		Label:       label,
		Description: fmt.Sprintf("%.0f ч после интенсивной тренировки", hours),
	}
}

func computeStress(level int) Factor {
	var score int
	var label string
	switch {
	case level <= 25:
		score, label = maxStress, "низкий"
	case level <= 50:
		score, label = 7, "умеренный"
	case level <= 75:
		score, label = 4, "высокий"
	default:
		score, label = 1, "очень высокий"
	}

	return Factor{
		Name:        FactorStress,
		Group:       GroupHealth,
		Score:       score,
		MaxScore:    maxStress,
		Label:       label,
		Description: fmt.Sprintf("Уровень стресса %d из 100", level),
	}
}

func computeBodyBattery(level int) Factor {
	var score int
	var label string
	switch {
	case level >= 75:
		score, label = maxBodyBattery, "высокий"
	case level >= 50:
		score, label = 7, "средний"
	case level >= 25:
		score, label = 4, "низкий"
	default:
		score, label = 1, "истощён"
	}

	return Factor{
		Name:        FactorBodyBattery,
		Group:       GroupHealth,
		Score:       score,
		MaxScore:    maxBodyBattery,
		Label:       label,
		Description: fmt.Sprintf("Запас энергии %d из 100", level),
	}
}

func computeSteps(count int) Factor {
	score := int(math.Round(float64(count) / stepsGoal * maxSteps))
	if score > maxSteps {
		score = maxSteps
	}
	if score < 0 {
		score = 0
	}

	label := "мало"
	switch {
	case count >= stepsGoal:
		label = "в норме"
	case count >= stepsGoal/2:
		label = "умеренно"
	}

	return Factor{
		Name:        FactorSteps,
		Group:       GroupHealth,
		Score:       score,
		MaxScore:    maxSteps,
		Label:       label,
		Description: fmt.Sprintf("%d шагов за день", count),
	}
}
