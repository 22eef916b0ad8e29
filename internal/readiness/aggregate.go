package readiness

import (
	"fmt"
	"math"
	"time"
)

// Level is the tri-level readiness classification the UI color-codes.
type Level string

const (
	LevelGreen  Level = "green"
	LevelYellow Level = "yellow"
	LevelRed    Level = "red"
)

// StalenessWindow is how long a computed result stays displayable
// before the client is expected to refetch.
const StalenessWindow = 5 * time.Minute

// Result is the composite readiness score. It is an immutable
// snapshot: consumers render it, cache it for StalenessWindow, and
// never mutate it.
type Result struct {
	Score      int         `json:"score"`
	Level      Level       `json:"level"`
	Factors    []Factor    `json:"factors"`
	Summary    string      `json:"summary"`
	DailyStats *DailyStats `json:"dailyStats,omitempty"`
}

// TrainingFactors returns the training-group factors in stable order.
func (r *Result) TrainingFactors() []Factor { return r.group(GroupTraining) }

// HealthFactors returns the health-group factors in stable order.
func (r *Result) HealthFactors() []Factor { return r.group(GroupHealth) }

func (r *Result) group(g Group) []Factor {
	var out []Factor
	for _, f := range r.Factors {
		if f.Group == g {
			out = append(out, f)
		}
	}
	return out
}

// LevelForScore classifies a composite score. The boundaries are
// canonical: 70 and above is green, 40 to 69 yellow, below 40 red.
func LevelForScore(score int) Level {
	switch {
	case score >= 70:
		return LevelGreen
	case score >= 40:
		return LevelYellow
	default:
		return LevelRed
	}
}

// Aggregate combines factors into the composite result. The score is
// the plain sum of factor scores; when missing telemetry shrinks the
// active ceiling below 100, the sum is rescaled to the 0–100 band so
// absent data never reads as bad data. The summary names the weakest
// factor by score/maxScore ratio, ties broken by factor order.
func Aggregate(factors []Factor) Result {
	var sum, maxSum int
	for _, f := range factors {
		sum += f.Score
		maxSum += f.MaxScore
	}

	score := sum
	if maxSum > 0 && maxSum != 100 {
		score = int(math.Round(float64(sum) / float64(maxSum) * 100))
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	level := LevelForScore(score)
	return Result{
		Score:   score,
		Level:   level,
		Factors: factors,
		Summary: buildSummary(level, factors),
	}
}

var levelSummaries = map[Level]string{
	LevelGreen:  "Вы готовы к интенсивной тренировке.",
	LevelYellow: "Организм восстановился не полностью — снизьте интенсивность.",
	LevelRed:    "Сегодня лучше отдохнуть или ограничиться лёгкой активностью.",
}

var weakestPhrases = map[FactorName]string{
	FactorWeeklyLoad:         "высокая недельная нагрузка",
	FactorConsecutiveIntense: "несколько интенсивных дней подряд",
	FactorRestDays:           "не хватает дней отдыха",
	FactorRecovery:           "мало времени на восстановление",
	FactorStress:             "повышенный уровень стресса",
	FactorBodyBattery:        "низкий запас энергии",
	FactorSteps:              "низкая дневная активность",
}

func buildSummary(level Level, factors []Factor) string {
	summary := levelSummaries[level]
	if len(factors) == 0 {
		return summary
	}

	weakest := factors[0]
	for _, f := range factors[1:] {
		// Strict comparison keeps the first factor on ties.
		if f.Ratio() < weakest.Ratio() {
			weakest = f
		}
	}

	// A perfect weakest factor means nothing is worth calling out.
	if weakest.Score >= weakest.MaxScore {
		return summary
	}

	phrase, ok := weakestPhrases[weakest.Name]
	if !ok {
		return summary
	}
	return fmt.Sprintf("%s Основной фактор: %s.", summary, phrase)
}
