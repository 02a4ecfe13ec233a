package domain

import "time"

// FatigueLevel is the ordinal banding of the fatigue percentage.
type FatigueLevel int

const (
	LevelRested FatigueLevel = iota
	LevelLight
	LevelModerate
	LevelHigh
	LevelExhausted
)

func (l FatigueLevel) String() string {
	switch l {
	case LevelRested:
		return "rested"
	case LevelLight:
		return "light"
	case LevelModerate:
		return "moderate"
	case LevelHigh:
		return "high"
	case LevelExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// LevelForPercentage bands a fatigue percentage into a FatigueLevel.
func LevelForPercentage(p float64) FatigueLevel {
	switch {
	case p < 30:
		return LevelRested
	case p < 50:
		return LevelLight
	case p < 70:
		return LevelModerate
	case p < 90:
		return LevelHigh
	default:
		return LevelExhausted
	}
}

// FatigueState is the traveler's accumulated physical fatigue, measured as
// spent energy against a daily budget. Percentage only decreases during rest
// recovery.
type FatigueState struct {
	Percentage      float64      `json:"percentage"`
	Level           FatigueLevel `json:"level"`
	SpentTodayKcal  float64      `json:"spent_today_kcal"`
	DailyBudgetKcal float64      `json:"daily_budget_kcal"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// BudgetRemainingKcal is the unconsumed portion of the daily energy budget.
func (s FatigueState) BudgetRemainingKcal() float64 {
	rem := s.DailyBudgetKcal - s.SpentTodayKcal
	if rem < 0 {
		return 0
	}
	return rem
}

// BiometricProfile holds the traveler attributes needed for the resting
// energy expenditure formula.
type BiometricProfile struct {
	Gender   string  `json:"gender"`
	Age      int     `json:"age"`
	WeightKg float64 `json:"weight_kg"`
	HeightCm float64 `json:"height_cm"`
}
