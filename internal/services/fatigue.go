package services

import (
	"strings"
	"time"

	"itinerary-engine/internal/domain"
)

const (
	// Below this heart rate the traveler is treated as at rest and charged
	// the resting floor instead of the heart-rate formula.
	restingHeartRateCeiling = 85

	// Daily energy budget as a multiple of resting expenditure. Sightseeing
	// is light activity, not training.
	dailyBudgetFactor = 1.2

	// A single rest can recover at most half of the current fatigue.
	maxRecoveryFraction = 0.5
)

// venueRecoveryMultiplier scales rest recovery by how restorative the venue
// type is. Unknown venues recover at the cafe baseline.
var venueRecoveryMultiplier = map[string]float64{
	"spa":   1.3,
	"hotel": 1.2,
	"cafe":  1.0,
	"park":  0.9,
}

// FatigueTracker converts biometric and activity samples into a bounded
// fatigue percentage, and issues recovery credit during rest. Crossing into
// the High or Exhausted band is the signal callers use to trigger schedule
// adjustment or redistribution.
type FatigueTracker struct {
	profile domain.BiometricProfile
	state   domain.FatigueState
}

// NewFatigueTracker initializes a tracker with a fresh daily budget derived
// from the traveler's resting energy expenditure.
func NewFatigueTracker(profile domain.BiometricProfile, now time.Time) *FatigueTracker {
	budget := RestingExpenditureKcalPerDay(profile) * dailyBudgetFactor
	return &FatigueTracker{
		profile: profile,
		state: domain.FatigueState{
			Level:           domain.LevelRested,
			DailyBudgetKcal: budget,
			UpdatedAt:       now,
		},
	}
}

// Restore resumes the tracker from a persisted snapshot, e.g. after the host
// application restarts mid-day.
func (t *FatigueTracker) Restore(state domain.FatigueState) {
	if state.DailyBudgetKcal <= 0 {
		// Corrupt or absent snapshot: fall back to a fresh budget.
		state.DailyBudgetKcal = RestingExpenditureKcalPerDay(t.profile) * dailyBudgetFactor
		state.SpentTodayKcal = 0
		state.Percentage = 0
		state.Level = domain.LevelRested
	}
	t.state = state
}

// State returns the current snapshot.
func (t *FatigueTracker) State() domain.FatigueState { return t.state }

// RecordHeartRate charges the energy spent over the sampled span at the
// given heart rate. The returned bool reports whether this sample crossed
// into the High or Exhausted band, the event that should invoke schedule
// repair.
func (t *FatigueTracker) RecordHeartRate(bpm int, span time.Duration, now time.Time) (domain.FatigueState, bool) {
	minutes := span.Minutes()
	if minutes <= 0 {
		return t.state, false
	}

	perMinute := t.expenditureKcalPerMinute(bpm)
	prevLevel := t.state.Level

	t.state.SpentTodayKcal += perMinute * minutes
	t.state.Percentage = clampPercentage(t.state.SpentTodayKcal / t.state.DailyBudgetKcal * 100)
	t.state.Level = domain.LevelForPercentage(t.state.Percentage)
	t.state.UpdatedAt = now

	crossed := t.state.Level > prevLevel &&
		(t.state.Level == domain.LevelHigh || t.state.Level == domain.LevelExhausted)
	return t.state, crossed
}

// ApplyRest credits recovery for restMinutes of rest at the given venue
// type. Recovery is non-linear with diminishing returns and can never
// recover more than half of the current fatigue in one rest.
func (t *FatigueTracker) ApplyRest(restMinutes int, venueType string, now time.Time) domain.FatigueState {
	if restMinutes <= 0 || t.state.Percentage <= 0 {
		t.state.UpdatedAt = now
		return t.state
	}

	efficiency := RecoveryEfficiency(float64(restMinutes))
	reduction := t.state.Percentage * efficiency
	if limit := t.state.Percentage * maxRecoveryFraction; reduction > limit {
		reduction = limit
	}

	multiplier, ok := venueRecoveryMultiplier[strings.ToLower(venueType)]
	if !ok {
		multiplier = 1.0
	}
	reduction *= multiplier

	t.state.Percentage = clampPercentage(t.state.Percentage - reduction)
	t.state.SpentTodayKcal = t.state.Percentage / 100 * t.state.DailyBudgetKcal
	t.state.Level = domain.LevelForPercentage(t.state.Percentage)
	t.state.UpdatedAt = now
	return t.state
}

// RecoveryEfficiency is the piecewise recovery curve:
//
//	t <= 30:       0.25 * (t/30)
//	30 < t <= 60:  0.25 + 0.15 * ((t-30)/30), capped at 0.40
//	t > 60:        0.40 + 0.20 * min(1, (t-60)/120), capped at 0.60
//
// Short naps recover little, the first hour does most of the work, and
// anything past three hours is flat.
func RecoveryEfficiency(minutes float64) float64 {
	switch {
	case minutes <= 0:
		return 0
	case minutes <= 30:
		return 0.25 * (minutes / 30)
	case minutes <= 60:
		eff := 0.25 + 0.15*((minutes-30)/30)
		if eff > 0.40 {
			eff = 0.40
		}
		return eff
	default:
		frac := (minutes - 60) / 120
		if frac > 1 {
			frac = 1
		}
		eff := 0.40 + 0.20*frac
		if eff > 0.60 {
			eff = 0.60
		}
		return eff
	}
}

// RestingExpenditureKcalPerDay is the Mifflin-St Jeor resting energy
// expenditure.
func RestingExpenditureKcalPerDay(p domain.BiometricProfile) float64 {
	base := 10*p.WeightKg + 6.25*p.HeightCm - 5*float64(p.Age)
	if strings.EqualFold(p.Gender, "female") {
		return base - 161
	}
	return base + 5
}

// expenditureKcalPerMinute estimates burn from heart rate (Keytel et al.),
// floored at resting expenditure for samples below the resting ceiling.
func (t *FatigueTracker) expenditureKcalPerMinute(bpm int) float64 {
	restingPerMinute := RestingExpenditureKcalPerDay(t.profile) / (24 * 60)
	if bpm < restingHeartRateCeiling {
		return restingPerMinute
	}

	hr := float64(bpm)
	w := t.profile.WeightKg
	age := float64(t.profile.Age)

	var kcalPerMinute float64
	if strings.EqualFold(t.profile.Gender, "female") {
		kcalPerMinute = (-20.4022 + 0.4472*hr - 0.1263*w + 0.074*age) / 4.184
	} else {
		kcalPerMinute = (-55.0969 + 0.6309*hr + 0.1988*w + 0.2017*age) / 4.184
	}

	if kcalPerMinute < restingPerMinute {
		return restingPerMinute
	}
	return kcalPerMinute
}

func clampPercentage(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
