package services

import (
	"math"
	"testing"
	"time"

	"itinerary-engine/internal/domain"
)

var testProfile = domain.BiometricProfile{
	Gender: "male", Age: 30, WeightKg: 75, HeightCm: 180,
}

func approx(t *testing.T, got, want float64, what string) {
	t.Helper()
	if math.Abs(got-want) > 0.01 {
		t.Fatalf("%s = %.4f, want %.4f", what, got, want)
	}
}

func TestRestingExpenditure(t *testing.T) {
	// Mifflin-St Jeor: 10*75 + 6.25*180 - 5*30 + 5.
	approx(t, RestingExpenditureKcalPerDay(testProfile), 1730, "male REE")

	female := testProfile
	female.Gender = "female"
	approx(t, RestingExpenditureKcalPerDay(female), 1564, "female REE")
}

func TestNewTrackerBudget(t *testing.T) {
	tr := NewFatigueTracker(testProfile, time.Now())
	st := tr.State()

	approx(t, st.DailyBudgetKcal, 1730*1.2, "daily budget")
	if st.Level != domain.LevelRested || st.Percentage != 0 {
		t.Fatalf("fresh tracker state = %+v", st)
	}
}

func TestRecoveryEfficiencyCurve(t *testing.T) {
	cases := []struct {
		minutes float64
		want    float64
	}{
		{0, 0},
		{15, 0.125},
		{30, 0.25},
		{45, 0.325},
		{60, 0.40},
		{120, 0.50},
		{180, 0.60},
		{300, 0.60}, // flat past three hours
	}
	for _, c := range cases {
		approx(t, RecoveryEfficiency(c.minutes), c.want, "efficiency")
	}
}

func TestApplyRestSpaExample(t *testing.T) {
	// At 70% fatigue, a 45-minute spa rest: efficiency 0.325 reduces 22.75
	// points, under the half-fatigue cap, then the spa multiplier brings the
	// reduction to 29.575.
	tr := NewFatigueTracker(testProfile, time.Now())
	tr.Restore(domain.FatigueState{
		Percentage: 70, SpentTodayKcal: 700, DailyBudgetKcal: 1000,
		Level: domain.LevelModerate,
	})

	st := tr.ApplyRest(45, "spa", time.Now())

	approx(t, st.Percentage, 40.425, "post-rest percentage")
	approx(t, st.SpentTodayKcal, 404.25, "post-rest spent")
	if st.Level != domain.LevelLight {
		t.Fatalf("level = %s, want light", st.Level)
	}
}

func TestApplyRestHalfFatigueCap(t *testing.T) {
	// A three-hour rest hits efficiency 0.60, but the cap limits recovery to
	// half the current fatigue before the venue multiplier applies.
	tr := NewFatigueTracker(testProfile, time.Now())
	tr.Restore(domain.FatigueState{
		Percentage: 80, SpentTodayKcal: 800, DailyBudgetKcal: 1000,
		Level: domain.LevelHigh,
	})

	st := tr.ApplyRest(180, "cafe", time.Now())

	approx(t, st.Percentage, 40, "capped percentage")
}

func TestApplyRestVenueMultipliers(t *testing.T) {
	cases := []struct {
		venue string
		want  float64 // from 40% with 30-minute rest (efficiency 0.25)
	}{
		{"spa", 40 - 40*0.25*1.3},
		{"hotel", 40 - 40*0.25*1.2},
		{"cafe", 40 - 40*0.25*1.0},
		{"park", 40 - 40*0.25*0.9},
		{"aquarium", 40 - 40*0.25*1.0}, // unknown venue: baseline
	}
	for _, c := range cases {
		tr := NewFatigueTracker(testProfile, time.Now())
		tr.Restore(domain.FatigueState{
			Percentage: 40, SpentTodayKcal: 400, DailyBudgetKcal: 1000,
			Level: domain.LevelLight,
		})
		st := tr.ApplyRest(30, c.venue, time.Now())
		approx(t, st.Percentage, c.want, c.venue)
	}
}

func TestApplyRestNoOpWhenRested(t *testing.T) {
	tr := NewFatigueTracker(testProfile, time.Now())
	st := tr.ApplyRest(60, "spa", time.Now())
	if st.Percentage != 0 {
		t.Fatalf("rest at zero fatigue changed percentage to %.2f", st.Percentage)
	}
}

func TestRecordHeartRateRestingFloor(t *testing.T) {
	tr := NewFatigueTracker(testProfile, time.Now())

	// Below the resting ceiling the charge is the resting floor, not the
	// heart-rate formula.
	st, crossed := tr.RecordHeartRate(60, time.Hour, time.Now())
	if crossed {
		t.Fatal("an hour at rest must not cross a band")
	}
	approx(t, st.SpentTodayKcal, 1730.0/24, "resting hour")
}

func TestRecordHeartRateCrossingSignals(t *testing.T) {
	tr := NewFatigueTracker(testProfile, time.Now())
	tr.Restore(domain.FatigueState{
		Percentage: 60, SpentTodayKcal: 600, DailyBudgetKcal: 1000,
		Level: domain.LevelModerate,
	})

	// A brisk 20 minutes pushes past 70%: the High crossing is the signal.
	st, crossed := tr.RecordHeartRate(120, 20*time.Minute, time.Now())
	if st.Level != domain.LevelHigh {
		t.Fatalf("level = %s, want high", st.Level)
	}
	if !crossed {
		t.Fatal("crossing into the high band must be reported")
	}

	// Staying inside the band is not a crossing.
	_, crossed = tr.RecordHeartRate(120, time.Minute, time.Now())
	if crossed {
		t.Fatal("movement within a band must not re-signal")
	}
}

func TestRecordHeartRateClampsAtHundred(t *testing.T) {
	tr := NewFatigueTracker(testProfile, time.Now())
	tr.Restore(domain.FatigueState{
		Percentage: 95, SpentTodayKcal: 950, DailyBudgetKcal: 1000,
		Level: domain.LevelExhausted,
	})

	st, crossed := tr.RecordHeartRate(150, 2*time.Hour, time.Now())
	if st.Percentage != 100 {
		t.Fatalf("percentage = %.2f, want clamped at 100", st.Percentage)
	}
	if crossed {
		t.Fatal("already exhausted: no new crossing")
	}
}

func TestRecordHeartRateZeroSpan(t *testing.T) {
	tr := NewFatigueTracker(testProfile, time.Now())
	st, crossed := tr.RecordHeartRate(120, 0, time.Now())
	if st.SpentTodayKcal != 0 || crossed {
		t.Fatalf("zero span must be a no-op, got %+v", st)
	}
}

func TestRestoreRejectsCorruptSnapshot(t *testing.T) {
	tr := NewFatigueTracker(testProfile, time.Now())
	tr.Restore(domain.FatigueState{Percentage: 55, DailyBudgetKcal: 0})

	st := tr.State()
	if st.Percentage != 0 || st.Level != domain.LevelRested {
		t.Fatalf("corrupt snapshot must reset, got %+v", st)
	}
	approx(t, st.DailyBudgetKcal, 1730*1.2, "rebuilt budget")
}
