// Package nutrition computes daily energy and protein targets and scales
// catalog foods to the amount eaten.
package nutrition

import (
	"math"

	"github.com/theirongolddev/fivehundred/internal/model"
)

const (
	// FallbackBMR is used whenever age, height or weight is missing.
	FallbackBMR = 1600
	// DailyDeficit is subtracted from BMR to lose roughly a pound a week.
	DailyDeficit = 500
	// StepCalorieFactor is the energy credited per step, in kcal.
	StepCalorieFactor = 0.04
	// ProteinPerLb is the daily protein target in grams per pound of body weight.
	ProteinPerLb = 0.8

	cmPerInch = 2.54
	kgPerLb   = 0.453592
)

// BMR returns the Mifflin-St Jeor basal metabolic rate, rounded to the
// nearest kcal. Any non-positive age, height or weight yields FallbackBMR.
// A sex other than male uses the female constant.
func BMR(p model.Profile) int {
	if p.Age <= 0 || p.HeightInches <= 0 || p.WeightLbs <= 0 ||
		!finite(p.HeightInches) || !finite(p.WeightLbs) {
		return FallbackBMR
	}
	heightCm := p.HeightInches * cmPerInch
	weightKg := p.WeightLbs * kgPerLb
	base := 10*weightKg + 6.25*heightCm - 5*float64(p.Age)
	if p.Sex == model.SexMale {
		base += 5
	} else {
		base -= 161
	}
	return int(math.Round(base))
}

// StepCalories credits walking energy for the given step count.
func StepCalories(steps int) int {
	if steps <= 0 {
		return 0
	}
	return int(math.Round(float64(steps) * StepCalorieFactor))
}

// ProteinGoal returns grams of protein for the profile's body weight, or 0
// when the weight is unknown.
func ProteinGoal(p model.Profile) int {
	if p.WeightLbs <= 0 || !finite(p.WeightLbs) {
		return 0
	}
	return int(math.Round(p.WeightLbs * ProteinPerLb))
}

// ComputeGoals derives all of the day's targets.
func ComputeGoals(p model.Profile, steps int) model.Goals {
	bmr := BMR(p)
	stepCal := StepCalories(steps)
	return model.Goals{
		BMR:          bmr,
		StepCalories: stepCal,
		Calories:     bmr - DailyDeficit + stepCal,
		Protein:      ProteinGoal(p),
	}
}

// Progress returns consumed/goal clamped to [0, 1]. A non-positive goal
// reports no progress.
func Progress(consumed float64, goal int) float64 {
	if goal <= 0 || consumed <= 0 {
		return 0
	}
	pct := consumed / float64(goal)
	if pct > 1 {
		return 1
	}
	return pct
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
