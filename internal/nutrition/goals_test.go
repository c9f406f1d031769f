package nutrition

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/theirongolddev/fivehundred/internal/model"
)

func TestBMR(t *testing.T) {
	tests := []struct {
		name string
		p    model.Profile
		want int
	}{
		{"male", model.Profile{Sex: model.SexMale, Age: 30, HeightInches: 70, WeightLbs: 180}, 1783},
		{"female", model.Profile{Sex: model.SexFemale, Age: 30, HeightInches: 70, WeightLbs: 180}, 1617},
		{"missing sex uses female constant", model.Profile{Age: 30, HeightInches: 70, WeightLbs: 180}, 1617},
		{"missing age", model.Profile{Sex: model.SexMale, HeightInches: 70, WeightLbs: 180}, FallbackBMR},
		{"missing height", model.Profile{Sex: model.SexMale, Age: 30, WeightLbs: 180}, FallbackBMR},
		{"negative weight", model.Profile{Sex: model.SexMale, Age: 30, HeightInches: 70, WeightLbs: -1}, FallbackBMR},
		{"empty", model.Profile{}, FallbackBMR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BMR(tt.p); got != tt.want {
				t.Errorf("BMR() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStepCalories(t *testing.T) {
	tests := []struct {
		steps int
		want  int
	}{
		{0, 0},
		{-50, 0},
		{10000, 400},
		{12, 0},
		{13, 1},
		{7777, 311},
	}
	for _, tt := range tests {
		if got := StepCalories(tt.steps); got != tt.want {
			t.Errorf("StepCalories(%d) = %d, want %d", tt.steps, got, tt.want)
		}
	}
}

func TestComputeGoals(t *testing.T) {
	p := model.Profile{Sex: model.SexMale, Age: 30, HeightInches: 70, WeightLbs: 180}
	got := ComputeGoals(p, 10000)
	want := model.Goals{BMR: 1783, StepCalories: 400, Calories: 1683, Protein: 144}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ComputeGoals mismatch (-want +got):\n%s", diff)
	}
}

func TestComputeGoalsFallback(t *testing.T) {
	got := ComputeGoals(model.Profile{}, 0)
	if got.Calories != 1100 {
		t.Errorf("Calories = %d, want 1100", got.Calories)
	}
	if got.Protein != 0 {
		t.Errorf("Protein = %d, want 0 without a weight", got.Protein)
	}
}

func TestProgressClamps(t *testing.T) {
	tests := []struct {
		consumed float64
		goal     int
		want     float64
	}{
		{0, 1500, 0},
		{750, 1500, 0.5},
		{3000, 1500, 1},
		{100, 0, 0},
		{-5, 100, 0},
	}
	for _, tt := range tests {
		if got := Progress(tt.consumed, tt.goal); got != tt.want {
			t.Errorf("Progress(%v, %d) = %v, want %v", tt.consumed, tt.goal, got, tt.want)
		}
	}
}
