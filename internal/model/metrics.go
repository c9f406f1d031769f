package model

import "time"

// Goals holds the day's computed targets.
type Goals struct {
	BMR          int
	StepCalories int
	Calories     int
	Protein      int
}

// DaySummary is the home screen view of one day.
type DaySummary struct {
	Date       string
	Onboarded  bool
	Goals      Goals
	Totals     Totals
	Steps      int
	Entries    int
	LastWeight *WeightSample
}

// DailyStats holds metrics for a single calendar day.
type DailyStats struct {
	Date         time.Time
	Logged       bool
	Entries      int
	Calories     float64
	Protein      float64
	Steps        int
	StepCalories int
	CalorieGoal  int
	ProteinGoal  int
	BMR          int
}

// WithinGoal reports whether a logged day stayed at or under its calorie goal.
func (d DailyStats) WithinGoal() bool {
	return d.Logged && d.Calories <= float64(d.CalorieGoal)
}

// ProteinHit reports whether a logged day reached its protein goal.
func (d DailyStats) ProteinHit() bool {
	return d.Logged && d.ProteinGoal > 0 && d.Protein >= float64(d.ProteinGoal)
}

// SummaryStats holds the aggregate across a range of days.
type SummaryStats struct {
	Days           int
	LoggedDays     int
	DaysWithinGoal int
	ProteinHitDays int

	TotalCalories float64
	TotalProtein  float64
	TotalSteps    int

	AvgCalories float64
	AvgProtein  float64
	AvgSteps    float64

	// EstimatedDeficit sums BMR + step calories - intake over logged days.
	EstimatedDeficit float64
	EstimatedLbs     float64
}

// WeightTrend summarizes the weight history in insertion order.
type WeightTrend struct {
	Samples int
	First   WeightSample
	Last    WeightSample
	Min     float64
	Max     float64
	Change  float64
	PerWeek float64
}
