// Package pipeline loads stored days and aggregates them into per-day and
// range statistics for the history views.
package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/fivehundred/internal/model"
	"github.com/theirongolddev/fivehundred/internal/nutrition"
)

// AggregateDays computes per-day statistics for every calendar day in
// [since, until], most recent first. Days with nothing stored appear with
// zero values so charts show gaps. Goals use the profile with the most
// recent weight sample dated on or before each day.
func AggregateDays(records []DayRecord, weights []model.WeightSample, p model.Profile, since, until time.Time) []model.DailyStats {
	byDay := make(map[string]DayRecord, len(records))
	for _, r := range records {
		byDay[DayKey(r.Date)] = r
	}

	start := midnight(since)
	end := midnight(until)
	var days []model.DailyStats
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		key := DayKey(day)
		ds := model.DailyStats{Date: day}
		if r, ok := byDay[key]; ok {
			var totals model.Totals
			for _, e := range r.Food {
				totals = totals.Add(e)
			}
			ds.Logged = r.Logged
			ds.Entries = len(r.Food)
			ds.Calories = totals.Calories
			ds.Protein = totals.Protein
			ds.Steps = r.Steps
		}
		g := nutrition.ComputeGoals(ProfileOn(p, weights, key), ds.Steps)
		ds.BMR = g.BMR
		ds.StepCalories = g.StepCalories
		ds.CalorieGoal = g.Calories
		ds.ProteinGoal = g.Protein
		days = append(days, ds)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.After(days[j].Date)
	})
	return days
}

// ProfileOn returns p with its weight replaced by the latest sample dated
// on or before date. Samples with later dates are ignored; ties go to the
// most recently appended.
func ProfileOn(p model.Profile, weights []model.WeightSample, date string) model.Profile {
	best := ""
	for _, w := range weights {
		if w.Date <= date && w.Date >= best && w.Weight > 0 {
			best = w.Date
			p.WeightLbs = w.Weight
		}
	}
	return p
}

// Aggregate sums a range of days. Averages are over logged days.
func Aggregate(days []model.DailyStats) model.SummaryStats {
	var stats model.SummaryStats
	stats.Days = len(days)
	for _, d := range days {
		stats.TotalSteps += d.Steps
		if !d.Logged {
			continue
		}
		stats.LoggedDays++
		stats.TotalCalories += d.Calories
		stats.TotalProtein += d.Protein
		if d.WithinGoal() {
			stats.DaysWithinGoal++
		}
		if d.ProteinHit() {
			stats.ProteinHitDays++
		}
		stats.EstimatedDeficit += float64(d.BMR+d.StepCalories) - d.Calories
	}
	if stats.LoggedDays > 0 {
		n := float64(stats.LoggedDays)
		stats.AvgCalories = stats.TotalCalories / n
		stats.AvgProtein = stats.TotalProtein / n
	}
	if stats.Days > 0 {
		stats.AvgSteps = float64(stats.TotalSteps) / float64(stats.Days)
	}
	stats.EstimatedLbs = stats.EstimatedDeficit / caloriesPerLb
	return stats
}

const caloriesPerLb = 3500

// Trend summarizes the weight history in insertion order.
func Trend(samples []model.WeightSample) model.WeightTrend {
	var tr model.WeightTrend
	if len(samples) == 0 {
		return tr
	}
	tr.Samples = len(samples)
	tr.First = samples[0]
	tr.Last = samples[len(samples)-1]
	tr.Min, tr.Max = samples[0].Weight, samples[0].Weight
	for _, s := range samples[1:] {
		if s.Weight < tr.Min {
			tr.Min = s.Weight
		}
		if s.Weight > tr.Max {
			tr.Max = s.Weight
		}
	}
	tr.Change = tr.Last.Weight - tr.First.Weight

	first, err1 := time.Parse(dateLayout, tr.First.Date)
	last, err2 := time.Parse(dateLayout, tr.Last.Date)
	if err1 == nil && err2 == nil {
		if days := last.Sub(first).Hours() / 24; days > 0 {
			tr.PerWeek = tr.Change / days * 7
		}
	}
	return tr
}

func midnight(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}
