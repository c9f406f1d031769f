package daemon

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	calories    prometheus.Gauge
	calorieGoal prometheus.Gauge
	protein     prometheus.Gauge
	proteinGoal prometheus.Gauge
	steps       prometheus.Gauge
	entries     prometheus.Gauge
	weight      prometheus.Gauge
	polls       prometheus.Counter
	pollErrors  prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	gauge := func(name, help string) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "fivehundred", Name: name, Help: help})
		reg.MustRegister(g)
		return g
	}
	counter := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: "fivehundred", Subsystem: "daemon", Name: name, Help: help})
		reg.MustRegister(c)
		return c
	}
	return &metrics{
		calories:    gauge("calories_consumed", "Calories logged today."),
		calorieGoal: gauge("calorie_goal", "Today's calorie goal including step credit."),
		protein:     gauge("protein_grams", "Protein logged today, in grams."),
		proteinGoal: gauge("protein_goal_grams", "Today's protein goal, in grams."),
		steps:       gauge("steps", "Steps recorded today."),
		entries:     gauge("food_entries", "Food entries logged today."),
		weight:      gauge("weight_lbs", "Most recent body weight sample."),
		polls:       counter("polls_total", "Store polls performed."),
		pollErrors:  counter("poll_errors_total", "Store polls that failed."),
	}
}

func (m *metrics) observe(s Snapshot) {
	m.calories.Set(s.Calories)
	m.calorieGoal.Set(float64(s.CalorieGoal))
	m.protein.Set(s.Protein)
	m.proteinGoal.Set(float64(s.ProteinGoal))
	m.steps.Set(float64(s.Steps))
	m.entries.Set(float64(s.Entries))
	m.weight.Set(s.WeightLbs)
}
