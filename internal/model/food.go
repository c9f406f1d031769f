package model

// FoodEntry is one consumed item in a day's ledger. The JSON names match
// the persisted foodLog-<date> format.
type FoodEntry struct {
	Name     string  `json:"name"`
	Calories float64 `json:"cal"`
	Protein  float64 `json:"prot"`
}

// Totals sums calories and protein over a set of entries.
type Totals struct {
	Calories float64
	Protein  float64
}

// Add returns t with e included.
func (t Totals) Add(e FoodEntry) Totals {
	t.Calories += e.Calories
	t.Protein += e.Protein
	return t
}

// WeightSample is one body-weight measurement. Date is YYYY-MM-DD.
type WeightSample struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}
