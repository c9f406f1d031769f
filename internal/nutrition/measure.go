package nutrition

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidAmount is returned for zero, negative or non-finite amounts.
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrBasisMismatch is returned when a measure cannot apply to a food's basis.
	ErrBasisMismatch = errors.New("measure does not match food basis")
	// ErrUnknownUnit is returned for an unrecognized volume unit.
	ErrUnknownUnit = errors.New("unknown volume unit")
)

// Basis is the reference quantity a food's nutrients are quoted against.
type Basis int

const (
	PerUnit Basis = iota
	Per100g
	PerCup
)

func (b Basis) String() string {
	switch b {
	case PerUnit:
		return "per unit"
	case Per100g:
		return "per 100g"
	case PerCup:
		return "per cup"
	}
	return fmt.Sprintf("Basis(%d)", int(b))
}

// ParseBasis reads the config/YAML spelling of a basis.
func ParseBasis(s string) (Basis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unit", "per_unit", "each":
		return PerUnit, nil
	case "100g", "per_100g", "grams":
		return Per100g, nil
	case "cup", "per_cup", "volume":
		return PerCup, nil
	}
	return 0, fmt.Errorf("unknown basis %q", s)
}

// Nutrients is energy and protein for some quantity of food.
type Nutrients struct {
	Calories float64
	Protein  float64
}

// Scale multiplies both values by f.
func (n Nutrients) Scale(f float64) Nutrients {
	return Nutrients{Calories: n.Calories * f, Protein: n.Protein * f}
}

// Food is what scaling needs from a catalog entry.
type Food interface {
	FoodName() string
	Basis() Basis
	PerBasis() Nutrients
}

// Unit is a kitchen volume unit.
type Unit string

const (
	Cup  Unit = "cup"
	Tbsp Unit = "tbsp"
	Tsp  Unit = "tsp"
	FlOz Unit = "floz"
	Ml   Unit = "ml"
)

var cupsPer = map[Unit]float64{
	Cup:  1,
	Tbsp: 1.0 / 16,
	Tsp:  1.0 / 48,
	FlOz: 1.0 / 8,
	Ml:   1 / 236.588,
}

// Units lists the supported volume units, largest first.
func Units() []Unit {
	return []Unit{Cup, FlOz, Tbsp, Tsp, Ml}
}

// ParseUnit accepts common spellings of the supported units.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cup", "cups", "c":
		return Cup, nil
	case "tbsp", "tablespoon", "tablespoons", "tbs":
		return Tbsp, nil
	case "tsp", "teaspoon", "teaspoons":
		return Tsp, nil
	case "floz", "fl oz", "fl_oz", "oz":
		return FlOz, nil
	case "ml", "milliliter", "milliliters", "millilitre":
		return Ml, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// Measure is how much of a food was eaten: Count, Grams or Volume.
// The set of variants is closed.
type Measure interface {
	factor(b Basis) (float64, error)
	String() string
}

// Count is a number of units or portions.
type Count struct{ N float64 }

// Grams is a weight in grams.
type Grams struct{ G float64 }

// Volume is an amount in a kitchen unit.
type Volume struct {
	Amount float64
	Unit   Unit
}

func (c Count) factor(b Basis) (float64, error) {
	if b != PerUnit {
		return 0, fmt.Errorf("%w: count of a food quoted %s", ErrBasisMismatch, b)
	}
	if !positive(c.N) {
		return 0, ErrInvalidAmount
	}
	return c.N, nil
}

func (g Grams) factor(b Basis) (float64, error) {
	if b != Per100g {
		return 0, fmt.Errorf("%w: grams of a food quoted %s", ErrBasisMismatch, b)
	}
	if !positive(g.G) {
		return 0, ErrInvalidAmount
	}
	return g.G / 100, nil
}

func (v Volume) factor(b Basis) (float64, error) {
	if b != PerCup {
		return 0, fmt.Errorf("%w: volume of a food quoted %s", ErrBasisMismatch, b)
	}
	if !positive(v.Amount) {
		return 0, ErrInvalidAmount
	}
	k, ok := cupsPer[v.Unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, v.Unit)
	}
	return v.Amount * k, nil
}

func (c Count) String() string  { return trimFloat(c.N) + "x" }
func (g Grams) String() string  { return trimFloat(g.G) + "g" }
func (v Volume) String() string { return trimFloat(v.Amount) + " " + string(v.Unit) }

// MeasureFor builds the measure that fits basis b. unit is only consulted
// for PerCup foods.
func MeasureFor(b Basis, amount float64, unit Unit) Measure {
	switch b {
	case Per100g:
		return Grams{G: amount}
	case PerCup:
		if unit == "" {
			unit = Cup
		}
		return Volume{Amount: amount, Unit: unit}
	default:
		return Count{N: amount}
	}
}

// Scale returns the nutrients in measure m of food f.
func Scale(f Food, m Measure) (Nutrients, error) {
	if f == nil || m == nil {
		return Nutrients{}, ErrInvalidAmount
	}
	k, err := m.factor(f.Basis())
	if err != nil {
		return Nutrients{}, err
	}
	return f.PerBasis().Scale(k), nil
}

// Describe renders "<name> (<measure>)" for ledger entries created from a
// measured food. Single portions keep the plain name.
func Describe(f Food, m Measure) string {
	if c, ok := m.(Count); ok && c.N == 1 {
		return f.FoodName()
	}
	return fmt.Sprintf("%s (%s)", f.FoodName(), m)
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func trimFloat(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
