// Package catalog holds the preset portions and measured foods offered by
// search, optionally extended from a YAML file.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/fivehundred/internal/nutrition"
	"gopkg.in/yaml.v3"
)

// ErrMalformedPreset is returned for a preset string that does not follow
// "Name - N kcal / Pg protein".
var ErrMalformedPreset = errors.New("malformed preset")

// Item is one catalog food. Presets are single portions (PerUnit); measured
// foods carry the basis their nutrients are quoted against.
type Item struct {
	Name     string
	Calories float64
	Protein  float64
	basis    nutrition.Basis
}

// FoodName implements nutrition.Food.
func (i Item) FoodName() string { return i.Name }

// Basis implements nutrition.Food.
func (i Item) Basis() nutrition.Basis { return i.basis }

// PerBasis implements nutrition.Food.
func (i Item) PerBasis() nutrition.Nutrients {
	return nutrition.Nutrients{Calories: i.Calories, Protein: i.Protein}
}

// String renders the item in preset form.
func (i Item) String() string {
	s := fmt.Sprintf("%s - %s kcal / %sg protein", i.Name, num(i.Calories), num(i.Protein))
	if i.basis != nutrition.PerUnit {
		s += " (" + i.basis.String() + ")"
	}
	return s
}

// ParsePreset splits a "Name - N kcal / Pg protein" string.
func ParsePreset(s string) (Item, error) {
	name, values, ok := strings.Cut(s, " - ")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Item{}, fmt.Errorf("%w: %q", ErrMalformedPreset, s)
	}
	kcal, prot, ok := strings.Cut(values, "/")
	if !ok {
		return Item{}, fmt.Errorf("%w: %q", ErrMalformedPreset, s)
	}
	cal, err := leadingNumber(strings.Replace(kcal, "kcal", "", 1))
	if err != nil {
		return Item{}, fmt.Errorf("%w: calories in %q", ErrMalformedPreset, s)
	}
	p, err := leadingNumber(strings.TrimSuffix(strings.TrimSpace(strings.Replace(prot, "protein", "", 1)), "g"))
	if err != nil {
		return Item{}, fmt.Errorf("%w: protein in %q", ErrMalformedPreset, s)
	}
	return Item{Name: name, Calories: cal, Protein: p, basis: nutrition.PerUnit}, nil
}

func leadingNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

// Catalog is an immutable set of presets and measured foods.
type Catalog struct {
	presets  []Item
	measured []Item
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c := &Catalog{
		presets:  make([]Item, 0, len(presetLines)),
		measured: append([]Item(nil), measuredFoods...),
	}
	for _, line := range presetLines {
		it, err := ParsePreset(line)
		if err != nil {
			panic(err)
		}
		c.presets = append(c.presets, it)
	}
	return c
}

// Presets returns every preset portion.
func (c *Catalog) Presets() []Item { return append([]Item(nil), c.presets...) }

// Measured returns every measured food.
func (c *Catalog) Measured() []Item { return append([]Item(nil), c.measured...) }

// Search returns presets whose lowercase name starts with the query or
// contains it at a word boundary, in catalog order. An empty query returns
// nothing.
func (c *Catalog) Search(query string) []Item {
	return search(c.presets, query)
}

// SearchMeasured applies the same matching to measured foods.
func (c *Catalog) SearchMeasured(query string) []Item {
	return search(c.measured, query)
}

// Lookup finds an item by case-insensitive exact name, presets first.
func (c *Catalog) Lookup(name string) (Item, bool) {
	for _, list := range [][]Item{c.presets, c.measured} {
		for _, it := range list {
			if strings.EqualFold(it.Name, strings.TrimSpace(name)) {
				return it, true
			}
		}
	}
	return Item{}, false
}

func search(items []Item, query string) []Item {
	if query == "" {
		return nil
	}
	q := strings.ToLower(query)
	var out []Item
	for _, it := range items {
		name := strings.ToLower(it.Name)
		if strings.HasPrefix(name, q) || strings.Contains(name, " "+q) {
			out = append(out, it)
		}
	}
	return out
}

type fileMeasured struct {
	Name     string  `yaml:"name"`
	Basis    string  `yaml:"basis"`
	Calories float64 `yaml:"calories"`
	Protein  float64 `yaml:"protein"`
}

type fileCatalog struct {
	Presets  []string       `yaml:"presets"`
	Measured []fileMeasured `yaml:"measured"`
}

// Load returns the built-in catalog extended by the YAML file at path.
// Entries whose name matches a built-in (ignoring case) replace it.
// An empty path returns Default().
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	if err := c.merge(data); err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", path, err)
	}
	return c, nil
}

func (c *Catalog) merge(data []byte) error {
	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}
	for _, line := range fc.Presets {
		it, err := ParsePreset(line)
		if err != nil {
			return err
		}
		c.presets = upsert(c.presets, it)
	}
	for _, m := range fc.Measured {
		if strings.TrimSpace(m.Name) == "" {
			return errors.New("measured food without a name")
		}
		b, err := nutrition.ParseBasis(m.Basis)
		if err != nil {
			return fmt.Errorf("%s: %w", m.Name, err)
		}
		if m.Calories < 0 || m.Protein < 0 {
			return fmt.Errorf("%s: negative nutrients", m.Name)
		}
		c.measured = upsert(c.measured, Item{
			Name: strings.TrimSpace(m.Name), Calories: m.Calories, Protein: m.Protein, basis: b,
		})
	}
	return nil
}

func upsert(items []Item, it Item) []Item {
	for i := range items {
		if strings.EqualFold(items[i].Name, it.Name) {
			items[i] = it
			return items
		}
	}
	return append(items, it)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
