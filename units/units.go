// Package units recognizes the measurement unit words that appear in
// ingredient lines. It only identifies units; it never converts between them.
package units

import "strings"

// Dimension is the physical quantity a unit measures.
type Dimension int

const (
	DimensionNone Dimension = iota
	DimensionVolume
	DimensionMass
)

func (d Dimension) String() string {
	switch d {
	case DimensionVolume:
		return "volume"
	case DimensionMass:
		return "mass"
	default:
		return "none"
	}
}

// System is the measurement system a unit belongs to.
type System int

const (
	SystemNone System = iota
	SystemMetric
	SystemUSCustomary
)

func (s System) String() string {
	switch s {
	case SystemMetric:
		return "metric"
	case SystemUSCustomary:
		return "us_customary"
	default:
		return "none"
	}
}

// Unit describes one recognized unit.
type Unit struct {
	Name         string
	Abbreviation string
	Aliases      []string
	Dimension    Dimension
	System       System

	custom bool
}

// IsNone reports whether u is the absent unit.
func (u Unit) IsNone() bool { return u.Name == "" }

// IsCustom reports whether u was built from a word missing from the lexicon.
func (u Unit) IsCustom() bool { return u.custom }

// Known reports whether u comes from the lexicon.
func (u Unit) Known() bool { return !u.IsNone() && !u.custom }

func (u Unit) String() string {
	if u.IsNone() {
		return "none"
	}
	return u.Name
}

var (
	Milliliter = Unit{Name: "milliliter", Abbreviation: "mL", Aliases: []string{"mL", "milliliters", "millilitre", "millilitres"}, Dimension: DimensionVolume, System: SystemMetric}
	Liter      = Unit{Name: "liter", Abbreviation: "L", Aliases: []string{"L", "liters", "litre", "litres"}, Dimension: DimensionVolume, System: SystemMetric}
	Pinch      = Unit{Name: "pinch", Abbreviation: "pinch", Aliases: []string{"pinch", "pinches"}, Dimension: DimensionVolume, System: SystemUSCustomary}
	Dash       = Unit{Name: "dash", Abbreviation: "dash", Aliases: []string{"dash", "dashes"}, Dimension: DimensionVolume, System: SystemUSCustomary}
	Teaspoon   = Unit{Name: "teaspoon", Abbreviation: "tsp", Aliases: []string{"tsp", "t", "teaspoons"}, Dimension: DimensionVolume, System: SystemUSCustomary}
	Tablespoon = Unit{Name: "tablespoon", Abbreviation: "tbsp", Aliases: []string{"tbsp", "Tbsp", "T", "tbs", "Tbs", "tablespoons", "Tablespoons"}, Dimension: DimensionVolume, System: SystemUSCustomary}
	FluidOunce = Unit{Name: "fluid ounce", Abbreviation: "fl oz", Aliases: []string{"fl oz", "floz"}, Dimension: DimensionVolume, System: SystemUSCustomary}
	Cup        = Unit{Name: "cup", Abbreviation: "cup", Aliases: []string{"cup", "c", "C", "cups"}, Dimension: DimensionVolume, System: SystemUSCustomary}
	Pint       = Unit{Name: "pint", Abbreviation: "pt", Aliases: []string{"pt", "pints", "Pint"}, Dimension: DimensionVolume, System: SystemUSCustomary}
	Quart      = Unit{Name: "quart", Abbreviation: "qt", Aliases: []string{"qt", "quarts", "Quart"}, Dimension: DimensionVolume, System: SystemUSCustomary}
	Gallon     = Unit{Name: "gallon", Abbreviation: "gal", Aliases: []string{"gal", "gallons", "Gallon"}, Dimension: DimensionVolume, System: SystemUSCustomary}
	Gram       = Unit{Name: "gram", Abbreviation: "g", Aliases: []string{"g", "grams", "gr"}, Dimension: DimensionMass, System: SystemMetric}
	Kilogram   = Unit{Name: "kilogram", Abbreviation: "kg", Aliases: []string{"kg", "kilograms", "kilo", "kilos"}, Dimension: DimensionMass, System: SystemMetric}
	Ounce      = Unit{Name: "ounce", Abbreviation: "oz", Aliases: []string{"oz", "ounces", "Ounce"}, Dimension: DimensionMass, System: SystemUSCustomary}
	Pound      = Unit{Name: "pound", Abbreviation: "lb", Aliases: []string{"lb", "lbs", "pounds", "Pound"}, Dimension: DimensionMass, System: SystemUSCustomary}

	None = Unit{}
)

// All lists the lexicon, volume units first, smallest to largest.
var All = []Unit{
	Milliliter, Pinch, Dash, Teaspoon, Tablespoon, FluidOunce, Cup, Pint, Liter, Quart, Gallon,
	Gram, Ounce, Pound, Kilogram,
}

// FromName resolves a unit word. An empty word yields None and a word not in
// the lexicon yields a custom unit carrying the word itself.
func FromName(word string) Unit {
	if word == "" {
		return None
	}
	if u, ok := lookup(word); ok {
		return u
	}
	return Unit{Name: word, Abbreviation: word, Aliases: []string{word}, custom: true}
}

// Known reports whether word names a unit of the lexicon.
func Known(word string) bool {
	_, ok := lookup(word)
	return ok
}

func lookup(word string) (Unit, bool) {
	for _, u := range All {
		if u.matches(word) {
			return u, true
		}
	}

	// Single letters are case sensitive ("t" vs "T"), everything else is not.
	if len(word) < 2 {
		return Unit{}, false
	}
	for _, u := range All {
		if u.matchesFold(word) {
			return u, true
		}
	}
	return Unit{}, false
}

func (u Unit) matches(word string) bool {
	if u.Name == word || u.Abbreviation == word {
		return true
	}
	for _, a := range u.Aliases {
		if a == word {
			return true
		}
	}
	return false
}

func (u Unit) matchesFold(word string) bool {
	candidates := append([]string{u.Name, u.Abbreviation}, u.Aliases...)
	for _, c := range candidates {
		if len(c) > 1 && strings.EqualFold(c, word) {
			return true
		}
	}
	return false
}
