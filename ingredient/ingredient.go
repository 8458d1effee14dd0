// Package ingredient holds the structured records produced from ingredient
// lines: quantities, measurements, names, comments and the ingredient itself.
//
// All values are immutable once built. Numbers are kept as the literal digit
// text found in the input; turning them into numeric values is left to the
// caller.
package ingredient

import (
	"strings"

	"skillet/units"
)

// QuantityKind tags the concrete type behind a Quantity.
type QuantityKind string

const (
	KindDecimal  QuantityKind = "decimal"
	KindFraction QuantityKind = "fraction"
	KindRange    QuantityKind = "range"
)

// Quantity is one of Decimal, Fraction or Range.
type Quantity interface {
	Kind() QuantityKind
	String() string
	quantity()
}

// Decimal is a bare digit run such as "2" or "1.5".
type Decimal struct {
	Value string
}

func (Decimal) Kind() QuantityKind { return KindDecimal }
func (d Decimal) String() string   { return d.Value }
func (Decimal) quantity()          {}

// Fraction is "n/d" or, with a whole part, the mixed number "w n/d".
type Fraction struct {
	Whole       string
	Numerator   string
	Denominator string
}

func (Fraction) Kind() QuantityKind { return KindFraction }
func (Fraction) quantity()          {}

// Mixed reports whether the fraction carries a whole part.
func (f Fraction) Mixed() bool { return f.Whole != "" }

func (f Fraction) String() string {
	if f.Mixed() {
		return f.Whole + " " + f.Numerator + "/" + f.Denominator
	}
	return f.Numerator + "/" + f.Denominator
}

// Range spans two bounds, each a Decimal or a Fraction.
type Range struct {
	Low  Quantity
	High Quantity
}

func (Range) Kind() QuantityKind { return KindRange }
func (Range) quantity()          {}

func (r Range) String() string {
	return r.Low.String() + "-" + r.High.String()
}

// Measurement is the leading quantity of a line and its optional unit word.
type Measurement struct {
	Quantity Quantity
	Unit     string
}

// UnitInfo resolves the unit word against the unit lexicon.
func (m Measurement) UnitInfo() units.Unit {
	return units.FromName(m.Unit)
}

func (m Measurement) String() string {
	if m.Unit == "" {
		return m.Quantity.String()
	}
	return m.Quantity.String() + " " + m.Unit
}

// Name is the ingredient name as its sequence of words.
type Name struct {
	Words []string
}

// NewName splits text on whitespace.
func NewName(text string) Name {
	return Name{Words: strings.Fields(text)}
}

func (n Name) String() string { return strings.Join(n.Words, " ") }

// Comment is the annotation trailing a name. Marker is the character that
// opened it, "(" or ",". Closed is set when a "(" comment ended on ")".
type Comment struct {
	Marker string
	Text   string
	Closed bool
}

func (c Comment) String() string {
	switch {
	case c.Marker == "(" && c.Closed:
		return "(" + c.Text + ")"
	case c.Text == "":
		// keep a token after the marker so the comment parses again
		return c.Marker + " "
	case c.Marker == ",":
		return ", " + c.Text
	default:
		return c.Marker + c.Text
	}
}

// Ingredient is one parsed ingredient line.
type Ingredient struct {
	Measurement *Measurement
	Name        Name
	Comment     *Comment
}

// String renders the canonical single-line form, without a line terminator.
func (i Ingredient) String() string {
	var b strings.Builder
	if i.Measurement != nil {
		b.WriteString(i.Measurement.String())
		b.WriteByte(' ')
	}
	b.WriteString(i.Name.String())
	if i.Comment != nil {
		if i.Comment.Marker != "," {
			b.WriteByte(' ')
		}
		b.WriteString(i.Comment.String())
	}
	return b.String()
}

// List is a parsed recipe: ingredients in input order.
type List []Ingredient

// String renders every ingredient on its own newline-terminated line.
func (l List) String() string {
	var b strings.Builder
	for _, ing := range l {
		b.WriteString(ing.String())
		b.WriteByte('\n')
	}
	return b.String()
}
