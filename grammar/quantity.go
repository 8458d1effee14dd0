package grammar

import "skillet/ingredient"

// quantity reads the numeric part of a measurement. A bare number is a prefix
// of both a fraction and a range, so each longer alternative is tried in full
// and abandoned by resetting the cursor before falling back to the next one.
func (p *lineParser) quantity() (ingredient.Quantity, bool) {
	if !p.c.is(0, Digits) {
		return nil, false
	}

	if p.opts.Ranges {
		m := p.c.mark()
		if r, ok := p.rangeQuantity(); ok {
			return r, true
		}
		p.c.reset(m)
	}

	return p.bound(), true
}

// bound reads a fraction if one starts here, else a decimal. The cursor must
// be on Digits.
func (p *lineParser) bound() ingredient.Quantity {
	if f, ok := p.fraction(); ok {
		return f
	}
	return ingredient.Decimal{Value: p.c.next().Value}
}

// fraction reads [Digits Whitespace] Digits Slash Digits, consuming nothing
// when it does not match.
func (p *lineParser) fraction() (ingredient.Fraction, bool) {
	c := p.c
	switch {
	case c.is(0, Digits) && c.is(1, Whitespace) && c.is(2, Digits) && c.is(3, Slash) && c.is(4, Digits):
		whole := c.next().Value
		c.next()
		num := c.next().Value
		c.next()
		den := c.next().Value
		return ingredient.Fraction{Whole: whole, Numerator: num, Denominator: den}, true

	case c.is(0, Digits) && c.is(1, Slash) && c.is(2, Digits):
		num := c.next().Value
		c.next()
		den := c.next().Value
		return ingredient.Fraction{Numerator: num, Denominator: den}, true
	}
	return ingredient.Fraction{}, false
}

// rangeQuantity reads bound (Dash | Whitespace)+ bound. The cursor may be left
// mid-way on failure; callers reset it.
func (p *lineParser) rangeQuantity() (ingredient.Range, bool) {
	low := p.bound()

	sep := 0
	for p.c.is(0, Dash, Whitespace) {
		p.c.next()
		sep++
	}
	if sep == 0 || !p.c.is(0, Digits) {
		return ingredient.Range{}, false
	}

	high := p.bound()
	return ingredient.Range{Low: low, High: high}, true
}
