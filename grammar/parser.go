// Package grammar turns ingredient text into ingredient records.
//
// The grammar, one ingredient per line:
//
//	recipe      = { blank } ingredient { { blank } ingredient } { blank } EOF
//	ingredient  = [ measurement Whitespace ] name [ comment ] Newline
//	measurement = quantity [ Whitespace Word ]
//	quantity    = range | fraction | decimal
//	range       = bound ( Dash | Whitespace ) { Dash | Whitespace } bound
//	bound       = fraction | decimal
//	fraction    = [ Digits Whitespace ] Digits Slash Digits
//	decimal     = Digits
//	name        = Word { Whitespace Word } [ Whitespace ]
//	comment     = CommentStart text
//
// Ranges can be switched off and the comment text rule depends on the
// CommentPolicy (see Options).
package grammar

import (
	"context"
	"strings"

	"skillet/ingredient"
	"skillet/units"
)

// Parser parses ingredient text. It holds no per-parse state and is safe for
// concurrent use.
type Parser struct {
	opts Options
}

// NewParser returns a Parser for the grammar revision described by opts.
func NewParser(opts Options) *Parser {
	return &Parser{opts: opts}
}

// ParseIngredients parses text with the default options.
func ParseIngredients(text string) (ingredient.List, error) {
	return NewParser(DefaultOptions()).Parse(text)
}

// Parse reads every ingredient line of text. Each line, the last one
// included, must end with a line break. Either the whole text parses or an
// error is returned; there is no partial result.
func (p *Parser) Parse(text string) (ingredient.List, error) {
	toks, err := NewTokenizer(text)
	if err != nil {
		return nil, err
	}
	lp := &lineParser{c: newCursor(toks), opts: p.opts}
	return lp.recipe()
}

// ParseContext is Parse for callers that carry a context. Parsing does not
// block, so the context is only checked before starting.
func (p *Parser) ParseContext(ctx context.Context, text string) (ingredient.List, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.Parse(text)
}

// ParseLine parses a single ingredient line, adding the line break if it is
// missing.
func (p *Parser) ParseLine(line string) (ingredient.Ingredient, error) {
	toks, err := NewTokenizer(Terminate(line))
	if err != nil {
		return ingredient.Ingredient{}, err
	}
	lp := &lineParser{c: newCursor(toks), opts: p.opts}

	lp.skipBlank()
	if lp.c.is(0, EOF) {
		return ingredient.Ingredient{}, ErrEmptyInput
	}
	ing, err := lp.ingredient()
	if err != nil {
		return ingredient.Ingredient{}, err
	}
	lp.skipBlank()
	if !lp.c.is(0, EOF) {
		return ingredient.Ingredient{}, lp.c.unexpected("line", EOF)
	}
	return ing, nil
}

// Terminate appends a line break to text unless it already ends with one.
func Terminate(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") || strings.HasSuffix(text, "\r") {
		return text
	}
	return text + "\n"
}

type lineParser struct {
	c    *cursor
	opts Options
}

func (p *lineParser) recipe() (ingredient.List, error) {
	var list ingredient.List
	for {
		p.skipBlank()
		if p.c.is(0, EOF) {
			break
		}

		ing, err := p.ingredient()
		if err != nil {
			return nil, err
		}
		list = append(list, ing)
		p.c.commit()
	}

	if p.c.err != nil {
		return nil, p.c.err
	}
	if len(list) == 0 {
		return nil, ErrEmptyInput
	}
	return list, nil
}

// skipBlank consumes empty and whitespace-only lines.
func (p *lineParser) skipBlank() {
	for {
		switch {
		case p.c.is(0, Newline):
			p.c.next()
		case p.c.is(0, Whitespace) && p.c.is(1, Newline, EOF):
			p.c.next()
		default:
			return
		}
	}
}

func (p *lineParser) ingredient() (ingredient.Ingredient, error) {
	var ing ingredient.Ingredient

	if p.c.is(0, Whitespace) {
		p.c.next()
	}

	if p.c.is(0, Digits) {
		m, err := p.measurement()
		if err != nil {
			return ingredient.Ingredient{}, err
		}
		ing.Measurement = m
	}

	name, err := p.name()
	if err != nil {
		return ingredient.Ingredient{}, err
	}
	ing.Name = name

	if p.c.is(0, CommentStart) {
		comment, err := p.comment()
		if err != nil {
			return ingredient.Ingredient{}, err
		}
		ing.Comment = comment
	}

	if !p.c.is(0, Newline) {
		if ing.Comment == nil {
			return ingredient.Ingredient{}, p.c.unexpected("ingredient", CommentStart, Newline)
		}
		return ingredient.Ingredient{}, p.c.unexpected("ingredient", Newline)
	}
	p.c.next()

	return ing, nil
}

func (p *lineParser) measurement() (*ingredient.Measurement, error) {
	q, ok := p.quantity()
	if !ok {
		return nil, p.c.unexpected("quantity", Digits)
	}

	if !p.c.is(0, Whitespace) {
		expected := []Kind{Whitespace, Slash}
		if p.opts.Ranges {
			expected = append(expected, Dash)
		}
		return nil, p.c.unexpected("measurement", expected...)
	}
	p.c.next()

	m := &ingredient.Measurement{Quantity: q}
	if !p.c.is(0, Word) {
		return m, nil
	}

	// The word is the unit only when a name still follows it.
	if p.c.is(1, Whitespace) && p.c.is(2, Word) {
		m.Unit = p.c.next().Value
		p.c.next()
		return m, nil
	}

	// A lone unit word leaves the line without a name.
	if units.Known(p.c.peek(0).Value) {
		p.c.next()
		if p.c.is(0, Whitespace) {
			p.c.next()
		}
		return nil, p.c.unexpected("name", Word)
	}
	return m, nil
}

func (p *lineParser) name() (ingredient.Name, error) {
	if !p.c.is(0, Word) {
		return ingredient.Name{}, p.c.unexpected("name", Word)
	}

	var words []string
	for {
		words = append(words, p.c.next().Value)
		if p.c.is(0, Whitespace) && p.c.is(1, Word) {
			p.c.next()
			continue
		}
		break
	}
	if p.c.is(0, Whitespace) {
		p.c.next()
	}

	return ingredient.Name{Words: words}, nil
}

func (p *lineParser) comment() (*ingredient.Comment, error) {
	marker := p.c.next().Value

	switch p.opts.CommentPolicy {
	case CommentLegacy:
		return p.legacyComment(marker)
	default:
		return p.freeTextComment(marker)
	}
}

func (p *lineParser) freeTextComment(marker string) (*ingredient.Comment, error) {
	if p.c.is(0, Newline, EOF) {
		return nil, p.c.unexpected("comment", Any)
	}

	var b strings.Builder
	for !p.c.is(0, Newline, EOF) {
		b.WriteString(p.c.next().Value)
	}

	text := strings.TrimSpace(b.String())
	comment := &ingredient.Comment{Marker: marker}
	if marker == "(" && strings.HasSuffix(text, ")") {
		comment.Closed = true
		text = strings.TrimSpace(strings.TrimSuffix(text, ")"))
	}
	comment.Text = text
	return comment, nil
}

func (p *lineParser) legacyComment(marker string) (*ingredient.Comment, error) {
	if !p.c.is(0, Word, Whitespace) {
		return nil, p.c.unexpected("comment", Word, Whitespace)
	}

	var words []string
	for p.c.is(0, Word, Whitespace) {
		tok := p.c.next()
		if tok.Kind == Word {
			words = append(words, tok.Value)
		}
	}

	comment := &ingredient.Comment{Marker: marker, Text: strings.Join(words, " ")}
	if marker == "(" && p.c.is(0, CommentEnd) {
		p.c.next()
		comment.Closed = true
	}
	return comment, nil
}
