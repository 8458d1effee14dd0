package grammar

// cursor buffers tokens pulled from a Tokenizer so the parser can look ahead
// and backtrack. Tokens are only lexed when first looked at.
type cursor struct {
	toks *Tokenizer
	buf  []Token
	pos  int
	err  error
}

func newCursor(toks *Tokenizer) *cursor {
	return &cursor{toks: toks}
}

// peek returns the token n places ahead without consuming it.
func (c *cursor) peek(n int) Token {
	for len(c.buf) <= c.pos+n {
		if c.err != nil {
			return c.eof()
		}
		tok, err := c.toks.Next()
		if err != nil {
			c.err = err
			return c.eof()
		}
		c.buf = append(c.buf, tok)
	}
	return c.buf[c.pos+n]
}

func (c *cursor) eof() Token {
	if n := len(c.buf); n > 0 {
		return Token{Kind: EOF, Pos: c.buf[n-1].Pos}
	}
	return Token{Kind: EOF}
}

func (c *cursor) is(n int, kinds ...Kind) bool {
	got := c.peek(n).Kind
	for _, k := range kinds {
		if got == k {
			return true
		}
	}
	return false
}

func (c *cursor) next() Token {
	tok := c.peek(0)
	if tok.Kind != EOF {
		c.pos++
	}
	return tok
}

func (c *cursor) mark() int { return c.pos }

func (c *cursor) reset(m int) { c.pos = m }

// commit drops consumed tokens. Marks taken before a commit are invalid.
func (c *cursor) commit() {
	c.buf = append(c.buf[:0], c.buf[c.pos:]...)
	c.pos = 0
}

// unexpected builds the error for the current token.
func (c *cursor) unexpected(rule string, expected ...Kind) error {
	if c.err != nil {
		return c.err
	}
	tok := c.peek(0)
	return &SyntaxError{Pos: tok.Pos, Rule: rule, Found: tok, Expected: expected}
}
