package grammar

import (
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

// Rules are tried in order and the first match wins, so a Word is only
// started on a letter or underscore and digits following it stay inside it.
var rules = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Word", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Digits", Pattern: `[0-9]+(?:[.,][0-9]+)?`},
	{Name: "Slash", Pattern: `/`},
	{Name: "Dash", Pattern: `-`},
	{Name: "CommentStart", Pattern: `[(,]`},
	{Name: "CommentEnd", Pattern: `\)`},
	{Name: "Newline", Pattern: `(?:\r?\n)+|\r+`},
	{Name: "Any", Pattern: `.`},
})

var kindsByType = func() map[lexer.TokenType]Kind {
	byName := map[string]Kind{
		"Word":         Word,
		"Whitespace":   Whitespace,
		"Digits":       Digits,
		"Slash":        Slash,
		"Dash":         Dash,
		"CommentStart": CommentStart,
		"CommentEnd":   CommentEnd,
		"Newline":      Newline,
		"Any":          Any,
	}
	out := make(map[lexer.TokenType]Kind, len(byName))
	for name, tt := range rules.Symbols() {
		if k, ok := byName[name]; ok {
			out[tt] = k
		}
	}
	return out
}()

// Tokenizer produces the tokens of one input lazily. It is not safe for
// concurrent use; every parse owns its own Tokenizer.
type Tokenizer struct {
	lex  lexer.Lexer
	done bool
	last Token
}

// NewTokenizer prepares a Tokenizer over text.
func NewTokenizer(text string) (*Tokenizer, error) {
	lex, err := rules.LexString("", text)
	if err != nil {
		return nil, &LexError{Err: err}
	}
	return &Tokenizer{lex: lex}, nil
}

// Next returns the next token. Once the input is exhausted it keeps
// returning the EOF token.
func (t *Tokenizer) Next() (Token, error) {
	if t.done {
		return t.last, nil
	}

	tok, err := t.lex.Next()
	if err != nil {
		lexErr := &LexError{Err: err}
		if perr, ok := err.(*lexer.Error); ok {
			lexErr.Pos = Position{Offset: perr.Pos.Offset, Line: perr.Pos.Line, Column: perr.Pos.Column}
		}
		return Token{}, lexErr
	}

	pos := Position{Offset: tok.Pos.Offset, Line: tok.Pos.Line, Column: tok.Pos.Column}
	if tok.EOF() {
		t.done = true
		t.last = Token{Kind: EOF, Pos: pos}
		return t.last, nil
	}

	kind, ok := kindsByType[tok.Type]
	if !ok {
		return Token{}, &LexError{Pos: pos, Err: fmt.Errorf("unknown token type %d", tok.Type)}
	}
	return Token{Kind: kind, Value: tok.Value, Pos: pos}, nil
}

// Tokenize lexes the whole of text, EOF token included.
func Tokenize(text string) ([]Token, error) {
	t, err := NewTokenizer(text)
	if err != nil {
		return nil, err
	}

	var toks []Token
	for {
		tok, err := t.Next()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == EOF {
			return toks, nil
		}
	}
}
