package grammar

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when the input holds no ingredient line.
var ErrEmptyInput = errors.New("no ingredient lines in input")

// SyntaxError reports a token that no grammar alternative accepts at its
// position. Rule names the grammar rule being parsed.
type SyntaxError struct {
	Pos      Position
	Rule     string
	Found    Token
	Expected []Kind
}

func (e *SyntaxError) Error() string {
	expected := make([]string, len(e.Expected))
	for i, k := range e.Expected {
		expected[i] = k.String()
	}
	return fmt.Sprintf("syntax error at %s in %s: unexpected %s, expected %s",
		e.Pos, e.Rule, e.Found, strings.Join(expected, " or "))
}

// LexError wraps a failure of the underlying lexer. The catch-all Any rule
// means the ingredient rules never produce one.
type LexError struct {
	Pos Position
	Err error
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at %s: %v", e.Pos, e.Err)
}

func (e *LexError) Unwrap() error { return e.Err }

// ErrorType names the category of a parse error, for logs and metrics.
func ErrorType(err error) string {
	var syntaxErr *SyntaxError
	var lexErr *LexError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput):
		return "empty_input"
	case errors.As(err, &syntaxErr):
		return "syntax"
	case errors.As(err, &lexErr):
		return "lex"
	default:
		return "other"
	}
}
