package grammar

import "fmt"

// Kind classifies a Token.
type Kind int

const (
	EOF Kind = iota
	Word
	Whitespace
	Digits
	Slash
	Dash
	CommentStart
	CommentEnd
	Newline
	Any
)

var kindNames = [...]string{
	EOF:          "EndOfInput",
	Word:         "Word",
	Whitespace:   "Whitespace",
	Digits:       "Digits",
	Slash:        "Slash",
	Dash:         "Dash",
	CommentStart: "CommentStart",
	CommentEnd:   "CommentEnd",
	Newline:      "Newline",
	Any:          "Any",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Position locates a token in the input. Offset is in bytes from the start,
// Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is one lexical unit of an ingredient text.
type Token struct {
	Kind  Kind
	Value string
	Pos   Position
}

func (t Token) String() string {
	if t.Kind == EOF {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Value)
}
