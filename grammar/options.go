package grammar

import "fmt"

// CommentPolicy selects how a comment after the name is read.
type CommentPolicy int

const (
	// CommentFreeText reads any characters up to the end of the line. A "("
	// comment may end on ")" but does not have to.
	CommentFreeText CommentPolicy = iota
	// CommentLegacy only accepts words and whitespace, optionally closed by ")".
	CommentLegacy
)

func (p CommentPolicy) String() string {
	switch p {
	case CommentFreeText:
		return "freetext"
	case CommentLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("CommentPolicy(%d)", int(p))
	}
}

// ParseCommentPolicy maps a policy name back to its value.
func ParseCommentPolicy(s string) (CommentPolicy, error) {
	switch s {
	case "", "freetext":
		return CommentFreeText, nil
	case "legacy":
		return CommentLegacy, nil
	default:
		return 0, fmt.Errorf("unknown comment policy %q", s)
	}
}

// Options selects the grammar revision.
type Options struct {
	// Ranges enables "2-3" style quantities.
	Ranges        bool
	CommentPolicy CommentPolicy
}

// DefaultOptions enables ranges and free text comments.
func DefaultOptions() Options {
	return Options{Ranges: true, CommentPolicy: CommentFreeText}
}
