// Package syntax classifies the characters of a source line by lexical
// category, carrying open comments and literals from one line to the next.
package syntax

// Category is the lexical class assigned to a single character.
type Category uint8

const (
	// Normal is plain text: operators, whitespace, identifiers that are not keywords.
	Normal Category = iota
	// Keyword marks a reserved word.
	Keyword
	// StringLiteral marks string and character literals, delimiters included.
	StringLiteral
	// Comment marks line and block comments, delimiters included.
	Comment
	// Preprocessor marks a directive from '#' to end of line.
	Preprocessor
	// Number marks a numeric literal.
	Number
)

// String returns the lowercase name of the category.
func (c Category) String() string {
	switch c {
	case Normal:
		return "normal"
	case Keyword:
		return "keyword"
	case StringLiteral:
		return "string"
	case Comment:
		return "comment"
	case Preprocessor:
		return "preprocessor"
	case Number:
		return "number"
	default:
		return "unknown"
	}
}

// Categories lists every category in declaration order.
func Categories() []Category {
	return []Category{Normal, Keyword, StringLiteral, Comment, Preprocessor, Number}
}

// LexState is the lexical state carried across a line boundary.
// The zero value is the state at the top of a document.
type LexState struct {
	InString       bool // inside a double-quoted string
	InChar         bool // inside a single-quoted character literal
	InBlockComment bool // inside /* ... */
	PendingEscape  bool // previous character was an unescaped backslash inside a literal
}

// inLiteral reports whether a string or char literal is open.
func (s LexState) inLiteral() bool {
	return s.InString || s.InChar
}

// key packs the state into a short stable string, used as a cache key prefix.
func (s LexState) key() string {
	b := [4]byte{'0', '0', '0', '0'}
	if s.InString {
		b[0] = '1'
	}
	if s.InChar {
		b[1] = '1'
	}
	if s.InBlockComment {
		b[2] = '1'
	}
	if s.PendingEscape {
		b[3] = '1'
	}
	return string(b[:])
}
