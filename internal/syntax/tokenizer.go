package syntax

// Classify assigns a Category to every character of line, starting from the
// lexical state carried out of the previous line. It returns one category per
// rune (len(result) == len(line)) and the state to carry into the next line.
//
// Classify is a pure function: the same (line, state) always yields the same
// result, so a document can be re-tokenized from the top at any time.
//
// The scan is a single left-to-right pass with one character of lookahead:
//   - an open block comment swallows everything up to and including "*/"
//   - an open string or char literal swallows everything up to its unescaped
//     closing delimiter; a backslash escapes the character after it
//   - "//" and '#' claim the rest of the line
//   - "/*", '"' and '\'' open a comment or literal that may span lines
//   - a digit not preceded by an alphanumeric starts a number made of
//     digits, '.' and 'x'
//   - an identifier is highlighted when it is a reserved word
func Classify(line []rune, state LexState) ([]Category, LexState) {
	cats := make([]Category, len(line))
	n := len(line)

	for i := 0; i < n; i++ {
		c := line[i]

		if state.InBlockComment {
			cats[i] = Comment
			if c == '*' && i+1 < n && line[i+1] == '/' {
				cats[i+1] = Comment
				state.InBlockComment = false
				i++
			}
			continue
		}

		if state.inLiteral() {
			cats[i] = StringLiteral
			if c == '\\' && !state.PendingEscape {
				state.PendingEscape = true
				continue
			}
			if !state.PendingEscape && closesLiteral(state, c) {
				state.InString = false
				state.InChar = false
			}
			state.PendingEscape = false
			continue
		}

		switch {
		case c == '/' && i+1 < n && line[i+1] == '/':
			fill(cats[i:], Comment)
			return cats, state

		case c == '/' && i+1 < n && line[i+1] == '*':
			cats[i] = Comment
			cats[i+1] = Comment
			state.InBlockComment = true
			i++

		case c == '"':
			cats[i] = StringLiteral
			state.InString = true

		case c == '\'':
			cats[i] = StringLiteral
			state.InChar = true

		case c == '#':
			fill(cats[i:], Preprocessor)
			return cats, state

		case isDigit(c) && (i == 0 || !isAlnum(line[i-1])):
			end := i + 1
			for end < n && (isDigit(line[end]) || line[end] == '.' || line[end] == 'x') {
				end++
			}
			fill(cats[i:end], Number)
			i = end - 1

		case isAlpha(c) || c == '_':
			end := i + 1
			for end < n && (isAlnum(line[end]) || line[end] == '_') {
				end++
			}
			if IsKeyword(string(line[i:end])) {
				fill(cats[i:end], Keyword)
			}
			i = end - 1
		}
	}

	return cats, state
}

func closesLiteral(state LexState, c rune) bool {
	return (state.InString && c == '"') || (state.InChar && c == '\'')
}

func fill(cats []Category, cat Category) {
	for i := range cats {
		cats[i] = cat
	}
}

// Character classes are ASCII only; other code points are plain text.

func isDigit(c rune) bool { return c >= '0' && c <= '9' }

func isAlpha(c rune) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isAlnum(c rune) bool { return isDigit(c) || isAlpha(c) }
