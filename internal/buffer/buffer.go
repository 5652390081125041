// Package buffer holds the editable document: an ordered, never-empty list of
// lines plus a cursor, with every mutation keeping the cursor in range.
package buffer

// Position is a cursor location. Col counts characters (runes), not bytes.
type Position struct {
	Row int
	Col int
}

// Buffer is the line buffer and cursor.
//
// Invariants, restored by every method before it returns:
//   - len(lines) >= 1
//   - 0 <= cursor.Row < len(lines)
//   - 0 <= cursor.Col <= len(lines[cursor.Row]) (the append position is valid)
type Buffer struct {
	lines   [][]rune
	cursor  Position
	version uint64
}

// New creates a buffer holding one empty line.
func New() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// FromLines creates a buffer holding lines, cursor at (0,0).
func FromLines(lines []string) *Buffer {
	b := New()
	b.ReplaceAll(lines)
	return b
}

// ReplaceAll replaces the whole document and resets the cursor to (0,0).
// An empty slice yields a single empty line.
func (b *Buffer) ReplaceAll(lines []string) {
	if len(lines) == 0 {
		b.lines = [][]rune{{}}
	} else {
		b.lines = make([][]rune, len(lines))
		for i, l := range lines {
			b.lines[i] = []rune(l)
		}
	}
	b.cursor = Position{}
	b.version++
}

// InsertChar inserts ch at the cursor and advances the cursor past it.
func (b *Buffer) InsertChar(ch rune) {
	row, col := b.cursor.Row, b.cursor.Col
	line := b.lines[row]

	next := make([]rune, 0, len(line)+1)
	next = append(next, line[:col]...)
	next = append(next, ch)
	next = append(next, line[col:]...)

	b.lines[row] = next
	b.cursor.Col = col + 1
	b.version++
}

// Backspace deletes the character before the cursor. At column 0 it joins
// the current line onto the previous one, leaving the cursor at the join
// point. At (0,0) it does nothing. Reports whether the buffer changed.
func (b *Buffer) Backspace() bool {
	row, col := b.cursor.Row, b.cursor.Col

	if col > 0 {
		line := b.lines[row]
		next := make([]rune, 0, len(line)-1)
		next = append(next, line[:col-1]...)
		next = append(next, line[col:]...)
		b.lines[row] = next
		b.cursor.Col = col - 1
		b.version++
		return true
	}

	if row == 0 {
		return false
	}

	prev := b.lines[row-1]
	joinCol := len(prev)

	joined := make([]rune, 0, len(prev)+len(b.lines[row]))
	joined = append(joined, prev...)
	joined = append(joined, b.lines[row]...)

	newLines := make([][]rune, 0, len(b.lines)-1)
	newLines = append(newLines, b.lines[:row-1]...)
	newLines = append(newLines, joined)
	newLines = append(newLines, b.lines[row+1:]...)
	b.lines = newLines

	b.cursor = Position{Row: row - 1, Col: joinCol}
	b.version++
	return true
}

// SplitLine breaks the current line at the cursor. The text from the cursor
// onward becomes a new line below and the cursor moves to its start.
func (b *Buffer) SplitLine() {
	row, col := b.cursor.Row, b.cursor.Col
	line := b.lines[row]

	before := append([]rune(nil), line[:col]...)
	after := append([]rune(nil), line[col:]...)
	if before == nil {
		before = []rune{}
	}
	if after == nil {
		after = []rune{}
	}

	newLines := make([][]rune, 0, len(b.lines)+1)
	newLines = append(newLines, b.lines[:row]...)
	newLines = append(newLines, before, after)
	newLines = append(newLines, b.lines[row+1:]...)
	b.lines = newLines

	b.cursor = Position{Row: row + 1, Col: 0}
	b.version++
}

// MoveUp moves the cursor one line up, clamping the column to the new
// line's length. Reports whether the cursor moved.
func (b *Buffer) MoveUp() bool {
	if b.cursor.Row == 0 {
		return false
	}
	b.cursor.Row--
	b.clampCol()
	return true
}

// MoveDown moves the cursor one line down, clamping the column to the new
// line's length. Reports whether the cursor moved.
func (b *Buffer) MoveDown() bool {
	if b.cursor.Row >= len(b.lines)-1 {
		return false
	}
	b.cursor.Row++
	b.clampCol()
	return true
}

// MoveLeft moves the cursor one character left without wrapping lines.
func (b *Buffer) MoveLeft() bool {
	if b.cursor.Col == 0 {
		return false
	}
	b.cursor.Col--
	return true
}

// MoveRight moves the cursor one character right, at most to the append
// position, without wrapping lines.
func (b *Buffer) MoveRight() bool {
	if b.cursor.Col >= len(b.lines[b.cursor.Row]) {
		return false
	}
	b.cursor.Col++
	return true
}

func (b *Buffer) clampCol() {
	b.cursor.Col = min(b.cursor.Col, len(b.lines[b.cursor.Row]))
}

// Cursor returns the cursor position.
func (b *Buffer) Cursor() Position {
	return b.cursor
}

// LineCount returns the number of lines (always >= 1).
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns line i as a string. Out-of-range indexes return "".
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

// Lines returns a snapshot of the document as strings.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// Runes returns the document as rune slices. The slices are shared with the
// buffer and are only valid until the next mutation; callers must not modify
// them.
func (b *Buffer) Runes() [][]rune {
	return b.lines
}

// Version increases on every content change. Cursor moves do not count.
func (b *Buffer) Version() uint64 {
	return b.version
}
