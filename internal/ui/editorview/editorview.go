// Package editorview draws an editing session: highlighted text with an
// optional line-number gutter, the cursor cell, a status bar and a bottom
// line for the command line, notices and key hints.
package editorview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/tide/internal/editor"
	"github.com/zjrosen/tide/internal/syntax"
	"github.com/zjrosen/tide/internal/ui/styles"
)

// chromeRows is the status bar plus the bottom line.
const chromeRows = 2

// Model is the viewport over a session's buffer.
type Model struct {
	theme       styles.Theme
	highlighter *syntax.Highlighter

	width  int
	height int
	top    int
}

// New creates a view that colors text with highlighter.
func New(theme styles.Theme, highlighter *syntax.Highlighter) Model {
	return Model{theme: theme, highlighter: highlighter}
}

// SetSize sets the terminal size in cells.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Top returns the first visible buffer row.
func (m Model) Top() int {
	return m.top
}

func (m Model) textRows() int {
	return max(0, m.height-chromeRows)
}

// ScrollTo adjusts the viewport so that row is visible.
func (m *Model) ScrollTo(row int) {
	rows := m.textRows()
	if rows == 0 {
		m.top = max(0, row)
		return
	}
	if row < m.top {
		m.top = row
	}
	if row >= m.top+rows {
		m.top = row - rows + 1
	}
	m.top = max(0, m.top)
}

// Status is the transient information shown on the bottom line.
type Status struct {
	Notice *editor.Notice
	Hint   string
}

// GutterWidth returns the gutter width for a document of lineCount lines:
// the digits of the largest line number plus two.
func GutterWidth(lineCount int) int {
	return len(strconv.Itoa(max(1, lineCount))) + 2
}

// View renders the session.
func (m Model) View(s *editor.Session, st Status) string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	buf := s.Buffer()
	lines := buf.Runes()
	cursor := buf.Cursor()
	rows := m.textRows()
	top := min(m.top, max(0, len(lines)-1))

	highlighted := m.highlighter.Prefix(lines, top+rows)

	gutter := 0
	if s.ShowLineNumbers() {
		gutter = GutterWidth(len(lines))
	}

	var sb strings.Builder
	for screenRow := 0; screenRow < rows; screenRow++ {
		row := top + screenRow
		if row < len(lines) {
			var line strings.Builder
			if gutter > 0 {
				line.WriteString(m.theme.Gutter.Render(fmt.Sprintf("%*d ", gutter-1, row+1)))
			}
			cursorCol := -1
			if row == cursor.Row && s.Mode() != editor.ModeCommandLine {
				cursorCol = cursor.Col
			}
			line.WriteString(m.renderLine(lines[row], highlighted[row].Categories, cursorCol))
			sb.WriteString(ansi.Truncate(line.String(), m.width, ""))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString(m.statusBar(s))
	sb.WriteByte('\n')
	sb.WriteString(m.bottomLine(s, st))
	return sb.String()
}

// renderLine styles one line by category. cursorCol < 0 means the cursor is
// not on this line; cursorCol == len(text) draws a reversed blank.
func (m Model) renderLine(text []rune, cats []syntax.Category, cursorCol int) string {
	var sb strings.Builder
	segment := func(start, end int, c syntax.Category) {
		if end > start {
			sb.WriteString(m.theme.Category(c).Render(display(text[start:end])))
		}
	}

	for _, sp := range syntax.Spans(cats) {
		if cursorCol < sp.Start || cursorCol >= sp.End {
			segment(sp.Start, sp.End, sp.Category)
			continue
		}
		segment(sp.Start, cursorCol, sp.Category)
		sb.WriteString(m.theme.Cursor(sp.Category).Render(display(text[cursorCol : cursorCol+1])))
		segment(cursorCol+1, sp.End, sp.Category)
	}

	if cursorCol == len(text) {
		sb.WriteString(m.theme.Cursor(syntax.Normal).Render(" "))
	}
	return sb.String()
}

// display maps characters to terminal cells: tabs and other control
// characters occupy one blank cell.
func display(text []rune) string {
	out := make([]rune, len(text))
	for i, r := range text {
		if r < ' ' || r == 0x7f {
			r = ' '
		}
		out[i] = r
	}
	return string(out)
}

func (m Model) statusBar(s *editor.Session) string {
	cursor := s.Buffer().Cursor()

	mode := " " + s.Mode().String() + " "
	position := fmt.Sprintf(" | Line: %d Col: %d ", cursor.Row+1, cursor.Col+1)
	dirty := ""
	if s.Dirty() {
		dirty = " [+]"
	}

	avail := m.width - runewidth.StringWidth(mode) - runewidth.StringWidth(position) - runewidth.StringWidth(dirty) - 1
	file := ""
	if avail > 0 {
		file = " " + runewidth.Truncate(s.Path(), avail, "…")
	}

	used := runewidth.StringWidth(mode) + runewidth.StringWidth(file) + runewidth.StringWidth(dirty) + runewidth.StringWidth(position)
	pad := strings.Repeat(" ", max(0, m.width-used))

	bar := lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.StatusMode.Render(mode),
		m.theme.StatusBar.Render(file),
		m.theme.Dirty.Render(dirty),
		m.theme.StatusBar.Render(position+pad),
	)
	return ansi.Truncate(bar, m.width, "")
}

func (m Model) bottomLine(s *editor.Session, st Status) string {
	width := uint(m.width)

	if s.Mode() == editor.ModeCommandLine {
		// Keep the end of a long command visible.
		line := ":" + display([]rune(s.CommandLine()))
		if over := runewidth.StringWidth(line) - (m.width - 1); over > 0 {
			line = ":" + runewidth.TruncateLeft(line[1:], over, "")
		}
		return line + m.theme.Cursor(syntax.Normal).Render(" ")
	}

	if st.Notice != nil {
		text := truncate.StringWithTail(st.Notice.Text, width, "…")
		switch st.Notice.Level {
		case editor.LevelError:
			return m.theme.NoticeErr.Render(text)
		case editor.LevelWarn:
			return m.theme.NoticeWarn.Render(text)
		default:
			return m.theme.NoticeInfo.Render(text)
		}
	}

	return m.theme.Hint.Render(truncate.StringWithTail(st.Hint, width, "…"))
}
