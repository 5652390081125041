// Package log writes leveled, categorized key=value lines to a debug file.
// The terminal belongs to the editor, so nothing is logged unless the host
// initializes a writer (via --debug or TIDE_DEBUG).
package log

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(s, name) {
			return Level(i), nil
		}
	}
	return LevelDebug, fmt.Errorf("unknown log level %q", s)
}

// Category groups related log messages.
type Category string

const (
	CatSyntax  Category = "syntax"
	CatMode    Category = "mode"
	CatCommand Category = "command"
	CatFile    Category = "file"
	CatConfig  Category = "config"
	CatWatcher Category = "watcher"
	CatUI      Category = "ui"
	CatCache   Category = "cache"
)

const timeLayout = "2006-01-02T15:04:05"

type logger struct {
	mu       sync.Mutex
	w        io.Writer
	enabled  bool
	minLevel Level
	sticky   []any
	now      func() time.Time
}

// std is nil until a host initializes logging; every entry point treats nil
// as "discard".
var std *logger

func install(w io.Writer) {
	std = &logger{w: w, enabled: true, minLevel: LevelDebug, now: time.Now}
}

// InitWithTeaLog opens path through tea.LogToFile, so Bubble Tea's own
// diagnostics land in the same file, and returns a function that closes it.
func InitWithTeaLog(path, prefix string) (func(), error) {
	f, err := tea.LogToFile(path, prefix)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	install(f)
	return func() { _ = f.Close() }, nil
}

// InitWriter sends log lines to w.
func InitWriter(w io.Writer) {
	install(w)
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if std == nil {
		return
	}
	std.mu.Lock()
	std.enabled = enabled
	std.mu.Unlock()
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if std == nil {
		return
	}
	std.mu.Lock()
	std.minLevel = level
	std.mu.Unlock()
}

// With appends key=value fields to every later entry, e.g. a session id.
func With(fields ...any) {
	if std == nil {
		return
	}
	std.mu.Lock()
	std.sticky = append(std.sticky, fields...)
	std.mu.Unlock()
}

func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields) }
func Info(cat Category, msg string, fields ...any)  { write(LevelInfo, cat, msg, fields) }
func Warn(cat Category, msg string, fields ...any)  { write(LevelWarn, cat, msg, fields) }
func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields) }

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	text := "<nil>"
	if err != nil {
		text = err.Error()
	}
	write(LevelError, cat, msg, append(fields, "error", text))
}

// write emits one line:
//
//	2025-12-06T10:45:00 [ERROR] [file] message key=value key2="two words"
func write(level Level, cat Category, msg string, fields []any) {
	l := std
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || level < l.minLevel || l.w == nil {
		return
	}

	var b strings.Builder
	b.WriteString(l.now().Format(timeLayout))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	appendFields(&b, fields)
	appendFields(&b, l.sticky)
	b.WriteByte('\n')

	_, _ = io.WriteString(l.w, b.String())
}

func appendFields(b *strings.Builder, fields []any) {
	for i := 0; i < len(fields); i += 2 {
		b.WriteByte(' ')
		b.WriteString(fmt.Sprint(fields[i]))
		b.WriteByte('=')
		if i+1 == len(fields) {
			b.WriteString("<missing>")
			break
		}
		b.WriteString(formatValue(fields[i+1]))
	}
}

// formatValue quotes values that would otherwise be ambiguous in a
// space-separated line, such as buffer text.
func formatValue(v any) string {
	s := fmt.Sprint(v)
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
