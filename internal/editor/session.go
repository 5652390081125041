package editor

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zjrosen/tide/internal/buffer"
	"github.com/zjrosen/tide/internal/fileio"
	"github.com/zjrosen/tide/internal/log"
	"github.com/zjrosen/tide/internal/pubsub"
)

// Store loads and saves documents for a session.
type Store interface {
	Load(path string) ([]string, error)
	Save(path string, lines []string) error
}

// Options configures a new Session.
type Options struct {
	Path            string
	ShowLineNumbers bool
	Store           Store
	// Interpreter defaults to DefaultInterpreter.
	Interpreter *Interpreter
	// Notices receives user-facing messages. Nil discards them.
	Notices pubsub.Publisher[Notice]
}

// Session is one editing session: the buffer, the active mode and the
// command-line accumulator, plus the host collaborators they act on.
type Session struct {
	buf     *buffer.Buffer
	mode    Mode
	cmdline []rune

	path            string
	showLineNumbers bool
	exit            bool

	store   Store
	interp  *Interpreter
	notices pubsub.Publisher[Notice]

	// saved is the document as of the last successful load or save.
	saved        []string
	savedVersion uint64
}

// NewSession creates a session holding one empty line in navigation mode.
// Call Open to load the file at opts.Path.
func NewSession(opts Options) *Session {
	interp := opts.Interpreter
	if interp == nil {
		interp = DefaultInterpreter()
	}
	s := &Session{
		buf:             buffer.New(),
		mode:            ModeNavigation,
		path:            opts.Path,
		showLineNumbers: opts.ShowLineNumbers,
		store:           opts.Store,
		interp:          interp,
		notices:         opts.Notices,
	}
	s.markSaved()
	return s
}

// Open loads the session's file into the buffer. A missing file leaves an
// empty buffer silently; an unreadable one leaves an empty buffer and
// publishes a notice. Neither is an error for the caller.
func (s *Session) Open() {
	lines, err := s.store.Load(s.path)
	switch {
	case errors.Is(err, fileio.ErrNotFound):
		log.Info(log.CatFile, "new file", "path", s.path)
		s.buf.ReplaceAll(nil)
	case err != nil:
		log.ErrorErr(log.CatFile, "load failed", err, "path", s.path)
		s.buf.ReplaceAll(nil)
		s.notify(NoticeLoadFailed, LevelError, fmt.Sprintf("%q: %v", s.path, err))
	default:
		s.buf.ReplaceAll(lines)
		log.Info(log.CatFile, "loaded", "path", s.path, "lines", s.buf.LineCount())
	}
	s.markSaved()
}

// Handle feeds one input event through the mode state machine and applies
// the resulting effect.
func (s *Session) Handle(ev Event) Transition {
	t := Step(s.mode, ev)
	if s.mode != t.Next {
		log.Debug(log.CatMode, "mode change", "from", s.mode, "to", t.Next)
		s.mode = t.Next
	}

	switch t.Effect {
	case EffectInsertChar:
		s.buf.InsertChar(ev.Rune)
	case EffectBackspace:
		s.buf.Backspace()
	case EffectSplitLine:
		s.buf.SplitLine()
	case EffectMoveUp:
		s.buf.MoveUp()
	case EffectMoveDown:
		s.buf.MoveDown()
	case EffectMoveLeft:
		s.buf.MoveLeft()
	case EffectMoveRight:
		s.buf.MoveRight()
	case EffectClearCommand:
		s.cmdline = s.cmdline[:0]
	case EffectAppendCommand:
		s.cmdline = append(s.cmdline, ev.Rune)
	case EffectTrimCommand:
		if n := len(s.cmdline); n > 0 {
			s.cmdline = s.cmdline[:n-1]
		}
	case EffectRunCommand:
		line := string(s.cmdline)
		s.cmdline = s.cmdline[:0]
		s.run(line)
	case EffectQuit:
		s.RequestExit()
	}
	return t
}

// HandleAll feeds events in order.
func (s *Session) HandleAll(events ...Event) {
	for _, ev := range events {
		s.Handle(ev)
	}
}

// run executes a completed command line. Failures have already been
// reported to the user by the command itself.
func (s *Session) run(line string) {
	if _, err := s.interp.Execute(s, line); err != nil {
		log.ErrorErr(log.CatCommand, "command failed", err, "command", line)
	}
}

// Save writes the buffer through the store. On failure the buffer and its
// dirty state are left as they were and a notice is published.
func (s *Session) Save() error {
	lines := s.buf.Lines()
	if err := s.store.Save(s.path, lines); err != nil {
		s.notify(NoticeWriteFailed, LevelError, fmt.Sprintf("%q: %v", s.path, err))
		return fmt.Errorf("saving %s: %w", s.path, err)
	}

	delta := diffLines(s.saved, lines)
	s.markSaved()
	log.Info(log.CatFile, "saved", "path", s.path, "lines", len(lines), "added", delta.Added, "removed", delta.Removed)
	text := fmt.Sprintf("%q %dL written", s.path, len(lines))
	if !delta.IsZero() {
		text += fmt.Sprintf(" (+%d -%d)", delta.Added, delta.Removed)
	}
	s.notify(NoticeWritten, LevelInfo, text)
	return nil
}

// CheckDisk compares the file on disk with the last loaded or saved
// document and publishes a notice when something else changed it.
// It reports whether the file differs.
func (s *Session) CheckDisk() bool {
	lines, err := s.store.Load(s.path)
	removed := errors.Is(err, fileio.ErrNotFound)
	switch {
	case removed:
		lines = nil
	case err != nil:
		log.Debug(log.CatWatcher, "disk check failed", "path", s.path, "error", err)
		return false
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if slices.Equal(lines, s.saved) {
		return false
	}

	text := fmt.Sprintf("%q changed on disk", s.path)
	if removed {
		text = fmt.Sprintf("%q was removed from disk", s.path)
	}
	s.notify(NoticeChangedOnDisk, LevelWarn, text)
	return true
}

func (s *Session) markSaved() {
	s.saved = s.buf.Lines()
	s.savedVersion = s.buf.Version()
}

func (s *Session) notify(kind pubsub.EventType, level Level, text string) {
	if s.notices == nil {
		return
	}
	s.notices.Publish(kind, Notice{Level: level, Text: text})
}

// Dirty reports whether the buffer differs from the last load or save.
func (s *Session) Dirty() bool {
	if s.buf.Version() == s.savedVersion {
		return false
	}
	return !slices.Equal(s.buf.Lines(), s.saved)
}

// Buffer returns the session's buffer. Callers outside the session should
// only read from it.
func (s *Session) Buffer() *buffer.Buffer {
	return s.buf
}

// Mode returns the active mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// CommandLine returns the command-line accumulator. It is empty outside
// command-line mode.
func (s *Session) CommandLine() string {
	return string(s.cmdline)
}

// Path returns the file the session edits.
func (s *Session) Path() string {
	return s.path
}

// ShowLineNumbers reports whether the gutter is displayed.
func (s *Session) ShowLineNumbers() bool {
	return s.showLineNumbers
}

// SetShowLineNumbers toggles the gutter.
func (s *Session) SetShowLineNumbers(show bool) {
	s.showLineNumbers = show
}

// RequestExit sets the exit flag. It is never cleared.
func (s *Session) RequestExit() {
	s.exit = true
}

// ExitRequested reports whether the session should end.
func (s *Session) ExitRequested() bool {
	return s.exit
}
