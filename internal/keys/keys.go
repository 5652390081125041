// Package keys contains keybinding definitions and the translation from
// terminal key messages to editor input events.
package keys

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/tide/internal/editor"
)

// KeyMap defines the editor's keybindings.
type KeyMap struct {
	// Motion
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	// Editing
	Enter     key.Binding
	Backspace key.Binding
	Escape    key.Binding

	// Navigation-mode characters. These are only documented here: the
	// characters themselves reach the editor as rune events.
	Insert  key.Binding
	Command key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", "ctrl+m"),
			key.WithHelp("enter", "newline"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("bksp", "delete"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "normal mode"),
		),
		Insert: key.NewBinding(
			key.WithKeys(string(editor.InsertKey)),
			key.WithHelp(string(editor.InsertKey), "insert"),
		),
		Command: key.NewBinding(
			key.WithKeys(string(editor.CommandKey)),
			key.WithHelp(string(editor.CommandKey), "command"),
		),
		Quit: key.NewBinding(
			key.WithKeys(string(editor.QuitKey)),
			key.WithHelp(string(editor.QuitKey), "quit"),
		),
	}
}

// Translate converts a key message into editor events. Pasted or buffered
// input yields one event per character; keys the editor has no use for
// yield none.
func (m KeyMap) Translate(msg tea.KeyMsg) []editor.Event {
	switch {
	case key.Matches(msg, m.Up):
		return []editor.Event{editor.KeyEvent(editor.KeyUp)}
	case key.Matches(msg, m.Down):
		return []editor.Event{editor.KeyEvent(editor.KeyDown)}
	case key.Matches(msg, m.Left):
		return []editor.Event{editor.KeyEvent(editor.KeyLeft)}
	case key.Matches(msg, m.Right):
		return []editor.Event{editor.KeyEvent(editor.KeyRight)}
	case key.Matches(msg, m.Enter):
		return []editor.Event{editor.KeyEvent(editor.KeyEnter)}
	case key.Matches(msg, m.Backspace):
		return []editor.Event{editor.KeyEvent(editor.KeyBackspace)}
	case key.Matches(msg, m.Escape):
		return []editor.Event{editor.KeyEvent(editor.KeyEscape)}
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		events := make([]editor.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			switch r {
			case '\r', '\n':
				events = append(events, editor.KeyEvent(editor.KeyEnter))
			default:
				events = append(events, editor.RuneEvent(r))
			}
		}
		return events
	case tea.KeySpace:
		return []editor.Event{editor.RuneEvent(' ')}
	case tea.KeyTab:
		return []editor.Event{editor.RuneEvent('\t')}
	}
	return nil
}

// HelpFor returns the bindings worth showing while mode is active.
func (m KeyMap) HelpFor(mode editor.Mode) []key.Binding {
	switch mode {
	case editor.ModeInsertion:
		return []key.Binding{m.Escape}
	case editor.ModeCommandLine:
		run := m.Enter
		run.SetHelp("enter", "run")
		cancel := m.Escape
		cancel.SetHelp("esc", "cancel")
		return []key.Binding{run, cancel}
	default:
		return []key.Binding{m.Insert, m.Command, m.Quit}
	}
}

// HelpText renders HelpFor(mode) as a single hint line.
func (m KeyMap) HelpText(mode editor.Mode) string {
	bindings := m.HelpFor(mode)
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
