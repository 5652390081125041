package editor

import "unicode"

// Key identifies the kind of input event.
type Key int

const (
	// KeyNone is an event the editor does not understand.
	KeyNone Key = iota
	// KeyRune is a typed character; Event.Rune holds it.
	KeyRune
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

// Event is one discrete input event delivered by the host.
type Event struct {
	Key  Key
	Rune rune
}

// RuneEvent returns the event for typing r.
func RuneEvent(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}

// KeyEvent returns the event for a non-character key.
func KeyEvent(k Key) Event {
	return Event{Key: k}
}

// Runes returns one rune event per character of s.
func Runes(s string) []Event {
	events := make([]Event, 0, len(s))
	for _, r := range s {
		events = append(events, RuneEvent(r))
	}
	return events
}

// printable reports whether r may be inserted into a line. Tab is allowed;
// other control characters are not.
func printable(r rune) bool {
	return r == '\t' || unicode.IsPrint(r)
}
