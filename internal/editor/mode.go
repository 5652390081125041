// Package editor implements the modal editing session: the mode state
// machine that routes input events to the buffer, the command-line
// accumulator and the ex-style command interpreter.
package editor

// Mode is the active input mode of a session.
type Mode int

const (
	// ModeNavigation is the initial mode. Arrow keys move the cursor and single
	// keys switch modes.
	ModeNavigation Mode = iota
	// ModeInsertion inserts printable characters at the cursor.
	ModeInsertion
	// ModeCommandLine accumulates a command typed after ':'.
	ModeCommandLine
)

// String returns the label shown in the status bar.
func (m Mode) String() string {
	switch m {
	case ModeNavigation:
		return "NORMAL"
	case ModeInsertion:
		return "INSERT"
	case ModeCommandLine:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}
