package editor

// Effect is the action a transition asks the session to perform.
type Effect int

const (
	EffectNone Effect = iota
	EffectInsertChar
	EffectBackspace
	EffectSplitLine
	EffectMoveUp
	EffectMoveDown
	EffectMoveLeft
	EffectMoveRight
	EffectClearCommand
	EffectAppendCommand
	EffectTrimCommand
	EffectRunCommand
	EffectQuit
)

var effectNames = map[Effect]string{
	EffectNone:          "none",
	EffectInsertChar:    "insert_char",
	EffectBackspace:     "backspace",
	EffectSplitLine:     "split_line",
	EffectMoveUp:        "move_up",
	EffectMoveDown:      "move_down",
	EffectMoveLeft:      "move_left",
	EffectMoveRight:     "move_right",
	EffectClearCommand:  "clear_command",
	EffectAppendCommand: "append_command",
	EffectTrimCommand:   "trim_command",
	EffectRunCommand:    "run_command",
	EffectQuit:          "quit",
}

// String returns the effect name used in logs.
func (e Effect) String() string {
	if name, ok := effectNames[e]; ok {
		return name
	}
	return "unknown"
}

// Transition is the result of feeding one event to the state machine.
type Transition struct {
	Next   Mode
	Effect Effect
}

// Navigation-mode key bindings.
const (
	InsertKey  = 'i'
	CommandKey = ':'
	QuitKey    = 'q'
)

// keyTransitions holds every non-character transition, by mode.
var keyTransitions = map[Mode]map[Key]Transition{
	ModeNavigation: {
		KeyUp:    {ModeNavigation, EffectMoveUp},
		KeyDown:  {ModeNavigation, EffectMoveDown},
		KeyLeft:  {ModeNavigation, EffectMoveLeft},
		KeyRight: {ModeNavigation, EffectMoveRight},
	},
	ModeInsertion: {
		KeyEscape:    {ModeNavigation, EffectNone},
		KeyBackspace: {ModeInsertion, EffectBackspace},
		KeyEnter:     {ModeInsertion, EffectSplitLine},
		KeyUp:        {ModeInsertion, EffectMoveUp},
		KeyDown:      {ModeInsertion, EffectMoveDown},
		KeyLeft:      {ModeInsertion, EffectMoveLeft},
		KeyRight:     {ModeInsertion, EffectMoveRight},
	},
	ModeCommandLine: {
		KeyEnter:     {ModeNavigation, EffectRunCommand},
		KeyEscape:    {ModeNavigation, EffectClearCommand},
		KeyBackspace: {ModeCommandLine, EffectTrimCommand},
	},
}

// navigationRunes holds the character bindings of navigation mode.
var navigationRunes = map[rune]Transition{
	InsertKey:  {ModeInsertion, EffectNone},
	CommandKey: {ModeCommandLine, EffectClearCommand},
	QuitKey:    {ModeNavigation, EffectQuit},
}

// Step is the pure transition function of the mode state machine. Events
// with no defined transition leave the mode unchanged with no effect.
func Step(mode Mode, ev Event) Transition {
	noop := Transition{Next: mode, Effect: EffectNone}

	if ev.Key != KeyRune {
		if t, ok := keyTransitions[mode][ev.Key]; ok {
			return t
		}
		return noop
	}

	switch mode {
	case ModeNavigation:
		if t, ok := navigationRunes[ev.Rune]; ok {
			return t
		}
	case ModeInsertion:
		if printable(ev.Rune) {
			return Transition{ModeInsertion, EffectInsertChar}
		}
	case ModeCommandLine:
		if printable(ev.Rune) {
			return Transition{ModeCommandLine, EffectAppendCommand}
		}
	}
	return noop
}
