package editor

import (
	"slices"

	"github.com/zjrosen/tide/internal/log"
)

// Action runs a command against a session.
type Action func(s *Session) error

// Interpreter maps completed command-line strings to actions. Names match
// exactly: no prefixes, no case folding, no argument parsing.
type Interpreter struct {
	actions map[string]Action
}

// NewInterpreter creates an empty interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{actions: make(map[string]Action)}
}

// Register binds name to action, replacing any previous binding.
func (i *Interpreter) Register(name string, action Action) {
	i.actions[name] = action
}

// Names returns the registered command names in sorted order.
func (i *Interpreter) Names() []string {
	names := make([]string, 0, len(i.actions))
	for name := range i.actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Execute runs the command named line. recognized is false for unknown
// commands, which are otherwise ignored.
func (i *Interpreter) Execute(s *Session, line string) (recognized bool, err error) {
	action, ok := i.actions[line]
	if !ok {
		log.Debug(log.CatCommand, "unrecognized command ignored", "command", line)
		return false, nil
	}
	log.Debug(log.CatCommand, "running command", "command", line)
	return true, action(s)
}

// DefaultInterpreter returns an interpreter with the built-in commands:
// q, w, wq, set number and set nonumber.
func DefaultInterpreter() *Interpreter {
	i := NewInterpreter()
	i.Register("q", func(s *Session) error {
		s.RequestExit()
		return nil
	})
	i.Register("w", func(s *Session) error {
		return s.Save()
	})
	i.Register("wq", func(s *Session) error {
		if err := s.Save(); err != nil {
			return err
		}
		s.RequestExit()
		return nil
	})
	i.Register("set number", func(s *Session) error {
		s.SetShowLineNumbers(true)
		return nil
	})
	i.Register("set nonumber", func(s *Session) error {
		s.SetShowLineNumbers(false)
		return nil
	})
	return i
}
