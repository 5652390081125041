package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// receive waits for the next event on ch. It reports false once ctx is done
// or ch is closed.
func receive[T any](ctx context.Context, ch <-chan Event[T]) (Event[T], bool) {
	select {
	case <-ctx.Done():
		return Event[T]{}, false
	case ev, ok := <-ch:
		return ev, ok
	}
}

// ContinuousListener keeps one subscription alive across Bubble Tea updates.
// Each Listen delivers only the newest pending event: a status line that
// shows one message at a time has no use for the ones it would immediately
// overwrite. Call Listen again after handling each event.
type ContinuousListener[T any] struct {
	ctx context.Context
	ch  <-chan Event[T]
}

// NewContinuousListener subscribes to broker for the lifetime of ctx.
func NewContinuousListener[T any](ctx context.Context, broker Subscriber[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx: ctx,
		ch:  broker.Subscribe(ctx),
	}
}

func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := receive(l.ctx, l.ch)
		if !ok {
			return nil
		}
		for {
			select {
			case next, open := <-l.ch:
				if !open {
					return ev
				}
				ev = next
			default:
				return ev
			}
		}
	}
}
