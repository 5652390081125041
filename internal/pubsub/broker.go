package pubsub

import (
	"context"
	"sync"
	"time"
)

const (
	defaultBufferSize = 8
	defaultRetain     = 4
)

// Broker fans published events out to subscribers.
//
// Publish never blocks. When a subscriber's queue is full the oldest queued
// event is dropped to make room, so a slow reader always sees the most recent
// events. The last few events are retained and replayed to new subscribers,
// which lets a host attach after startup and still see what happened while
// the session was opening a file.
type Broker[T any] struct {
	mu      sync.Mutex
	subs    map[chan Event[T]]struct{}
	recent  []Event[T]
	retain  int
	size    int
	seq     uint64
	dropped int
	closed  bool
	done    chan struct{}
	now     func() time.Time
}

// NewBroker creates a broker with default queue and history sizes.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](defaultBufferSize)
}

// NewBrokerWithBuffer creates a broker whose subscriber queues hold size
// events. size is at least 1.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	return &Broker[T]{
		subs:   make(map[chan Event[T]]struct{}),
		retain: defaultRetain,
		size:   max(size, 1),
		done:   make(chan struct{}),
		now:    time.Now,
	}
}

// Subscribe returns a channel that first receives the retained events, then
// every later one. It is closed when ctx is done or the broker is closed.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := make(chan Event[T], b.size)
	if b.closed {
		close(sub)
		return sub
	}

	for _, ev := range b.recent {
		b.deliver(sub, ev)
	}
	b.subs[sub] = struct{}{}

	go func() {
		select {
		case <-ctx.Done():
			b.unsubscribe(sub)
		case <-b.done:
		}
	}()

	return sub
}

func (b *Broker[T]) unsubscribe(sub chan Event[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub]; !ok {
		return
	}
	delete(b.subs, sub)
	close(sub)
}

// Publish stamps payload with the next sequence number and the current time
// and delivers it. Publishing on a closed broker does nothing.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.seq++
	ev := Event[T]{
		Seq:       b.seq,
		Type:      eventType,
		Payload:   payload,
		Timestamp: b.now(),
	}

	b.recent = append(b.recent, ev)
	if len(b.recent) > b.retain {
		b.recent = b.recent[len(b.recent)-b.retain:]
	}

	for sub := range b.subs {
		b.deliver(sub, ev)
	}
}

// deliver queues ev on sub, evicting the oldest queued event if needed.
// Only the broker sends on sub and it holds mu, so after one eviction the
// send cannot fail.
func (b *Broker[T]) deliver(sub chan Event[T], ev Event[T]) {
	select {
	case sub <- ev:
		return
	default:
	}

	select {
	case <-sub:
		b.dropped++
	default:
	}
	sub <- ev
}

// Latest returns the most recent event, if any was published.
func (b *Broker[T]) Latest() (Event[T], bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.recent) == 0 {
		return Event[T]{}, false
	}
	return b.recent[len(b.recent)-1], true
}

// Dropped counts events evicted from full subscriber queues.
func (b *Broker[T]) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}

// Close closes every subscriber channel. Later calls do nothing.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
	for sub := range b.subs {
		close(sub)
	}
	b.subs = nil
}

// SubscriberCount returns the number of open subscriptions.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
