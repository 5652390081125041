// Package pubsub provides a generic publish/subscribe event system used to
// carry editor notices to the host loop.
package pubsub

import (
	"context"
	"time"
)

// EventType names the kind of event. Publishers define their own values.
type EventType string

// Event is a published event with a typed payload. Seq increases by one per
// Publish on the same broker.
type Event[T any] struct {
	Seq       uint64
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber is the receiving side of a Broker, as seen by a host loop.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher is the sending side of a Broker, as seen by code that reports
// events without caring who listens.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
