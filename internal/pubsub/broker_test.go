package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testSaved  EventType = "saved"
	testFailed EventType = "failed"
)

func recvEvent[T any](t *testing.T, ch <-chan Event[T]) Event[T] {
	t.Helper()
	select {
	case event, ok := <-ch:
		require.True(t, ok, "channel closed")
		return event
	case <-time.After(time.Second):
		require.Fail(t, "timeout waiting for event")
	}
	return Event[T]{}
}

func TestBroker_Subscribe(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(testSaved, `"main.c" 3L written`)

	event := recvEvent(t, ch)
	require.Equal(t, `"main.c" 3L written`, event.Payload)
	require.Equal(t, testSaved, event.Type)
	require.False(t, event.Timestamp.IsZero())
}

func TestBroker_MultipleSubscribers(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx := context.Background()
	chans := []<-chan Event[int]{broker.Subscribe(ctx), broker.Subscribe(ctx), broker.Subscribe(ctx)}
	require.Equal(t, 3, broker.SubscriberCount())

	broker.Publish(testFailed, 42)

	for _, ch := range chans {
		event := recvEvent(t, ch)
		require.Equal(t, 42, event.Payload)
		require.Equal(t, testFailed, event.Type)
	}
}

func TestBroker_ContextCancellationClosesChannel(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch := broker.Subscribe(ctx)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, 0, broker.SubscriberCount())
}

func TestBroker_FullQueueDropsOldest(t *testing.T) {
	broker := NewBrokerWithBuffer[int](2)
	defer broker.Close()

	ch := broker.Subscribe(context.Background())
	for i := 0; i < 5; i++ {
		broker.Publish(testSaved, i)
	}

	require.Equal(t, 3, recvEvent(t, ch).Payload)
	require.Equal(t, 4, recvEvent(t, ch).Payload)
	require.Equal(t, 3, broker.Dropped())
	select {
	case event := <-ch:
		require.Failf(t, "unexpected event", "%v", event)
	default:
	}
}

func TestBroker_SequenceNumbers(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ch := broker.Subscribe(context.Background())
	broker.Publish(testSaved, "a")
	broker.Publish(testFailed, "b")

	require.Equal(t, uint64(1), recvEvent(t, ch).Seq)
	require.Equal(t, uint64(2), recvEvent(t, ch).Seq)
}

func TestBroker_ReplaysRecentEventsToNewSubscribers(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	for i := 0; i < defaultRetain+2; i++ {
		broker.Publish(testSaved, i)
	}

	ch := broker.Subscribe(context.Background())
	for i := 2; i < defaultRetain+2; i++ {
		require.Equal(t, i, recvEvent(t, ch).Payload)
	}

	broker.Publish(testFailed, 99)
	require.Equal(t, 99, recvEvent(t, ch).Payload)
}

func TestBroker_Latest(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	_, ok := broker.Latest()
	require.False(t, ok)

	broker.Publish(testSaved, "first")
	broker.Publish(testFailed, "second")

	latest, ok := broker.Latest()
	require.True(t, ok)
	require.Equal(t, "second", latest.Payload)
	require.Equal(t, testFailed, latest.Type)
}

func TestBroker_CloseClosesSubscribersAndIgnoresPublish(t *testing.T) {
	broker := NewBroker[string]()
	ch := broker.Subscribe(context.Background())

	broker.Close()
	broker.Close()
	broker.Publish(testSaved, "ignored")

	_, ok := <-ch
	require.False(t, ok)

	late := broker.Subscribe(context.Background())
	_, ok = <-late
	require.False(t, ok)
}
