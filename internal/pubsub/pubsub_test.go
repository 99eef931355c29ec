package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := NewBroker[string]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s1 := b.Subscribe(ctx)
	s2 := b.Subscribe(ctx)

	b.Publish("hello")

	for _, sub := range []<-chan Event[string]{s1, s2} {
		select {
		case evt := <-sub:
			require.Equal(t, "hello", evt.Payload)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestSubscriptionEndsWithContext(t *testing.T) {
	b := NewBroker[int]()
	ctx, cancel := context.WithCancel(context.Background())

	b.Subscribe(ctx)
	require.Equal(t, 1, b.Len())

	cancel()
	require.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestSlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	b := NewBroker[int]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := b.Subscribe(ctx)

	// Flood well past the buffer; Publish must never block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a slow subscriber")
	}

	// The earliest events are still there, newest were dropped.
	evt := <-sub
	require.Equal(t, 0, evt.Payload)
}
