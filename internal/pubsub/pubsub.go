// Package pubsub is a minimal in-process broker used to fan events (save
// status, quota warnings, store changes) out to the TUI and other
// subscribers.
package pubsub

import (
	"context"
	"sync"
)

// Event wraps a payload for delivery to subscribers.
type Event[T any] struct {
	Payload T
}

// Broker fans published events out to all active subscribers. Slow
// subscribers drop events rather than blocking publishers; delivery is
// best-effort.
type Broker[T any] struct {
	mu   sync.Mutex
	subs map[chan Event[T]]struct{}
}

// NewBroker creates an empty broker.
func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{subs: make(map[chan Event[T]]struct{})}
}

// Subscribe returns a channel receiving every event published after this
// call. The subscription ends when ctx is done.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	ch := make(chan Event[T], 16)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}()

	return ch
}

// Publish delivers the payload to every subscriber that has buffer room.
func (b *Broker[T]) Publish(payload T) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- Event[T]{Payload: payload}:
		default:
		}
	}
}

// Len returns the number of active subscribers.
func (b *Broker[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
