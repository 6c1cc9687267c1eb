package model

import (
	"context"
	"sync"
)

// broadcaster delivers each published event to every current subscriber.
// Nothing is replayed; a subscriber with a full buffer misses the event.
type broadcaster struct {
	mu     sync.Mutex
	buf    int
	subs   map[chan Event]struct{}
	closed bool
	done   chan struct{}
}

func newBroadcaster(buf int) *broadcaster {
	if buf < 1 {
		buf = 1
	}
	return &broadcaster{buf: buf, subs: map[chan Event]struct{}{}, done: make(chan struct{})}
}

// publish returns how many subscribers missed ev.
func (b *broadcaster) publish(ev Event) (dropped int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			dropped++
		}
	}
	return dropped
}

func (b *broadcaster) subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, b.buf)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch
	}
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}()
	return ch
}

func (b *broadcaster) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
	close(b.done)
}
