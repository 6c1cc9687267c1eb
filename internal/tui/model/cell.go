package model

import (
	"context"
	"sync"
)

// stateCell holds the current UIState and fans snapshots out to
// subscribers. Every commit happens under mu, so read-modify-write
// updates never lose each other.
type stateCell struct {
	mu     sync.Mutex
	cur    UIState
	subs   map[chan UIState]struct{}
	closed bool
	done   chan struct{}
}

func newStateCell(initial UIState) *stateCell {
	return &stateCell{cur: initial, subs: map[chan UIState]struct{}{}, done: make(chan struct{})}
}

func (c *stateCell) get() UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cur
}

// update commits fn(current) and returns the committed snapshot. Equal
// snapshots are not republished.
func (c *stateCell) update(fn func(UIState) UIState) UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := fn(c.cur)
	if next.Equal(c.cur) {
		return c.cur
	}
	c.cur = next
	for ch := range c.subs {
		// subscribers are conflated: drop the unread snapshot, keep the newest
		select {
		case <-ch:
		default:
		}
		ch <- next
	}
	return next
}

// subscribe replays the current snapshot and then every newer one until
// ctx is done or the cell is closed.
func (c *stateCell) subscribe(ctx context.Context) <-chan UIState {
	ch := make(chan UIState, 1)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch
	}
	ch <- c.cur
	c.subs[ch] = struct{}{}
	c.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-c.done:
		}
		c.mu.Lock()
		if _, ok := c.subs[ch]; ok {
			delete(c.subs, ch)
			close(ch)
		}
		c.mu.Unlock()
	}()
	return ch
}

func (c *stateCell) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for ch := range c.subs {
		delete(c.subs, ch)
		close(ch)
	}
	close(c.done)
}
