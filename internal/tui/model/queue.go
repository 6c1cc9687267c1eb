package model

import "sync"

// intentQueue is an unbounded FIFO with a single consumer.
type intentQueue struct {
	mu     sync.Mutex
	items  []Event
	closed bool
	ready  chan struct{}
}

func newIntentQueue() *intentQueue {
	return &intentQueue{ready: make(chan struct{}, 1)}
}

func (q *intentQueue) push(ev Event) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.items = append(q.items, ev)
	q.mu.Unlock()
	q.signal()
	return true
}

// pop blocks until an intent is available. It returns false once the
// queue is closed; intents still queued at that point are dropped.
func (q *intentQueue) pop() (Event, bool) {
	for {
		q.mu.Lock()
		if q.closed {
			q.items = nil
			q.mu.Unlock()
			return nil, false
		}
		if len(q.items) > 0 {
			ev := q.items[0]
			q.items[0] = nil
			q.items = q.items[1:]
			q.mu.Unlock()
			return ev, true
		}
		q.mu.Unlock()
		<-q.ready
	}
}

func (q *intentQueue) close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

func (q *intentQueue) signal() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
