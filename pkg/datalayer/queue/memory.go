package queue

import "sync"

// MemoryQueue is the in-memory event queue. It stands in for the in-page
// array a tag manager consumes, and is the default queue for a session.
type MemoryQueue struct {
	mu     sync.RWMutex
	events []map[string]any
	closed bool
}

// NewMemory creates a new in-memory event queue.
func NewMemory() *MemoryQueue {
	return &MemoryQueue{}
}

// Push implements Queue.
func (q *MemoryQueue) Push(event map[string]any) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.events = append(q.events, event)
	return nil
}

// Len implements Queue.
func (q *MemoryQueue) Len() (int, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return 0, ErrQueueClosed
	}
	return len(q.events), nil
}

// Events implements Queue. The returned slice is a copy of the append order;
// the envelopes themselves are shared with the queue.
func (q *MemoryQueue) Events() ([]map[string]any, error) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return nil, ErrQueueClosed
	}

	events := make([]map[string]any, len(q.events))
	copy(events, q.events)
	return events, nil
}

// Close implements Queue.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	q.events = nil
	return nil
}
