// Package queue provides the append-only event queue the data layer pushes
// to. The in-memory queue models the in-page array an analytics script
// consumes; the SQLite journal is an optional write-through mirror of the
// emitted stream for debugging and session replay.
package queue

import (
	"errors"
	"log/slog"
)

// Queue is an ordered, append-only collection of event envelopes.
// The data layer core only ever appends; reading is the consumer's side.
// Implementations must be safe for concurrent use.
type Queue interface {
	// Push appends an event envelope to the queue.
	Push(event map[string]any) error

	// Len returns the number of queued events.
	Len() (int, error)

	// Events returns all queued events in append order.
	Events() ([]map[string]any, error)

	// Close releases any resources (connections, files).
	Close() error
}

// ErrQueueClosed indicates the queue has been closed.
var ErrQueueClosed = errors.New("event queue closed")

// Tee fans a push out to every given queue, in order. The first queue is the
// source of truth for Len and Events; the rest are best-effort mirrors (e.g.
// a SQLiteJournal behind the in-memory queue). A failed mirror write is
// logged and skipped; only a primary failure fails the push.
func Tee(primary Queue, mirrors ...Queue) Queue {
	return &tee{primary: primary, mirrors: mirrors}
}

type tee struct {
	primary Queue
	mirrors []Queue
}

func (t *tee) Push(event map[string]any) error {
	if err := t.primary.Push(event); err != nil {
		return err
	}
	for _, m := range t.mirrors {
		if err := m.Push(event); err != nil {
			slog.Warn("event mirror append failed",
				slog.String("error", err.Error()))
		}
	}
	return nil
}

func (t *tee) Len() (int, error) {
	return t.primary.Len()
}

func (t *tee) Events() ([]map[string]any, error) {
	return t.primary.Events()
}

func (t *tee) Close() error {
	err := t.primary.Close()
	for _, m := range t.mirrors {
		if cerr := m.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
