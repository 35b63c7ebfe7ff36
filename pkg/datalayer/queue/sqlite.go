package queue

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteJournal persists every pushed envelope to SQLite, keyed by session.
// It is meant as a write-through mirror behind the in-memory queue (see Tee)
// so an emitted session can be inspected or replayed after the fact. The
// data layer core never reads it back.
type SQLiteJournal struct {
	db        *sql.DB
	sessionID string
	mu        sync.RWMutex
	closed    bool
}

// NewSQLiteJournal opens (or creates) a journal database at path and scopes
// all writes to the given session ID. Use ":memory:" for testing.
func NewSQLiteJournal(path, sessionID string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	// WAL keeps concurrent readers cheap while a session is still writing
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS events (
			session_id TEXT NOT NULL,
			sequence INTEGER NOT NULL,
			event_name TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			envelope BLOB NOT NULL,
			PRIMARY KEY (session_id, sequence)
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_events_session
		ON events(session_id)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session index: %w", err)
	}

	return &SQLiteJournal{db: db, sessionID: sessionID}, nil
}

// Push implements Queue.
func (j *SQLiteJournal) Push(event map[string]any) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrQueueClosed
	}

	envelope, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	name, _ := event["event"].(string)

	_, err = j.db.Exec(`
		INSERT INTO events (session_id, sequence, event_name, timestamp, envelope)
		VALUES (
			?,
			COALESCE((SELECT MAX(sequence) FROM events WHERE session_id = ?), 0) + 1,
			?, ?, ?
		)
	`, j.sessionID, j.sessionID, name, time.Now().UTC().Format(time.RFC3339Nano), envelope)

	if err != nil {
		return fmt.Errorf("journal event: %w", err)
	}
	return nil
}

// Len implements Queue.
func (j *SQLiteJournal) Len() (int, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.closed {
		return 0, ErrQueueClosed
	}

	var count int
	err := j.db.QueryRow(`
		SELECT COUNT(*) FROM events WHERE session_id = ?
	`, j.sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count journaled events: %w", err)
	}
	return count, nil
}

// Events implements Queue, returning this session's envelopes in emit order.
func (j *SQLiteJournal) Events() ([]map[string]any, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.closed {
		return nil, ErrQueueClosed
	}

	rows, err := j.db.Query(`
		SELECT envelope FROM events
		WHERE session_id = ?
		ORDER BY sequence
	`, j.sessionID)
	if err != nil {
		return nil, fmt.Errorf("list journaled events: %w", err)
	}
	defer rows.Close()

	var events []map[string]any
	for rows.Next() {
		var envelope []byte
		if err := rows.Scan(&envelope); err != nil {
			return nil, fmt.Errorf("scan envelope: %w", err)
		}
		var event map[string]any
		if err := json.Unmarshal(envelope, &event); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journaled events: %w", err)
	}

	return events, nil
}

// Sessions returns the distinct session IDs present in the journal.
func (j *SQLiteJournal) Sessions() ([]string, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.closed {
		return nil, ErrQueueClosed
	}

	rows, err := j.db.Query(`SELECT DISTINCT session_id FROM events ORDER BY session_id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		sessions = append(sessions, id)
	}
	return sessions, rows.Err()
}

// Close implements Queue.
func (j *SQLiteJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return nil
	}

	j.closed = true
	return j.db.Close()
}
