package history

// Package history owns the chat log: the in-memory sequence that the UI
// renders and its SQLite-persisted copy. The store is deliberately forgiving
// on the read side — an absent, unreadable, or corrupted database is treated
// as an empty log and logged, never surfaced to the caller.

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"github.com/hmoraes/chatlite/internal/logger"
)

const schema = `CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TEXT NOT NULL
);`

// Store holds the message sequence and mirrors it into SQLite. All mutation
// goes through a single coordinator at a time, but the mutex keeps the store
// safe if a second goroutine ever reads while a request settles.
type Store struct {
	mu       sync.Mutex
	messages []Message
	db       *sql.DB // nil when SQLite is unavailable; memory-only mode
}

// Open opens (or creates) the log database at path. It never fails: if SQLite
// cannot be opened the store degrades to memory-only and logs the condition.
func Open(path string) *Store {
	s := &Store{}

	db, err := sql.Open("sqlite", "file:"+path+"?_busy_timeout=10000")
	if err != nil {
		logger.L.Warn("sqlite open failed; history will not survive restarts", "path", path, "error", err)
		return s
	}
	if _, err := db.Exec(schema); err != nil {
		logger.L.Warn("sqlite schema creation failed; history will not survive restarts", "path", path, "error", err)
		db.Close()
		return s
	}
	s.db = db
	return s
}

// Load reads the persisted sequence into memory and returns it. Malformed or
// missing data is equivalent to an empty log; Load never returns an error.
func (s *Store) Load(ctx context.Context) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	if s.db == nil {
		return nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT kind, content, created_at FROM messages ORDER BY id ASC;`)
	if err != nil {
		logger.L.Warn("history load failed; starting with an empty log", "error", err)
		return nil
	}
	defer rows.Close()

	var loaded []Message
	for rows.Next() {
		var m Message
		var createdAt string
		if err := rows.Scan(&m.Kind, &m.Content, &createdAt); err != nil {
			logger.L.Warn("history row unreadable; starting with an empty log", "error", err)
			return nil
		}
		m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			logger.L.Warn("history timestamp unreadable; starting with an empty log", "error", err)
			return nil
		}
		loaded = append(loaded, m)
	}
	if err := rows.Err(); err != nil {
		logger.L.Warn("history load interrupted; starting with an empty log", "error", err)
		return nil
	}

	s.messages = loaded
	return s.snapshot()
}

// Append adds one record to the end of the in-memory sequence and returns the
// new full sequence. The persisted copy is only touched by Persist.
func (s *Store) Append(_ context.Context, msg Message) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return s.snapshot()
}

// Messages returns a copy of the current in-memory sequence.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Persist rewrites the persisted copy with the given sequence verbatim,
// replacing whatever was stored before.
func (s *Store) Persist(ctx context.Context, seq []Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = make([]Message, len(seq))
	copy(s.messages, seq)

	if s.db == nil {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin persist: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM messages;`); err != nil {
		tx.Rollback()
		return fmt.Errorf("reset persisted log: %w", err)
	}
	for _, m := range seq {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO messages (kind, content, created_at) VALUES (?, ?, ?);`,
			string(m.Kind), m.Content, m.CreatedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("persist message: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit persist: %w", err)
	}
	return nil
}

// Clear empties the in-memory sequence and removes the persisted copy.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	if s.db == nil {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages;`); err != nil {
		return fmt.Errorf("clear persisted log: %w", err)
	}
	return nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) snapshot() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}
