package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// StateStore persists strategy state for crash recovery. The engine exports
// its decision-relevant state as a plain mapping; we keep it as a JSON blob
// keyed by bot id so a restarted run can restore grid and trailing context.
type StateStore struct {
	db *sql.DB
}

const stateSchema = `
CREATE TABLE IF NOT EXISTS strategy_state (
	bot_id     TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);`

// NewStateStore opens (or creates) a SQLite database at dbPath and ensures
// the schema exists.
func NewStateStore(dbPath string) (*StateStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(stateSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating state schema: %w", err)
	}
	return &StateStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *StateStore) Close() error {
	return s.db.Close()
}

// Save upserts the state mapping for the given bot id.
func (s *StateStore) Save(ctx context.Context, botID string, state map[string]any) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO strategy_state (bot_id, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(bot_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		botID, string(payload), time.Now().Unix())
	return err
}

// Load returns the saved state mapping for the bot id, or nil if none has
// been saved yet.
func (s *StateStore) Load(ctx context.Context, botID string) (map[string]any, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM strategy_state WHERE bot_id = ?`, botID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var state map[string]any
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("unmarshaling state for %s: %w", botID, err)
	}
	return state, nil
}
