// Package store is the persistence boundary: whole collections are
// serialized to JSON and written under well-known string keys on every
// mutation. There is no delta writing and no conflict detection; when two
// writers race, the last write wins.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Collection keys. One key holds one JSON-serialized collection.
const (
	KeyCompanies = "crewdesk-companies"
	KeyJobs      = "crewdesk-jobs"
	KeyEntries   = "crewdesk-schedule-entries"
	KeyTags      = "crewdesk-tags"
	KeyPatterns  = "crewdesk-recurring-patterns"
	KeySettings  = "crewdesk-settings"
)

var ErrNotFound = errors.New("not found")

// Store is the load/save-by-key collaborator injected into the engine. The
// aggregation and recurrence code never touches it.
type Store interface {
	// Load unmarshals the value under key into dest. ErrNotFound when the
	// key has never been written; callers fall back to their default.
	Load(ctx context.Context, key string, dest any) error
	// Save marshals value and replaces whatever is under key.
	Save(ctx context.Context, key string, value any) error
}

// SQLite keeps each collection as a JSON document in a single kv table.
// Date-valued fields rehydrate through encoding/json into time.Time on
// every load; the table only ever holds text.
type SQLite struct {
	DB  *sql.DB
	Now func() time.Time
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{DB: db, Now: time.Now}
}

func (s *SQLite) Load(ctx context.Context, key string, dest any) error {
	var payload string
	err := s.DB.QueryRowContext(ctx, `SELECT value FROM kv WHERE key=?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(payload), dest); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	now := s.now().UTC().Format(time.RFC3339)
	_, err = s.DB.ExecContext(ctx, `INSERT INTO kv(key,value,updated_at) VALUES (?,?,?)
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`, key, string(payload), now)
	return err
}

func (s *SQLite) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
