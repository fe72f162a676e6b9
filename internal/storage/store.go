package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Fixed keys for the persisted blobs. The names are kept from the original
// planner's storage layout.
const (
	KeyTasks      = "studyTasks"
	KeyGoals      = "studyGoals"
	KeySettings   = "studySettings"
	KeyBackup     = "studyBackup"
	KeyLastBackup = "studyLastBackup"
)

// Store persists whole entity collections as JSON blobs in the kv table.
// Missing keys read as empty; unparseable values surface as *CorruptError and
// failed writes as *WriteError, so callers can recover without dying.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM kv WHERE key = ?`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv read %q: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return nil
}

func (s *Store) saveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &WriteError{Key: key, Err: err}
	}
	return s.put(ctx, key, string(data))
}

// LoadTasks returns the stored task collection. A missing key is an empty
// collection, not an error.
func (s *Store) LoadTasks(ctx context.Context) ([]Task, error) {
	raw, ok, err := s.get(ctx, KeyTasks)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var tasks []Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, &CorruptError{Key: KeyTasks, Err: err}
	}
	return tasks, nil
}

func (s *Store) LoadGoals(ctx context.Context) ([]Goal, error) {
	raw, ok, err := s.get(ctx, KeyGoals)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var goals []Goal
	if err := json.Unmarshal([]byte(raw), &goals); err != nil {
		return nil, &CorruptError{Key: KeyGoals, Err: err}
	}
	return goals, nil
}

// LoadSettings returns stored settings, or the defaults when nothing (or
// nothing readable) is stored.
func (s *Store) LoadSettings(ctx context.Context) (Settings, error) {
	raw, ok, err := s.get(ctx, KeySettings)
	if err != nil {
		return DefaultSettings(), err
	}
	if !ok {
		return DefaultSettings(), nil
	}
	settings := DefaultSettings()
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		return DefaultSettings(), &CorruptError{Key: KeySettings, Err: err}
	}
	return settings, nil
}

func (s *Store) SaveTasks(ctx context.Context, tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	return s.saveJSON(ctx, KeyTasks, tasks)
}

func (s *Store) SaveGoals(ctx context.Context, goals []Goal) error {
	if goals == nil {
		goals = []Goal{}
	}
	return s.saveJSON(ctx, KeyGoals, goals)
}

func (s *Store) SaveSettings(ctx context.Context, settings Settings) error {
	return s.saveJSON(ctx, KeySettings, settings)
}

// SaveBackup writes the snapshot to the dedicated backup slot.
func (s *Store) SaveBackup(ctx context.Context, snap Snapshot) error {
	return s.saveJSON(ctx, KeyBackup, snap)
}

// LoadBackup returns the stored backup snapshot, if any.
func (s *Store) LoadBackup(ctx context.Context) (*Snapshot, error) {
	raw, ok, err := s.get(ctx, KeyBackup)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, &CorruptError{Key: KeyBackup, Err: err}
	}
	return &snap, nil
}

// LastBackupAt returns the time of the last auto-backup, or the zero time
// when none was ever taken.
func (s *Store) LastBackupAt(ctx context.Context) (time.Time, error) {
	raw, ok, err := s.get(ctx, KeyLastBackup)
	if err != nil {
		return time.Time{}, err
	}
	if !ok {
		return time.Time{}, nil
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &CorruptError{Key: KeyLastBackup, Err: err}
	}
	return at, nil
}

func (s *Store) SetLastBackupAt(ctx context.Context, at time.Time) error {
	return s.put(ctx, KeyLastBackup, at.UTC().Format(time.RFC3339))
}
