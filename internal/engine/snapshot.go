package engine

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"studyplan/internal/storage"
)

// SnapshotVersion is the export document version.
const SnapshotVersion = "1.0"

// BackupInterval is how long an auto-backup stays fresh.
const BackupInterval = 24 * time.Hour

// ExportSnapshot returns a serializable copy of the full session state.
func (s *Service) ExportSnapshot() storage.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := append([]storage.Task{}, s.tasks...)
	goals := append([]storage.Goal{}, s.goals...)
	return storage.Snapshot{
		Tasks:      tasks,
		Goals:      goals,
		Settings:   s.settings,
		ExportDate: s.now().UTC(),
		Version:    SnapshotVersion,
	}
}

// importDocument distinguishes absent fields from empty ones; tasks and
// goals must be present, everything else is optional.
type importDocument struct {
	Tasks    *[]storage.Task   `json:"tasks"`
	Goals    *[]storage.Goal   `json:"goals"`
	Settings *storage.Settings `json:"settings"`
}

// ImportSnapshot replaces the session state wholesale with the given export
// document and persists all keys. The current state is untouched when the
// payload is rejected.
func (s *Service) ImportSnapshot(ctx context.Context, data []byte) error {
	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return InvalidFormatError{Reason: "not a JSON document"}
	}
	if doc.Tasks == nil || doc.Goals == nil {
		return InvalidFormatError{Reason: "tasks and goals are required"}
	}

	s.mu.Lock()
	s.tasks = *doc.Tasks
	s.goals = *doc.Goals
	if doc.Settings != nil {
		s.settings = *doc.Settings
	}
	s.mu.Unlock()

	if err := s.persistTasks(ctx); err != nil {
		return err
	}
	if err := s.persistGoals(ctx); err != nil {
		return err
	}
	return s.persistSettings(ctx)
}

// Backup unconditionally writes a snapshot to the backup slot and stamps the
// backup time.
func (s *Service) Backup(ctx context.Context) error {
	if err := s.store.SaveBackup(ctx, s.ExportSnapshot()); err != nil {
		return err
	}
	return s.store.SetLastBackupAt(ctx, s.now())
}

// AutoBackup writes a backup unless one was taken within BackupInterval.
// It reports whether a backup was written.
func (s *Service) AutoBackup(ctx context.Context) (bool, error) {
	last, err := s.store.LastBackupAt(ctx)
	if err != nil {
		s.log.Warn("last backup time unreadable", zap.Error(err))
		last = time.Time{}
	}
	if !last.IsZero() && s.now().Sub(last) < BackupInterval {
		return false, nil
	}
	if err := s.Backup(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// LastBackupAt exposes the stored backup timestamp; zero when none exists.
func (s *Service) LastBackupAt(ctx context.Context) time.Time {
	last, err := s.store.LastBackupAt(ctx)
	if err != nil {
		return time.Time{}
	}
	return last
}
