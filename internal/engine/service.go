package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"studyplan/internal/storage"
)

// Service owns the session state: the task and goal collections plus
// settings, loaded once and held in memory. Every mutation updates the
// in-memory collections first and then persists through the store; a failed
// write is reported but never rolls the memory state back.
//
// The mutex exists because the TUI and the minute timer read and mutate from
// separate goroutines; there is still a single logical writer per session.
type Service struct {
	store *storage.Store
	log   *zap.Logger
	now   func() time.Time

	mu       sync.RWMutex
	tasks    []storage.Task
	goals    []storage.Goal
	settings storage.Settings
}

func NewService(store *storage.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:    store,
		log:      log,
		now:      time.Now,
		settings: storage.DefaultSettings(),
	}
}

// Load reads all collections from the store. Corrupt or unreadable data is
// logged and replaced with empty defaults; loading never fails the session.
func (s *Service) Load(ctx context.Context) {
	tasks, err := s.store.LoadTasks(ctx)
	if err != nil {
		s.log.Warn("stored tasks unreadable, starting empty", zap.Error(err))
		tasks = nil
	}
	goals, err := s.store.LoadGoals(ctx)
	if err != nil {
		s.log.Warn("stored goals unreadable, starting empty", zap.Error(err))
		goals = nil
	}
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		s.log.Warn("stored settings unreadable, using defaults", zap.Error(err))
		settings = storage.DefaultSettings()
	}

	s.mu.Lock()
	s.tasks, s.goals, s.settings = tasks, goals, settings
	s.mu.Unlock()
}

// Tasks returns a copy of the task collection in insertion order.
func (s *Service) Tasks() []storage.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]storage.Task(nil), s.tasks...)
}

// Goals returns a copy of the goal collection in insertion order.
func (s *Service) Goals() []storage.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]storage.Goal(nil), s.goals...)
}

func (s *Service) Settings() storage.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *Service) UpdateSettings(ctx context.Context, settings storage.Settings) error {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	return s.persistSettings(ctx)
}

func (s *Service) weekStart() time.Weekday {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ws := s.settings.WeekStartsOn
	if ws < 0 || ws > 6 {
		ws = 1
	}
	return time.Weekday(ws)
}

// persistTasks is called with the mutation already applied. A *storage.WriteError
// return means the change stuck in memory but durability was lost.
func (s *Service) persistTasks(ctx context.Context) error {
	s.mu.RLock()
	tasks := append([]storage.Task(nil), s.tasks...)
	s.mu.RUnlock()
	if err := s.store.SaveTasks(ctx, tasks); err != nil {
		s.log.Warn("task save failed, in-memory state kept", zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) persistGoals(ctx context.Context) error {
	s.mu.RLock()
	goals := append([]storage.Goal(nil), s.goals...)
	s.mu.RUnlock()
	if err := s.store.SaveGoals(ctx, goals); err != nil {
		s.log.Warn("goal save failed, in-memory state kept", zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) persistSettings(ctx context.Context) error {
	s.mu.RLock()
	settings := s.settings
	s.mu.RUnlock()
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		s.log.Warn("settings save failed, in-memory state kept", zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) taskIndex(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) goalIndex(id string) int {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return i
		}
	}
	return -1
}
