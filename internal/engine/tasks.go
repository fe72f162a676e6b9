package engine

import (
	"context"
	"strings"
	"time"

	"studyplan/internal/storage"
)

type CreateTaskInput struct {
	Title       string
	Subject     string
	Description string
	DueDate     string // YYYY-MM-DD, required
	DueTime     string // HH:MM, optional
	Priority    Priority
}

// TaskPatch names exactly the mutable task fields. ID and CreatedAt cannot
// be patched.
type TaskPatch struct {
	Title       *string
	Subject     *string
	Description *string
	DueDate     *string
	DueTime     *string
	Priority    *Priority
}

func validDateKey(s string) bool {
	_, err := time.ParseInLocation(DateLayout, s, time.UTC)
	return err == nil
}

func validTimeKey(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// CreateTask validates the input, appends the new task to the collection and
// persists it.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*storage.Task, error) {
	var bad []string
	title := strings.TrimSpace(in.Title)
	if title == "" {
		bad = append(bad, "title")
	}
	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		bad = append(bad, "subject")
	}
	due := strings.TrimSpace(in.DueDate)
	if due == "" || !validDateKey(due) {
		bad = append(bad, "dueDate")
	}
	at := strings.TrimSpace(in.DueTime)
	if at != "" && !validTimeKey(at) {
		bad = append(bad, "dueTime")
	}
	if len(bad) > 0 {
		return nil, ValidationError{Fields: bad}
	}

	priority := in.Priority
	if !priority.IsValid() {
		priority = DefaultPriority
	}

	task := storage.Task{
		ID:          GenerateID(),
		Title:       title,
		Subject:     subject,
		Description: strings.TrimSpace(in.Description),
		DueDate:     due,
		DueTime:     at,
		Priority:    string(priority),
		CreatedAt:   s.now(),
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	return &task, s.persistTasks(ctx)
}

// UpdateTask merges the patch into the task with the given id and persists.
func (s *Service) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*storage.Task, error) {
	var bad []string
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		bad = append(bad, "title")
	}
	if patch.Subject != nil && strings.TrimSpace(*patch.Subject) == "" {
		bad = append(bad, "subject")
	}
	if patch.DueDate != nil && !validDateKey(strings.TrimSpace(*patch.DueDate)) {
		bad = append(bad, "dueDate")
	}
	if patch.DueTime != nil && strings.TrimSpace(*patch.DueTime) != "" && !validTimeKey(strings.TrimSpace(*patch.DueTime)) {
		bad = append(bad, "dueTime")
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		bad = append(bad, "priority")
	}
	if len(bad) > 0 {
		return nil, ValidationError{Fields: bad}
	}

	s.mu.Lock()
	i := s.taskIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, NotFoundError{Kind: "task", ID: id}
	}
	t := &s.tasks[i]
	if patch.Title != nil {
		t.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Subject != nil {
		t.Subject = strings.TrimSpace(*patch.Subject)
	}
	if patch.Description != nil {
		t.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.DueDate != nil {
		t.DueDate = strings.TrimSpace(*patch.DueDate)
	}
	if patch.DueTime != nil {
		t.DueTime = strings.TrimSpace(*patch.DueTime)
	}
	if patch.Priority != nil {
		t.Priority = string(*patch.Priority)
	}
	updated := *t
	s.mu.Unlock()

	return &updated, s.persistTasks(ctx)
}

// DeleteTask removes the task with the given id. Deleting a nonexistent id
// is a no-op.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.taskIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.mu.Unlock()

	return s.persistTasks(ctx)
}

// ToggleTask flips completion. CompletedAt is set when completing and cleared
// when un-completing, so it is present exactly when Completed is true.
func (s *Service) ToggleTask(ctx context.Context, id string) (*storage.Task, error) {
	s.mu.Lock()
	i := s.taskIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, NotFoundError{Kind: "task", ID: id}
	}
	t := &s.tasks[i]
	t.Completed = !t.Completed
	if t.Completed {
		at := s.now()
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
	toggled := *t
	s.mu.Unlock()

	return &toggled, s.persistTasks(ctx)
}
