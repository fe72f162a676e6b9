package engine

import (
	"context"
	"strings"

	"studyplan/internal/storage"
)

type CreateGoalInput struct {
	Title       string
	Category    string
	Description string
	TargetDate  string // YYYY-MM-DD, required
	TargetValue float64
	Unit        string
}

// GoalPatch names exactly the mutable goal fields. CurrentValue and
// Completed are only ever changed through UpdateGoalProgress.
type GoalPatch struct {
	Title       *string
	Category    *string
	Description *string
	TargetDate  *string
	TargetValue *float64
	Unit        *string
}

func (s *Service) CreateGoal(ctx context.Context, in CreateGoalInput) (*storage.Goal, error) {
	var bad []string
	title := strings.TrimSpace(in.Title)
	if title == "" {
		bad = append(bad, "title")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		bad = append(bad, "category")
	}
	target := strings.TrimSpace(in.TargetDate)
	if target == "" || !validDateKey(target) {
		bad = append(bad, "targetDate")
	}
	if in.TargetValue <= 0 {
		bad = append(bad, "targetValue")
	}
	if len(bad) > 0 {
		return nil, ValidationError{Fields: bad}
	}

	goal := storage.Goal{
		ID:          GenerateID(),
		Title:       title,
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		TargetDate:  target,
		TargetValue: in.TargetValue,
		Unit:        strings.TrimSpace(in.Unit),
		CreatedAt:   s.now(),
	}

	s.mu.Lock()
	s.goals = append(s.goals, goal)
	s.mu.Unlock()

	return &goal, s.persistGoals(ctx)
}

func (s *Service) UpdateGoal(ctx context.Context, id string, patch GoalPatch) (*storage.Goal, error) {
	var bad []string
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		bad = append(bad, "title")
	}
	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		bad = append(bad, "category")
	}
	if patch.TargetDate != nil && !validDateKey(strings.TrimSpace(*patch.TargetDate)) {
		bad = append(bad, "targetDate")
	}
	if patch.TargetValue != nil && *patch.TargetValue <= 0 {
		bad = append(bad, "targetValue")
	}
	if len(bad) > 0 {
		return nil, ValidationError{Fields: bad}
	}

	s.mu.Lock()
	i := s.goalIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, NotFoundError{Kind: "goal", ID: id}
	}
	g := &s.goals[i]
	if patch.Title != nil {
		g.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Category != nil {
		g.Category = strings.TrimSpace(*patch.Category)
	}
	if patch.Description != nil {
		g.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.TargetDate != nil {
		g.TargetDate = strings.TrimSpace(*patch.TargetDate)
	}
	if patch.TargetValue != nil {
		g.TargetValue = *patch.TargetValue
		g.Completed = g.CurrentValue >= g.TargetValue
	}
	if patch.Unit != nil {
		g.Unit = strings.TrimSpace(*patch.Unit)
	}
	updated := *g
	s.mu.Unlock()

	return &updated, s.persistGoals(ctx)
}

// DeleteGoal removes the goal with the given id; absent ids are a no-op.
func (s *Service) DeleteGoal(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.goalIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.goals = append(s.goals[:i], s.goals[i+1:]...)
	s.mu.Unlock()

	return s.persistGoals(ctx)
}

// UpdateGoalProgress sets CurrentValue (clamped to >= 0) and recomputes
// Completed. The second return reports a false-to-true completion
// transition, for the caller to surface as a notification.
func (s *Service) UpdateGoalProgress(ctx context.Context, id string, value float64) (*storage.Goal, bool, error) {
	if value < 0 {
		value = 0
	}

	s.mu.Lock()
	i := s.goalIndex(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, false, NotFoundError{Kind: "goal", ID: id}
	}
	g := &s.goals[i]
	wasCompleted := g.Completed
	g.CurrentValue = value
	g.Completed = g.CurrentValue >= g.TargetValue
	justCompleted := !wasCompleted && g.Completed
	updated := *g
	s.mu.Unlock()

	return &updated, justCompleted, s.persistGoals(ctx)
}
