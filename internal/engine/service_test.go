package engine

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studyplan/internal/storage"
)

func newTestService(t *testing.T) (*Service, *sqlx.DB) {
	t.Helper()
	ctx := context.Background()

	dir := t.TempDir()
	db, err := storage.Open(ctx, filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := NewService(storage.NewStore(db), zap.NewNop())
	svc.Load(ctx)
	return svc, db
}

func validTask() CreateTaskInput {
	return CreateTaskInput{
		Title:    "Read Ch.3",
		Subject:  "Biology",
		DueDate:  "2024-06-10",
		Priority: PriorityHigh,
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, CreateTaskInput{Description: "only a description"})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"title", "subject", "dueDate"}, verr.Fields)
	assert.Empty(t, svc.Tasks())

	_, err = svc.CreateTask(ctx, CreateTaskInput{Title: "x", Subject: "y", DueDate: "10/06/2024"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"dueDate"}, verr.Fields)

	_, err = svc.CreateTask(ctx, CreateTaskInput{Title: "x", Subject: "y", DueDate: "2024-06-10", DueTime: "25:00"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"dueTime"}, verr.Fields)
}

func TestCreateTaskRoundTrip(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, validTask())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.Completed)
	assert.Nil(t, created.CompletedAt)
	assert.False(t, created.CreatedAt.IsZero())

	// A fresh session over the same store sees the same task.
	fresh := NewService(storage.NewStore(db), zap.NewNop())
	fresh.Load(ctx)
	tasks := fresh.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, created.ID, tasks[0].ID)
	assert.Equal(t, "Read Ch.3", tasks[0].Title)
	assert.Equal(t, "Biology", tasks[0].Subject)
	assert.Equal(t, "2024-06-10", tasks[0].DueDate)
	assert.Equal(t, "high", tasks[0].Priority)
	assert.True(t, tasks[0].CreatedAt.Equal(created.CreatedAt))
}

func TestCreateTaskDefaultsPriority(t *testing.T) {
	svc, _ := newTestService(t)
	in := validTask()
	in.Priority = ""
	task, err := svc.CreateTask(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, string(DefaultPriority), task.Priority)
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := GenerateID()
		require.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestToggleTaskIsItsOwnInverse(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, validTask())
	require.NoError(t, err)

	toggled, err := svc.ToggleTask(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)
	require.NotNil(t, toggled.CompletedAt)

	back, err := svc.ToggleTask(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, back.Completed)
	assert.Nil(t, back.CompletedAt)
}

func TestToggleTaskNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ToggleTask(context.Background(), "nope")
	var nferr NotFoundError
	require.ErrorAs(t, err, &nferr)
	assert.Equal(t, "task", nferr.Kind)
}

func TestUpdateTask(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, validTask())
	require.NoError(t, err)

	title := "Read Ch.4"
	due := "2024-06-11"
	p := PriorityLow
	updated, err := svc.UpdateTask(ctx, created.ID, TaskPatch{Title: &title, DueDate: &due, Priority: &p})
	require.NoError(t, err)
	assert.Equal(t, "Read Ch.4", updated.Title)
	assert.Equal(t, "2024-06-11", updated.DueDate)
	assert.Equal(t, "low", updated.Priority)
	// Untouched and immutable fields survive.
	assert.Equal(t, "Biology", updated.Subject)
	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
}

func TestUpdateTaskRejectsEmptyRequiredFields(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, validTask())
	require.NoError(t, err)

	empty := "  "
	_, err = svc.UpdateTask(ctx, created.ID, TaskPatch{Title: &empty})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"title"}, verr.Fields)

	// Clearing the time is allowed: the task becomes all-day.
	at := ""
	updated, err := svc.UpdateTask(ctx, created.ID, TaskPatch{DueTime: &at})
	require.NoError(t, err)
	assert.Empty(t, updated.DueTime)
}

func TestUpdateTaskNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	title := "x"
	_, err := svc.UpdateTask(context.Background(), "nope", TaskPatch{Title: &title})
	var nferr NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestDeleteTaskIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateTask(ctx, validTask())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(ctx, created.ID))
	assert.Empty(t, svc.Tasks())
	require.NoError(t, svc.DeleteTask(ctx, created.ID))
	require.NoError(t, svc.DeleteTask(ctx, "never-existed"))
}

func validGoal() CreateGoalInput {
	return CreateGoalInput{
		Title:       "Finish algebra course",
		Category:    "Math",
		TargetDate:  "2024-08-01",
		TargetValue: 20,
		Unit:        "hours",
	}
}

func TestCreateGoalValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateGoal(ctx, CreateGoalInput{})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"title", "category", "targetDate", "targetValue"}, verr.Fields)

	in := validGoal()
	in.TargetValue = -3
	_, err = svc.CreateGoal(ctx, in)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"targetValue"}, verr.Fields)
}

func TestUpdateGoalProgress(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	goal, err := svc.CreateGoal(ctx, validGoal())
	require.NoError(t, err)
	assert.Zero(t, goal.CurrentValue)
	assert.False(t, goal.Completed)

	// Negative values clamp to zero.
	updated, justCompleted, err := svc.UpdateGoalProgress(ctx, goal.ID, -5)
	require.NoError(t, err)
	assert.Zero(t, updated.CurrentValue)
	assert.False(t, updated.Completed)
	assert.False(t, justCompleted)

	updated, justCompleted, err = svc.UpdateGoalProgress(ctx, goal.ID, 20)
	require.NoError(t, err)
	assert.Equal(t, 20.0, updated.CurrentValue)
	assert.True(t, updated.Completed)
	assert.True(t, justCompleted)

	// Already completed: no second completion event.
	updated, justCompleted, err = svc.UpdateGoalProgress(ctx, goal.ID, 25)
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.False(t, justCompleted)

	// Dropping below the target un-completes; crossing again signals.
	updated, justCompleted, err = svc.UpdateGoalProgress(ctx, goal.ID, 10)
	require.NoError(t, err)
	assert.False(t, updated.Completed)
	assert.False(t, justCompleted)

	_, justCompleted, err = svc.UpdateGoalProgress(ctx, goal.ID, 21)
	require.NoError(t, err)
	assert.True(t, justCompleted)
}

func TestUpdateGoalRecomputesCompletionOnTargetChange(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	goal, err := svc.CreateGoal(ctx, validGoal())
	require.NoError(t, err)

	_, _, err = svc.UpdateGoalProgress(ctx, goal.ID, 15)
	require.NoError(t, err)

	smaller := 10.0
	updated, err := svc.UpdateGoal(ctx, goal.ID, GoalPatch{TargetValue: &smaller})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
}

func TestDeleteGoalIsIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	goal, err := svc.CreateGoal(ctx, validGoal())
	require.NoError(t, err)
	require.NoError(t, svc.DeleteGoal(ctx, goal.ID))
	require.NoError(t, svc.DeleteGoal(ctx, goal.ID))
	assert.Empty(t, svc.Goals())
}

func TestLoadRecoversFromCorruptData(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, validTask())
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `UPDATE kv SET value = '{not json' WHERE key = ?`, storage.KeyTasks)
	require.NoError(t, err)

	fresh := NewService(storage.NewStore(db), zap.NewNop())
	fresh.Load(ctx)
	assert.Empty(t, fresh.Tasks())
	assert.Equal(t, Stats{}, fresh.DashboardStats())
}

func TestServiceDerivationsUseSessionClock(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	svc.now = func() time.Time { return wednesday }

	created, err := svc.CreateTask(ctx, CreateTaskInput{Title: "t", Subject: "s", DueDate: "2024-06-12"})
	require.NoError(t, err)
	_, err = svc.ToggleTask(ctx, created.ID)
	require.NoError(t, err)

	stats := svc.DashboardStats()
	assert.Equal(t, Stats{Total: 1, Completed: 1, Pending: 0, Streak: 1}, stats)
	require.InDelta(t, 100, svc.WeeklyProgress(), 0.001)
}
