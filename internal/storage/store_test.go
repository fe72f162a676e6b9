package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *sqlx.DB) {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db), db
}

func TestLoadTasksMissingKey(t *testing.T) {
	store, _ := newTestStore(t)
	tasks, err := store.LoadTasks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTasksRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	completedAt := time.Date(2024, 6, 12, 10, 30, 0, 0, time.UTC)
	in := []Task{
		{
			ID:        "a1",
			Title:     "Read Ch.3",
			Subject:   "Biology",
			DueDate:   "2024-06-10",
			DueTime:   "14:00",
			Priority:  "high",
			CreatedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          "a2",
			Title:       "Flashcards",
			Subject:     "Spanish",
			DueDate:     "2024-06-12",
			Priority:    "low",
			Completed:   true,
			CreatedAt:   time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC),
			CompletedAt: &completedAt,
		},
	}
	require.NoError(t, store.SaveTasks(ctx, in))

	out, err := store.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, in[0].ID, out[0].ID)
	assert.Equal(t, in[0].DueTime, out[0].DueTime)
	assert.Nil(t, out[0].CompletedAt)
	assert.True(t, out[1].Completed)
	require.NotNil(t, out[1].CompletedAt)
	assert.True(t, out[1].CompletedAt.Equal(completedAt))
}

func TestSaveOverwrites(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveTasks(ctx, []Task{{ID: "a"}, {ID: "b"}}))
	require.NoError(t, store.SaveTasks(ctx, []Task{{ID: "c"}}))

	out, err := store.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "c", out[0].ID)
}

func TestLoadTasksCorrupt(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`, KeyTasks, "][ garbage")
	require.NoError(t, err)

	tasks, err := store.LoadTasks(ctx)
	var cerr *CorruptError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KeyTasks, cerr.Key)
	assert.Empty(t, tasks)
}

func TestGoalsRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := []Goal{{
		ID:           "g1",
		Title:        "Finish algebra course",
		Category:     "Math",
		TargetDate:   "2024-08-01",
		TargetValue:  20,
		CurrentValue: 7.5,
		Unit:         "hours",
		CreatedAt:    time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}}
	require.NoError(t, store.SaveGoals(ctx, in))

	out, err := store.LoadGoals(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 7.5, out[0].CurrentValue)
	assert.Equal(t, "hours", out[0].Unit)
}

func TestLoadSettingsDefaults(t *testing.T) {
	store, db := newTestStore(t)
	ctx := context.Background()

	settings, err := store.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), settings)

	// Corrupt settings also fall back to defaults, with the error exposed.
	_, err = db.ExecContext(ctx, `INSERT INTO kv (key, value) VALUES (?, ?)`, KeySettings, "{{{{")
	require.NoError(t, err)
	settings, err = store.LoadSettings(ctx)
	var cerr *CorruptError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, DefaultSettings(), settings)
}

func TestSettingsRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := Settings{Theme: "dark", Notifications: false, WeekStartsOn: 0}
	require.NoError(t, store.SaveSettings(ctx, in))

	out, err := store.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLastBackupAt(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	at, err := store.LastBackupAt(ctx)
	require.NoError(t, err)
	assert.True(t, at.IsZero())

	stamp := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)
	require.NoError(t, store.SetLastBackupAt(ctx, stamp))

	at, err = store.LastBackupAt(ctx)
	require.NoError(t, err)
	assert.True(t, at.Equal(stamp))
}

func TestBackupRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	snap, err := store.LoadBackup(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)

	in := Snapshot{
		Tasks:      []Task{{ID: "a"}},
		Goals:      []Goal{},
		Settings:   DefaultSettings(),
		ExportDate: time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC),
		Version:    "1.0",
	}
	require.NoError(t, store.SaveBackup(ctx, in))

	snap, err = store.LoadBackup(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "1.0", snap.Version)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "a", snap.Tasks[0].ID)
}
