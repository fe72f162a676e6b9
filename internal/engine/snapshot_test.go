package engine

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"studyplan/internal/storage"
)

func TestExportSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	svc.now = func() time.Time { return wednesday }

	_, err := svc.CreateTask(ctx, validTask())
	require.NoError(t, err)
	_, err = svc.CreateGoal(ctx, validGoal())
	require.NoError(t, err)

	snap := svc.ExportSnapshot()
	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.True(t, snap.ExportDate.Equal(wednesday))
	assert.Len(t, snap.Tasks, 1)
	assert.Len(t, snap.Goals, 1)
	assert.Equal(t, storage.DefaultSettings(), snap.Settings)
}

func TestImportSnapshotReplacesState(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, validTask())
	require.NoError(t, err)

	doc := `{
		"tasks": [{"id": "imp-1", "title": "Imported", "subject": "History", "dueDate": "2024-07-01", "priority": "low", "completed": false, "createdAt": "2024-06-01T08:00:00Z"}],
		"goals": [],
		"settings": {"theme": "dark", "notifications": false, "weekStartsOn": 0},
		"exportDate": "2024-06-12T00:00:00Z",
		"version": "1.0"
	}`
	require.NoError(t, svc.ImportSnapshot(ctx, []byte(doc)))

	tasks := svc.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "imp-1", tasks[0].ID)
	assert.Empty(t, svc.Goals())
	assert.Equal(t, "dark", svc.Settings().Theme)

	// The replacement is persisted under all keys.
	fresh := NewService(storage.NewStore(db), zap.NewNop())
	fresh.Load(ctx)
	require.Len(t, fresh.Tasks(), 1)
	assert.Equal(t, "imp-1", fresh.Tasks()[0].ID)
	assert.Equal(t, "dark", fresh.Settings().Theme)
}

func TestImportSnapshotEmptyCollections(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, validTask())
	require.NoError(t, err)

	require.NoError(t, svc.ImportSnapshot(ctx, []byte(`{"tasks": [], "goals": []}`)))
	assert.Equal(t, Stats{}, svc.DashboardStats())
}

func TestImportSnapshotRejectsMissingCollections(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, validTask())
	require.NoError(t, err)

	var ferr InvalidFormatError
	err = svc.ImportSnapshot(ctx, []byte(`{"tasks": []}`))
	require.ErrorAs(t, err, &ferr)
	err = svc.ImportSnapshot(ctx, []byte(`{"goals": []}`))
	require.ErrorAs(t, err, &ferr)
	err = svc.ImportSnapshot(ctx, []byte(`not json at all`))
	require.ErrorAs(t, err, &ferr)

	// Rejected imports leave the current state untouched.
	assert.Len(t, svc.Tasks(), 1)
}

func TestSnapshotJSONShape(t *testing.T) {
	svc, _ := newTestService(t)
	svc.now = func() time.Time { return wednesday }

	data, err := json.Marshal(svc.ExportSnapshot())
	require.NoError(t, err)

	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, field := range []string{"tasks", "goals", "settings", "exportDate", "version"} {
		assert.Contains(t, doc, field)
	}
}

func TestAutoBackupDebounce(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	now := wednesday
	svc.now = func() time.Time { return now }

	_, err := svc.CreateTask(ctx, validTask())
	require.NoError(t, err)

	taken, err := svc.AutoBackup(ctx)
	require.NoError(t, err)
	assert.True(t, taken)

	// Within 24h nothing happens.
	now = now.Add(2 * time.Hour)
	taken, err = svc.AutoBackup(ctx)
	require.NoError(t, err)
	assert.False(t, taken)

	// After the interval a new backup is written.
	now = now.Add(23 * time.Hour)
	taken, err = svc.AutoBackup(ctx)
	require.NoError(t, err)
	assert.True(t, taken)

	// The backup slot holds a full snapshot.
	store := storage.NewStore(db)
	snap, err := store.LoadBackup(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Len(t, snap.Tasks, 1)
	assert.Equal(t, SnapshotVersion, snap.Version)
}
