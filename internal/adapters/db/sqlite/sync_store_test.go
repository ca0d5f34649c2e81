package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/NereaCassian/C-3PO/internal/adapters/db/sqlite"
	"github.com/NereaCassian/C-3PO/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *sqlite.SyncStore {
	t.Helper()
	db, err := sqlite.Init(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlite.NewSyncStore(db)
}

func TestSyncStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, ok, err := s.Get(ctx, "darkMode")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "darkMode", "true"))
	require.NoError(t, s.Set(ctx, "defaultTargetLang", `"de"`))
	require.NoError(t, s.Set(ctx, "darkMode", "false"))

	v, ok, err := s.Get(ctx, "darkMode")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "false", v)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"darkMode", "defaultTargetLang"}, keys)

	require.NoError(t, s.Delete(ctx, "darkMode"))
	_, ok, err = s.Get(ctx, "darkMode")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSyncStore_ChangeNotifications(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	var got []ports.StorageChange
	s.Subscribe(func(_ context.Context, changes []ports.StorageChange) {
		got = append(got, changes...)
	})

	require.NoError(t, s.Set(ctx, "enableSpanishToEnglish", "true"))
	require.NoError(t, s.Set(ctx, "enableSpanishToEnglish", "true"))
	require.NoError(t, s.Set(ctx, "enableSpanishToEnglish", "false"))
	require.NoError(t, s.Delete(ctx, "missing"))

	require.Len(t, got, 2)
	assert.Equal(t, "enableSpanishToEnglish", got[1].Key)
	assert.Equal(t, "true", *got[1].OldValue)
	assert.Equal(t, "false", *got[1].NewValue)
}

func TestInit_FileDatabasePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "c3po.db")

	db, err := sqlite.Init(path)
	require.NoError(t, err)
	require.NoError(t, sqlite.NewSyncStore(db).Set(ctx, "aiConfig", "blob"))
	require.NoError(t, db.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	// migrations are recorded, so reopening does not re-apply them
	db, err = sqlite.Init(path)
	require.NoError(t, err)
	defer db.Close()
	v, ok, err := sqlite.NewSyncStore(db).Get(ctx, "aiConfig")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "blob", v)
}
