package prefs_test

import (
	"context"
	"testing"

	"github.com/NereaCassian/C-3PO/internal/adapters/kv"
	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/usecase/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	p, err := prefs.New(kv.NewMemory()).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences(), p)
}

func TestLoad_StoredValuesWin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, domain.KeyEnableSpanishToEnglish, "false"))
	require.NoError(t, store.Set(ctx, domain.KeyDefaultTargetLang, `"de"`))
	require.NoError(t, store.Set(ctx, domain.KeyCustomMenuItems, `[{"id":"custom-1","sourceLang":"fr","targetLang":"de","enabled":true}]`))
	require.NoError(t, store.Set(ctx, domain.KeyDarkMode, `"garbage"`))

	p, err := prefs.New(store).Load(ctx)
	require.NoError(t, err)
	assert.False(t, p.EnableSpanishToEnglish)
	assert.False(t, p.DarkMode)
	assert.Equal(t, "auto", p.DefaultSourceLang)
	assert.Equal(t, "de", p.DefaultTargetLang)
	assert.Equal(t, []domain.ContextMenuEntry{{ID: "custom-1", SourceLang: "fr", TargetLang: "de", Enabled: true}}, p.CustomMenuItems)
}

func TestSeedDefaults_OnlyMissingKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, domain.KeyEnableSpanishToEnglish, "false"))

	require.NoError(t, prefs.New(store).SeedDefaults(ctx))

	v, _, _ := store.Get(ctx, domain.KeyEnableSpanishToEnglish)
	assert.Equal(t, "false", v)
	v, _, _ = store.Get(ctx, domain.KeyDefaultSourceLang)
	assert.Equal(t, `"auto"`, v)
	v, _, _ = store.Get(ctx, domain.KeyDefaultTargetLang)
	assert.Equal(t, `"en"`, v)
	_, ok, _ := store.Get(ctx, domain.KeyDarkMode)
	assert.False(t, ok)
}

func TestMenuItems(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := prefs.New(kv.NewMemory())

	e := domain.ContextMenuEntry{ID: "custom-1", SourceLang: "fr", TargetLang: "de", Enabled: true}
	require.NoError(t, r.AddMenuItem(ctx, e))
	require.NoError(t, r.AddMenuItem(ctx, domain.ContextMenuEntry{ID: "custom-2", SourceLang: "en", TargetLang: "ja"}))
	assert.ErrorIs(t, r.AddMenuItem(ctx, e), prefs.ErrDuplicateMenuItem)

	got, ok, err := r.FindMenuItem(ctx, "custom-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, e, got)

	require.NoError(t, r.RemoveMenuItem(ctx, "custom-1"))
	assert.ErrorIs(t, r.RemoveMenuItem(ctx, "custom-1"), prefs.ErrMenuItemNotFound)

	p, err := r.Load(ctx)
	require.NoError(t, err)
	require.Len(t, p.CustomMenuItems, 1)
	assert.Equal(t, "custom-2", p.CustomMenuItems[0].ID)
}

func TestSave_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	r := prefs.New(kv.NewMemory())

	want := domain.Preferences{DarkMode: true, DefaultSourceLang: "es", DefaultTargetLang: "fr", CustomMenuItems: []domain.ContextMenuEntry{}}
	require.NoError(t, r.Save(ctx, want))
	got, err := r.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
