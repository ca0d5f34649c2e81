package configstore_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/NereaCassian/C-3PO/internal/adapters/crypto/blob"
	"github.com/NereaCassian/C-3PO/internal/adapters/kv"
	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/usecase/configstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

type failingKV struct {
	*kv.Memory
	err error
}

func (f failingKV) Set(context.Context, string, string) error { return f.err }

func TestGet_DefaultWhenAbsent(t *testing.T) {
	t.Parallel()

	s := configstore.New(kv.NewMemory(), blob.NewEmbeddedKey())
	cfg := s.Get(context.Background())
	assert.Equal(t, domain.DefaultProviderConfig(), cfg)
	assert.Empty(t, cfg.APIKey)
	assert.False(t, s.IsConfigured(context.Background()))
}

func TestSet_RoundTripThroughStorage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()

	want := domain.ProviderConfig{Endpoint: "https://llm.example/v1/chat/completions", Model: "tiny", APIKey: "sk-abcdef"}
	w := configstore.New(store, blob.NewEmbeddedKey())
	require.NoError(t, w.Set(ctx, domain.ProviderPatch{Endpoint: &want.Endpoint, Model: &want.Model, APIKey: &want.APIKey}))

	raw, ok, err := store.Get(ctx, domain.KeyProviderConfig)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "sk-abcdef")

	// a second store has no cache and must decrypt
	r := configstore.New(store, blob.NewEmbeddedKey())
	assert.Equal(t, want, r.Get(ctx))
	assert.True(t, r.IsConfigured(ctx))
}

func TestSet_MergesPartial(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := configstore.New(kv.NewMemory(), blob.NewEmbeddedKey())

	require.NoError(t, s.Set(ctx, domain.ProviderPatch{APIKey: ptr("sk-1")}))
	require.NoError(t, s.Set(ctx, domain.ProviderPatch{Model: ptr("other-model")}))

	cfg := s.Get(ctx)
	assert.Equal(t, domain.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, "other-model", cfg.Model)
	assert.Equal(t, "sk-1", cfg.APIKey)
}

func TestIsConfigured(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := configstore.New(kv.NewMemory(), blob.NewEmbeddedKey())

	assert.False(t, s.IsConfigured(ctx))
	require.NoError(t, s.Set(ctx, domain.ProviderPatch{APIKey: ptr("k")}))
	assert.True(t, s.IsConfigured(ctx))
	require.NoError(t, s.Set(ctx, domain.ProviderPatch{Endpoint: ptr("")}))
	assert.False(t, s.IsConfigured(ctx))
}

func TestGet_LegacyAndCorruptBlobs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name string
		raw  string
		want domain.ProviderConfig
	}{
		{
			name: "legacy base64 json",
			raw:  base64.StdEncoding.EncodeToString([]byte(`{"endpoint":"https://old.example","model":"m0","apiKey":"legacy"}`)),
			want: domain.ProviderConfig{Endpoint: "https://old.example", Model: "m0", APIKey: "legacy"},
		},
		{name: "garbage", raw: "!!!not-a-blob!!!", want: domain.DefaultProviderConfig()},
		{name: "base64 but not json", raw: base64.StdEncoding.EncodeToString([]byte("hello")), want: domain.DefaultProviderConfig()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kv.NewMemory()
			require.NoError(t, store.Set(ctx, domain.KeyProviderConfig, tt.raw))
			assert.Equal(t, tt.want, configstore.New(store, blob.NewEmbeddedKey()).Get(ctx))
		})
	}
}

func TestGet_WrongPassphraseFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()

	a, err := blob.NewPassphrase("right")
	require.NoError(t, err)
	require.NoError(t, configstore.New(store, a).Set(ctx, domain.ProviderPatch{APIKey: ptr("secret")}))

	b, err := blob.NewPassphrase("wrong")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProviderConfig(), configstore.New(store, b).Get(ctx))
	assert.Equal(t, "secret", configstore.New(store, a).Get(ctx).APIKey)
}

func TestSet_StorageErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("quota exceeded")
	s := configstore.New(failingKV{Memory: kv.NewMemory(), err: boom}, blob.NewEmbeddedKey())
	err := s.Set(context.Background(), domain.ProviderPatch{APIKey: ptr("k")})
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.IsConfigured(context.Background()))
}

func TestOnChange_EveryWrite(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := configstore.New(kv.NewMemory(), blob.NewEmbeddedKey())

	var seen []domain.ProviderConfig
	s.OnChange(func(_ context.Context, cfg domain.ProviderConfig) { seen = append(seen, cfg) })

	require.NoError(t, s.Set(ctx, domain.ProviderPatch{Model: ptr("m")}))
	require.Len(t, seen, 1)
	assert.Empty(t, seen[0].APIKey)

	require.NoError(t, s.Set(ctx, domain.ProviderPatch{APIKey: ptr("k")}))
	require.Len(t, seen, 2)
	assert.Equal(t, "k", seen[1].APIKey)

	// clearing the key must reach listeners too
	require.NoError(t, s.Set(ctx, domain.ProviderPatch{APIKey: ptr("")}))
	require.Len(t, seen, 3)
	assert.Empty(t, seen[2].APIKey)
	assert.False(t, s.IsConfigured(ctx))

	require.NoError(t, s.Reset(ctx))
	require.Len(t, seen, 4)
	assert.Equal(t, domain.DefaultProviderConfig(), seen[3])
	assert.Equal(t, domain.DefaultProviderConfig(), s.Get(ctx))
}

func TestOnChange_FailedWriteDoesNotNotify(t *testing.T) {
	t.Parallel()

	s := configstore.New(failingKV{Memory: kv.NewMemory(), err: errors.New("quota")}, blob.NewEmbeddedKey())
	called := false
	s.OnChange(func(context.Context, domain.ProviderConfig) { called = true })
	require.Error(t, s.Set(context.Background(), domain.ProviderPatch{APIKey: ptr("k")}))
	assert.False(t, called)
}

func TestWatch_PicksUpWritesFromOtherContexts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemory()

	background := configstore.New(store, blob.NewEmbeddedKey())
	popup := configstore.New(store, blob.NewEmbeddedKey())

	var seen []string
	background.OnChange(func(_ context.Context, cfg domain.ProviderConfig) { seen = append(seen, cfg.APIKey) })
	unsubscribe := background.Watch(store)
	defer unsubscribe()

	assert.Empty(t, background.Get(ctx).APIKey)

	require.NoError(t, popup.Set(ctx, domain.ProviderPatch{APIKey: ptr("from-popup")}))
	assert.Equal(t, "from-popup", background.Get(ctx).APIKey)
	assert.Equal(t, []string{"from-popup"}, seen)

	// own writes notify once, through Set
	require.NoError(t, background.Set(ctx, domain.ProviderPatch{APIKey: ptr("own")}))
	assert.Equal(t, []string{"from-popup", "own"}, seen)

	require.NoError(t, popup.Reset(ctx))
	assert.Empty(t, background.Get(ctx).APIKey)
}

func TestMask(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "****cdef", configstore.Mask("sk-abcdef"))
	assert.Equal(t, "abc", configstore.Mask("abc"))
	assert.Equal(t, "", configstore.Mask(""))
}
