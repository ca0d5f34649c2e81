package app_test

import (
	"context"
	"testing"

	"github.com/NereaCassian/C-3PO/internal/adapters/browser"
	"github.com/NereaCassian/C-3PO/internal/adapters/crypto/blob"
	"github.com/NereaCassian/C-3PO/internal/adapters/kv"
	"github.com/NereaCassian/C-3PO/internal/api/app"
	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/logging"
	"github.com/NereaCassian/C-3PO/internal/messaging"
	"github.com/NereaCassian/C-3PO/internal/usecase/background"
	"github.com/NereaCassian/C-3PO/internal/usecase/configstore"
	"github.com/NereaCassian/C-3PO/internal/usecase/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoTranslator struct{}

func (echoTranslator) Translate(_ context.Context, req domain.TranslationRequest) domain.TranslationResult {
	return domain.Translated("[" + req.TargetLang + "] " + req.Text)
}

func (e echoTranslator) TestConnection(ctx context.Context) domain.TranslationResult {
	return e.Translate(ctx, domain.TranslationRequest{Text: "Hello", SourceLang: "en", TargetLang: "es"})
}

type fixture struct {
	menus     *browser.Menus
	config    *configstore.Store
	settings  *app.SettingsAPI
	translate *app.TranslateAPI
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kv.NewMemory()
	p := prefs.New(store)
	menus := browser.NewMenus()
	rt := messaging.NewRuntime(logging.Discard())
	rt.SetBackground(background.New(background.Deps{
		Prefs:      p,
		Menus:      menus,
		Tabs:       rt,
		Translator: echoTranslator{},
		Logger:     logging.Discard(),
	}).Router())
	t.Cleanup(rt.Wait)

	cfg := configstore.New(store, blob.NewEmbeddedKey(), configstore.WithLogger(logging.Discard()))
	return &fixture{
		menus:     menus,
		config:    cfg,
		settings:  app.NewSettingsAPI(cfg, p, echoTranslator{}, rt),
		translate: app.NewTranslateAPI(rt),
	}
}

func ptr[T any](v T) *T { return &v }

func TestSaveConfig_MasksAndPreservesKey(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	view, err := f.settings.SaveConfig(domain.ProviderPatch{APIKey: ptr("sk-secret-1234")})
	require.NoError(t, err)
	assert.Equal(t, "****1234", view.APIKey)
	assert.True(t, view.Configured)

	// the form posts the masked value back
	view, err = f.settings.SaveConfig(domain.ProviderPatch{Model: ptr(" gpt-x "), APIKey: ptr(view.APIKey)})
	require.NoError(t, err)
	assert.Equal(t, "gpt-x", view.Model)
	assert.Equal(t, "sk-secret-1234", f.config.Get(context.Background()).APIKey)

	_, err = f.settings.SaveConfig(domain.ProviderPatch{APIKey: ptr("")})
	require.NoError(t, err)
	assert.True(t, f.settings.IsConfigured())

	require.NoError(t, f.settings.ResetConfig())
	assert.False(t, f.settings.IsConfigured())
}

func TestCustomMenuItems_UpdateMenus(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	e, err := f.settings.AddCustomMenuItem(domain.ContextMenuEntry{SourceLang: "fr", TargetLang: "de", Enabled: true})
	require.NoError(t, err)
	assert.Contains(t, e.ID, "custom-")
	require.Len(t, f.menus.Items(), 2)
	assert.Equal(t, "Translate French → German", f.menus.Items()[1].Title)

	require.NoError(t, f.settings.SetSpanishShortcut(true))
	assert.Len(t, f.menus.Items(), 3)

	require.NoError(t, f.settings.RemoveCustomMenuItem(e.ID))
	assert.Len(t, f.menus.Items(), 2)
	assert.ErrorIs(t, f.settings.RemoveCustomMenuItem(e.ID), prefs.ErrMenuItemNotFound)
}

func TestCustomMenuItems_RejectsBadLanguages(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.settings.AddCustomMenuItem(domain.ContextMenuEntry{SourceLang: "fr", TargetLang: domain.AutoDetect})
	assert.ErrorIs(t, err, app.ErrInvalidLanguage)
	_, err = f.settings.AddCustomMenuItem(domain.ContextMenuEntry{SourceLang: "not a language", TargetLang: "de"})
	assert.ErrorIs(t, err, app.ErrInvalidLanguage)
	assert.ErrorIs(t, f.settings.SetDefaultLanguages("auto", ""), app.ErrInvalidLanguage)
}

func TestPreferences_RoundTrip(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	p, err := f.settings.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultPreferences(), p)

	p.DarkMode = true
	p.DefaultTargetLang = "ja"
	require.NoError(t, f.settings.SavePreferences(p))
	got, err := f.settings.GetPreferences()
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestTranslateAPI_GoesThroughBackground(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	res, err := f.translate.Translate("Hello", "en", "es")
	require.NoError(t, err)
	assert.Equal(t, domain.Translated("[es] Hello"), res)

	assert.Equal(t, domain.Translated("[es] Hello"), f.settings.TestConnection())
}
