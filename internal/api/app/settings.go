package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NereaCassian/C-3PO/internal/adapters/langnames"
	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/messaging"
	"github.com/NereaCassian/C-3PO/internal/ports"
	"github.com/NereaCassian/C-3PO/internal/usecase/configstore"
	"github.com/NereaCassian/C-3PO/internal/usecase/prefs"
	"github.com/google/uuid"
)

var ErrInvalidLanguage = errors.New("invalid language code")

// Tester runs a live translation against the configured provider.
type Tester interface {
	TestConnection(ctx context.Context) domain.TranslationResult
}

// ConfigView is the provider config as shown in settings; the key is masked.
type ConfigView struct {
	Endpoint   string `json:"endpoint"`
	Model      string `json:"model"`
	APIKey     string `json:"apiKey"`
	Configured bool   `json:"configured"`
}

// SettingsAPI backs the popup's settings screen.
type SettingsAPI struct {
	config     *configstore.Store
	prefs      *prefs.Repo
	tester     Tester
	background ports.RuntimeMessenger
}

func NewSettingsAPI(config *configstore.Store, p *prefs.Repo, tester Tester, background ports.RuntimeMessenger) *SettingsAPI {
	return &SettingsAPI{config: config, prefs: p, tester: tester, background: background}
}

func (a *SettingsAPI) GetConfig() ConfigView {
	cfg := a.config.Get(context.Background())
	return ConfigView{
		Endpoint:   cfg.Endpoint,
		Model:      cfg.Model,
		APIKey:     configstore.Mask(cfg.APIKey),
		Configured: cfg.Usable(),
	}
}

// SaveConfig stores a partial config. A masked or empty key from the form
// keeps the stored key.
func (a *SettingsAPI) SaveConfig(p domain.ProviderPatch) (ConfigView, error) {
	ctx := context.Background()
	if p.APIKey != nil && (strings.HasPrefix(*p.APIKey, "****") || *p.APIKey == "") {
		p.APIKey = nil
	}
	if p.Endpoint != nil {
		v := strings.TrimSpace(*p.Endpoint)
		p.Endpoint = &v
	}
	if p.Model != nil {
		v := strings.TrimSpace(*p.Model)
		p.Model = &v
	}
	if err := a.config.Set(ctx, p); err != nil {
		return ConfigView{}, err
	}
	return a.GetConfig(), nil
}

func (a *SettingsAPI) ResetConfig() error {
	return a.config.Reset(context.Background())
}

func (a *SettingsAPI) IsConfigured() bool {
	return a.config.IsConfigured(context.Background())
}

// TestConnection translates a short phrase to validate the saved provider.
func (a *SettingsAPI) TestConnection() domain.TranslationResult {
	return a.tester.TestConnection(context.Background())
}

func (a *SettingsAPI) GetPreferences() (domain.Preferences, error) {
	return a.prefs.Load(context.Background())
}

func (a *SettingsAPI) SavePreferences(p domain.Preferences) error {
	ctx := context.Background()
	if err := validPair(p.DefaultSourceLang, p.DefaultTargetLang); err != nil {
		return err
	}
	if err := a.prefs.Save(ctx, p); err != nil {
		return err
	}
	return a.updateMenus(ctx)
}

func (a *SettingsAPI) SetSpanishShortcut(enabled bool) error {
	ctx := context.Background()
	if err := a.prefs.SetSpanishShortcut(ctx, enabled); err != nil {
		return err
	}
	return a.updateMenus(ctx)
}

func (a *SettingsAPI) SetDarkMode(enabled bool) error {
	return a.prefs.SetDarkMode(context.Background(), enabled)
}

func (a *SettingsAPI) SetDefaultLanguages(source, target string) error {
	if err := validPair(source, target); err != nil {
		return err
	}
	return a.prefs.SetDefaultLanguages(context.Background(), source, target)
}

// AddCustomMenuItem stores a new shortcut; an empty id gets a generated one.
func (a *SettingsAPI) AddCustomMenuItem(e domain.ContextMenuEntry) (domain.ContextMenuEntry, error) {
	ctx := context.Background()
	if err := validPair(e.SourceLang, e.TargetLang); err != nil {
		return domain.ContextMenuEntry{}, err
	}
	if e.ID == "" {
		e.ID = "custom-" + uuid.NewString()[:8]
	}
	if err := a.prefs.AddMenuItem(ctx, e); err != nil {
		return domain.ContextMenuEntry{}, err
	}
	return e, a.updateMenus(ctx)
}

func (a *SettingsAPI) RemoveCustomMenuItem(id string) error {
	ctx := context.Background()
	if err := a.prefs.RemoveMenuItem(ctx, id); err != nil {
		return err
	}
	return a.updateMenus(ctx)
}

func (a *SettingsAPI) updateMenus(ctx context.Context) error {
	body, err := a.background.SendMessage(ctx, domain.UpdateContextMenus{})
	if err != nil {
		return fmt.Errorf("update context menus: %w", err)
	}
	ack, err := messaging.DecodeReply[domain.Ack](body)
	if err != nil {
		return err
	}
	if !ack.Success {
		return fmt.Errorf("update context menus: %s", ack.Error)
	}
	return nil
}

// validPair accepts "auto" only as the source.
func validPair(source, target string) error {
	for _, c := range []string{source, target} {
		if c == "" || !langnames.Valid(c) {
			return fmt.Errorf("%w: %q", ErrInvalidLanguage, c)
		}
	}
	if target == domain.AutoDetect {
		return fmt.Errorf("%w: target cannot be %q", ErrInvalidLanguage, domain.AutoDetect)
	}
	return nil
}
