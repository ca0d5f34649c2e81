// Package extension composes the three extension contexts over a shared
// synced store and an in-process message runtime.
package extension

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/NereaCassian/C-3PO/internal/adapters/browser"
	"github.com/NereaCassian/C-3PO/internal/adapters/crypto/blob"
	dbsqlite "github.com/NereaCassian/C-3PO/internal/adapters/db/sqlite"
	"github.com/NereaCassian/C-3PO/internal/adapters/keyring"
	llmfactory "github.com/NereaCassian/C-3PO/internal/adapters/llm/factory"
	"github.com/NereaCassian/C-3PO/internal/adapters/prompt"
	apiapp "github.com/NereaCassian/C-3PO/internal/api/app"
	"github.com/NereaCassian/C-3PO/internal/config"
	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/messaging"
	"github.com/NereaCassian/C-3PO/internal/ports"
	"github.com/NereaCassian/C-3PO/internal/usecase/background"
	"github.com/NereaCassian/C-3PO/internal/usecase/configstore"
	"github.com/NereaCassian/C-3PO/internal/usecase/content"
	"github.com/NereaCassian/C-3PO/internal/usecase/prefs"
	"github.com/NereaCassian/C-3PO/internal/usecase/translator"
)

// Sealing modes reported by SealerFor.
const (
	SealEmbedded   = "embedded-key"
	SealPassphrase = "passphrase"
)

// App holds one running extension.
type App struct {
	Logger  *slog.Logger
	Store   ports.WatchableStore
	Runtime *messaging.Runtime
	Menus   *browser.Menus

	Background *background.Coordinator
	// BackgroundConfig is the background context's view of the provider config.
	BackgroundConfig *configstore.Store
	Translator       *translator.Service

	Settings  *apiapp.SettingsAPI
	Translate *apiapp.TranslateAPI
	SealMode  string

	db      *sql.DB
	closers []func()
}

type Options struct {
	// Store replaces the sqlite store, e.g. with kv.Memory in tests.
	Store ports.WatchableStore
	// Sealer replaces the sealer chosen from the config.
	Sealer ports.Sealer
	// ChatBuilder replaces the driver registry.
	ChatBuilder func(domain.ProviderConfig) (ports.ChatClient, error)
	Logger      *slog.Logger
}

// SealerFor picks passphrase sealing when a passphrase is configured
// directly or in the OS keyring, and the embedded-key blob otherwise.
func SealerFor(cfg config.Config, logger *slog.Logger) (ports.Sealer, string, error) {
	pass := cfg.Passphrase
	if pass == "" && cfg.UseKeyring {
		p, err := keyring.Passphrase()
		switch {
		case errors.Is(err, keyring.ErrNoPassphrase):
			logger.Warn("keyring has no passphrase, config is only obfuscated")
		case err != nil:
			return nil, "", err
		default:
			pass = p
		}
	}
	if pass == "" {
		return blob.NewEmbeddedKey(), SealEmbedded, nil
	}
	s, err := blob.NewPassphrase(pass)
	if err != nil {
		return nil, "", err
	}
	return s, SealPassphrase, nil
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{Logger: logger, Menus: browser.NewMenus()}

	a.Store = opts.Store
	if a.Store == nil {
		db, err := dbsqlite.Init(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.Store = dbsqlite.NewSyncStore(db)
	}

	sealer, mode := opts.Sealer, "custom"
	if sealer == nil {
		var err error
		if sealer, mode, err = SealerFor(cfg, logger); err != nil {
			a.Close()
			return nil, err
		}
	}
	a.SealMode = mode

	build := opts.ChatBuilder
	if build == nil {
		reg := llmfactory.Default(cfg.HTTPTimeout)
		if _, ok := reg.Get(cfg.LLMDriver); !ok {
			a.Close()
			return nil, fmt.Errorf("llm driver %q: unknown, have %v", cfg.LLMDriver, reg.Names())
		}
		build = llmfactory.Builder(reg, cfg.LLMDriver)
	}
	renderer := prompt.MustNew()
	p := prefs.New(a.Store)
	a.Runtime = messaging.NewRuntime(logger)

	// background context
	a.BackgroundConfig = configstore.New(a.Store, sealer, configstore.WithLogger(logger.With("context", "background")))
	tr, err := newTranslator(ctx, a.BackgroundConfig, renderer, build, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Translator = tr
	a.closers = append(a.closers, a.BackgroundConfig.Watch(a.Store))
	a.Background = background.New(background.Deps{
		Prefs:      p,
		Menus:      a.Menus,
		Tabs:       a.Runtime,
		Translator: tr,
		Logger:     logger.With("context", "background"),
	})
	a.Runtime.SetBackground(a.Background.Router())
	a.closers = append(a.closers, a.Store.Subscribe(a.Background.OnStorageChanged))

	// popup context
	popupConfig := configstore.New(a.Store, sealer, configstore.WithLogger(logger.With("context", "popup")))
	popupTr, err := newTranslator(ctx, popupConfig, renderer, build, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Settings = apiapp.NewSettingsAPI(popupConfig, p, popupTr, a.Runtime)
	a.Translate = apiapp.NewTranslateAPI(a.Runtime)

	return a, nil
}

// newTranslator binds a translator to a config store so it reloads on every change.
func newTranslator(ctx context.Context, cs *configstore.Store, r ports.PromptRenderer, build func(domain.ProviderConfig) (ports.ChatClient, error), logger *slog.Logger) (*translator.Service, error) {
	tr, err := translator.New(translator.Deps{Prompt: r, Build: build, Logger: logger}, cs.Get(ctx))
	if err != nil {
		return nil, err
	}
	cs.OnChange(func(_ context.Context, cfg domain.ProviderConfig) {
		if err := tr.Reload(cfg); err != nil {
			logger.Error("reload translator", "error", err)
		}
	})
	return tr, nil
}

// Start fires the install event on a fresh store and the startup event otherwise.
func (a *App) Start(ctx context.Context) error {
	_, seeded, err := a.Store.Get(ctx, domain.KeyDefaultTargetLang)
	if err != nil {
		return err
	}
	if !seeded {
		return a.Background.OnInstalled(ctx)
	}
	return a.Background.OnStartup(ctx)
}

// OpenTab injects a content agent into tab id.
func (a *App) OpenTab(id int, d content.Deps) *content.Agent {
	if d.Logger == nil {
		d.Logger = a.Logger.With("context", "content", "tab", id)
	}
	agent := content.New(d)
	a.Runtime.AttachTab(id, agent.Router())
	return agent
}

func (a *App) CloseTab(id int) { a.Runtime.DetachTab(id) }

// Click reports a context menu click to the background and waits until
// the tab has handled the reply.
func (a *App) Click(ctx context.Context, click domain.MenuClick) {
	a.Background.OnMenuClick(ctx, click)
	a.Runtime.Wait()
}

func (a *App) Close() {
	for _, c := range a.closers {
		c()
	}
	a.closers = nil
	if a.Runtime != nil {
		a.Runtime.Wait()
	}
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}
