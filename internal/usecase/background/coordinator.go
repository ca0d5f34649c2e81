// Package background is the extension's controller context: it owns the
// context menus, relays menu clicks to the translator and answers
// requests from the popup.
package background

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/NereaCassian/C-3PO/internal/adapters/langnames"
	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/messaging"
	"github.com/NereaCassian/C-3PO/internal/ports"
	"github.com/NereaCassian/C-3PO/internal/usecase/prefs"
)

const (
	TitleTranslateSelection = "Translate selection"
	TitleSpanishToEnglish   = "Translate Spanish → English"
)

type Translator interface {
	Translate(ctx context.Context, req domain.TranslationRequest) domain.TranslationResult
}

type Deps struct {
	Prefs      *prefs.Repo
	Menus      ports.ContextMenus
	Tabs       ports.TabMessenger
	Translator Translator
	Logger     *slog.Logger
}

type Coordinator struct {
	d      Deps
	router *messaging.Router
}

func New(d Deps) *Coordinator {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	c := &Coordinator{d: d}
	c.router = messaging.NewRouter("background", messaging.WithLogger(d.Logger))
	messaging.On(c.router, func(ctx context.Context, _ domain.UpdateContextMenus) (any, error) {
		if err := c.RebuildMenus(ctx); err != nil {
			return domain.Ack{Success: false, Error: err.Error()}, nil
		}
		return domain.Ack{Success: true}, nil
	})
	messaging.On(c.router, func(ctx context.Context, m domain.Translate) (any, error) {
		return c.d.Translator.Translate(ctx, m.Data), nil
	})
	return c
}

// Router is the background dispatch table.
func (c *Coordinator) Router() *messaging.Router { return c.router }

func (c *Coordinator) OnInstalled(ctx context.Context) error { return c.boot(ctx, "installed") }

func (c *Coordinator) OnStartup(ctx context.Context) error { return c.boot(ctx, "startup") }

func (c *Coordinator) boot(ctx context.Context, reason string) error {
	c.d.Logger.Info("background starting", "reason", reason)
	if err := c.d.Prefs.SeedDefaults(ctx); err != nil {
		return fmt.Errorf("seed preferences: %w", err)
	}
	return c.RebuildMenus(ctx)
}

// MenuItems lists the entries the current preferences call for.
func MenuItems(p domain.Preferences) []domain.MenuItem {
	items := []domain.MenuItem{{
		ID:       domain.MenuTranslateSelection,
		Title:    TitleTranslateSelection,
		Contexts: []string{domain.MenuContextSelection},
	}}
	if p.EnableSpanishToEnglish {
		items = append(items, domain.MenuItem{
			ID:       domain.MenuSpanishToEnglish,
			Title:    TitleSpanishToEnglish,
			Contexts: []string{domain.MenuContextSelection},
		})
	}
	for _, e := range p.CustomMenuItems {
		if !e.Enabled {
			continue
		}
		items = append(items, domain.MenuItem{
			ID:       e.ID,
			Title:    CustomTitle(e),
			Contexts: []string{domain.MenuContextSelection},
		})
	}
	return items
}

func CustomTitle(e domain.ContextMenuEntry) string {
	return fmt.Sprintf("Translate %s → %s", langnames.Name(e.SourceLang), langnames.Name(e.TargetLang))
}

// RebuildMenus removes every entry and recreates the set from storage.
func (c *Coordinator) RebuildMenus(ctx context.Context) error {
	p, err := c.d.Prefs.Load(ctx)
	if err != nil {
		return err
	}
	if err := c.d.Menus.RemoveAll(ctx); err != nil {
		return fmt.Errorf("remove menus: %w", err)
	}
	items := MenuItems(p)
	for _, it := range items {
		if err := c.d.Menus.Create(ctx, it); err != nil {
			return fmt.Errorf("create menu %s: %w", it.ID, err)
		}
	}
	c.d.Logger.Debug("context menus rebuilt", "count", len(items))
	return nil
}

// Resolve maps a menu item to its language pair.
func (c *Coordinator) Resolve(ctx context.Context, menuItemID string) (src, tgt string, err error) {
	switch menuItemID {
	case domain.MenuSpanishToEnglish:
		return "es", "en", nil
	case domain.MenuTranslateSelection:
		p, err := c.d.Prefs.Load(ctx)
		if err != nil {
			return "", "", err
		}
		return p.DefaultSourceLang, p.DefaultTargetLang, nil
	}
	e, ok, err := c.d.Prefs.FindMenuItem(ctx, menuItemID)
	if err != nil {
		return "", "", err
	}
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrUnknownMenuItem, menuItemID)
	}
	return e.SourceLang, e.TargetLang, nil
}

// OnMenuClick translates the clicked selection and reports back to the tab.
// Every outcome, including a panic, reaches the tab as a message.
func (c *Coordinator) OnMenuClick(ctx context.Context, click domain.MenuClick) {
	var reply domain.Message
	func() {
		defer func() {
			if p := recover(); p != nil {
				c.d.Logger.Error("menu click panicked", "menu", click.MenuItemID, "panic", p, "stack", string(debug.Stack()))
				reply = domain.ShowError{Error: fmt.Sprint(p)}
			}
		}()
		reply = c.translateClick(ctx, click)
	}()

	if err := c.d.Tabs.SendToTab(ctx, click.TabID, reply); err != nil {
		c.d.Logger.Warn("deliver to tab", "tab", click.TabID, "action", reply.Action(), "error", err)
	}
}

func (c *Coordinator) translateClick(ctx context.Context, click domain.MenuClick) domain.Message {
	if strings.TrimSpace(click.SelectionText) == "" {
		return domain.ShowError{Error: ErrEmptySelection.Error()}
	}
	src, tgt, err := c.Resolve(ctx, click.MenuItemID)
	if err != nil {
		return domain.ShowError{Error: err.Error()}
	}
	res := c.d.Translator.Translate(ctx, domain.TranslationRequest{
		Text:       click.SelectionText,
		SourceLang: src,
		TargetLang: tgt,
	})
	if !res.Success {
		return domain.ShowError{Error: res.Error}
	}
	return domain.HandleTranslation{
		OriginalText:   click.SelectionText,
		TranslatedText: res.TranslatedText,
		SourceLang:     src,
		TargetLang:     tgt,
		SelectionID:    click.SelectionID,
	}
}

// OnStorageChanged has the ports.ChangeListener shape so it can be
// subscribed to the synced store directly.
func (c *Coordinator) OnStorageChanged(ctx context.Context, changes []ports.StorageChange) {
	for _, ch := range changes {
		if ch.Key == domain.KeyEnableSpanishToEnglish || ch.Key == domain.KeyCustomMenuItems {
			if err := c.RebuildMenus(ctx); err != nil {
				c.d.Logger.Warn("rebuild menus after storage change", "key", ch.Key, "error", err)
			}
			return
		}
	}
}
