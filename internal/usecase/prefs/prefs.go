package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/ports"
	"github.com/samber/lo"
)

var (
	ErrDuplicateMenuItem = errors.New("custom menu item already exists")
	ErrMenuItemNotFound  = errors.New("custom menu item not found")
)

// Repo reads and writes user preferences in the synced store.
type Repo struct {
	kv ports.KVStore
}

func New(kv ports.KVStore) *Repo { return &Repo{kv: kv} }

// Load returns stored preferences merged with defaults. Unreadable values
// are treated as unset.
func (r *Repo) Load(ctx context.Context) (domain.Preferences, error) {
	var s domain.StoredPreferences
	var err error
	if s.EnableSpanishToEnglish, err = load[bool](ctx, r.kv, domain.KeyEnableSpanishToEnglish); err != nil {
		return domain.Preferences{}, err
	}
	if s.DarkMode, err = load[bool](ctx, r.kv, domain.KeyDarkMode); err != nil {
		return domain.Preferences{}, err
	}
	items, err := load[[]domain.ContextMenuEntry](ctx, r.kv, domain.KeyCustomMenuItems)
	if err != nil {
		return domain.Preferences{}, err
	}
	if items != nil {
		s.CustomMenuItems = *items
	}
	if s.DefaultSourceLang, err = load[string](ctx, r.kv, domain.KeyDefaultSourceLang); err != nil {
		return domain.Preferences{}, err
	}
	if s.DefaultTargetLang, err = load[string](ctx, r.kv, domain.KeyDefaultTargetLang); err != nil {
		return domain.Preferences{}, err
	}
	return domain.MergeDefaults(s), nil
}

// SeedDefaults writes default values for keys that were never set.
func (r *Repo) SeedDefaults(ctx context.Context) error {
	d := domain.DefaultPreferences()
	seeds := []struct {
		key   string
		value any
	}{
		{domain.KeyDefaultSourceLang, d.DefaultSourceLang},
		{domain.KeyDefaultTargetLang, d.DefaultTargetLang},
		{domain.KeyEnableSpanishToEnglish, d.EnableSpanishToEnglish},
	}
	for _, s := range seeds {
		_, ok, err := r.kv.Get(ctx, s.key)
		if err != nil {
			return err
		}
		if ok {
			continue
		}
		if err := r.put(ctx, s.key, s.value); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) Save(ctx context.Context, p domain.Preferences) error {
	if p.CustomMenuItems == nil {
		p.CustomMenuItems = []domain.ContextMenuEntry{}
	}
	for key, v := range map[string]any{
		domain.KeyEnableSpanishToEnglish: p.EnableSpanishToEnglish,
		domain.KeyDarkMode:               p.DarkMode,
		domain.KeyCustomMenuItems:        p.CustomMenuItems,
		domain.KeyDefaultSourceLang:      p.DefaultSourceLang,
		domain.KeyDefaultTargetLang:      p.DefaultTargetLang,
	} {
		if err := r.put(ctx, key, v); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repo) SetSpanishShortcut(ctx context.Context, enabled bool) error {
	return r.put(ctx, domain.KeyEnableSpanishToEnglish, enabled)
}

func (r *Repo) SetDarkMode(ctx context.Context, enabled bool) error {
	return r.put(ctx, domain.KeyDarkMode, enabled)
}

func (r *Repo) SetDefaultLanguages(ctx context.Context, source, target string) error {
	if err := r.put(ctx, domain.KeyDefaultSourceLang, source); err != nil {
		return err
	}
	return r.put(ctx, domain.KeyDefaultTargetLang, target)
}

// AddMenuItem appends e to the custom menu list.
func (r *Repo) AddMenuItem(ctx context.Context, e domain.ContextMenuEntry) error {
	p, err := r.Load(ctx)
	if err != nil {
		return err
	}
	if lo.ContainsBy(p.CustomMenuItems, func(it domain.ContextMenuEntry) bool { return it.ID == e.ID }) {
		return fmt.Errorf("%w: %s", ErrDuplicateMenuItem, e.ID)
	}
	return r.put(ctx, domain.KeyCustomMenuItems, append(p.CustomMenuItems, e))
}

func (r *Repo) RemoveMenuItem(ctx context.Context, id string) error {
	p, err := r.Load(ctx)
	if err != nil {
		return err
	}
	kept := lo.Reject(p.CustomMenuItems, func(it domain.ContextMenuEntry, _ int) bool { return it.ID == id })
	if len(kept) == len(p.CustomMenuItems) {
		return fmt.Errorf("%w: %s", ErrMenuItemNotFound, id)
	}
	return r.put(ctx, domain.KeyCustomMenuItems, kept)
}

// FindMenuItem looks a custom entry up by id.
func (r *Repo) FindMenuItem(ctx context.Context, id string) (domain.ContextMenuEntry, bool, error) {
	p, err := r.Load(ctx)
	if err != nil {
		return domain.ContextMenuEntry{}, false, err
	}
	e, ok := lo.Find(p.CustomMenuItems, func(it domain.ContextMenuEntry) bool { return it.ID == id })
	return e, ok, nil
}

func (r *Repo) put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.kv.Set(ctx, key, string(b))
}

// load returns nil when the key is missing or holds something that is not a T.
func load[T any](ctx context.Context, kv ports.KVStore, key string) (*T, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, nil
	}
	return &v, nil
}
