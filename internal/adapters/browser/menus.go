// Package browser holds stand-ins for the platform services an extension
// context talks to: menus, fields, clipboard and toasts.
package browser

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/ports"
)

var _ ports.ContextMenus = (*Menus)(nil)

// Menus is an in-memory context menu registry. Like the browser's, it
// rejects a second item with the same id.
type Menus struct {
	mu    sync.Mutex
	items []domain.MenuItem
}

func NewMenus() *Menus { return &Menus{} }

func (m *Menus) RemoveAll(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return nil
}

func (m *Menus) Create(_ context.Context, item domain.MenuItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if slices.ContainsFunc(m.items, func(it domain.MenuItem) bool { return it.ID == item.ID }) {
		return fmt.Errorf("%w: %s", ErrDuplicateMenuID, item.ID)
	}
	m.items = append(m.items, item)
	return nil
}

// Items returns a copy of the current menu, in creation order.
func (m *Menus) Items() []domain.MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.items)
}
