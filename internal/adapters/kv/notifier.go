package kv

import (
	"context"
	"sync"

	"github.com/NereaCassian/C-3PO/internal/ports"
)

// Notifier fans storage changes out to subscribers, in subscription order.
type Notifier struct {
	mu        sync.RWMutex
	next      int
	listeners map[int]ports.ChangeListener
	order     []int
}

func (n *Notifier) Subscribe(fn ports.ChangeListener) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listeners == nil {
		n.listeners = map[int]ports.ChangeListener{}
	}
	id := n.next
	n.next++
	n.listeners[id] = fn
	n.order = append(n.order, id)
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.listeners, id)
		for i, v := range n.order {
			if v == id {
				n.order = append(n.order[:i], n.order[i+1:]...)
				break
			}
		}
	}
}

func (n *Notifier) Notify(ctx context.Context, changes ...ports.StorageChange) {
	if len(changes) == 0 {
		return
	}
	n.mu.RLock()
	fns := make([]ports.ChangeListener, 0, len(n.order))
	for _, id := range n.order {
		fns = append(fns, n.listeners[id])
	}
	n.mu.RUnlock()
	for _, fn := range fns {
		fn(ctx, changes)
	}
}

// Change builds a StorageChange, or reports false when nothing changed.
func Change(key string, prev, next *string) (ports.StorageChange, bool) {
	if prev == nil && next == nil {
		return ports.StorageChange{}, false
	}
	if prev != nil && next != nil && *prev == *next {
		return ports.StorageChange{}, false
	}
	return ports.StorageChange{Key: key, OldValue: prev, NewValue: next}, true
}
