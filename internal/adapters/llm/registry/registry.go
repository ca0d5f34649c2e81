package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/ports"
)

var ErrUnknownDriver = errors.New("unknown llm driver")

// Builder makes a chat client for a provider configuration.
type Builder func(cfg domain.ProviderConfig) (ports.ChatClient, error)

// Registry holds named chat client builders.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

func New() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

func (r *Registry) Register(name string, b Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = b
}

func (r *Registry) Get(name string) (Builder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[name]
	return b, ok
}

// Names lists registered drivers, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.builders))
	for name := range r.builders {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Build(name string, cfg domain.ProviderConfig) (ports.ChatClient, error) {
	b, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, name)
	}
	return b(cfg)
}
