package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/NereaCassian/C-3PO/internal/domain"
)

// HandlerFunc handles one message and returns at most one response.
type HandlerFunc func(ctx context.Context, msg domain.Message) (any, error)

// Router is the dispatch table of one extension context. Handlers may run
// concurrently; components guard their own state.
type Router struct {
	name   string
	mu     sync.RWMutex
	routes map[domain.Action]HandlerFunc
	logger *slog.Logger
}

type RouterOption func(*Router)

func WithLogger(l *slog.Logger) RouterOption {
	return func(r *Router) {
		if l != nil {
			r.logger = l
		}
	}
}

func NewRouter(name string, opts ...RouterOption) *Router {
	r := &Router{name: name, routes: map[domain.Action]HandlerFunc{}, logger: slog.Default()}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Router) Name() string { return r.name }

// Handle registers fn for an action, replacing any previous handler.
func (r *Router) Handle(action domain.Action, fn HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[action] = fn
}

// On registers a handler for the variant T.
func On[T domain.Message](r *Router, fn func(ctx context.Context, msg T) (any, error)) {
	var zero T
	r.Handle(zero.Action(), func(ctx context.Context, msg domain.Message) (any, error) {
		typed, ok := msg.(T)
		if !ok {
			return nil, fmt.Errorf("unexpected payload %T for %s", msg, zero.Action())
		}
		return fn(ctx, typed)
	})
}

// Dispatch runs the handler for msg. Handler panics come back as errors.
func (r *Router) Dispatch(ctx context.Context, msg domain.Message) (resp any, err error) {
	r.mu.RLock()
	fn, ok := r.routes[msg.Action()]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", r.name, ErrUnknownAction, msg.Action())
	}
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("message handler panicked", "context", r.name, "action", msg.Action(), "panic", p, "stack", string(debug.Stack()))
			resp, err = nil, fmt.Errorf("%s handler panicked: %v", msg.Action(), p)
		}
	}()
	return fn(ctx, msg)
}
