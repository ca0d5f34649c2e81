package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/ports"
)

var (
	_ ports.RuntimeMessenger = (*Runtime)(nil)
	_ ports.TabMessenger     = (*Runtime)(nil)
)

// Reply is the single response to a request.
type Reply struct {
	Body json.RawMessage
	Err  error
}

// Runtime connects isolated contexts. Every message is encoded to JSON on
// send and decoded on receipt, so contexts never share memory.
type Runtime struct {
	mu         sync.RWMutex
	background *Router
	tabs       map[int]*Router
	logger     *slog.Logger
	wg         sync.WaitGroup
}

func NewRuntime(logger *slog.Logger) *Runtime {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runtime{tabs: map[int]*Router{}, logger: logger}
}

func (rt *Runtime) SetBackground(r *Router) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.background = r
}

// AttachTab registers the content agent router of a tab.
func (rt *Runtime) AttachTab(tabID int, r *Router) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.tabs[tabID] = r
}

func (rt *Runtime) DetachTab(tabID int) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	delete(rt.tabs, tabID)
}

// Send delivers msg to the background asynchronously; the channel yields one Reply.
func (rt *Runtime) Send(ctx context.Context, msg domain.Message) <-chan Reply {
	rt.mu.RLock()
	target := rt.background
	rt.mu.RUnlock()
	return rt.deliver(ctx, target, "background", msg)
}

// SendMessage is Send followed by a wait for the reply or ctx.
func (rt *Runtime) SendMessage(ctx context.Context, msg domain.Message) (json.RawMessage, error) {
	select {
	case rep := <-rt.Send(ctx, msg):
		return rep.Body, rep.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SendToTab delivers msg to a tab and waits until its agent has handled it.
func (rt *Runtime) SendToTab(ctx context.Context, tabID int, msg domain.Message) error {
	rt.mu.RLock()
	target := rt.tabs[tabID]
	rt.mu.RUnlock()
	select {
	case rep := <-rt.deliver(ctx, target, fmt.Sprintf("tab %d", tabID), msg):
		return rep.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Wait blocks until every in-flight delivery has finished.
func (rt *Runtime) Wait() { rt.wg.Wait() }

func (rt *Runtime) deliver(ctx context.Context, target *Router, name string, msg domain.Message) <-chan Reply {
	out := make(chan Reply, 1)
	if target == nil {
		out <- Reply{Err: fmt.Errorf("%s: %w", name, ErrNoReceiver)}
		return out
	}
	wire, err := Encode(msg)
	if err != nil {
		out <- Reply{Err: err}
		return out
	}
	rt.wg.Add(1)
	go func() {
		defer rt.wg.Done()
		out <- rt.receive(ctx, target, wire)
	}()
	return out
}

func (rt *Runtime) receive(ctx context.Context, target *Router, wire []byte) Reply {
	msg, err := Decode(wire)
	if err != nil {
		return Reply{Err: err}
	}
	rt.logger.Debug("message received", "context", target.Name(), "action", msg.Action())
	resp, err := target.Dispatch(ctx, msg)
	if err != nil {
		return Reply{Err: err}
	}
	if resp == nil {
		return Reply{}
	}
	body, err := json.Marshal(resp)
	if err != nil {
		return Reply{Err: fmt.Errorf("encode reply: %w", err)}
	}
	return Reply{Body: body}
}

// DecodeReply unmarshals a reply body into T.
func DecodeReply[T any](body json.RawMessage) (T, error) {
	var v T
	if len(body) == 0 {
		return v, nil
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("decode reply: %w", err)
	}
	return v, nil
}
