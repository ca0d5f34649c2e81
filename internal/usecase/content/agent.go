// Package content is the agent injected into a page: it remembers what the
// user selected and applies translations that come back for it.
package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/messaging"
	"github.com/NereaCassian/C-3PO/internal/ports"
	"github.com/google/uuid"
)

const (
	ToastLifetime = 3 * time.Second
	// MaxSnapshots bounds how many selections are remembered per page.
	MaxSnapshots = 32

	CopiedMessage = "Translation copied to clipboard"
)

// PointerUp describes the selection at the moment the pointer was released.
// Field is nil when the selection is plain page text.
type PointerUp struct {
	Text  string
	Field ports.EditableField
	Start int
	End   int
}

type snapshot struct {
	sel   domain.Selection
	field ports.EditableField
}

type Deps struct {
	Clipboard ports.Clipboard
	// Fallback is tried when Clipboard fails. Optional.
	Fallback ports.Clipboard
	Toaster  ports.Toaster
	Logger   *slog.Logger
	Now      func() time.Time
}

type Agent struct {
	d      Deps
	router *messaging.Router

	mu    sync.Mutex
	snaps map[string]snapshot
	order []string
}

func New(d Deps) *Agent {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	a := &Agent{d: d, snaps: map[string]snapshot{}}
	a.router = messaging.NewRouter("content", messaging.WithLogger(d.Logger))
	messaging.On(a.router, func(ctx context.Context, m domain.HandleTranslation) (any, error) {
		a.Apply(ctx, m)
		return domain.Ack{Success: true}, nil
	})
	messaging.On(a.router, func(ctx context.Context, m domain.ShowError) (any, error) {
		a.toast(ctx, ports.ToastError, m.Error)
		return domain.Ack{Success: true}, nil
	})
	return a
}

// Router is the agent's dispatch table.
func (a *Agent) Router() *messaging.Router { return a.router }

// OnPointerUp records a non-empty selection and returns its snapshot id.
func (a *Agent) OnPointerUp(ev PointerUp) (string, bool) {
	if strings.TrimSpace(ev.Text) == "" {
		return "", false
	}
	kind := domain.FieldNone
	if ev.Field != nil {
		kind = ev.Field.Kind()
	}
	sel := domain.Selection{
		ID:         uuid.NewString(),
		Text:       ev.Text,
		Kind:       kind,
		Start:      ev.Start,
		End:        ev.End,
		RecordedAt: a.d.Now(),
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.snaps[sel.ID] = snapshot{sel: sel, field: ev.Field}
	a.order = append(a.order, sel.ID)
	if len(a.order) > MaxSnapshots {
		delete(a.snaps, a.order[0])
		a.order = a.order[1:]
	}
	return sel.ID, true
}

// Last returns the most recently recorded selection.
func (a *Agent) Last() (domain.Selection, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, ok := a.lastLocked()
	return s.sel, ok
}

func (a *Agent) lastLocked() (snapshot, bool) {
	if len(a.order) == 0 {
		return snapshot{}, false
	}
	return a.snaps[a.order[len(a.order)-1]], true
}

// target prefers the snapshot the message names and falls back to the last one.
func (a *Agent) target(id string) (snapshot, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id != "" {
		if s, ok := a.snaps[id]; ok {
			return s, true
		}
	}
	return a.lastLocked()
}

// Apply writes a translation back into the selected field, or copies it
// when the selection was not editable.
func (a *Agent) Apply(ctx context.Context, m domain.HandleTranslation) {
	snap, ok := a.target(m.SelectionID)
	if !ok || snap.field == nil || !snap.sel.Editable() {
		a.copy(ctx, m.TranslatedText)
		return
	}

	switch snap.sel.Kind {
	case domain.FieldContentEditable:
		if err := snap.field.ReplaceRange(snap.sel.Start, snap.sel.End, m.TranslatedText); err != nil {
			a.d.Logger.Warn("replace content-editable range", "error", err)
			a.copyAfterFailure(ctx, m.TranslatedText, err)
			return
		}
	default:
		value, cursor := Splice(snap.field.Value(), snap.sel.Start, snap.sel.End, m.TranslatedText)
		snap.field.SetValue(value)
		snap.field.SetCursor(cursor)
		snap.field.DispatchInput()
	}
	a.d.Logger.Debug("translation applied in place", "selection", snap.sel.ID, "kind", snap.sel.Kind)
}

// Splice replaces the rune range [start,end) of value with insert and
// returns the new value and the cursor position after the insert.
// Offsets outside value are clamped.
func Splice(value string, start, end int, insert string) (string, int) {
	r := []rune(value)
	start = clamp(start, 0, len(r))
	end = clamp(end, start, len(r))
	ins := []rune(insert)

	out := make([]rune, 0, len(r)-(end-start)+len(ins))
	out = append(out, r[:start]...)
	out = append(out, ins...)
	out = append(out, r[end:]...)
	return string(out), start + len(ins)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func (a *Agent) copy(ctx context.Context, text string) {
	if err := a.writeClipboard(ctx, text); err != nil {
		a.toast(ctx, ports.ToastError, fmt.Sprintf("Failed to copy translation: %v", err))
		return
	}
	a.toast(ctx, ports.ToastSuccess, CopiedMessage)
}

func (a *Agent) copyAfterFailure(ctx context.Context, text string, cause error) {
	if err := a.writeClipboard(ctx, text); err != nil {
		a.toast(ctx, ports.ToastError, fmt.Sprintf("Failed to replace text (%v) and to copy it: %v", cause, err))
		return
	}
	a.toast(ctx, ports.ToastError, "Could not replace the selected text. "+CopiedMessage)
}

func (a *Agent) writeClipboard(ctx context.Context, text string) error {
	err := a.d.Clipboard.WriteText(ctx, text)
	if err == nil || a.d.Fallback == nil {
		return err
	}
	a.d.Logger.Debug("clipboard write failed, using fallback", "error", err)
	return a.d.Fallback.WriteText(ctx, text)
}

func (a *Agent) toast(ctx context.Context, kind ports.ToastKind, msg string) {
	a.d.Toaster.Show(ctx, ports.Toast{Kind: kind, Message: msg, Lifetime: ToastLifetime})
}
