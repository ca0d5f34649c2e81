package browser

import (
	"context"
	"io"
	"sync"

	"github.com/NereaCassian/C-3PO/internal/ports"
	"github.com/pterm/pterm"
)

var (
	_ ports.Toaster = (*TerminalToaster)(nil)
	_ ports.Toaster = (*RecordingToaster)(nil)
)

// TerminalToaster prints toasts with pterm's prefix printers. Lifetime is
// ignored; a terminal line does not fade.
type TerminalToaster struct {
	success *pterm.PrefixPrinter
	failure *pterm.PrefixPrinter
}

func NewTerminalToaster(w io.Writer) *TerminalToaster {
	return &TerminalToaster{
		success: pterm.Success.WithWriter(w),
		failure: pterm.Error.WithWriter(w),
	}
}

func (t *TerminalToaster) Show(_ context.Context, toast ports.Toast) {
	if toast.Kind == ports.ToastError {
		t.failure.Println(toast.Message)
		return
	}
	t.success.Println(toast.Message)
}

// RecordingToaster remembers every toast shown.
type RecordingToaster struct {
	mu     sync.Mutex
	toasts []ports.Toast
}

func (t *RecordingToaster) Show(_ context.Context, toast ports.Toast) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.toasts = append(t.toasts, toast)
}

func (t *RecordingToaster) Toasts() []ports.Toast {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]ports.Toast(nil), t.toasts...)
}

// Last returns the most recent toast, if any.
func (t *RecordingToaster) Last() (ports.Toast, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.toasts) == 0 {
		return ports.Toast{}, false
	}
	return t.toasts[len(t.toasts)-1], true
}
