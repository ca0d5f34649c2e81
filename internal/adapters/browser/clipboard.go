package browser

import (
	"context"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/NereaCassian/C-3PO/internal/ports"
	"github.com/aymanbagabas/go-osc52/v2"
)

var (
	_ ports.Clipboard = (*MemoryClipboard)(nil)
	_ ports.Clipboard = (*TerminalClipboard)(nil)
)

// MemoryClipboard keeps the last written text.
type MemoryClipboard struct {
	mu   sync.Mutex
	text string
	// Err, when set, is returned instead of writing.
	Err error
}

func (c *MemoryClipboard) WriteText(_ context.Context, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Err != nil {
		return c.Err
	}
	c.text = text
	return nil
}

func (c *MemoryClipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// TerminalClipboard sets the system clipboard through the OSC 52 escape
// sequence, which most terminal emulators honour, including over SSH.
type TerminalClipboard struct {
	w    io.Writer
	term string
}

func NewTerminalClipboard(w io.Writer) *TerminalClipboard {
	return &TerminalClipboard{w: w, term: os.Getenv("TERM")}
}

func (c *TerminalClipboard) WriteText(_ context.Context, text string) error {
	if c.w == nil {
		return ErrClipboardClosed
	}
	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(c.term, "screen"):
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(c.w)
	return err
}
