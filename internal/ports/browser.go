package ports

import (
	"context"
	"encoding/json"
	"time"

	"github.com/NereaCassian/C-3PO/internal/domain"
)

// ContextMenus is the browser's right-click menu registry.
type ContextMenus interface {
	RemoveAll(ctx context.Context) error
	Create(ctx context.Context, item domain.MenuItem) error
}

// TabMessenger delivers a message to the content agent of one tab.
type TabMessenger interface {
	SendToTab(ctx context.Context, tabID int, msg domain.Message) error
}

// RuntimeMessenger sends a message to the background context and waits for its reply.
type RuntimeMessenger interface {
	SendMessage(ctx context.Context, msg domain.Message) (json.RawMessage, error)
}

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

type Toast struct {
	Kind     ToastKind
	Message  string
	Lifetime time.Duration
}

// Toaster shows a transient notification on the page.
type Toaster interface {
	Show(ctx context.Context, t Toast)
}

// EditableField is the page element a selection was made in.
// Offsets are rune offsets into Value.
type EditableField interface {
	Kind() domain.FieldKind
	Value() string
	SetValue(v string)
	SetCursor(pos int)
	// DispatchInput lets host-page frameworks observe a programmatic change.
	DispatchInput()
	// ReplaceRange swaps [start,end) for a text node and puts the caret after it.
	// Only content-editable fields support it.
	ReplaceRange(start, end int, text string) error
}
