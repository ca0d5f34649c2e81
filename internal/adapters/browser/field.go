package browser

import (
	"fmt"

	"github.com/NereaCassian/C-3PO/internal/domain"
	"github.com/NereaCassian/C-3PO/internal/ports"
)

var _ ports.EditableField = (*Field)(nil)

// Field models a page element as a plain string value.
type Field struct {
	kind   domain.FieldKind
	value  []rune
	cursor int
	inputs int

	// FailReplace makes ReplaceRange fail, as a detached DOM range would.
	FailReplace bool
}

func NewField(kind domain.FieldKind, value string) *Field {
	return &Field{kind: kind, value: []rune(value)}
}

func (f *Field) Kind() domain.FieldKind { return f.kind }
func (f *Field) Value() string          { return string(f.value) }
func (f *Field) SetValue(v string)      { f.value = []rune(v) }
func (f *Field) SetCursor(pos int)      { f.cursor = pos }
func (f *Field) Cursor() int            { return f.cursor }
func (f *Field) DispatchInput()         { f.inputs++ }

// Inputs counts dispatched input events.
func (f *Field) Inputs() int { return f.inputs }

func (f *Field) ReplaceRange(start, end int, text string) error {
	if f.kind != domain.FieldContentEditable {
		return ErrNotContentEditable
	}
	if f.FailReplace {
		return fmt.Errorf("replace range: node detached")
	}
	if start < 0 || end < start || end > len(f.value) {
		return fmt.Errorf("%w: [%d,%d) of %d", ErrRangeOutOfBounds, start, end, len(f.value))
	}
	ins := []rune(text)
	out := make([]rune, 0, len(f.value)-(end-start)+len(ins))
	out = append(out, f.value[:start]...)
	out = append(out, ins...)
	out = append(out, f.value[end:]...)
	f.value = out
	f.cursor = start + len(ins)
	return nil
}
