package domain

import "time"

type FieldKind string

const (
	FieldNone            FieldKind = ""
	FieldInput           FieldKind = "input"
	FieldTextarea        FieldKind = "textarea"
	FieldContentEditable FieldKind = "contenteditable"
)

// Editable reports whether text can be inserted into the field in place.
func (k FieldKind) Editable() bool {
	switch k {
	case FieldInput, FieldTextarea, FieldContentEditable:
		return true
	}
	return false
}

// Selection is a snapshot of the user's selection at pointer release.
// Start and End are rune offsets into the field value.
type Selection struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	Kind       FieldKind `json:"kind"`
	Start      int       `json:"start"`
	End        int       `json:"end"`
	RecordedAt time.Time `json:"recordedAt"`
}

func (s Selection) Editable() bool { return s.Kind.Editable() }
