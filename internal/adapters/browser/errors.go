package browser

import "errors"

var (
	ErrDuplicateMenuID    = errors.New("duplicate menu item id")
	ErrNotContentEditable = errors.New("field is not content-editable")
	ErrRangeOutOfBounds   = errors.New("range out of bounds")
	ErrClipboardClosed    = errors.New("clipboard unavailable")
)
