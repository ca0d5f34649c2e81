package background

import "errors"

var (
	ErrUnknownMenuItem = errors.New("unknown menu item")
	ErrEmptySelection  = errors.New("no text selected")
)
