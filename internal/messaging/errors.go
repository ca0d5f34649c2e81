package messaging

import "errors"

var (
	// ErrUnknownAction is returned when no handler is registered for a message.
	ErrUnknownAction = errors.New("unknown action")

	// ErrMissingAction is returned when an encoded message has no action tag.
	ErrMissingAction = errors.New("message has no action")

	// ErrNoReceiver is returned when the target context is not registered.
	ErrNoReceiver = errors.New("receiving end does not exist")
)
