package ports

import "context"

// KVStore is the synced key-value storage shared by every extension context.
// Values are JSON text.
type KVStore interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// StorageChange describes one key that changed. A nil value means the key
// was absent before (OldValue) or has been removed (NewValue).
type StorageChange struct {
	Key      string
	OldValue *string
	NewValue *string
}

type ChangeListener func(ctx context.Context, changes []StorageChange)

// WatchableStore notifies listeners after writes that change a value.
type WatchableStore interface {
	KVStore
	Subscribe(fn ChangeListener) (unsubscribe func())
}
