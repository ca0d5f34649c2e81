// Package keyring keeps the config passphrase in the OS credential store.
package keyring

import (
	"errors"
	"fmt"

	gokeyring "github.com/zalando/go-keyring"
)

const (
	Service = "c3po"
	User    = "config-passphrase"
)

var ErrNoPassphrase = errors.New("no passphrase in keyring")

// Passphrase returns the stored passphrase.
func Passphrase() (string, error) {
	v, err := gokeyring.Get(Service, User)
	if errors.Is(err, gokeyring.ErrNotFound) {
		return "", ErrNoPassphrase
	}
	if err != nil {
		return "", fmt.Errorf("keyring get: %w", err)
	}
	return v, nil
}

func SetPassphrase(p string) error {
	if p == "" {
		return errors.New("passphrase is empty")
	}
	if err := gokeyring.Set(Service, User, p); err != nil {
		return fmt.Errorf("keyring set: %w", err)
	}
	return nil
}

// ClearPassphrase removes the passphrase; a missing entry is not an error.
func ClearPassphrase() error {
	err := gokeyring.Delete(Service, User)
	if err != nil && !errors.Is(err, gokeyring.ErrNotFound) {
		return fmt.Errorf("keyring delete: %w", err)
	}
	return nil
}
