// Package blob seals provider configuration for storage.
//
// EmbeddedKey writes base64(key ‖ nonce ‖ ciphertext) with a fresh AES-256-GCM
// key per write. The key travels with the ciphertext, so this hides the API key
// from casual inspection of the synced store and nothing more: anyone who can
// read the blob can decrypt it. Passphrase derives the key with argon2id from a
// secret that is never written to the store.
package blob

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

const (
	KeySize   = 32
	NonceSize = 12
)

type EmbeddedKey struct {
	rand io.Reader
}

func NewEmbeddedKey() *EmbeddedKey { return &EmbeddedKey{rand: rand.Reader} }

func (s *EmbeddedKey) Seal(plaintext []byte) (string, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(s.rand, key); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	sealed, err := sealWithKey(s.rand, key, plaintext)
	if err != nil {
		return "", err
	}
	out := make([]byte, 0, KeySize+len(sealed))
	out = append(out, key...)
	out = append(out, sealed...)
	return base64.StdEncoding.EncodeToString(out), nil
}

func (s *EmbeddedKey) Open(blob string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlob, err)
	}
	if len(raw) < KeySize+NonceSize {
		return nil, ErrInvalidBlob
	}
	return openWithKey(raw[:KeySize], raw[KeySize:])
}

// sealWithKey returns nonce ‖ ciphertext.
func sealWithKey(r io.Reader, key, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(r, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func openWithKey(key, data []byte) ([]byte, error) {
	if len(data) < NonceSize {
		return nil, ErrInvalidBlob
	}
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	plain, err := gcm.Open(nil, data[:NonceSize], data[NonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}
	return plain, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	return cipher.NewGCM(block)
}
