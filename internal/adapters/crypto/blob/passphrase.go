package blob

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// PassphrasePrefix marks blobs sealed with a derived key.
const PassphrasePrefix = "p1:"

const (
	SaltSize      = 16
	argonTime     = 1
	argonMemoryKB = 64 * 1024
	argonThreads  = 4
)

type Passphrase struct {
	passphrase []byte
	rand       io.Reader
	legacy     *EmbeddedKey
}

func NewPassphrase(passphrase string) (*Passphrase, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	return &Passphrase{passphrase: []byte(passphrase), rand: rand.Reader, legacy: NewEmbeddedKey()}, nil
}

func (s *Passphrase) Seal(plaintext []byte) (string, error) {
	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(s.rand, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	sealed, err := sealWithKey(s.rand, s.derive(salt), plaintext)
	if err != nil {
		return "", err
	}
	out := make([]byte, 0, SaltSize+len(sealed))
	out = append(out, salt...)
	out = append(out, sealed...)
	return PassphrasePrefix + base64.StdEncoding.EncodeToString(out), nil
}

// Open also accepts embedded-key blobs so configs written before a passphrase
// was set stay readable until the next write.
func (s *Passphrase) Open(blob string) ([]byte, error) {
	rest, ok := strings.CutPrefix(blob, PassphrasePrefix)
	if !ok {
		return s.legacy.Open(blob)
	}
	raw, err := base64.StdEncoding.DecodeString(rest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlob, err)
	}
	if len(raw) < SaltSize+NonceSize {
		return nil, ErrInvalidBlob
	}
	return openWithKey(s.derive(raw[:SaltSize]), raw[SaltSize:])
}

func (s *Passphrase) derive(salt []byte) []byte {
	return argon2.IDKey(s.passphrase, salt, argonTime, argonMemoryKB, argonThreads, KeySize)
}
