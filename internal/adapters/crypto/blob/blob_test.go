package blob_test

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/NereaCassian/C-3PO/internal/adapters/crypto/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedKey_RoundTrip(t *testing.T) {
	t.Parallel()

	s := blob.NewEmbeddedKey()
	plain := []byte(`{"endpoint":"https://example.test/v1/chat/completions","model":"m","apiKey":"sk-123"}`)

	sealed, err := s.Seal(plain)
	require.NoError(t, err)
	assert.NotContains(t, sealed, "sk-123")

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	// key + nonce + ciphertext + GCM tag
	assert.Len(t, raw, blob.KeySize+blob.NonceSize+len(plain)+16)

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, plain, opened)
}

func TestEmbeddedKey_FreshKeyPerWrite(t *testing.T) {
	t.Parallel()

	s := blob.NewEmbeddedKey()
	a, err := s.Seal([]byte("same"))
	require.NoError(t, err)
	b, err := s.Seal([]byte("same"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestEmbeddedKey_OpenErrors(t *testing.T) {
	t.Parallel()

	s := blob.NewEmbeddedKey()
	tests := []struct {
		name string
		blob string
		want error
	}{
		{name: "not base64", blob: "%%%", want: blob.ErrInvalidBlob},
		{name: "too short", blob: base64.StdEncoding.EncodeToString([]byte("short")), want: blob.ErrInvalidBlob},
		{name: "legacy json", blob: base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 80))), want: blob.ErrDecryptionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Open(tt.blob)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPassphrase_RoundTrip(t *testing.T) {
	t.Parallel()

	s, err := blob.NewPassphrase("correct horse")
	require.NoError(t, err)

	sealed, err := s.Seal([]byte(`{"apiKey":"k"}`))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(sealed, blob.PassphrasePrefix))

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, `{"apiKey":"k"}`, string(opened))
}

func TestPassphrase_WrongPassphrase(t *testing.T) {
	t.Parallel()

	a, err := blob.NewPassphrase("one")
	require.NoError(t, err)
	b, err := blob.NewPassphrase("two")
	require.NoError(t, err)

	sealed, err := a.Seal([]byte("secret"))
	require.NoError(t, err)
	_, err = b.Open(sealed)
	assert.ErrorIs(t, err, blob.ErrDecryptionFailed)
}

func TestPassphrase_ReadsEmbeddedBlobs(t *testing.T) {
	t.Parallel()

	old, err := blob.NewEmbeddedKey().Seal([]byte("before"))
	require.NoError(t, err)

	s, err := blob.NewPassphrase("pw")
	require.NoError(t, err)
	opened, err := s.Open(old)
	require.NoError(t, err)
	assert.Equal(t, "before", string(opened))
}

func TestNewPassphrase_Empty(t *testing.T) {
	t.Parallel()

	_, err := blob.NewPassphrase("")
	assert.ErrorIs(t, err, blob.ErrEmptyPassphrase)
}

func TestDecodeLegacy(t *testing.T) {
	t.Parallel()

	enc := base64.StdEncoding.EncodeToString([]byte(`{"model":"x"}`))
	raw, err := blob.DecodeLegacy(enc)
	require.NoError(t, err)
	assert.Equal(t, `{"model":"x"}`, string(raw))

	_, err = blob.DecodeLegacy("not*base64")
	assert.ErrorIs(t, err, blob.ErrInvalidBlob)
}
