package blob

import "errors"

var (
	// ErrInvalidBlob indicates the blob is not valid base64 or is truncated.
	ErrInvalidBlob = errors.New("invalid config blob")

	// ErrDecryptionFailed indicates the ciphertext did not authenticate.
	ErrDecryptionFailed = errors.New("config blob decryption failed")

	// ErrEmptyPassphrase indicates a passphrase sealer was built without one.
	ErrEmptyPassphrase = errors.New("empty passphrase")
)
