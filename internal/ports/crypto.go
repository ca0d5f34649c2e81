package ports

// Sealer turns a plaintext configuration into the text that is persisted and back.
type Sealer interface {
	Seal(plaintext []byte) (string, error)
	Open(blob string) ([]byte, error)
}
