package blob

import (
	"encoding/base64"
	"fmt"
)

// DecodeLegacy reads configs stored by old versions as plain base64 JSON.
func DecodeLegacy(blob string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlob, err)
	}
	return raw, nil
}
