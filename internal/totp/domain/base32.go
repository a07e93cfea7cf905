package domain

import (
	"encoding/base32"
	"fmt"
	"strings"
)

var rawEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// Base32Encode encodes b with the RFC 4648 alphabet, padded with '=' to a multiple of 8.
func Base32Encode(b []byte) string {
	return base32.StdEncoding.EncodeToString(b)
}

// Base32EncodeUnpadded is Base32Encode without the trailing '=' characters, the form
// authenticator apps expect for manual entry.
func Base32EncodeUnpadded(b []byte) string {
	return rawEncoding.EncodeToString(b)
}

// Base32Decode decodes RFC 4648 base32 text. Trailing '=' is ignored and lowercase
// letters are accepted; any other character outside A-Z and 2-7 yields ErrInvalidBase32.
func Base32Decode(s string) ([]byte, error) {
	normalized := strings.ToUpper(strings.TrimRight(s, "="))

	for i := 0; i < len(normalized); i++ {
		c := normalized[i]
		if (c < 'A' || c > 'Z') && (c < '2' || c > '7') {
			return nil, fmt.Errorf("%w: unexpected character %q at position %d", ErrInvalidBase32, c, i)
		}
	}

	// Lengths of 1, 3 or 6 mod 8 cannot be produced by any input.
	switch len(normalized) % 8 {
	case 1, 3, 6:
		return nil, fmt.Errorf("%w: invalid length %d", ErrInvalidBase32, len(normalized))
	}

	out, err := rawEncoding.DecodeString(normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBase32, err)
	}
	return out, nil
}
