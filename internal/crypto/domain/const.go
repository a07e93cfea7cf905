// Package domain defines the value types shared by the cryptographic services:
// hash algorithms, cipher variants, the ciphertext envelope, and KMS keepers.
package domain

import (
	"crypto/sha1" //nolint:gosec // SHA1 is only used as the HMAC hash for RFC 6238 compatibility
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"strings"
)

// HashAlgorithm identifies the hash function used by PBKDF2 and HMAC.
//
// The string value is the token persisted in encoded hash records and provisioning
// URIs, so it must never change for an existing algorithm.
type HashAlgorithm string

const (
	// SHA1 is accepted only for TOTP, where authenticator apps assume it by default.
	SHA1 HashAlgorithm = "SHA1"

	// SHA256 is the derivation hash used by the cipher service.
	SHA256 HashAlgorithm = "SHA256"

	// SHA384 is the default hash for password records.
	SHA384 HashAlgorithm = "SHA384"

	// SHA512 is the strongest supported option.
	SHA512 HashAlgorithm = "SHA512"
)

// New returns the constructor for the algorithm's hash.Hash.
// Returns ErrUnsupportedAlgorithm for unknown values.
func (a HashAlgorithm) New() (func() hash.Hash, error) {
	switch a {
	case SHA1:
		return sha1.New, nil
	case SHA256:
		return sha256.New, nil
	case SHA384:
		return sha512.New384, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(a))
	}
}

// String returns the persisted token.
func (a HashAlgorithm) String() string {
	return string(a)
}

// ParseHashAlgorithm converts a token such as "SHA384", "sha-384" or "sha384" to a HashAlgorithm.
func ParseHashAlgorithm(value string) (HashAlgorithm, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(value), "-", ""))
	switch HashAlgorithm(normalized) {
	case SHA1, SHA256, SHA384, SHA512:
		return HashAlgorithm(normalized), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, value)
	}
}

// CipherVariant selects the AES key size used by the cipher service.
type CipherVariant string

const (
	// AES128 derives a 16-byte key.
	AES128 CipherVariant = "aes-128"

	// AES256 derives a 32-byte key.
	AES256 CipherVariant = "aes-256"
)

// KeySize returns the key length in bytes for the variant.
func (v CipherVariant) KeySize() (int, error) {
	switch v {
	case AES128:
		return 16, nil
	case AES256:
		return 32, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, string(v))
	}
}

// ParseCipherVariant converts "aes-128" or "aes-256" to a CipherVariant.
func ParseCipherVariant(value string) (CipherVariant, error) {
	variant := CipherVariant(strings.ToLower(strings.TrimSpace(value)))
	if _, err := variant.KeySize(); err != nil {
		return "", err
	}
	return variant, nil
}
