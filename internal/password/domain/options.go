// Package domain defines password hashing options, the encoded hash record and
// declarative password rules.
package domain

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
)

// Encoding selects how hash and salt bytes are written into a record.
type Encoding string

const (
	// Hex writes lowercase hexadecimal.
	Hex Encoding = "Hex"

	// Base64 writes standard padded base64.
	Base64 Encoding = "Base64"
)

// ParseEncoding accepts the record tokens case-insensitively.
func ParseEncoding(value string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "hex":
		return Hex, nil
	case "base64":
		return Base64, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, value)
	}
}

// EncodeToString encodes b with the encoding.
func (e Encoding) EncodeToString(b []byte) (string, error) {
	switch e {
	case Hex:
		return hex.EncodeToString(b), nil
	case Base64:
		return base64.StdEncoding.EncodeToString(b), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedEncoding, string(e))
	}
}

// DecodeString reverses EncodeToString.
func (e Encoding) DecodeString(s string) ([]byte, error) {
	switch e {
	case Hex:
		return hex.DecodeString(s)
	case Base64:
		return base64.StdEncoding.DecodeString(s)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedEncoding, string(e))
	}
}

// String returns the record token.
func (e Encoding) String() string {
	return string(e)
}

const (
	// MaxRecordKeySize caps the hash length a record may ask verification to derive.
	MaxRecordKeySize = 64

	// verifyIterationsFactor sets the default verification ceiling as a multiple of MaxIterations.
	verifyIterationsFactor = 4
)

// HashOptions configures new password hashes. Verification derives with the parameters
// stored in each record, bounded by MaxVerifyIterations and MaxRecordKeySize.
type HashOptions struct {
	SaltLength    int
	KeySize       int
	MinIterations int
	MaxIterations int
	// MaxVerifyIterations is the highest iteration count Verify accepts from a record.
	// Zero means four times MaxIterations.
	MaxVerifyIterations int
	Algorithm           cryptoDomain.HashAlgorithm
	Encoding            Encoding
}

// DefaultHashOptions returns 16-byte salts, 32-byte keys, 10000 to 20000 iterations of
// PBKDF2-HMAC-SHA384 and base64 records.
func DefaultHashOptions() HashOptions {
	return HashOptions{
		SaltLength:    16,
		KeySize:       32,
		MinIterations: 10000,
		MaxIterations: 20000,
		Algorithm:     cryptoDomain.SHA384,
		Encoding:      Base64,
	}
}

// Validate reports ErrInvalidHashOptions for unusable values.
func (o HashOptions) Validate() error {
	switch {
	case o.SaltLength <= 0:
		return fmt.Errorf("%w: salt length must be positive", ErrInvalidHashOptions)
	case o.KeySize <= 0:
		return fmt.Errorf("%w: key size must be positive", ErrInvalidHashOptions)
	case o.KeySize > MaxRecordKeySize:
		return fmt.Errorf("%w: key size must not exceed %d bytes", ErrInvalidHashOptions, MaxRecordKeySize)
	case o.MinIterations <= 0:
		return fmt.Errorf("%w: minimum iterations must be positive", ErrInvalidHashOptions)
	case o.MinIterations > o.MaxIterations:
		return fmt.Errorf("%w: minimum iterations exceed maximum", ErrInvalidHashOptions)
	case o.MaxVerifyIterations < 0:
		return fmt.Errorf("%w: maximum verify iterations must not be negative", ErrInvalidHashOptions)
	case o.MaxVerifyIterations > 0 && o.MaxVerifyIterations < o.MaxIterations:
		return fmt.Errorf("%w: maximum verify iterations below maximum iterations", ErrInvalidHashOptions)
	case o.Algorithm == cryptoDomain.SHA1:
		return fmt.Errorf("%w: SHA1 is not allowed for password hashing", ErrInvalidHashOptions)
	}

	if _, err := o.Algorithm.New(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHashOptions, err)
	}
	if _, err := o.Encoding.EncodeToString(nil); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHashOptions, err)
	}
	return nil
}

// VerifyIterationsLimit returns the effective MaxVerifyIterations.
func (o HashOptions) VerifyIterationsLimit() int {
	if o.MaxVerifyIterations > 0 {
		return o.MaxVerifyIterations
	}
	return o.MaxIterations * verifyIterationsFactor
}

// CheckRecordCost rejects records whose iteration count or hash length would make
// verification more expensive than these options allow.
func (o HashOptions) CheckRecordCost(p ParsedHash) error {
	if limit := o.VerifyIterationsLimit(); p.Iterations > limit {
		return fmt.Errorf("%w: %d iterations exceed the limit of %d", ErrInvalidHashRecord, p.Iterations, limit)
	}
	if len(p.Hash) > MaxRecordKeySize {
		return fmt.Errorf("%w: hash length %d exceeds %d bytes", ErrInvalidHashRecord, len(p.Hash), MaxRecordKeySize)
	}
	return nil
}
