// Package service implements salted PBKDF2 password hashing with self-describing records.
package service

import (
	passwordDomain "github.com/allisson/aether/internal/password/domain"
)

// HashService hashes and verifies passwords.
//
// Records are produced in the form encoding:hash:salt:iterations:algorithm and carry
// every parameter needed to verify them, so changing HashOptions never invalidates
// existing records. Implementations are stateless and safe for concurrent use.
type HashService interface {
	// Hash derives a record for plaintext with a fresh salt and a random iteration count.
	Hash(plaintext string) (string, error)

	// Verify recomputes the hash with the record's own parameters and compares in constant time.
	// A malformed record returns ErrFormat; a mismatch returns false with no error.
	Verify(plaintext, record string) (bool, error)

	// NeedsRehash reports whether record was produced with parameters other than the
	// current options. Malformed and legacy records always need a rehash.
	NeedsRehash(record string) bool

	// Options returns the options used for new hashes.
	Options() passwordDomain.HashOptions
}
