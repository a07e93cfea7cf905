package domain

import (
	"github.com/allisson/aether/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap the standard errors from internal/errors so
// callers can branch on the broad category with errors.Is while still getting a
// precise message.
var (
	// ErrUnsupportedAlgorithm indicates an unknown hash algorithm or cipher variant token.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrFormat, "unsupported algorithm")

	// ErrInvalidKeySize indicates the key length does not match the cipher.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidArgument, "invalid key size")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// Wrong passphrase, bad padding, truncated envelope and corrupted ciphertext all
	// collapse into this single error so callers cannot be used as a padding oracle.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrEmptyPassphrase indicates an empty passphrase was supplied.
	ErrEmptyPassphrase = errors.Wrap(errors.ErrInvalidArgument, "passphrase cannot be empty")
)
