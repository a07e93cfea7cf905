// Package service provides the symmetric encryption primitives: PBKDF2 key derivation,
// the AES-CBC envelope cipher, object serializers, and KMS-backed passphrase wrapping.
package service

import (
	"context"
	"io"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
)

// RandomSource is the cryptographically secure randomness capability handed to every
// component that needs IVs, salts, secrets or random iteration counts.
// Implementations must be safe for concurrent use.
type RandomSource interface {
	io.Reader

	// Intn returns a uniform integer in [lower, upper). Returns lower when upper <= lower.
	Intn(lower, upper int) (int, error)
}

// KeyDeriver turns a passphrase into fixed-length key material.
type KeyDeriver interface {
	// DeriveKey runs PBKDF2 and is deterministic for identical inputs.
	DeriveKey(
		passphrase, salt []byte,
		iterations int,
		alg cryptoDomain.HashAlgorithm,
		keyLen int,
	) ([]byte, error)
}

// Serializer converts objects to and from the structured text that gets encrypted.
type Serializer interface {
	// Name returns the serializer identifier ("json" or "yaml").
	Name() string

	// Marshal serializes v. Unserializable types yield ErrUnsupportedType.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into out. Malformed data yields ErrFormat.
	Unmarshal(data []byte, out any) error
}

// EncryptionService encrypts bytes, strings, objects and files under a passphrase.
//
// Every output is an envelope (16-byte IV || AES-CBC output). Encryption and decryption
// derive the key with the same fixed parameters, so any instance configured with the
// same cipher variant can decrypt another instance's output.
type EncryptionService interface {
	Encrypt(plaintext []byte, passphrase string) ([]byte, error)
	Decrypt(envelope []byte, passphrase string) ([]byte, error)

	EncryptString(plaintext, passphrase string) ([]byte, error)
	DecryptString(envelope []byte, passphrase string) (string, error)

	EncryptObject(v any, passphrase string) ([]byte, error)
	DecryptObject(envelope []byte, passphrase string, out any) error

	// EncryptToFile writes the envelope to path, creating parent directories first.
	EncryptToFile(plaintext []byte, passphrase, path string) error
	// DecryptFromFile reads an envelope from path and decrypts it.
	DecryptFromFile(path, passphrase string) ([]byte, error)

	// EncryptFile encrypts the contents of src into dst.
	EncryptFile(src, dst, passphrase string) error
	// DecryptFile decrypts the envelope stored in src into dst.
	DecryptFile(src, dst, passphrase string) error
}

// KMSService opens keepers for the configured KMS provider.
type KMSService interface {
	// OpenKeeper opens a secrets.Keeper for the key URI.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error)
}

// PassphraseResolver wraps and unwraps passphrases with a KMS key so they can be
// stored at rest.
type PassphraseResolver interface {
	// Wrap encrypts passphrase with the KMS key and returns base64 ciphertext.
	Wrap(ctx context.Context, keyURI, passphrase string) (string, error)

	// Unwrap decrypts a value produced by Wrap.
	Unwrap(ctx context.Context, keyURI, wrapped string) (string, error)
}
