package service

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/spf13/afero"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
)

const (
	// DerivationIterations is the PBKDF2 iteration count used for every passphrase key.
	DerivationIterations = 5000

	// DerivationAlgorithm is the PRF used for every passphrase key.
	DerivationAlgorithm = cryptoDomain.SHA256

	dirPerm  os.FileMode = 0o750
	filePerm os.FileMode = 0o600
)

// encryptionService implements EncryptionService with PBKDF2 and AES-CBC.
type encryptionService struct {
	variant    cryptoDomain.CipherVariant
	keySize    int
	deriver    KeyDeriver
	cipher     *AESCBCCipher
	serializer Serializer
	fs         afero.Fs
}

// NewEncryptionService creates an EncryptionService for the given cipher variant.
// File operations go through fs, which is afero.NewOsFs() in production.
func NewEncryptionService(
	variant cryptoDomain.CipherVariant,
	random RandomSource,
	serializer Serializer,
	fs afero.Fs,
) (EncryptionService, error) {
	keySize, err := variant.KeySize()
	if err != nil {
		return nil, err
	}

	return &encryptionService{
		variant:    variant,
		keySize:    keySize,
		deriver:    NewKeyDeriver(),
		cipher:     NewAESCBC(random),
		serializer: serializer,
		fs:         fs,
	}, nil
}

func (s *encryptionService) deriveKey(passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, cryptoDomain.ErrEmptyPassphrase
	}
	return s.deriver.DeriveKey([]byte(passphrase), nil, DerivationIterations, DerivationAlgorithm, s.keySize)
}

// Encrypt derives the key from passphrase and returns a fresh envelope.
func (s *encryptionService) Encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	key, err := s.deriveKey(passphrase)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	return s.cipher.Encrypt(key, plaintext)
}

// Decrypt derives the key from passphrase and opens envelope.
func (s *encryptionService) Decrypt(envelope []byte, passphrase string) ([]byte, error) {
	key, err := s.deriveKey(passphrase)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	return s.cipher.Decrypt(key, envelope)
}

func (s *encryptionService) EncryptString(plaintext, passphrase string) ([]byte, error) {
	return s.Encrypt([]byte(plaintext), passphrase)
}

// DecryptString decrypts envelope and requires the plaintext to be valid UTF-8.
func (s *encryptionService) DecryptString(envelope []byte, passphrase string) (string, error) {
	plaintext, err := s.Decrypt(envelope, passphrase)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plaintext) {
		return "", cryptoDomain.ErrDecryptionFailed
	}
	return string(plaintext), nil
}

// EncryptObject serializes v with the configured serializer and encrypts the result.
func (s *encryptionService) EncryptObject(v any, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, cryptoDomain.ErrEmptyPassphrase
	}

	data, err := s.serializer.Marshal(v)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(data)

	return s.Encrypt(data, passphrase)
}

// DecryptObject decrypts envelope and decodes the plaintext into out.
func (s *encryptionService) DecryptObject(envelope []byte, passphrase string, out any) error {
	data, err := s.Decrypt(envelope, passphrase)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(data)

	return s.serializer.Unmarshal(data, out)
}

// EncryptToFile writes the envelope for plaintext to path.
func (s *encryptionService) EncryptToFile(plaintext []byte, passphrase, path string) error {
	envelope, err := s.Encrypt(plaintext, passphrase)
	if err != nil {
		return err
	}
	return s.writeFile(path, envelope)
}

// DecryptFromFile reads the envelope at path and decrypts it.
func (s *encryptionService) DecryptFromFile(path, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, cryptoDomain.ErrEmptyPassphrase
	}

	envelope, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read encrypted file: %w", err)
	}

	return s.Decrypt(envelope, passphrase)
}

// EncryptFile encrypts the contents of src into dst.
func (s *encryptionService) EncryptFile(src, dst, passphrase string) error {
	if passphrase == "" {
		return cryptoDomain.ErrEmptyPassphrase
	}

	plaintext, err := afero.ReadFile(s.fs, src)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}
	defer cryptoDomain.Zero(plaintext)

	return s.EncryptToFile(plaintext, passphrase, dst)
}

// DecryptFile decrypts the envelope in src and writes the plaintext to dst.
func (s *encryptionService) DecryptFile(src, dst, passphrase string) error {
	plaintext, err := s.DecryptFromFile(src, passphrase)
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(plaintext)

	return s.writeFile(dst, plaintext)
}

func (s *encryptionService) writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := afero.WriteFile(s.fs, path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
