package service

import (
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
	apperrors "github.com/allisson/aether/internal/errors"
)

// pbkdf2Deriver implements KeyDeriver with PBKDF2-HMAC.
type pbkdf2Deriver struct{}

// NewKeyDeriver creates a PBKDF2 key deriver.
func NewKeyDeriver() KeyDeriver {
	return &pbkdf2Deriver{}
}

// DeriveKey stretches passphrase into keyLen bytes.
//
// Only SHA256, SHA384 and SHA512 are accepted; SHA1 is reserved for TOTP HMACs.
// A nil salt is valid and is what the cipher service uses, since its IV already
// randomizes every envelope.
func (d *pbkdf2Deriver) DeriveKey(
	passphrase, salt []byte,
	iterations int,
	alg cryptoDomain.HashAlgorithm,
	keyLen int,
) ([]byte, error) {
	if iterations <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "iterations must be positive, got %d", iterations)
	}
	if keyLen <= 0 {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidArgument, "key length must be positive, got %d", keyLen)
	}
	if alg == cryptoDomain.SHA1 {
		return nil, fmt.Errorf("%w: SHA1 is not allowed for key derivation", cryptoDomain.ErrUnsupportedAlgorithm)
	}

	newHash, err := alg.New()
	if err != nil {
		return nil, err
	}

	return pbkdf2.Key(passphrase, salt, iterations, keyLen, newHash), nil
}
