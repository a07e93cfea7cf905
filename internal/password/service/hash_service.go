package service

import (
	"crypto/subtle"
	"fmt"

	"github.com/allisson/go-pwdhash"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
	cryptoService "github.com/allisson/aether/internal/crypto/service"
	apperrors "github.com/allisson/aether/internal/errors"
	passwordDomain "github.com/allisson/aether/internal/password/domain"
)

// hashService implements HashService with PBKDF2.
type hashService struct {
	options passwordDomain.HashOptions
	deriver cryptoService.KeyDeriver
	random  cryptoService.RandomSource
	legacy  *pwdhash.PasswordHasher
}

// NewHashService creates a HashService after validating options.
func NewHashService(
	options passwordDomain.HashOptions,
	deriver cryptoService.KeyDeriver,
	random cryptoService.RandomSource,
) (HashService, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	// Only used to verify Argon2id PHC records; parameters come from each record.
	legacy, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		return nil, fmt.Errorf("failed to create legacy hasher: %w", err)
	}

	return &hashService{
		options: options,
		deriver: deriver,
		random:  random,
		legacy:  legacy,
	}, nil
}

// Hash returns a new encoded record for plaintext.
func (s *hashService) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidArgument, "password cannot be empty")
	}

	salt, err := cryptoService.RandomBytes(s.random, s.options.SaltLength)
	if err != nil {
		return "", err
	}

	iterations, err := s.random.Intn(s.options.MinIterations, s.options.MaxIterations)
	if err != nil {
		return "", err
	}

	hash, err := s.deriver.DeriveKey([]byte(plaintext), salt, iterations, s.options.Algorithm, s.options.KeySize)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to derive password hash")
	}

	return passwordDomain.ParsedHash{
		Encoding:   s.options.Encoding,
		Hash:       hash,
		Salt:       salt,
		Iterations: iterations,
		Algorithm:  s.options.Algorithm,
	}.String(), nil
}

// Verify checks plaintext against record.
func (s *hashService) Verify(plaintext, record string) (bool, error) {
	if passwordDomain.IsLegacyRecord(record) {
		params, err := passwordDomain.ParseLegacyParams(record)
		if err != nil {
			return false, err
		}
		if err := params.CheckCost(); err != nil {
			return false, err
		}
		ok, err := s.legacy.Verify([]byte(plaintext), record)
		if err != nil {
			return false, fmt.Errorf("%w: %v", passwordDomain.ErrInvalidHashRecord, err)
		}
		return ok, nil
	}

	parsed, err := passwordDomain.ParseHash(record)
	if err != nil {
		return false, err
	}
	if err := s.options.CheckRecordCost(parsed); err != nil {
		return false, err
	}

	computed, err := s.deriver.DeriveKey(
		[]byte(plaintext),
		parsed.Salt,
		parsed.Iterations,
		parsed.Algorithm,
		len(parsed.Hash),
	)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to derive password hash")
	}
	defer cryptoDomain.Zero(computed)

	return CompareHash(computed, parsed.Hash), nil
}

// NeedsRehash compares the record's parameters with the current options.
func (s *hashService) NeedsRehash(record string) bool {
	if passwordDomain.IsLegacyRecord(record) {
		return true
	}

	parsed, err := passwordDomain.ParseHash(record)
	if err != nil {
		return true
	}

	return parsed.Algorithm != s.options.Algorithm ||
		parsed.Encoding != s.options.Encoding ||
		len(parsed.Hash) != s.options.KeySize ||
		len(parsed.Salt) != s.options.SaltLength ||
		parsed.Iterations < s.options.MinIterations ||
		parsed.Iterations > s.options.MaxIterations
}

func (s *hashService) Options() passwordDomain.HashOptions {
	return s.options
}

// CompareHash reports whether a and b are equal in time independent of their contents.
// Slices of different lengths compare unequal.
func CompareHash(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// ParseHash decodes a record. See passwordDomain.ParseHash.
func ParseHash(record string) (passwordDomain.ParsedHash, error) {
	return passwordDomain.ParseHash(record)
}
