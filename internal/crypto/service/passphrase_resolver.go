package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
	apperrors "github.com/allisson/aether/internal/errors"
)

// passphraseResolver implements PassphraseResolver on top of a KMSService.
type passphraseResolver struct {
	kmsService KMSService
}

// NewPassphraseResolver creates a resolver that opens a fresh keeper per call.
func NewPassphraseResolver(kmsService KMSService) PassphraseResolver {
	return &passphraseResolver{kmsService: kmsService}
}

// Wrap encrypts passphrase with the KMS key and returns standard base64 ciphertext.
func (r *passphraseResolver) Wrap(ctx context.Context, keyURI, passphrase string) (_ string, err error) {
	if passphrase == "" {
		return "", cryptoDomain.ErrEmptyPassphrase
	}

	keeper, err := r.kmsService.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close KMS keeper: %w", closeErr)
		}
	}()

	ciphertext, err := keeper.Encrypt(ctx, []byte(passphrase))
	if err != nil {
		return "", fmt.Errorf("failed to wrap passphrase: %w", err)
	}

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Unwrap decodes and decrypts a value produced by Wrap.
func (r *passphraseResolver) Unwrap(ctx context.Context, keyURI, wrapped string) (_ string, err error) {
	ciphertext, err := base64.StdEncoding.DecodeString(strings.TrimSpace(wrapped))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrFormat, "wrapped passphrase is not valid base64")
	}

	keeper, err := r.kmsService.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close KMS keeper: %w", closeErr)
		}
	}()

	plaintext, err := keeper.Decrypt(ctx, ciphertext)
	if err != nil {
		return "", fmt.Errorf("failed to unwrap passphrase: %w", err)
	}

	return string(plaintext), nil
}
