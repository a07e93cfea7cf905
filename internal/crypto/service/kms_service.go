package service

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
	apperrors "github.com/allisson/aether/internal/errors"

	// Registered keeper drivers; each one claims the URI scheme listed in KMSSchemes.
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSSchemes lists the key URI schemes passphrases can be wrapped with.
// base64key is the in-process localsecrets driver, meant for development and tests only.
var KMSSchemes = []string{"awskms", "azurekeyvault", "gcpkms", "hashivault", "base64key"}

type kmsService struct{}

// NewKMSService creates a KMSService backed by gocloud.dev/secrets.
func NewKMSService() KMSService {
	return &kmsService{}
}

// OpenKeeper opens the keeper addressed by keyURI. The caller must Close it.
func (k *kmsService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	scheme, err := kmsScheme(keyURI)
	if err != nil {
		return nil, err
	}

	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s keeper: %w", scheme, err)
	}
	return keeper, nil
}

// kmsScheme returns the scheme of keyURI, rejecting empty URIs and unknown schemes
// before any driver is contacted.
func kmsScheme(keyURI string) (string, error) {
	if keyURI == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidArgument, "KMS key URI cannot be empty")
	}

	u, err := url.Parse(keyURI)
	if err != nil || u.Scheme == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidArgument, "KMS key URI must have the form scheme://key")
	}
	if !slices.Contains(KMSSchemes, u.Scheme) {
		return "", apperrors.Wrapf(apperrors.ErrInvalidArgument, "unsupported KMS scheme %q", u.Scheme)
	}
	return u.Scheme, nil
}
