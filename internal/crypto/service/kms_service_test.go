package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/secrets"

	apperrors "github.com/allisson/aether/internal/errors"
)

// generateLocalSecretsURI returns a base64key:// URI holding a fresh 32-byte key.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func TestKMSService_OpenKeeper(t *testing.T) {
	ctx := context.Background()
	kms := NewKMSService()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		keeper, err := kms.OpenKeeper(ctx, generateLocalSecretsURI(t))
		require.NoError(t, err)
		defer func() { assert.NoError(t, keeper.Close()) }()

		assert.IsType(t, &secrets.Keeper{}, keeper)

		ciphertext, err := keeper.Encrypt(ctx, []byte("passphrase"))
		require.NoError(t, err)

		plaintext, err := keeper.Decrypt(ctx, ciphertext)
		require.NoError(t, err)
		assert.Equal(t, []byte("passphrase"), plaintext)
	})

	t.Run("Error_MalformedLocalKey", func(t *testing.T) {
		_, err := kms.OpenKeeper(ctx, "base64key://too-short")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to open base64key keeper")
	})
}

func TestKMSScheme(t *testing.T) {
	tests := []struct {
		uri    string
		scheme string
	}{
		{"base64key://c2VjcmV0", "base64key"},
		{"gcpkms://projects/p/locations/global/keyRings/r/cryptoKeys/k", "gcpkms"},
		{"awskms:///alias/passphrases?region=us-east-1", "awskms"},
		{"azurekeyvault://vault.vault.azure.net/keys/k", "azurekeyvault"},
		{"hashivault://transit-key", "hashivault"},
	}
	for _, tt := range tests {
		t.Run(tt.scheme, func(t *testing.T) {
			scheme, err := kmsScheme(tt.uri)
			require.NoError(t, err)
			assert.Equal(t, tt.scheme, scheme)
		})
	}

	for _, uri := range []string{"", "no-scheme", "invalid://uri", "file:///etc/key"} {
		t.Run("Invalid_"+uri, func(t *testing.T) {
			_, err := kmsScheme(uri)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		})
	}
}
