package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/aether/internal/errors"
)

func TestParseHashAlgorithm(t *testing.T) {
	tests := []struct {
		input    string
		expected HashAlgorithm
	}{
		{input: "SHA1", expected: SHA1},
		{input: "sha256", expected: SHA256},
		{input: "SHA-384", expected: SHA384},
		{input: " sha-512 ", expected: SHA512},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			alg, err := ParseHashAlgorithm(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, alg)
		})
	}

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := ParseHashAlgorithm("MD5")
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
		assert.ErrorIs(t, err, apperrors.ErrFormat)
	})
}

func TestHashAlgorithm_New(t *testing.T) {
	sizes := map[HashAlgorithm]int{
		SHA1:   20,
		SHA256: 32,
		SHA384: 48,
		SHA512: 64,
	}

	for alg, size := range sizes {
		t.Run(alg.String(), func(t *testing.T) {
			newHash, err := alg.New()
			require.NoError(t, err)
			assert.Equal(t, size, newHash().Size())
		})
	}

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := HashAlgorithm("SHA3").New()
		assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
	})
}

func TestCipherVariant(t *testing.T) {
	size, err := AES128.KeySize()
	require.NoError(t, err)
	assert.Equal(t, 16, size)

	size, err = AES256.KeySize()
	require.NoError(t, err)
	assert.Equal(t, 32, size)

	variant, err := ParseCipherVariant("AES-256")
	require.NoError(t, err)
	assert.Equal(t, AES256, variant)

	_, err = ParseCipherVariant("aes-512")
	assert.ErrorIs(t, err, ErrUnsupportedAlgorithm)
}
