package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/aether/internal/errors"
)

func TestBase32_KnownVector(t *testing.T) {
	secret := []byte("12345678901234567890123456789012")

	assert.Equal(t, "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZA", Base32EncodeUnpadded(secret))
	assert.Equal(t, "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZA====", Base32Encode(secret))

	decoded, err := Base32Decode("GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZA")
	require.NoError(t, err)
	assert.Equal(t, secret, decoded)
}

func TestBase32_RFC4648Vectors(t *testing.T) {
	tests := []struct {
		in  string
		out string
	}{
		{"", ""},
		{"f", "MY======"},
		{"fo", "MZXQ===="},
		{"foo", "MZXW6==="},
		{"foob", "MZXW6YQ="},
		{"fooba", "MZXW6YTB"},
		{"foobar", "MZXW6YTBOI======"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.out, Base32Encode([]byte(tt.in)))

		decoded, err := Base32Decode(tt.out)
		require.NoError(t, err)
		assert.Equal(t, tt.in, string(decoded))
	}
}

func TestBase32_RoundTripAllLengths(t *testing.T) {
	for n := 0; n <= 41; n++ {
		data := bytes.Repeat([]byte{0xA5}, n)
		for i := range data {
			data[i] ^= byte(i * 31)
		}

		padded, err := Base32Decode(Base32Encode(data))
		require.NoError(t, err)
		assert.Equal(t, data, padded, "padded length %d", n)

		unpadded, err := Base32Decode(Base32EncodeUnpadded(data))
		require.NoError(t, err)
		assert.Equal(t, data, unpadded, "unpadded length %d", n)
	}
}

func TestBase32Decode_Normalization(t *testing.T) {
	decoded, err := Base32Decode("mzxw6ytboi")
	require.NoError(t, err)
	assert.Equal(t, "foobar", string(decoded))

	decoded, err = Base32Decode("MZXW6YTBOI======")
	require.NoError(t, err)
	assert.Equal(t, "foobar", string(decoded))
}

func TestBase32Decode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"Digit1", "MZXW1YTB"},
		{"Digit8", "MZXW8YTB"},
		{"Space", "MZXW 6YTB"},
		{"Symbol", "MZXW6YT!"},
		{"InnerPadding", "MZ=W6YTB"},
		{"ImpossibleLength", "M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Base32Decode(tt.input)
			assert.ErrorIs(t, err, ErrInvalidBase32)
			assert.ErrorIs(t, err, apperrors.ErrFormat)
		})
	}
}

func TestGenerateSecret(t *testing.T) {
	t.Run("Success_DefaultLength", func(t *testing.T) {
		secret, err := GenerateSecret(bytes.NewReader(bytes.Repeat([]byte{7}, 64)), 0)
		require.NoError(t, err)
		assert.Len(t, secret, DefaultSecretLength)
	})

	t.Run("Success_CustomLength", func(t *testing.T) {
		secret, err := GenerateSecret(bytes.NewReader(bytes.Repeat([]byte{7}, 64)), 32)
		require.NoError(t, err)
		assert.Len(t, secret, 32)
	})

	t.Run("Error_ShortReader", func(t *testing.T) {
		_, err := GenerateSecret(bytes.NewReader([]byte{1, 2, 3}), 20)
		assert.Error(t, err)
	})
}
