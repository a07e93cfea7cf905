package domain

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_Bytes(t *testing.T) {
	iv := bytes.Repeat([]byte{0xAA}, IVSize)
	ciphertext := bytes.Repeat([]byte{0xBB}, 32)

	raw := Envelope{IV: iv, Ciphertext: ciphertext}.Bytes()

	assert.Len(t, raw, IVSize+32)
	assert.Equal(t, iv, raw[:IVSize])
	assert.Equal(t, ciphertext, raw[IVSize:])
}

func TestParseEnvelope(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := Envelope{
			IV:         bytes.Repeat([]byte{1}, IVSize),
			Ciphertext: bytes.Repeat([]byte{2}, 48),
		}

		parsed, err := ParseEnvelope(original.Bytes())
		require.NoError(t, err)
		assert.Equal(t, original.IV, parsed.IV)
		assert.Equal(t, original.Ciphertext, parsed.Ciphertext)
	})

	t.Run("too short", func(t *testing.T) {
		_, err := ParseEnvelope(make([]byte, IVSize))
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})

	t.Run("body not block aligned", func(t *testing.T) {
		_, err := ParseEnvelope(make([]byte, IVSize+17))
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})

	t.Run("nil input", func(t *testing.T) {
		_, err := ParseEnvelope(nil)
		assert.ErrorIs(t, err, ErrDecryptionFailed)
	})
}
