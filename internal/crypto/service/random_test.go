package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSource_Read(t *testing.T) {
	t.Run("Success_FromReader", func(t *testing.T) {
		src := NewRandomSourceFromReader(bytes.NewReader([]byte{1, 2, 3, 4}))

		b, err := RandomBytes(src, 4)
		require.NoError(t, err)
		assert.Equal(t, []byte{1, 2, 3, 4}, b)
	})

	t.Run("Error_ShortReader", func(t *testing.T) {
		src := NewRandomSourceFromReader(bytes.NewReader([]byte{1, 2}))

		_, err := RandomBytes(src, 4)
		assert.Error(t, err)
	})

	t.Run("Success_CryptoRand", func(t *testing.T) {
		b1, err := RandomBytes(NewRandomSource(), 32)
		require.NoError(t, err)
		b2, err := RandomBytes(NewRandomSource(), 32)
		require.NoError(t, err)
		assert.NotEqual(t, b1, b2)
	})
}

func TestRandomSource_Intn(t *testing.T) {
	src := NewRandomSource()

	t.Run("Success_WithinRange", func(t *testing.T) {
		for range 500 {
			n, err := src.Intn(10000, 20000)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, n, 10000)
			assert.Less(t, n, 20000)
		}
	})

	t.Run("Success_EqualBounds", func(t *testing.T) {
		n, err := src.Intn(5000, 5000)
		require.NoError(t, err)
		assert.Equal(t, 5000, n)
	})

	t.Run("Success_InvertedBounds", func(t *testing.T) {
		n, err := src.Intn(10, 3)
		require.NoError(t, err)
		assert.Equal(t, 10, n)
	})

	t.Run("Error_ExhaustedReader", func(t *testing.T) {
		empty := NewRandomSourceFromReader(bytes.NewReader(nil))
		_, err := empty.Intn(0, 100)
		assert.Error(t, err)
	})
}
