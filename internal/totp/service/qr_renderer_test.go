package service

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/aether/internal/errors"
	totpDomain "github.com/allisson/aether/internal/totp/domain"
)

func TestQRRenderer_Render(t *testing.T) {
	renderer := NewQRRenderer()

	t.Run("Success_PixelsPerModule", func(t *testing.T) {
		small, err := renderer.Render("otpauth://totp/Aether:alice?secret=ABC", 2)
		require.NoError(t, err)
		large, err := renderer.Render("otpauth://totp/Aether:alice?secret=ABC", 6)
		require.NoError(t, err)

		smallImg, err := png.Decode(bytes.NewReader(small))
		require.NoError(t, err)
		largeImg, err := png.Decode(bytes.NewReader(large))
		require.NoError(t, err)

		assert.Equal(t, 3*smallImg.Bounds().Dx(), largeImg.Bounds().Dx())
	})

	t.Run("Error_TooWide", func(t *testing.T) {
		_, err := renderer.Render("otpauth://totp/Aether:alice?secret=ABC", 200)
		assert.ErrorIs(t, err, totpDomain.ErrQRTooLarge)
		assert.ErrorIs(t, err, apperrors.ErrQRGeneration)
	})

	t.Run("Error_ContentTooLong", func(t *testing.T) {
		_, err := renderer.Render(strings.Repeat("x", 5000), 1)
		assert.ErrorIs(t, err, apperrors.ErrQRGeneration)
		assert.Contains(t, err.Error(), totpDomain.QRHint)
	})

	t.Run("Error_NonPositivePixels", func(t *testing.T) {
		_, err := renderer.Render("content", 0)
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
	})
}
