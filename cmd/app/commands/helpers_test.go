package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/aether/internal/crypto/service/mocks"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testIO(input string) (IOTuple, *bytes.Buffer) {
	var out bytes.Buffer
	return IOTuple{Reader: strings.NewReader(input), Writer: &out}, &out
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat(FormatText))
	assert.NoError(t, validateFormat(FormatJSON))

	err := validateFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format: xml")
}

func TestReadSecret(t *testing.T) {
	t.Run("flag value wins", func(t *testing.T) {
		value, err := readSecret(strings.NewReader("ignored\n"), "from-flag", "password")
		require.NoError(t, err)
		assert.Equal(t, "from-flag", value)
	})

	t.Run("first line of input", func(t *testing.T) {
		value, err := readSecret(strings.NewReader("s3cret\r\nsecond line\n"), "", "password")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", value)
	})

	t.Run("input without newline", func(t *testing.T) {
		value, err := readSecret(strings.NewReader("s3cret"), "", "password")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", value)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := readSecret(strings.NewReader(""), "", "password")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "password is required")
	})

	t.Run("nil reader", func(t *testing.T) {
		_, err := readSecret(nil, "", "secret")
		assert.EqualError(t, err, "secret is required")
	})
}

func TestResolvePassphrase(t *testing.T) {
	ctx := context.Background()

	t.Run("plain", func(t *testing.T) {
		resolver := &mocks.MockPassphraseResolver{}

		passphrase, err := resolvePassphrase(ctx, resolver, PassphraseSource{Plain: "pw"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "pw", passphrase)
		resolver.AssertNotCalled(t, "Unwrap")
	})

	t.Run("wrapped", func(t *testing.T) {
		resolver := &mocks.MockPassphraseResolver{}
		resolver.On("Unwrap", ctx, "base64key://k", "d3JhcHBlZA==").Return("pw", nil).Once()

		passphrase, err := resolvePassphrase(ctx, resolver, PassphraseSource{
			Plain:   "ignored",
			Wrapped: "d3JhcHBlZA==",
			KeyURI:  "base64key://k",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "pw", passphrase)
		resolver.AssertExpectations(t)
	})

	t.Run("wrapped without key uri", func(t *testing.T) {
		_, err := resolvePassphrase(ctx, &mocks.MockPassphraseResolver{}, PassphraseSource{Wrapped: "x"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "KMS_KEY_URI")
	})

	t.Run("unwrap failure", func(t *testing.T) {
		resolver := &mocks.MockPassphraseResolver{}
		resolver.On("Unwrap", ctx, "base64key://k", "x").Return("", errors.New("kms down")).Once()

		_, err := resolvePassphrase(ctx, resolver, PassphraseSource{Wrapped: "x", KeyURI: "base64key://k"}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to unwrap passphrase")
	})
}
