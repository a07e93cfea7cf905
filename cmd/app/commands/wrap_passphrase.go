package commands

import (
	"context"
	"fmt"
	"log/slog"

	cryptoService "github.com/allisson/aether/internal/crypto/service"
)

// RunWrapPassphrase encrypts a file passphrase with the KMS key at keyURI and prints the
// base64 ciphertext, suitable for --wrapped-passphrase.
//
// For local development use keyURI="base64key://<32-byte-base64-key>". Never use the
// base64key scheme in production.
func RunWrapPassphrase(
	ctx context.Context,
	resolver cryptoService.PassphraseResolver,
	logger *slog.Logger,
	keyURI, passphrase, format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if keyURI == "" {
		return fmt.Errorf("--kms-key-uri or KMS_KEY_URI is required")
	}

	passphrase, err := readSecret(io.Reader, passphrase, "passphrase")
	if err != nil {
		return err
	}

	wrapped, err := resolver.Wrap(ctx, keyURI, passphrase)
	if err != nil {
		return fmt.Errorf("failed to wrap passphrase: %w", err)
	}

	logger.Info("passphrase wrapped")

	if format == FormatJSON {
		return writeJSON(io.Writer, map[string]string{"wrapped_passphrase": wrapped})
	}
	_, err = fmt.Fprintln(io.Writer, wrapped)
	return err
}
