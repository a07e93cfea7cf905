package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	cryptoService "github.com/allisson/aether/internal/crypto/service"
)

// fileResult is the JSON output of encrypt-file and decrypt-file.
type fileResult struct {
	Operation string `json:"operation"`
	Source    string `json:"source"`
	Output    string `json:"output"`
}

// RunEncryptFile encrypts the file at src into an envelope file at dst.
// The passphrase is resolved from source; see PassphraseSource.
func RunEncryptFile(
	ctx context.Context,
	encryptionService cryptoService.EncryptionService,
	resolver cryptoService.PassphraseResolver,
	logger *slog.Logger,
	src, dst string,
	source PassphraseSource,
	format string,
	io IOTuple,
) error {
	return runFileTransform(ctx, "encrypt", encryptionService.EncryptFile, resolver, logger, src, dst, source, format, io)
}

// RunDecryptFile decrypts the envelope file at src and writes the plaintext to dst.
func RunDecryptFile(
	ctx context.Context,
	encryptionService cryptoService.EncryptionService,
	resolver cryptoService.PassphraseResolver,
	logger *slog.Logger,
	src, dst string,
	source PassphraseSource,
	format string,
	io IOTuple,
) error {
	return runFileTransform(ctx, "decrypt", encryptionService.DecryptFile, resolver, logger, src, dst, source, format, io)
}

func runFileTransform(
	ctx context.Context,
	operation string,
	transform func(src, dst, passphrase string) error,
	resolver cryptoService.PassphraseResolver,
	logger *slog.Logger,
	src, dst string,
	source PassphraseSource,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if src == "" || dst == "" {
		return fmt.Errorf("both --in and --out are required")
	}
	if filepath.Clean(src) == filepath.Clean(dst) {
		return fmt.Errorf("--in and --out must differ")
	}

	passphrase, err := resolvePassphrase(ctx, resolver, source, io.Reader)
	if err != nil {
		return err
	}

	logger.Info("transforming file",
		slog.String("operation", operation),
		slog.String("source", src),
		slog.String("output", dst),
	)

	if err := transform(src, dst, passphrase); err != nil {
		return fmt.Errorf("failed to %s file: %w", operation, err)
	}

	if format == FormatJSON {
		return writeJSON(io.Writer, fileResult{Operation: operation, Source: src, Output: dst})
	}

	_, err = fmt.Fprintf(io.Writer, "%sed %s -> %s\n", operation, src, dst)
	return err
}
