// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/allisson/aether/internal/app"
	cryptoService "github.com/allisson/aether/internal/crypto/service"
)

const (
	// FormatText selects human-readable output.
	FormatText = "text"

	// FormatJSON selects indented JSON output.
	FormatJSON = "json"
)

// IOTuple holds reader and writer for commands, allowing for testing.
type IOTuple struct {
	Reader io.Reader
	Writer io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin and os.Stdout.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader: os.Stdin,
		Writer: os.Stdout,
	}
}

// closeContainer closes all resources in the container and logs any errors.
func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shutdown container", slog.Any("error", err))
	}
}

// validateFormat rejects anything other than "text" and "json".
func validateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON:
		return nil
	default:
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}

// readSecret returns value when set, otherwise the first line of r without its line ending.
func readSecret(r io.Reader, value, name string) (string, error) {
	if value != "" {
		return value, nil
	}
	if r == nil {
		return "", fmt.Errorf("%s is required", name)
	}

	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}

	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return line, nil
}

// PassphraseSource describes where a file passphrase comes from. Wrapped takes precedence
// over Plain and needs KeyURI; with neither set the passphrase is read from the command input.
type PassphraseSource struct {
	Plain   string
	Wrapped string
	KeyURI  string
}

// resolvePassphrase returns the plaintext passphrase for source.
func resolvePassphrase(
	ctx context.Context,
	resolver cryptoService.PassphraseResolver,
	source PassphraseSource,
	r io.Reader,
) (string, error) {
	if source.Wrapped != "" {
		if source.KeyURI == "" {
			return "", errors.New("--kms-key-uri or KMS_KEY_URI is required with --wrapped-passphrase")
		}
		passphrase, err := resolver.Unwrap(ctx, source.KeyURI, source.Wrapped)
		if err != nil {
			return "", fmt.Errorf("failed to unwrap passphrase: %w", err)
		}
		return passphrase, nil
	}
	return readSecret(r, source.Plain, "passphrase")
}
