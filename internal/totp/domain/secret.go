// Package domain defines the TOTP value types: the Base32 codec, shared secrets and
// the provisioning information handed to users during enrollment.
package domain

import (
	"fmt"
	"io"
)

const (
	// DefaultSecretLength matches the HMAC-SHA1 output size recommended by RFC 4226.
	DefaultSecretLength = 20

	// DefaultDigits is the PIN length authenticator apps assume.
	DefaultDigits = 6

	// MinDigits and MaxDigits bound the PIN length.
	MinDigits = 6
	MaxDigits = 8
)

// GenerateSecret reads n random bytes from random. n <= 0 selects DefaultSecretLength.
func GenerateSecret(random io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		n = DefaultSecretLength
	}

	secret := make([]byte, n)
	if _, err := io.ReadFull(random, secret); err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}
	return secret, nil
}

// SetupInfo is everything a user needs to enroll an authenticator app.
type SetupInfo struct {
	// ManualEntryKey is the unpadded Base32 secret.
	ManualEntryKey string

	// ProvisioningURI is the otpauth:// URI encoded in the QR code.
	ProvisioningURI string

	// QRCodePNG is nil when QR rendering was skipped.
	QRCodePNG []byte
}
