// Package service implements RFC 4226 HOTP and RFC 6238 TOTP PINs, provisioning URIs
// and QR codes for authenticator app enrollment.
package service

import (
	"time"

	totpDomain "github.com/allisson/aether/internal/totp/domain"
)

// QRRenderer renders content as a PNG QR code.
type QRRenderer interface {
	// Render draws content with pixelsPerModule pixels per QR module.
	// Failures wrap ErrQRGeneration.
	Render(content string, pixelsPerModule int) ([]byte, error)
}

// Authenticator generates and validates time-based one-time PINs.
// Implementations are stateless and safe for concurrent use.
type Authenticator interface {
	// GenerateSetupInfo builds the manual entry key, provisioning URI and, when
	// pixelsPerModule > 0, the QR code for secret.
	GenerateSetupInfo(issuer, account string, secret []byte, pixelsPerModule int) (totpDomain.SetupInfo, error)
	GenerateSetupInfoFromBase32(issuer, account, secret string, pixelsPerModule int) (totpDomain.SetupInfo, error)

	// GeneratePin computes the HOTP value for counter.
	GeneratePin(secret []byte, counter int64) (string, error)

	// CurrentPin computes the PIN for the current time step.
	CurrentPin(secret []byte) (string, error)
	CurrentPinFromBase32(secret string) (string, error)

	// CurrentPins returns every PIN accepted by ValidatePin with the same tolerance,
	// oldest first.
	CurrentPins(secret []byte, tolerance time.Duration) ([]string, error)

	// ValidatePin accepts pin if it matches any time step within tolerance of now.
	ValidatePin(secret []byte, pin string, tolerance time.Duration) (bool, error)
	ValidatePinFromBase32(secret, pin string, tolerance time.Duration) (bool, error)

	// Counter returns the time step containing t.
	Counter(t time.Time) int64
}
