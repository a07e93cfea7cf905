package domain

import (
	"github.com/allisson/aether/internal/errors"
)

// QRHint is appended to every QR rendering failure.
const QRHint = "try reducing pixels per module"

// TOTP error definitions.
var (
	// ErrInvalidBase32 indicates text containing characters outside A-Z and 2-7, or an impossible length.
	ErrInvalidBase32 = errors.Wrap(errors.ErrFormat, "invalid base32")

	// ErrEmptySecret indicates a missing shared secret.
	ErrEmptySecret = errors.Wrap(errors.ErrInvalidArgument, "secret cannot be empty")

	// ErrEmptyAccount indicates a missing account name for a provisioning URI.
	ErrEmptyAccount = errors.Wrap(errors.ErrInvalidArgument, "account cannot be empty")

	// ErrInvalidDigits indicates a PIN length outside 6 to 8.
	ErrInvalidDigits = errors.Wrap(errors.ErrInvalidArgument, "digits must be between 6 and 8")

	// ErrQRTooLarge indicates a QR image wider than MaxQRImageWidth.
	ErrQRTooLarge = errors.Wrap(errors.ErrQRGeneration, "qr code image too large, "+QRHint)
)
