package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/afero"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
	totpDomain "github.com/allisson/aether/internal/totp/domain"
	totpService "github.com/allisson/aether/internal/totp/service"
)

// TOTPSetupOptions configures totp-setup.
type TOTPSetupOptions struct {
	Account string
	Issuer  string
	// Secret is an existing Base32 secret; a new one is generated when empty.
	Secret string
	// QRPath receives the PNG QR code when set.
	QRPath          string
	PixelsPerModule int
}

// totpSetupResult is the JSON output of totp-setup.
type totpSetupResult struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
	QRPath          string `json:"qr_path,omitempty"`
}

// RunTOTPSetup prints the manual entry key and provisioning URI for an account and,
// when QRPath is set, writes the QR code PNG to it.
func RunTOTPSetup(
	authenticator totpService.Authenticator,
	random io.Reader,
	fs afero.Fs,
	logger *slog.Logger,
	options TOTPSetupOptions,
	format string,
	out IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if options.Account == "" {
		return fmt.Errorf("--account is required")
	}

	pixels := 0
	if options.QRPath != "" {
		pixels = options.PixelsPerModule
		if pixels <= 0 {
			return fmt.Errorf("--qr-pixels must be positive when --qr-out is set")
		}
	}

	var (
		info totpDomain.SetupInfo
		err  error
	)
	if options.Secret != "" {
		info, err = authenticator.GenerateSetupInfoFromBase32(options.Issuer, options.Account, options.Secret, pixels)
	} else {
		var secret []byte
		secret, err = totpDomain.GenerateSecret(random, totpDomain.DefaultSecretLength)
		if err != nil {
			return fmt.Errorf("failed to generate secret: %w", err)
		}
		defer cryptoDomain.Zero(secret)
		info, err = authenticator.GenerateSetupInfo(options.Issuer, options.Account, secret, pixels)
	}
	if err != nil {
		return fmt.Errorf("failed to generate setup info: %w", err)
	}

	if options.QRPath != "" {
		if err := afero.WriteFile(fs, options.QRPath, info.QRCodePNG, 0o600); err != nil {
			return fmt.Errorf("failed to write QR code: %w", err)
		}
	}

	logger.Info("totp setup generated", slog.String("account", options.Account))

	if format == FormatJSON {
		return writeJSON(out.Writer, totpSetupResult{
			Secret:          info.ManualEntryKey,
			ProvisioningURI: info.ProvisioningURI,
			QRPath:          options.QRPath,
		})
	}

	if _, err := fmt.Fprintf(out.Writer, "Secret: %s\nProvisioning URI: %s\n", info.ManualEntryKey, info.ProvisioningURI); err != nil {
		return err
	}
	if options.QRPath != "" {
		_, err = fmt.Fprintf(out.Writer, "QR code: %s\n", options.QRPath)
	}
	return err
}

// RunTOTPCode prints the current PIN for a Base32 secret. With a pin it instead checks
// that pin within tolerance and returns ErrInvalidPin when it does not match.
func RunTOTPCode(
	authenticator totpService.Authenticator,
	secret, pin string,
	tolerance time.Duration,
	format string,
	out IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	secret, err := readSecret(out.Reader, secret, "secret")
	if err != nil {
		return err
	}

	if pin != "" {
		return runTOTPValidate(authenticator, secret, pin, tolerance, format, out)
	}

	code, err := authenticator.CurrentPinFromBase32(secret)
	if err != nil {
		return fmt.Errorf("failed to compute pin: %w", err)
	}

	if format == FormatJSON {
		return writeJSON(out.Writer, map[string]string{"pin": code})
	}
	_, err = fmt.Fprintln(out.Writer, code)
	return err
}

// ErrInvalidPin is returned by totp-code --pin when the pin does not match.
var ErrInvalidPin = errors.New("pin is not valid")

func runTOTPValidate(
	authenticator totpService.Authenticator,
	secret, pin string,
	tolerance time.Duration,
	format string,
	out IOTuple,
) error {
	valid, err := authenticator.ValidatePinFromBase32(secret, pin, tolerance)
	if err != nil {
		return fmt.Errorf("failed to validate pin: %w", err)
	}

	if format == FormatJSON {
		err = writeJSON(out.Writer, map[string]bool{"valid": valid})
	} else if valid {
		_, err = fmt.Fprintln(out.Writer, "PIN is valid")
	} else {
		_, err = fmt.Fprintln(out.Writer, "PIN is not valid")
	}
	if err != nil {
		return err
	}

	if !valid {
		return ErrInvalidPin
	}
	return nil
}
