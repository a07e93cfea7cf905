package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	passwordDomain "github.com/allisson/aether/internal/password/domain"
	passwordService "github.com/allisson/aether/internal/password/service"
)

// ErrPasswordMismatch is returned by verify-password when the password does not match
// the record, so the process exits non-zero.
var ErrPasswordMismatch = errors.New("password does not match")

// ErrPasswordPolicy is returned by hash-password and check-password when the password
// violates the configured rule.
var ErrPasswordPolicy = errors.New("password violates the password rule")

// RunHashPassword hashes a password and prints the encoded record. The password is read
// from the command input when empty. With enforceRule the password must satisfy rule first.
func RunHashPassword(
	hashService passwordService.HashService,
	rule passwordDomain.PasswordRule,
	logger *slog.Logger,
	password string,
	enforceRule bool,
	format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	password, err := readSecret(io.Reader, password, "password")
	if err != nil {
		return err
	}

	if enforceRule {
		if violations := rule.Validate(password, time.Now()); len(violations) > 0 {
			if err := writeViolations(io, format, violations); err != nil {
				return err
			}
			return ErrPasswordPolicy
		}
	}

	record, err := hashService.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	logger.Info("password hashed", slog.Int("min_iterations", hashService.Options().MinIterations))

	if format == FormatJSON {
		return writeJSON(io.Writer, map[string]string{"hash": record})
	}
	_, err = fmt.Fprintln(io.Writer, record)
	return err
}

// RunVerifyPassword checks a password against an encoded record. A mismatch prints the
// result and returns ErrPasswordMismatch.
func RunVerifyPassword(
	hashService passwordService.HashService,
	logger *slog.Logger,
	password, record, format string,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if strings.TrimSpace(record) == "" {
		return fmt.Errorf("--hash is required")
	}

	password, err := readSecret(io.Reader, password, "password")
	if err != nil {
		return err
	}

	valid, err := hashService.Verify(password, record)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}

	needsRehash := valid && hashService.NeedsRehash(record)
	logger.Info("password verified", slog.Bool("valid", valid), slog.Bool("needs_rehash", needsRehash))

	if format == FormatJSON {
		err = writeJSON(io.Writer, map[string]bool{"valid": valid, "needs_rehash": needsRehash})
	} else {
		err = writeVerifyText(io, valid, needsRehash)
	}
	if err != nil {
		return err
	}

	if !valid {
		return ErrPasswordMismatch
	}
	return nil
}

func writeVerifyText(io IOTuple, valid, needsRehash bool) error {
	if !valid {
		_, err := fmt.Fprintln(io.Writer, "Password does not match")
		return err
	}
	if needsRehash {
		_, err := fmt.Fprintln(io.Writer, "Password matches (hash parameters are outdated, rehash recommended)")
		return err
	}
	_, err := fmt.Fprintln(io.Writer, "Password matches")
	return err
}

// RunCheckPassword validates a password against rule and lists every violation.
func RunCheckPassword(
	rule passwordDomain.PasswordRule,
	password, format string,
	now time.Time,
	io IOTuple,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	password, err := readSecret(io.Reader, password, "password")
	if err != nil {
		return err
	}

	violations := rule.Validate(password, now)
	if err := writeViolations(io, format, violations); err != nil {
		return err
	}
	if len(violations) > 0 {
		return ErrPasswordPolicy
	}
	return nil
}

func writeViolations(io IOTuple, format string, violations []passwordDomain.Violation) error {
	if format == FormatJSON {
		if violations == nil {
			violations = []passwordDomain.Violation{}
		}
		return writeJSON(io.Writer, map[string]any{
			"valid":      len(violations) == 0,
			"violations": violations,
		})
	}

	if len(violations) == 0 {
		_, err := fmt.Fprintln(io.Writer, "Password satisfies the rule")
		return err
	}

	if _, err := fmt.Fprintln(io.Writer, "Password violates the rule:"); err != nil {
		return err
	}
	for _, v := range violations {
		if _, err := fmt.Fprintf(io.Writer, "  - %s: %s\n", v.Code, v.Message); err != nil {
			return err
		}
	}
	return nil
}
