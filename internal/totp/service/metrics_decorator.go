package service

import (
	"context"
	"time"

	"github.com/allisson/aether/internal/metrics"
	totpDomain "github.com/allisson/aether/internal/totp/domain"
)

// authenticatorWithMetrics records enrollment and validation outcomes. PIN generation
// passes through unrecorded.
type authenticatorWithMetrics struct {
	next    Authenticator
	metrics metrics.BusinessMetrics
}

// NewAuthenticatorWithMetrics wraps an Authenticator with metrics recording.
func NewAuthenticatorWithMetrics(a Authenticator, m metrics.BusinessMetrics) Authenticator {
	return &authenticatorWithMetrics{
		next:    a,
		metrics: m,
	}
}

func (a *authenticatorWithMetrics) record(operation, status string, start time.Time) {
	metrics.Observe(context.Background(), a.metrics, "totp", operation, start, status)
}

func validateStatus(ok bool, err error) string {
	if err == nil && !ok {
		return metrics.StatusInvalid
	}
	return metrics.StatusFromError(err)
}

func (a *authenticatorWithMetrics) GenerateSetupInfo(
	issuer, account string,
	secret []byte,
	pixelsPerModule int,
) (totpDomain.SetupInfo, error) {
	start := time.Now()
	info, err := a.next.GenerateSetupInfo(issuer, account, secret, pixelsPerModule)
	a.record("totp_setup", metrics.StatusFromError(err), start)
	return info, err
}

func (a *authenticatorWithMetrics) GenerateSetupInfoFromBase32(
	issuer, account, secret string,
	pixelsPerModule int,
) (totpDomain.SetupInfo, error) {
	start := time.Now()
	info, err := a.next.GenerateSetupInfoFromBase32(issuer, account, secret, pixelsPerModule)
	a.record("totp_setup", metrics.StatusFromError(err), start)
	return info, err
}

func (a *authenticatorWithMetrics) GeneratePin(secret []byte, counter int64) (string, error) {
	return a.next.GeneratePin(secret, counter)
}

func (a *authenticatorWithMetrics) CurrentPin(secret []byte) (string, error) {
	return a.next.CurrentPin(secret)
}

func (a *authenticatorWithMetrics) CurrentPinFromBase32(secret string) (string, error) {
	return a.next.CurrentPinFromBase32(secret)
}

func (a *authenticatorWithMetrics) CurrentPins(secret []byte, tolerance time.Duration) ([]string, error) {
	return a.next.CurrentPins(secret, tolerance)
}

func (a *authenticatorWithMetrics) ValidatePin(secret []byte, pin string, tolerance time.Duration) (bool, error) {
	start := time.Now()
	ok, err := a.next.ValidatePin(secret, pin, tolerance)
	a.record("totp_validate", validateStatus(ok, err), start)
	return ok, err
}

func (a *authenticatorWithMetrics) ValidatePinFromBase32(
	secret, pin string,
	tolerance time.Duration,
) (bool, error) {
	start := time.Now()
	ok, err := a.next.ValidatePinFromBase32(secret, pin, tolerance)
	a.record("totp_validate", validateStatus(ok, err), start)
	return ok, err
}

func (a *authenticatorWithMetrics) Counter(t time.Time) int64 {
	return a.next.Counter(t)
}
