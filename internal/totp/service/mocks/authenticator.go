// Package mocks provides mock implementations of the TOTP service interfaces for testing.
package mocks

import (
	"time"

	"github.com/stretchr/testify/mock"

	totpDomain "github.com/allisson/aether/internal/totp/domain"
)

// MockAuthenticator is a mock implementation of service.Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

// GenerateSetupInfo mocks the GenerateSetupInfo method of Authenticator.
func (m *MockAuthenticator) GenerateSetupInfo(
	issuer, account string,
	secret []byte,
	pixelsPerModule int,
) (totpDomain.SetupInfo, error) {
	args := m.Called(issuer, account, secret, pixelsPerModule)
	return args.Get(0).(totpDomain.SetupInfo), args.Error(1)
}

// GenerateSetupInfoFromBase32 mocks the GenerateSetupInfoFromBase32 method of Authenticator.
func (m *MockAuthenticator) GenerateSetupInfoFromBase32(
	issuer, account, secret string,
	pixelsPerModule int,
) (totpDomain.SetupInfo, error) {
	args := m.Called(issuer, account, secret, pixelsPerModule)
	return args.Get(0).(totpDomain.SetupInfo), args.Error(1)
}

// GeneratePin mocks the GeneratePin method of Authenticator.
func (m *MockAuthenticator) GeneratePin(secret []byte, counter int64) (string, error) {
	args := m.Called(secret, counter)
	return args.String(0), args.Error(1)
}

// CurrentPin mocks the CurrentPin method of Authenticator.
func (m *MockAuthenticator) CurrentPin(secret []byte) (string, error) {
	args := m.Called(secret)
	return args.String(0), args.Error(1)
}

// CurrentPinFromBase32 mocks the CurrentPinFromBase32 method of Authenticator.
func (m *MockAuthenticator) CurrentPinFromBase32(secret string) (string, error) {
	args := m.Called(secret)
	return args.String(0), args.Error(1)
}

// CurrentPins mocks the CurrentPins method of Authenticator.
func (m *MockAuthenticator) CurrentPins(secret []byte, tolerance time.Duration) ([]string, error) {
	args := m.Called(secret, tolerance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// ValidatePin mocks the ValidatePin method of Authenticator.
func (m *MockAuthenticator) ValidatePin(secret []byte, pin string, tolerance time.Duration) (bool, error) {
	args := m.Called(secret, pin, tolerance)
	return args.Bool(0), args.Error(1)
}

// ValidatePinFromBase32 mocks the ValidatePinFromBase32 method of Authenticator.
func (m *MockAuthenticator) ValidatePinFromBase32(secret, pin string, tolerance time.Duration) (bool, error) {
	args := m.Called(secret, pin, tolerance)
	return args.Bool(0), args.Error(1)
}

// Counter mocks the Counter method of Authenticator.
func (m *MockAuthenticator) Counter(t time.Time) int64 {
	args := m.Called(t)
	return args.Get(0).(int64)
}
