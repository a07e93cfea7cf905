// Package mocks provides mock implementations of the password service interfaces for testing.
package mocks

import (
	"github.com/stretchr/testify/mock"

	passwordDomain "github.com/allisson/aether/internal/password/domain"
)

// MockHashService is a mock implementation of service.HashService.
type MockHashService struct {
	mock.Mock
}

// Hash mocks the Hash method of HashService.
func (m *MockHashService) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

// Verify mocks the Verify method of HashService.
func (m *MockHashService) Verify(plaintext, record string) (bool, error) {
	args := m.Called(plaintext, record)
	return args.Bool(0), args.Error(1)
}

// NeedsRehash mocks the NeedsRehash method of HashService.
func (m *MockHashService) NeedsRehash(record string) bool {
	args := m.Called(record)
	return args.Bool(0)
}

// Options mocks the Options method of HashService.
func (m *MockHashService) Options() passwordDomain.HashOptions {
	args := m.Called()
	return args.Get(0).(passwordDomain.HashOptions)
}
