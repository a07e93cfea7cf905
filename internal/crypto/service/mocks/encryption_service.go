// Package mocks provides mock implementations of the crypto service interfaces for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEncryptionService is a mock implementation of service.EncryptionService.
type MockEncryptionService struct {
	mock.Mock
}

// Encrypt mocks the Encrypt method of EncryptionService.
func (m *MockEncryptionService) Encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	args := m.Called(plaintext, passphrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Decrypt mocks the Decrypt method of EncryptionService.
func (m *MockEncryptionService) Decrypt(envelope []byte, passphrase string) ([]byte, error) {
	args := m.Called(envelope, passphrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// EncryptString mocks the EncryptString method of EncryptionService.
func (m *MockEncryptionService) EncryptString(plaintext, passphrase string) ([]byte, error) {
	args := m.Called(plaintext, passphrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// DecryptString mocks the DecryptString method of EncryptionService.
func (m *MockEncryptionService) DecryptString(envelope []byte, passphrase string) (string, error) {
	args := m.Called(envelope, passphrase)
	return args.String(0), args.Error(1)
}

// EncryptObject mocks the EncryptObject method of EncryptionService.
func (m *MockEncryptionService) EncryptObject(v any, passphrase string) ([]byte, error) {
	args := m.Called(v, passphrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// DecryptObject mocks the DecryptObject method of EncryptionService.
func (m *MockEncryptionService) DecryptObject(envelope []byte, passphrase string, out any) error {
	args := m.Called(envelope, passphrase, out)
	return args.Error(0)
}

// EncryptToFile mocks the EncryptToFile method of EncryptionService.
func (m *MockEncryptionService) EncryptToFile(plaintext []byte, passphrase, path string) error {
	args := m.Called(plaintext, passphrase, path)
	return args.Error(0)
}

// DecryptFromFile mocks the DecryptFromFile method of EncryptionService.
func (m *MockEncryptionService) DecryptFromFile(path, passphrase string) ([]byte, error) {
	args := m.Called(path, passphrase)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// EncryptFile mocks the EncryptFile method of EncryptionService.
func (m *MockEncryptionService) EncryptFile(src, dst, passphrase string) error {
	args := m.Called(src, dst, passphrase)
	return args.Error(0)
}

// DecryptFile mocks the DecryptFile method of EncryptionService.
func (m *MockEncryptionService) DecryptFile(src, dst, passphrase string) error {
	args := m.Called(src, dst, passphrase)
	return args.Error(0)
}

// MockPassphraseResolver is a mock implementation of service.PassphraseResolver.
type MockPassphraseResolver struct {
	mock.Mock
}

// Wrap mocks the Wrap method of PassphraseResolver.
func (m *MockPassphraseResolver) Wrap(ctx context.Context, keyURI, passphrase string) (string, error) {
	args := m.Called(ctx, keyURI, passphrase)
	return args.String(0), args.Error(1)
}

// Unwrap mocks the Unwrap method of PassphraseResolver.
func (m *MockPassphraseResolver) Unwrap(ctx context.Context, keyURI, wrapped string) (string, error) {
	args := m.Called(ctx, keyURI, wrapped)
	return args.String(0), args.Error(1)
}
