package service

import (
	"context"
	"time"

	"github.com/allisson/aether/internal/metrics"
)

const metricsDomain = "crypto"

// encryptionServiceWithMetrics decorates EncryptionService with metrics instrumentation.
type encryptionServiceWithMetrics struct {
	next    EncryptionService
	metrics metrics.BusinessMetrics
}

// NewEncryptionServiceWithMetrics wraps an EncryptionService with metrics recording.
func NewEncryptionServiceWithMetrics(svc EncryptionService, m metrics.BusinessMetrics) EncryptionService {
	return &encryptionServiceWithMetrics{
		next:    svc,
		metrics: m,
	}
}

func (s *encryptionServiceWithMetrics) record(operation string, start time.Time, err error) {
	metrics.Observe(context.Background(), s.metrics, metricsDomain, operation, start, metrics.StatusFromError(err))
}

func (s *encryptionServiceWithMetrics) Encrypt(plaintext []byte, passphrase string) ([]byte, error) {
	start := time.Now()
	out, err := s.next.Encrypt(plaintext, passphrase)
	s.record("encrypt", start, err)
	return out, err
}

func (s *encryptionServiceWithMetrics) Decrypt(envelope []byte, passphrase string) ([]byte, error) {
	start := time.Now()
	out, err := s.next.Decrypt(envelope, passphrase)
	s.record("decrypt", start, err)
	return out, err
}

func (s *encryptionServiceWithMetrics) EncryptString(plaintext, passphrase string) ([]byte, error) {
	start := time.Now()
	out, err := s.next.EncryptString(plaintext, passphrase)
	s.record("encrypt_string", start, err)
	return out, err
}

func (s *encryptionServiceWithMetrics) DecryptString(envelope []byte, passphrase string) (string, error) {
	start := time.Now()
	out, err := s.next.DecryptString(envelope, passphrase)
	s.record("decrypt_string", start, err)
	return out, err
}

func (s *encryptionServiceWithMetrics) EncryptObject(v any, passphrase string) ([]byte, error) {
	start := time.Now()
	out, err := s.next.EncryptObject(v, passphrase)
	s.record("encrypt_object", start, err)
	return out, err
}

func (s *encryptionServiceWithMetrics) DecryptObject(envelope []byte, passphrase string, out any) error {
	start := time.Now()
	err := s.next.DecryptObject(envelope, passphrase, out)
	s.record("decrypt_object", start, err)
	return err
}

func (s *encryptionServiceWithMetrics) EncryptToFile(plaintext []byte, passphrase, path string) error {
	start := time.Now()
	err := s.next.EncryptToFile(plaintext, passphrase, path)
	s.record("encrypt_to_file", start, err)
	return err
}

func (s *encryptionServiceWithMetrics) DecryptFromFile(path, passphrase string) ([]byte, error) {
	start := time.Now()
	out, err := s.next.DecryptFromFile(path, passphrase)
	s.record("decrypt_from_file", start, err)
	return out, err
}

func (s *encryptionServiceWithMetrics) EncryptFile(src, dst, passphrase string) error {
	start := time.Now()
	err := s.next.EncryptFile(src, dst, passphrase)
	s.record("encrypt_file", start, err)
	return err
}

func (s *encryptionServiceWithMetrics) DecryptFile(src, dst, passphrase string) error {
	start := time.Now()
	err := s.next.DecryptFile(src, dst, passphrase)
	s.record("decrypt_file", start, err)
	return err
}
