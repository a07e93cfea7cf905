package service

import (
	"context"
	"time"

	"github.com/allisson/aether/internal/metrics"
	passwordDomain "github.com/allisson/aether/internal/password/domain"
)

// hashServiceWithMetrics decorates HashService with metrics instrumentation.
type hashServiceWithMetrics struct {
	next    HashService
	metrics metrics.BusinessMetrics
}

// NewHashServiceWithMetrics wraps a HashService with metrics recording.
func NewHashServiceWithMetrics(svc HashService, m metrics.BusinessMetrics) HashService {
	return &hashServiceWithMetrics{
		next:    svc,
		metrics: m,
	}
}

// Hash records metrics for password hashing.
func (s *hashServiceWithMetrics) Hash(plaintext string) (string, error) {
	start := time.Now()
	record, err := s.next.Hash(plaintext)

	metrics.Observe(context.Background(), s.metrics, "password", "password_hash", start, metrics.StatusFromError(err))

	return record, err
}

// Verify records metrics for password verification. A mismatch counts as "mismatch", not "error".
func (s *hashServiceWithMetrics) Verify(plaintext, record string) (bool, error) {
	start := time.Now()
	ok, err := s.next.Verify(plaintext, record)

	status := metrics.StatusFromError(err)
	if err == nil && !ok {
		status = metrics.StatusMismatch
	}
	metrics.Observe(context.Background(), s.metrics, "password", "password_verify", start, status)

	return ok, err
}

func (s *hashServiceWithMetrics) NeedsRehash(record string) bool {
	return s.next.NeedsRehash(record)
}

func (s *hashServiceWithMetrics) Options() passwordDomain.HashOptions {
	return s.next.Options()
}
