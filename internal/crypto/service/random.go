package service

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

// cryptoRandom implements RandomSource on top of an io.Reader, crypto/rand by default.
type cryptoRandom struct {
	reader io.Reader
}

// NewRandomSource returns a RandomSource backed by crypto/rand.Reader.
func NewRandomSource() RandomSource {
	return &cryptoRandom{reader: rand.Reader}
}

// NewRandomSourceFromReader returns a RandomSource reading from r.
// Intended for tests that need reproducible IVs and salts.
func NewRandomSourceFromReader(r io.Reader) RandomSource {
	return &cryptoRandom{reader: r}
}

// Read fills p completely or returns an error.
func (c *cryptoRandom) Read(p []byte) (int, error) {
	return io.ReadFull(c.reader, p)
}

// Intn returns a uniform integer in [lower, upper).
func (c *cryptoRandom) Intn(lower, upper int) (int, error) {
	if upper <= lower {
		return lower, nil
	}

	n, err := rand.Int(c.reader, big.NewInt(int64(upper-lower)))
	if err != nil {
		return 0, fmt.Errorf("failed to draw random integer: %w", err)
	}

	return lower + int(n.Int64()), nil
}

// RandomBytes returns n bytes drawn from src.
func RandomBytes(src RandomSource, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := src.Read(b); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return b, nil
}
