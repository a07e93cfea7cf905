package domain

import (
	"github.com/allisson/aether/internal/errors"
)

// Password error definitions.
var (
	// ErrInvalidHashOptions indicates HashOptions with non-positive sizes or an inverted iteration range.
	ErrInvalidHashOptions = errors.Wrap(errors.ErrInvalidArgument, "invalid hash options")

	// ErrInvalidHashRecord indicates an encoded hash record that cannot be parsed.
	ErrInvalidHashRecord = errors.Wrap(errors.ErrFormat, "invalid hash record")

	// ErrUnsupportedEncoding indicates an unknown hash record encoding token.
	ErrUnsupportedEncoding = errors.Wrap(errors.ErrFormat, "unsupported encoding")

	// ErrInvalidRule indicates a password rule with negative counts or a minimum on a disallowed class.
	ErrInvalidRule = errors.Wrap(errors.ErrInvalidArgument, "invalid password rule")

	// ErrMalformedRule indicates password rule JSON that cannot be decoded.
	ErrMalformedRule = errors.Wrap(errors.ErrFormat, "malformed password rule")
)
