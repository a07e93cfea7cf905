package domain

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	pwdargon2 "github.com/allisson/go-pwdhash/argon2"
)

// LegacyParams holds the cost parameters of an Argon2id PHC record:
//
//	$argon2id$v=19$m=65536,t=3,p=4$<salt>$<hash>
type LegacyParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	KeyLen      int
}

// ParseLegacyParams reads the cost parameters of a PHC record without deriving anything.
func ParseLegacyParams(record string) (LegacyParams, error) {
	parts := strings.Split(record, "$")
	if len(parts) != 6 || !IsLegacyRecord(record) {
		return LegacyParams{}, fmt.Errorf("%w: malformed argon2id record", ErrInvalidHashRecord)
	}

	values := map[string]uint64{}
	for _, kv := range strings.Split(parts[3], ",") {
		key, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return LegacyParams{}, fmt.Errorf("%w: malformed argon2id parameter %q", ErrInvalidHashRecord, kv)
		}
		n, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return LegacyParams{}, fmt.Errorf("%w: argon2id parameter %s is not a 32-bit integer", ErrInvalidHashRecord, key)
		}
		values[key] = n
	}
	for _, key := range []string{"m", "t", "p"} {
		if _, ok := values[key]; !ok {
			return LegacyParams{}, fmt.Errorf("%w: missing argon2id parameter %s", ErrInvalidHashRecord, key)
		}
	}
	if values["p"] > 255 {
		return LegacyParams{}, fmt.Errorf("%w: argon2id parallelism out of range", ErrInvalidHashRecord)
	}

	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return LegacyParams{}, fmt.Errorf("%w: argon2id hash is not valid base64", ErrInvalidHashRecord)
	}

	return LegacyParams{
		Memory:      uint32(values["m"]),
		Iterations:  uint32(values["t"]),
		Parallelism: uint8(values["p"]),
		KeyLen:      len(hash),
	}, nil
}

// CheckCost rejects parameters outside the limits go-pwdhash enforces when hashing.
// Verification derives with the record's own parameters, so these bound the work
// a single record can demand.
func (p LegacyParams) CheckCost() error {
	switch {
	case p.Memory < pwdargon2.MinMemory || p.Memory > pwdargon2.MaxMemory:
		return fmt.Errorf("%w: argon2id memory %d KiB out of range", ErrInvalidHashRecord, p.Memory)
	case p.Iterations == 0 || p.Iterations > pwdargon2.MaxIterations:
		return fmt.Errorf("%w: argon2id iterations %d out of range", ErrInvalidHashRecord, p.Iterations)
	case p.Parallelism < pwdargon2.MinParallelism || p.Parallelism > pwdargon2.MaxParallelism:
		return fmt.Errorf("%w: argon2id parallelism %d out of range", ErrInvalidHashRecord, p.Parallelism)
	case p.KeyLen == 0 || p.KeyLen > MaxRecordKeySize:
		return fmt.Errorf("%w: argon2id hash length %d out of range", ErrInvalidHashRecord, p.KeyLen)
	}
	return nil
}
