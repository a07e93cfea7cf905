package domain

import (
	"fmt"
	"strconv"
	"strings"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
)

const (
	// RecordDelimiter separates the five record fields.
	RecordDelimiter = ":"

	// LegacyPHCPrefix marks Argon2id records in PHC string format.
	LegacyPHCPrefix = "$argon2id$"

	recordFields = 5
)

// ParsedHash is the decoded form of an encoded hash record:
//
//	encoding:hash:salt:iterations:algorithm
//
// for example "Base64:3q2+7w==:AAECAw==:12000:SHA384".
type ParsedHash struct {
	Encoding   Encoding
	Hash       []byte
	Salt       []byte
	Iterations int
	Algorithm  cryptoDomain.HashAlgorithm
}

// String formats the record.
func (p ParsedHash) String() string {
	hash, _ := p.Encoding.EncodeToString(p.Hash)
	salt, _ := p.Encoding.EncodeToString(p.Salt)
	return strings.Join([]string{
		p.Encoding.String(),
		hash,
		salt,
		strconv.Itoa(p.Iterations),
		p.Algorithm.String(),
	}, RecordDelimiter)
}

// IsLegacyRecord reports whether record is an Argon2id PHC string.
func IsLegacyRecord(record string) bool {
	return strings.HasPrefix(record, LegacyPHCPrefix)
}

// ParseHash decodes an encoded hash record. Any structural problem yields ErrInvalidHashRecord.
func ParseHash(record string) (ParsedHash, error) {
	fields := strings.Split(record, RecordDelimiter)
	if len(fields) != recordFields {
		return ParsedHash{}, fmt.Errorf("%w: expected %d fields, got %d", ErrInvalidHashRecord, recordFields, len(fields))
	}
	for i, f := range fields {
		if f == "" {
			return ParsedHash{}, fmt.Errorf("%w: field %d is empty", ErrInvalidHashRecord, i+1)
		}
	}

	encoding, err := ParseEncoding(fields[0])
	if err != nil {
		return ParsedHash{}, fmt.Errorf("%w: %v", ErrInvalidHashRecord, err)
	}

	hash, err := encoding.DecodeString(fields[1])
	if err != nil {
		return ParsedHash{}, fmt.Errorf("%w: hash is not valid %s", ErrInvalidHashRecord, encoding)
	}

	salt, err := encoding.DecodeString(fields[2])
	if err != nil {
		return ParsedHash{}, fmt.Errorf("%w: salt is not valid %s", ErrInvalidHashRecord, encoding)
	}

	iterations, err := strconv.Atoi(fields[3])
	if err != nil || iterations <= 0 {
		return ParsedHash{}, fmt.Errorf("%w: iterations must be a positive integer", ErrInvalidHashRecord)
	}

	algorithm, err := cryptoDomain.ParseHashAlgorithm(fields[4])
	if err != nil || algorithm == cryptoDomain.SHA1 {
		return ParsedHash{}, fmt.Errorf("%w: unsupported algorithm %q", ErrInvalidHashRecord, fields[4])
	}

	return ParsedHash{
		Encoding:   encoding,
		Hash:       hash,
		Salt:       salt,
		Iterations: iterations,
		Algorithm:  algorithm,
	}, nil
}
