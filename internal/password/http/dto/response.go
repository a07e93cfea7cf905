package dto

import (
	passwordDomain "github.com/allisson/aether/internal/password/domain"
)

// HashResponse holds the encoded hash record.
type HashResponse struct {
	Hash string `json:"hash"`
}

// VerifyResponse reports whether the password matched and whether the record
// should be replaced with one using the current options.
type VerifyResponse struct {
	Valid       bool `json:"valid"`
	NeedsRehash bool `json:"needs_rehash"`
}

// CheckResponse lists every policy violation. Violations is never null.
type CheckResponse struct {
	Valid      bool                       `json:"valid"`
	Violations []passwordDomain.Violation `json:"violations"`
}

// MapCheckResponse builds a CheckResponse from rule violations.
func MapCheckResponse(violations []passwordDomain.Violation) CheckResponse {
	if violations == nil {
		violations = []passwordDomain.Violation{}
	}
	return CheckResponse{
		Valid:      len(violations) == 0,
		Violations: violations,
	}
}
