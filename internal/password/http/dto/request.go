// Package dto provides data transfer objects for the password HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	passwordDomain "github.com/allisson/aether/internal/password/domain"
	customValidation "github.com/allisson/aether/internal/validation"
)

// HashRequest contains the password to hash.
type HashRequest struct {
	Password string `json:"password"`
}

// Validate checks the password is present and satisfies rule.
func (r *HashRequest) Validate(rule passwordDomain.PasswordRule) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			customValidation.PasswordPolicy(rule),
		),
	)
}

// VerifyRequest contains a password and the stored hash record.
type VerifyRequest struct {
	Password string `json:"password"`
	Hash     string `json:"hash"`
}

// Validate checks if the verify request is valid.
func (r *VerifyRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Hash,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
		),
	)
}

// CheckRequest contains a password to check against the policy.
type CheckRequest struct {
	Password string `json:"password"`
}

// Validate checks if the check request is valid.
func (r *CheckRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password, validation.Required),
	)
}
