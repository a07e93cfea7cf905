// Package dto provides data transfer objects for the TOTP HTTP API.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/aether/internal/validation"
)

// SetupRequest starts authenticator enrollment. An empty Secret asks the server to
// generate one; an empty Issuer falls back to the configured issuer.
type SetupRequest struct {
	Account string `json:"account"`
	Issuer  string `json:"issuer,omitempty"`
	Secret  string `json:"secret,omitempty"`
}

// Validate checks if the setup request is valid.
func (r *SetupRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Account,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Issuer,
			validation.Length(0, 255),
		),
		validation.Field(&r.Secret,
			customValidation.Base32Secret,
		),
	)
}

// ValidateRequest checks a PIN against a Base32 secret.
type ValidateRequest struct {
	Secret string `json:"secret"`
	Pin    string `json:"pin"`
}

// Validate checks if the validate request is valid.
func (r *ValidateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Secret,
			validation.Required,
			customValidation.Base32Secret,
		),
		validation.Field(&r.Pin,
			validation.Required,
			customValidation.Pin,
		),
	)
}
