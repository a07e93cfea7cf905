// Package dto provides data transfer objects for the crypto HTTP API.
package dto

import (
	"crypto/aes"
	"encoding/base64"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/aether/internal/validation"
)

const (
	// MaxPayloadBytes bounds the decoded plaintext accepted by the API.
	MaxPayloadBytes = 1 << 20

	// MaxEnvelopeBytes is the envelope size of a MaxPayloadBytes plaintext: the IV
	// plus a full padding block.
	MaxEnvelopeBytes = MaxPayloadBytes + 2*aes.BlockSize
)

// EncryptRequest carries base64 plaintext and the passphrase to derive the key from.
type EncryptRequest struct {
	Plaintext  string `json:"plaintext"`
	Passphrase string `json:"passphrase"`
}

// Validate checks if the encrypt request is valid.
func (r *EncryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Plaintext,
			validation.Required,
			customValidation.Base64,
			customValidation.Base64MaxBytes(MaxPayloadBytes),
		),
		validation.Field(&r.Passphrase,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// PlaintextBytes decodes Plaintext. Call only after Validate succeeded.
func (r *EncryptRequest) PlaintextBytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(r.Plaintext)
}

// DecryptRequest carries a base64 envelope and its passphrase.
type DecryptRequest struct {
	Envelope   string `json:"envelope"`
	Passphrase string `json:"passphrase"`
}

// Validate checks if the decrypt request is valid.
func (r *DecryptRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Envelope,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Base64,
			customValidation.Base64MaxBytes(MaxEnvelopeBytes),
		),
		validation.Field(&r.Passphrase,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// EnvelopeBytes decodes Envelope. Call only after Validate succeeded.
func (r *DecryptRequest) EnvelopeBytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(r.Envelope)
}
