package dto

import "encoding/base64"

// EncryptResponse holds the base64 envelope (IV || ciphertext).
type EncryptResponse struct {
	Envelope string `json:"envelope"`
}

// DecryptResponse holds the base64 plaintext.
type DecryptResponse struct {
	Plaintext string `json:"plaintext"`
}

// MapEncryptResponse encodes envelope for transport.
func MapEncryptResponse(envelope []byte) EncryptResponse {
	return EncryptResponse{Envelope: base64.StdEncoding.EncodeToString(envelope)}
}

// MapDecryptResponse encodes plaintext for transport.
func MapDecryptResponse(plaintext []byte) DecryptResponse {
	return DecryptResponse{Plaintext: base64.StdEncoding.EncodeToString(plaintext)}
}
