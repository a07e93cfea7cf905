package domain

import (
	"crypto/aes"
)

// IVSize is the length of the initialization vector prefixed to every envelope.
const IVSize = aes.BlockSize

// Envelope is the binary form of an encrypted payload: IV || cipher output.
//
// A fresh random IV is drawn for every encryption, so identical plaintexts under the
// same passphrase produce different envelopes.
type Envelope struct {
	IV         []byte
	Ciphertext []byte
}

// Bytes serializes the envelope as IV || Ciphertext.
func (e Envelope) Bytes() []byte {
	out := make([]byte, 0, len(e.IV)+len(e.Ciphertext))
	out = append(out, e.IV...)
	out = append(out, e.Ciphertext...)
	return out
}

// ParseEnvelope splits raw bytes into IV and ciphertext.
//
// Exactly IVSize bytes are read as the IV; the remainder must be a positive multiple
// of the AES block size. Any violation is reported as ErrDecryptionFailed.
func ParseEnvelope(raw []byte) (Envelope, error) {
	if len(raw) < IVSize+aes.BlockSize {
		return Envelope{}, ErrDecryptionFailed
	}

	body := raw[IVSize:]
	if len(body)%aes.BlockSize != 0 {
		return Envelope{}, ErrDecryptionFailed
	}

	return Envelope{
		IV:         raw[:IVSize],
		Ciphertext: body,
	}, nil
}
