package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"fmt"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
)

// AESCBCCipher encrypts with AES in CBC mode and PKCS#7 padding, producing envelopes
// of the form IV || ciphertext.
//
// The cipher is stateless apart from its random source and is safe for concurrent use.
// It provides confidentiality only; envelopes carry no authentication tag, so callers
// must treat a successful decrypt under a wrong key as possible (about 1 in 256) and
// validate the plaintext shape where it matters.
type AESCBCCipher struct {
	random RandomSource
}

// NewAESCBC creates a new AES-CBC cipher drawing IVs from random.
func NewAESCBC(random RandomSource) *AESCBCCipher {
	return &AESCBCCipher{random: random}
}

// Encrypt pads plaintext, encrypts it under key with a fresh IV and returns the envelope bytes.
// The key must be 16, 24 or 32 bytes.
func (c *AESCBCCipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	iv, err := RandomBytes(c.random, cryptoDomain.IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate IV: %w", err)
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	cryptoDomain.Zero(padded)

	return cryptoDomain.Envelope{IV: iv, Ciphertext: ciphertext}.Bytes(), nil
}

// Decrypt reads the leading IV from envelope and decrypts the remainder under key.
// Every failure past key validation is reported as ErrDecryptionFailed.
func (c *AESCBCCipher) Decrypt(key, envelope []byte) ([]byte, error) {
	block, err := newBlock(key)
	if err != nil {
		return nil, err
	}

	env, err := cryptoDomain.ParseEnvelope(envelope)
	if err != nil {
		return nil, err
	}

	padded := make([]byte, len(env.Ciphertext))
	cipher.NewCBCDecrypter(block, env.IV).CryptBlocks(padded, env.Ciphertext)

	plaintext, ok := pkcs7Unpad(padded, aes.BlockSize)
	if !ok {
		cryptoDomain.Zero(padded)
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	return plaintext, nil
}

func newBlock(key []byte) (cipher.Block, error) {
	switch len(key) {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: AES requires 16, 24 or 32 bytes, got %d", cryptoDomain.ErrInvalidKeySize, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	return block, nil
}

// pkcs7Pad always appends between 1 and blockSize bytes.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+padLen)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(padLen)
	}
	return out
}

// pkcs7Unpad checks the padding without branching on the padding bytes themselves.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}

	padLen := int(data[len(data)-1])
	good := subtle.ConstantTimeLessOrEq(1, padLen) & subtle.ConstantTimeLessOrEq(padLen, blockSize)
	checked := subtle.ConstantTimeSelect(good, padLen, blockSize)

	tail := data[len(data)-blockSize:]
	for i := range blockSize {
		// Only the last padLen bytes must equal padLen.
		inPad := subtle.ConstantTimeLessOrEq(blockSize-checked, i)
		match := subtle.ConstantTimeByteEq(tail[i], byte(padLen))
		good &= subtle.ConstantTimeSelect(inPad, match, 1)
	}

	if good != 1 {
		return nil, false
	}
	return data[:len(data)-padLen], true
}
