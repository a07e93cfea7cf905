package dto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncryptRequest_Validate(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString([]byte("hello"))

	tests := []struct {
		name    string
		request EncryptRequest
		wantErr bool
	}{
		{name: "Valid", request: EncryptRequest{Plaintext: valid, Passphrase: "pw"}},
		{name: "EmptyPlaintext", request: EncryptRequest{Passphrase: "pw"}, wantErr: true},
		{name: "InvalidBase64", request: EncryptRequest{Plaintext: "not base64!", Passphrase: "pw"}, wantErr: true},
		{name: "EmptyPassphrase", request: EncryptRequest{Plaintext: valid}, wantErr: true},
		{name: "BlankPassphrase", request: EncryptRequest{Plaintext: valid, Passphrase: "   "}, wantErr: true},
		{
			name:    "LargestPlaintext",
			request: EncryptRequest{Plaintext: base64.StdEncoding.EncodeToString(make([]byte, MaxPayloadBytes)), Passphrase: "pw"},
		},
		{
			name:    "PlaintextTooLarge",
			request: EncryptRequest{Plaintext: base64.StdEncoding.EncodeToString(make([]byte, MaxPayloadBytes+1)), Passphrase: "pw"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestEncryptRequest_PlaintextBytes(t *testing.T) {
	req := EncryptRequest{Plaintext: base64.StdEncoding.EncodeToString([]byte("hello"))}

	out, err := req.PlaintextBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), out)
}

func TestDecryptRequest_Validate(t *testing.T) {
	valid := base64.StdEncoding.EncodeToString(make([]byte, 32))

	tests := []struct {
		name    string
		request DecryptRequest
		wantErr bool
	}{
		{name: "Valid", request: DecryptRequest{Envelope: valid, Passphrase: "pw"}},
		{name: "EmptyEnvelope", request: DecryptRequest{Passphrase: "pw"}, wantErr: true},
		{name: "InvalidBase64", request: DecryptRequest{Envelope: "%%%", Passphrase: "pw"}, wantErr: true},
		{name: "EmptyPassphrase", request: DecryptRequest{Envelope: valid}, wantErr: true},
		{
			name:    "LargestEnvelope",
			request: DecryptRequest{Envelope: base64.StdEncoding.EncodeToString(make([]byte, MaxEnvelopeBytes)), Passphrase: "pw"},
		},
		{
			name:    "EnvelopeTooLarge",
			request: DecryptRequest{Envelope: base64.StdEncoding.EncodeToString(make([]byte, MaxEnvelopeBytes+1)), Passphrase: "pw"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestMapResponses(t *testing.T) {
	assert.Equal(t, "AAEC", MapEncryptResponse([]byte{0, 1, 2}).Envelope)
	assert.Equal(t, "aGk=", MapDecryptResponse([]byte("hi")).Plaintext)
}
