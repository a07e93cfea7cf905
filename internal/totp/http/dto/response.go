package dto

import (
	"encoding/base64"

	totpDomain "github.com/allisson/aether/internal/totp/domain"
)

// SetupResponse carries the enrollment data. QRCode is a base64 PNG and is omitted
// when QR rendering is disabled.
type SetupResponse struct {
	Secret          string `json:"secret"`
	ProvisioningURI string `json:"provisioning_uri"`
	QRCode          string `json:"qr_code,omitempty"`
}

// ValidateResponse reports whether the PIN was accepted.
type ValidateResponse struct {
	Valid bool `json:"valid"`
}

// MapSetupResponse converts SetupInfo for transport.
func MapSetupResponse(info totpDomain.SetupInfo) SetupResponse {
	response := SetupResponse{
		Secret:          info.ManualEntryKey,
		ProvisioningURI: info.ProvisioningURI,
	}
	if len(info.QRCodePNG) > 0 {
		response.QRCode = base64.StdEncoding.EncodeToString(info.QRCodePNG)
	}
	return response
}
