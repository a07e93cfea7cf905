package validation

import (
	"encoding/base64"
	"strings"

	validation "github.com/jellydator/validation"
)

// Base64 validates standard padded base64, the encoding used for binary fields in request bodies.
var Base64 = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := base64.StdEncoding.DecodeString(s)
		return err == nil
	},
	validation.NewError("validation_base64", "must be valid base64-encoded data"),
)

// Base64MaxBytes rejects base64 text that would decode to more than limit bytes.
// Pair it with Base64; the size is computed from the text without decoding it.
func Base64MaxBytes(limit int) validation.Rule {
	return validation.NewStringRuleWithError(
		func(s string) bool {
			padding := len(s) - len(strings.TrimRight(s, "="))
			return base64.StdEncoding.DecodedLen(len(s))-padding <= limit
		},
		validation.NewError("validation_base64_too_large", "decoded data exceeds the size limit").
			SetParams(map[string]any{"limit": limit}),
	)
}
