package service

import (
	"crypto/hmac"
	"crypto/subtle"
	"encoding/binary"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
	apperrors "github.com/allisson/aether/internal/errors"
	totpDomain "github.com/allisson/aether/internal/totp/domain"
)

// TimeStep is the TOTP period. The epoch is Unix time zero.
const TimeStep = 30 * time.Second

var powersOfTen = [...]uint32{1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000}

type authenticator struct {
	algorithm cryptoDomain.HashAlgorithm
	digits    int
	clock     func() time.Time
	qr        QRRenderer
}

// NewAuthenticator creates an Authenticator.
//
// An empty algorithm selects SHA1 and zero digits selects 6, the values every
// authenticator app assumes. A nil clock selects time.Now.
func NewAuthenticator(
	algorithm cryptoDomain.HashAlgorithm,
	digits int,
	clock func() time.Time,
	qr QRRenderer,
) (Authenticator, error) {
	if algorithm == "" {
		algorithm = cryptoDomain.SHA1
	}
	if _, err := algorithm.New(); err != nil {
		return nil, err
	}

	if digits == 0 {
		digits = totpDomain.DefaultDigits
	}
	if digits < totpDomain.MinDigits || digits > totpDomain.MaxDigits {
		return nil, fmt.Errorf("%w: got %d", totpDomain.ErrInvalidDigits, digits)
	}

	if clock == nil {
		clock = time.Now
	}

	return &authenticator{
		algorithm: algorithm,
		digits:    digits,
		clock:     clock,
		qr:        qr,
	}, nil
}

// GenerateSetupInfo builds the enrollment data for secret.
func (a *authenticator) GenerateSetupInfo(
	issuer, account string,
	secret []byte,
	pixelsPerModule int,
) (totpDomain.SetupInfo, error) {
	if account == "" {
		return totpDomain.SetupInfo{}, totpDomain.ErrEmptyAccount
	}
	if len(secret) == 0 {
		return totpDomain.SetupInfo{}, totpDomain.ErrEmptySecret
	}
	if pixelsPerModule < 0 {
		return totpDomain.SetupInfo{}, apperrors.Wrap(
			apperrors.ErrInvalidArgument,
			"pixels per module cannot be negative",
		)
	}

	info := totpDomain.SetupInfo{
		ManualEntryKey: totpDomain.Base32EncodeUnpadded(secret),
	}
	info.ProvisioningURI = a.provisioningURI(issuer, account, info.ManualEntryKey)

	if pixelsPerModule > 0 {
		png, err := a.qr.Render(info.ProvisioningURI, pixelsPerModule)
		if err != nil {
			return totpDomain.SetupInfo{}, err
		}
		info.QRCodePNG = png
	}

	return info, nil
}

func (a *authenticator) GenerateSetupInfoFromBase32(
	issuer, account, secret string,
	pixelsPerModule int,
) (totpDomain.SetupInfo, error) {
	raw, err := totpDomain.Base32Decode(secret)
	if err != nil {
		return totpDomain.SetupInfo{}, err
	}
	return a.GenerateSetupInfo(issuer, account, raw, pixelsPerModule)
}

// provisioningURI formats the Key URI understood by authenticator apps:
//
//	otpauth://totp/Issuer:account?secret=KEY&issuer=Issuer
//
// The label and issuer parameter are omitted when issuer is empty.
func (a *authenticator) provisioningURI(issuer, account, key string) string {
	var b strings.Builder
	b.WriteString("otpauth://totp/")
	if issuer != "" {
		b.WriteString(escapeDataString(issuer))
		b.WriteString(":")
	}
	b.WriteString(escapeDataString(account))
	b.WriteString("?secret=")
	b.WriteString(key)
	if issuer != "" {
		b.WriteString("&issuer=")
		b.WriteString(escapeDataString(issuer))
	}
	if a.algorithm != cryptoDomain.SHA1 {
		b.WriteString("&algorithm=")
		b.WriteString(a.algorithm.String())
	}
	if a.digits != totpDomain.DefaultDigits {
		b.WriteString("&digits=")
		b.WriteString(strconv.Itoa(a.digits))
	}
	return b.String()
}

// escapeDataString percent-encodes everything except RFC 3986 unreserved characters.
func escapeDataString(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// GeneratePin computes the RFC 4226 HOTP value for counter.
func (a *authenticator) GeneratePin(secret []byte, counter int64) (string, error) {
	if len(secret) == 0 {
		return "", totpDomain.ErrEmptySecret
	}

	newHash, err := a.algorithm.New()
	if err != nil {
		return "", err
	}

	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], uint64(counter))

	mac := hmac.New(newHash, secret)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation.
	offset := sum[len(sum)-1] & 0x0f
	code := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff

	return fmt.Sprintf("%0*d", a.digits, code%powersOfTen[a.digits]), nil
}

func (a *authenticator) CurrentPin(secret []byte) (string, error) {
	return a.GeneratePin(secret, a.Counter(a.clock()))
}

func (a *authenticator) CurrentPinFromBase32(secret string) (string, error) {
	raw, err := totpDomain.Base32Decode(secret)
	if err != nil {
		return "", err
	}
	return a.CurrentPin(raw)
}

// Counter returns floor(unix seconds / 30).
func (a *authenticator) Counter(t time.Time) int64 {
	step := int64(TimeStep / time.Second)
	unix := t.Unix()
	counter := unix / step
	if unix < 0 && unix%step != 0 {
		counter--
	}
	return counter
}

// window returns the counter range accepted for tolerance around now.
func (a *authenticator) window(tolerance time.Duration) (int64, int64, error) {
	if tolerance < 0 {
		return 0, 0, apperrors.Wrap(apperrors.ErrInvalidArgument, "tolerance cannot be negative")
	}

	offset := int64(math.Ceil(tolerance.Seconds() / TimeStep.Seconds()))
	now := a.Counter(a.clock())
	return now - offset, now + offset, nil
}

func (a *authenticator) CurrentPins(secret []byte, tolerance time.Duration) ([]string, error) {
	from, to, err := a.window(tolerance)
	if err != nil {
		return nil, err
	}

	pins := make([]string, 0, to-from+1)
	for c := from; c <= to; c++ {
		pin, err := a.GeneratePin(secret, c)
		if err != nil {
			return nil, err
		}
		pins = append(pins, pin)
	}
	return pins, nil
}

// ValidatePin compares pin against every candidate in the window without stopping at
// the first match. A PIN of the wrong length or containing non-digits is simply invalid.
func (a *authenticator) ValidatePin(secret []byte, pin string, tolerance time.Duration) (bool, error) {
	pins, err := a.CurrentPins(secret, tolerance)
	if err != nil {
		return false, err
	}

	if len(pin) != a.digits {
		return false, nil
	}

	match := 0
	for _, candidate := range pins {
		match |= subtle.ConstantTimeCompare([]byte(candidate), []byte(pin))
	}
	return match == 1, nil
}

func (a *authenticator) ValidatePinFromBase32(secret, pin string, tolerance time.Duration) (bool, error) {
	raw, err := totpDomain.Base32Decode(secret)
	if err != nil {
		return false, err
	}
	return a.ValidatePin(raw, pin, tolerance)
}
