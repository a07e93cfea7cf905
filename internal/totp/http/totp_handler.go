// Package http provides HTTP handlers for TOTP enrollment and PIN validation.
package http

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
	"github.com/allisson/aether/internal/httputil"
	totpDomain "github.com/allisson/aether/internal/totp/domain"
	"github.com/allisson/aether/internal/totp/http/dto"
	totpService "github.com/allisson/aether/internal/totp/service"
	customValidation "github.com/allisson/aether/internal/validation"
)

// Options configures TOTPHandler.
type Options struct {
	// Issuer is used when a setup request names none.
	Issuer string
	// PixelsPerModule scales QR codes; zero disables them.
	PixelsPerModule int
	// Tolerance is the accepted clock drift when validating PINs.
	Tolerance time.Duration
}

// TOTPHandler exposes Authenticator over HTTP.
type TOTPHandler struct {
	authenticator totpService.Authenticator
	random        io.Reader
	options       Options
	logger        *slog.Logger
}

// NewTOTPHandler creates a new TOTP handler. random supplies new shared secrets.
func NewTOTPHandler(
	authenticator totpService.Authenticator,
	random io.Reader,
	options Options,
	logger *slog.Logger,
) *TOTPHandler {
	return &TOTPHandler{
		authenticator: authenticator,
		random:        random,
		options:       options,
		logger:        logger,
	}
}

// SetupHandler returns the manual entry key, provisioning URI and QR code for an account.
// POST /v1/totp/setup
func (h *TOTPHandler) SetupHandler(c *gin.Context) {
	var req dto.SetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	issuer := req.Issuer
	if issuer == "" {
		issuer = h.options.Issuer
	}

	var (
		info totpDomain.SetupInfo
		err  error
	)
	if req.Secret != "" {
		info, err = h.authenticator.GenerateSetupInfoFromBase32(
			issuer, req.Account, req.Secret, h.options.PixelsPerModule,
		)
	} else {
		var secret []byte
		secret, err = totpDomain.GenerateSecret(h.random, totpDomain.DefaultSecretLength)
		if err == nil {
			info, err = h.authenticator.GenerateSetupInfo(issuer, req.Account, secret, h.options.PixelsPerModule)
			cryptoDomain.Zero(secret)
		}
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapSetupResponse(info))
}

// ValidateHandler checks a PIN against a secret within the configured tolerance.
// POST /v1/totp/validate
func (h *TOTPHandler) ValidateHandler(c *gin.Context) {
	var req dto.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	valid, err := h.authenticator.ValidatePinFromBase32(req.Secret, req.Pin, h.options.Tolerance)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ValidateResponse{Valid: valid})
}
