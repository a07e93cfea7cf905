// Package http provides HTTP handlers for passphrase-based envelope encryption.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/aether/internal/crypto/http/dto"
	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
	cryptoService "github.com/allisson/aether/internal/crypto/service"
	"github.com/allisson/aether/internal/httputil"
	customValidation "github.com/allisson/aether/internal/validation"
)

// CryptoHandler exposes EncryptionService over HTTP.
type CryptoHandler struct {
	encryptionService cryptoService.EncryptionService
	logger            *slog.Logger
}

// NewCryptoHandler creates a new crypto handler.
func NewCryptoHandler(encryptionService cryptoService.EncryptionService, logger *slog.Logger) *CryptoHandler {
	return &CryptoHandler{
		encryptionService: encryptionService,
		logger:            logger,
	}
}

// EncryptHandler encrypts base64 plaintext under a passphrase.
// POST /v1/crypto/encrypt
func (h *CryptoHandler) EncryptHandler(c *gin.Context) {
	var req dto.EncryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	plaintext, err := req.PlaintextBytes()
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid base64 plaintext: %w", err), h.logger)
		return
	}
	defer cryptoDomain.Zero(plaintext)

	envelope, err := h.encryptionService.Encrypt(plaintext, req.Passphrase)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEncryptResponse(envelope))
}

// DecryptHandler decrypts a base64 envelope.
// POST /v1/crypto/decrypt
func (h *CryptoHandler) DecryptHandler(c *gin.Context) {
	var req dto.DecryptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	envelope, err := req.EnvelopeBytes()
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid base64 envelope: %w", err), h.logger)
		return
	}

	plaintext, err := h.encryptionService.Decrypt(envelope, req.Passphrase)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	defer cryptoDomain.Zero(plaintext)

	c.JSON(http.StatusOK, dto.MapDecryptResponse(plaintext))
}
