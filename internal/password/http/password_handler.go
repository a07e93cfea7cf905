// Package http provides HTTP handlers for password hashing and policy checks.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/aether/internal/httputil"
	passwordDomain "github.com/allisson/aether/internal/password/domain"
	"github.com/allisson/aether/internal/password/http/dto"
	passwordService "github.com/allisson/aether/internal/password/service"
	customValidation "github.com/allisson/aether/internal/validation"
)

// PasswordHandler exposes HashService and the configured PasswordRule over HTTP.
type PasswordHandler struct {
	hashService passwordService.HashService
	rule        passwordDomain.PasswordRule
	clock       func() time.Time
	logger      *slog.Logger
}

// NewPasswordHandler creates a new password handler.
func NewPasswordHandler(
	hashService passwordService.HashService,
	rule passwordDomain.PasswordRule,
	logger *slog.Logger,
) *PasswordHandler {
	return &PasswordHandler{
		hashService: hashService,
		rule:        rule,
		clock:       time.Now,
		logger:      logger,
	}
}

// HashHandler hashes a password that satisfies the password rule.
// POST /v1/passwords/hash
func (h *PasswordHandler) HashHandler(c *gin.Context) {
	var req dto.HashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(h.rule); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.hashService.Hash(req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.HashResponse{Hash: record})
}

// VerifyHandler checks a password against a stored record.
// POST /v1/passwords/verify
func (h *PasswordHandler) VerifyHandler(c *gin.Context) {
	var req dto.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	valid, err := h.hashService.Verify(req.Password, req.Hash)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Rehash advice is only useful when the caller holds the right plaintext.
	response := dto.VerifyResponse{Valid: valid}
	if valid {
		response.NeedsRehash = h.hashService.NeedsRehash(req.Hash)
	}

	c.JSON(http.StatusOK, response)
}

// CheckHandler reports every rule violation for a password without hashing it.
// POST /v1/passwords/check
func (h *PasswordHandler) CheckHandler(c *gin.Context) {
	var req dto.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCheckResponse(h.rule.Validate(req.Password, h.clock())))
}
