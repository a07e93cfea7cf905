// Package httputil maps domain errors to JSON error responses.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
	apperrors "github.com/allisson/aether/internal/errors"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errorMapping pairs a sentinel with its response. An empty message means the
// error text is safe to show and is used as the message.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// errorMappings is checked in order, so specific sentinels come before the
// categories they wrap.
var errorMappings = []errorMapping{
	// Wrong passphrase and corrupted data must look the same to the caller.
	{cryptoDomain.ErrDecryptionFailed, http.StatusUnprocessableEntity, "decryption_failed", "The envelope could not be decrypted"},
	{apperrors.ErrQRGeneration, http.StatusUnprocessableEntity, "qr_generation_failed", ""},
	{apperrors.ErrUnsupportedType, http.StatusUnprocessableEntity, "unsupported_type", ""},
	{apperrors.ErrFormat, http.StatusUnprocessableEntity, "invalid_format", ""},
	{apperrors.ErrInvalidArgument, http.StatusUnprocessableEntity, "invalid_argument", ""},
	{apperrors.ErrNotFound, http.StatusNotFound, "not_found", "The requested resource was not found"},
}

// classify returns the status and body for err. Unknown errors become a 500 without details.
func classify(err error) (int, ErrorResponse) {
	for _, m := range errorMappings {
		if !apperrors.Is(err, m.target) {
			continue
		}
		message := m.message
		if message == "" {
			message = err.Error()
		}
		return m.status, ErrorResponse{Error: m.code, Message: message}
	}
	return http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	}
}

// HandleErrorGin writes the JSON response for a service error. The full error chain is
// logged; only the mapped message reaches the client.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	status, body := classify(err)

	if logger != nil {
		level := slog.LevelWarn
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", status),
			slog.String("error_code", body.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(status, body)
}

// HandleBadRequestGin writes a 400 for request bodies that cannot be decoded.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad_request", Message: err.Error()})
}

// HandleValidationErrorGin writes a 422 for decoded requests that fail validation.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation_error", Message: err.Error()})
}
