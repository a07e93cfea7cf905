// Package http provides the API and metrics HTTP servers, their middleware and lifecycle.
package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/aether/internal/config"
	cryptoHTTP "github.com/allisson/aether/internal/crypto/http"
	"github.com/allisson/aether/internal/metrics"
	passwordHTTP "github.com/allisson/aether/internal/password/http"
	totpHTTP "github.com/allisson/aether/internal/totp/http"
)

// Handlers groups the per-domain API handlers.
type Handlers struct {
	Crypto   *cryptoHTTP.CryptoHandler
	Password *passwordHTTP.PasswordHandler
	TOTP     *totpHTTP.TOTPHandler
}

// Server is the public API server.
type Server struct {
	server   *http.Server
	router   *gin.Engine
	logger   *slog.Logger
	draining atomic.Bool
}

// NewServer creates a server bound to host:port. Call SetupRouter before Start.
func NewServer(host string, port int, logger *slog.Logger) *Server {
	return &Server{
		server: newHTTPServer(host, port, nil),
		logger: logger,
	}
}

// SetupRouter registers middleware and routes. ctx bounds background work started by
// middleware, such as rate limiter eviction. metricsProvider may be nil.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	handlers Handlers,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsProvider.Namespace()))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.AllowOrigins(), s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	if cfg.RateLimitEnabled {
		v1.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	if handlers.Crypto != nil {
		crypto := v1.Group("/crypto")
		crypto.POST("/encrypt", handlers.Crypto.EncryptHandler)
		crypto.POST("/decrypt", handlers.Crypto.DecryptHandler)
	}

	if handlers.Password != nil {
		passwords := v1.Group("/passwords")
		passwords.POST("/hash", handlers.Password.HashHandler)
		passwords.POST("/verify", handlers.Password.VerifyHandler)
		passwords.POST("/check", handlers.Password.CheckHandler)
	}

	if handlers.TOTP != nil {
		totp := v1.Group("/totp")
		totp.POST("/setup", handlers.TOTP.SetupHandler)
		totp.POST("/validate", handlers.TOTP.ValidateHandler)
	}

	s.router = router
	s.server.Handler = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		return errors.New("router not configured")
	}
	return listenAndServe(s.server, "api", s.logger)
}

// Shutdown marks the server not ready and drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.draining.Store(true)
	s.logger.Info("shutting down api server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports not ready once shutdown has begun so load balancers stop
// routing new requests here.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.draining.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
