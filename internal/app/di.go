// Package app provides the dependency injection container that assembles the
// encryption, password and TOTP services and the servers that expose them.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/afero"

	"github.com/allisson/aether/internal/config"
	cryptoService "github.com/allisson/aether/internal/crypto/service"
	"github.com/allisson/aether/internal/http"
	"github.com/allisson/aether/internal/metrics"
	passwordDomain "github.com/allisson/aether/internal/password/domain"
	passwordService "github.com/allisson/aether/internal/password/service"
	totpService "github.com/allisson/aether/internal/totp/service"
)

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access; failed initializations are remembered and
// returned on every later call.
type Container struct {
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	fs              afero.Fs
	random          cryptoService.RandomSource
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto
	encryptionService  cryptoService.EncryptionService
	kmsService         cryptoService.KMSService
	passphraseResolver cryptoService.PassphraseResolver

	// Password
	hashService  passwordService.HashService
	passwordRule passwordDomain.PasswordRule

	// TOTP
	authenticator totpService.Authenticator

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                     sync.Mutex
	loggerInit             sync.Once
	fsInit                 sync.Once
	randomInit             sync.Once
	metricsProviderInit    sync.Once
	businessMetricsInit    sync.Once
	encryptionServiceInit  sync.Once
	kmsServiceInit         sync.Once
	passphraseResolverInit sync.Once
	hashServiceInit        sync.Once
	passwordRuleInit       sync.Once
	authenticatorInit      sync.Once
	httpServerInit         sync.Once
	metricsServerInit      sync.Once
	initErrors             map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// NewContainerWithFs creates a container whose file operations go through fs.
func NewContainerWithFs(cfg *config.Config, fs afero.Fs) *Container {
	c := NewContainer(cfg)
	c.fsInit.Do(func() {
		c.fs = fs
	})
	return c
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON logger configured with LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// Fs returns the filesystem used for encrypted files and the password rule file.
func (c *Container) Fs() afero.Fs {
	c.fsInit.Do(func() {
		c.fs = afero.NewOsFs()
	})
	return c.fs
}

// RandomSource returns the crypto/rand backed random source.
func (c *Container) RandomSource() cryptoService.RandomSource {
	c.randomInit.Do(func() {
		c.random = cryptoService.NewRandomSource()
	})
	return c.random
}

// setErr records an initialization failure under name.
func (c *Container) setErr(name string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.initErrors[name] = err
}

// getErr returns the initialization failure recorded under name, if any.
func (c *Container) getErr(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[name]
}

// Shutdown stops the servers and flushes metrics. Safe to call when nothing was initialized.
func (c *Container) Shutdown(ctx context.Context) error {
	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}
