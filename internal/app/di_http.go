package app

import (
	"context"
	"fmt"

	cryptoHTTP "github.com/allisson/aether/internal/crypto/http"
	"github.com/allisson/aether/internal/http"
	passwordHTTP "github.com/allisson/aether/internal/password/http"
	totpHTTP "github.com/allisson/aether/internal/totp/http"
)

// HTTPServer returns the API server with every route registered. ctx bounds
// background work started by middleware.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer(ctx)
		if err != nil {
			c.setErr("httpServer", err)
			return
		}
		c.httpServer = server
	})
	if err := c.getErr("httpServer"); err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	logger := c.Logger()

	encryptionService, err := c.EncryptionService()
	if err != nil {
		return nil, fmt.Errorf("failed to get encryption service for http server: %w", err)
	}

	hashService, err := c.HashService()
	if err != nil {
		return nil, fmt.Errorf("failed to get hash service for http server: %w", err)
	}

	rule, err := c.PasswordRule()
	if err != nil {
		return nil, fmt.Errorf("failed to get password rule for http server: %w", err)
	}

	authenticator, err := c.Authenticator()
	if err != nil {
		return nil, fmt.Errorf("failed to get authenticator for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	handlers := http.Handlers{
		Crypto:   cryptoHTTP.NewCryptoHandler(encryptionService, logger),
		Password: passwordHTTP.NewPasswordHandler(hashService, rule, logger),
		TOTP: totpHTTP.NewTOTPHandler(authenticator, c.RandomSource(), totpHTTP.Options{
			Issuer:          c.config.TOTPIssuer,
			PixelsPerModule: c.config.TOTPQRPixelsPerModule,
			Tolerance:       c.config.TOTPTolerance,
		}, logger),
	}

	server := http.NewServer(c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(ctx, c.config, handlers, provider)
	return server, nil
}
