package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
	totpService "github.com/allisson/aether/internal/totp/service"
)

// Authenticator returns the TOTP authenticator, decorated with metrics.
func (c *Container) Authenticator() (totpService.Authenticator, error) {
	c.authenticatorInit.Do(func() {
		a, err := c.initAuthenticator()
		if err != nil {
			c.setErr("authenticator", err)
			return
		}
		c.authenticator = a
	})
	if err := c.getErr("authenticator"); err != nil {
		return nil, err
	}
	return c.authenticator, nil
}

func (c *Container) initAuthenticator() (totpService.Authenticator, error) {
	alg, err := cryptoDomain.ParseHashAlgorithm(c.config.TOTPAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid TOTP_ALGORITHM: %w", err)
	}

	a, err := totpService.NewAuthenticator(alg, c.config.TOTPDigits, nil, totpService.NewQRRenderer())
	if err != nil {
		return nil, fmt.Errorf("failed to create authenticator: %w", err)
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for authenticator: %w", err)
	}

	return totpService.NewAuthenticatorWithMetrics(a, bm), nil
}
