package app

import (
	"fmt"

	"github.com/spf13/afero"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
	cryptoService "github.com/allisson/aether/internal/crypto/service"
	passwordDomain "github.com/allisson/aether/internal/password/domain"
	passwordService "github.com/allisson/aether/internal/password/service"
)

// HashService returns the PBKDF2 password hash service, decorated with metrics.
func (c *Container) HashService() (passwordService.HashService, error) {
	c.hashServiceInit.Do(func() {
		svc, err := c.initHashService()
		if err != nil {
			c.setErr("hashService", err)
			return
		}
		c.hashService = svc
	})
	if err := c.getErr("hashService"); err != nil {
		return nil, err
	}
	return c.hashService, nil
}

// PasswordRule returns the rule loaded from PASSWORD_RULE_FILE, or the default rule
// when no file is configured.
func (c *Container) PasswordRule() (passwordDomain.PasswordRule, error) {
	c.passwordRuleInit.Do(func() {
		rule, err := c.initPasswordRule()
		if err != nil {
			c.setErr("passwordRule", err)
			return
		}
		c.passwordRule = rule
	})
	if err := c.getErr("passwordRule"); err != nil {
		return passwordDomain.PasswordRule{}, err
	}
	return c.passwordRule, nil
}

// HashOptions builds the options for new hashes from configuration.
func (c *Container) HashOptions() (passwordDomain.HashOptions, error) {
	alg, err := cryptoDomain.ParseHashAlgorithm(c.config.HashAlgorithm)
	if err != nil {
		return passwordDomain.HashOptions{}, fmt.Errorf("invalid HASH_ALGORITHM: %w", err)
	}

	encoding, err := passwordDomain.ParseEncoding(c.config.HashEncoding)
	if err != nil {
		return passwordDomain.HashOptions{}, fmt.Errorf("invalid HASH_ENCODING: %w", err)
	}

	options := passwordDomain.HashOptions{
		SaltLength:          c.config.HashSaltLength,
		KeySize:             c.config.HashKeySize,
		MinIterations:       c.config.HashMinIterations,
		MaxIterations:       c.config.HashMaxIterations,
		MaxVerifyIterations: c.config.HashMaxVerifyIterations,
		Algorithm:           alg,
		Encoding:            encoding,
	}
	if err := options.Validate(); err != nil {
		return passwordDomain.HashOptions{}, err
	}
	return options, nil
}

func (c *Container) initHashService() (passwordService.HashService, error) {
	options, err := c.HashOptions()
	if err != nil {
		return nil, err
	}

	svc, err := passwordService.NewHashService(options, cryptoService.NewKeyDeriver(), c.RandomSource())
	if err != nil {
		return nil, fmt.Errorf("failed to create hash service: %w", err)
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for hash service: %w", err)
	}

	return passwordService.NewHashServiceWithMetrics(svc, bm), nil
}

func (c *Container) initPasswordRule() (passwordDomain.PasswordRule, error) {
	path := c.config.PasswordRuleFile
	if path == "" {
		return passwordDomain.DefaultPasswordRule(), nil
	}

	data, err := afero.ReadFile(c.Fs(), path)
	if err != nil {
		return passwordDomain.PasswordRule{}, fmt.Errorf("failed to read password rule file: %w", err)
	}

	rule, err := passwordDomain.ParseRule(data)
	if err != nil {
		return passwordDomain.PasswordRule{}, fmt.Errorf("invalid password rule file %s: %w", path, err)
	}
	return rule, nil
}
