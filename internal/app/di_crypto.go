package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/aether/internal/crypto/domain"
	cryptoService "github.com/allisson/aether/internal/crypto/service"
)

// EncryptionService returns the passphrase envelope cipher, decorated with metrics.
func (c *Container) EncryptionService() (cryptoService.EncryptionService, error) {
	c.encryptionServiceInit.Do(func() {
		svc, err := c.initEncryptionService()
		if err != nil {
			c.setErr("encryptionService", err)
			return
		}
		c.encryptionService = svc
	})
	if err := c.getErr("encryptionService"); err != nil {
		return nil, err
	}
	return c.encryptionService, nil
}

// KMSService returns the KMS service instance.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// PassphraseResolver returns the KMS-backed passphrase wrapper.
func (c *Container) PassphraseResolver() cryptoService.PassphraseResolver {
	c.passphraseResolverInit.Do(func() {
		c.passphraseResolver = cryptoService.NewPassphraseResolver(c.KMSService())
	})
	return c.passphraseResolver
}

func (c *Container) initEncryptionService() (cryptoService.EncryptionService, error) {
	variant, err := cryptoDomain.ParseCipherVariant(c.config.CipherVariant)
	if err != nil {
		return nil, fmt.Errorf("invalid CIPHER_VARIANT: %w", err)
	}

	serializer, err := cryptoService.NewSerializer(c.config.ObjectSerializer)
	if err != nil {
		return nil, fmt.Errorf("invalid OBJECT_SERIALIZER: %w", err)
	}

	svc, err := cryptoService.NewEncryptionService(variant, c.RandomSource(), serializer, c.Fs())
	if err != nil {
		return nil, fmt.Errorf("failed to create encryption service: %w", err)
	}

	bm, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for encryption service: %w", err)
	}

	return cryptoService.NewEncryptionServiceWithMetrics(svc, bm), nil
}
