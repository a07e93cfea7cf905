// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// ServerHost is the host address the server will bind to.
	ServerHost string
	// ServerPort is the port number the server will listen on.
	ServerPort int
	// ShutdownTimeout bounds graceful shutdown of the HTTP servers.
	ShutdownTimeout time.Duration

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// CipherVariant selects the AES key size ("aes-256" or "aes-128").
	CipherVariant string
	// ObjectSerializer selects the object encryption format ("json" or "yaml").
	ObjectSerializer string

	// HashSaltLength is the salt length in bytes for new password hashes.
	HashSaltLength int
	// HashKeySize is the derived hash length in bytes.
	HashKeySize int
	// HashMinIterations is the inclusive lower bound of the PBKDF2 iteration count.
	HashMinIterations int
	// HashMaxIterations is the exclusive upper bound of the PBKDF2 iteration count.
	HashMaxIterations int
	// HashMaxVerifyIterations caps the iteration count accepted from a record on verify.
	// Zero means four times HashMaxIterations.
	HashMaxVerifyIterations int
	// HashAlgorithm is the PBKDF2 PRF ("SHA256", "SHA384" or "SHA512").
	HashAlgorithm string
	// HashEncoding is the record encoding ("Base64" or "Hex").
	HashEncoding string

	// PasswordRuleFile is an optional path to a JSON password rule.
	PasswordRuleFile string

	// TOTPIssuer is the issuer shown in authenticator apps.
	TOTPIssuer string
	// TOTPAlgorithm is the HMAC hash for PINs ("SHA1", "SHA256" or "SHA512").
	TOTPAlgorithm string
	// TOTPDigits is the PIN length.
	TOTPDigits int
	// TOTPTolerance is the accepted clock drift when validating PINs.
	TOTPTolerance time.Duration
	// TOTPQRPixelsPerModule is the QR code scale; zero disables QR rendering.
	TOTPQRPixelsPerModule int

	// KMSKeyURI is the URI of the key used to wrap passphrases.
	KMSKeyURI string

	// RateLimitEnabled indicates whether per-IP rate limiting is enabled.
	RateLimitEnabled bool
	// RateLimitRequestsPerSec is the number of requests allowed per second per client IP.
	RateLimitRequestsPerSec float64
	// RateLimitBurst is the burst size for rate limiting.
	RateLimitBurst int

	// CORSEnabled indicates whether CORS is enabled.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Server configuration
		ServerHost:      env.GetString("SERVER_HOST", "0.0.0.0"),
		ServerPort:      env.GetInt("SERVER_PORT", 8080),
		ShutdownTimeout: env.GetDuration("SHUTDOWN_TIMEOUT_SECONDS", 10, time.Second),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Encryption
		CipherVariant:    env.GetString("CIPHER_VARIANT", "aes-256"),
		ObjectSerializer: env.GetString("OBJECT_SERIALIZER", "json"),

		// Password hashing
		HashSaltLength:          env.GetInt("HASH_SALT_LENGTH", 16),
		HashKeySize:             env.GetInt("HASH_KEY_SIZE", 32),
		HashMinIterations:       env.GetInt("HASH_MIN_ITERATIONS", 10000),
		HashMaxIterations:       env.GetInt("HASH_MAX_ITERATIONS", 20000),
		HashMaxVerifyIterations: env.GetInt("HASH_MAX_VERIFY_ITERATIONS", 0),
		HashAlgorithm:           env.GetString("HASH_ALGORITHM", "SHA384"),
		HashEncoding:            env.GetString("HASH_ENCODING", "Base64"),
		PasswordRuleFile:        env.GetString("PASSWORD_RULE_FILE", ""),

		// TOTP
		TOTPIssuer:            env.GetString("TOTP_ISSUER", "Aether"),
		TOTPAlgorithm:         env.GetString("TOTP_ALGORITHM", "SHA1"),
		TOTPDigits:            env.GetInt("TOTP_DIGITS", 6),
		TOTPTolerance:         env.GetDuration("TOTP_TOLERANCE_SECONDS", 30, time.Second),
		TOTPQRPixelsPerModule: env.GetInt("TOTP_QR_PIXELS_PER_MODULE", 8),

		// KMS configuration
		KMSKeyURI: env.GetString("KMS_KEY_URI", ""),

		// Rate Limiting
		RateLimitEnabled:        env.GetBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequestsPerSec: env.GetFloat64("RATE_LIMIT_REQUESTS_PER_SEC", 10.0),
		RateLimitBurst:          env.GetInt("RATE_LIMIT_BURST", 20),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", true),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "aether"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8081),
	}
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	switch c.LogLevel {
	case "debug":
		return "debug"
	case "info", "warn", "error":
		return "release"
	default:
		return "release"
	}
}

// AllowOrigins splits CORSAllowOrigins into trimmed, non-empty origins.
func (c *Config) AllowOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSAllowOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	// Get current working directory
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	// Search for .env file recursively up the directory tree
	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			// .env file found, load it
			_ = godotenv.Load(envPath)
			return
		}

		// Move to parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}
}
