package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"strconv"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"8585"`
	DBPath       string `env:"DB_PATH" envDefault:"./garmentry.db"`
	CatalogURL   string `env:"CATALOG_URL" envDefault:"http://localhost:8080/api/products"`
	CookieDomain string `env:"COOKIE_DOMAIN"`
	CookieSecure bool   `env:"COOKIE_SECURE"`

	// base64-encoded key material; decoded below
	RawCSRFKey    string `env:"CSRF_KEY"`
	RawSessionKey string `env:"SESSION_KEY"`

	CSRFKey    []byte `env:"-"`
	SessionKey []byte `env:"-"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.CSRFKey = decodeKey("CSRF_KEY", cfg.RawCSRFKey)
	cfg.SessionKey = decodeKey("SESSION_KEY", cfg.RawSessionKey)

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", cfg.Port)
		cfg.Port = "8585"
	}

	return cfg, nil
}

// decodeKey reads a base64 key from the environment. Missing or undersized
// keys get a random replacement so development servers still come up, at
// the cost of sessions not surviving a restart.
func decodeKey(name, value string) []byte {
	if value == "" {
		slog.Warn(name + " environment variable not set. Generating a random key for development. This key will change on each restart. PLEASE SET " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(value)
	if err != nil || len(decoded) < 32 {
		slog.Warn(name + " is invalid or too short (min 32 bytes recommended). Generating a random key for development. PLEASE SET A SECURE " + name + " IN PRODUCTION!")
		return generateRandomBytes(32)
	}
	return decoded
}

// generateRandomBytes generates a random byte slice of specified length
// using crypto/rand.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform is broken; refuse to start
		// with a guessable key.
		panic("config: cannot read random bytes: " + err.Error())
	}
	return b
}
