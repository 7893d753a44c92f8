package config

import (
	"errors"
	"os"
	"strings"
)

// ErrSessionSecretMissing is returned by Validate when no session signing secret is configured.
var ErrSessionSecretMissing = errors.New("SESSION_SECRET is required to sign session tokens")

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Session configuration
//   - backend.go: Inventory REST backend configuration
//   - database.go: Database and Redis configuration
//   - http.go: HTTP server configuration
//   - observability.go: Logging and metrics configuration
type AppConfig struct {
	// Env is "development" or "production".
	Env string `env:"APP_ENV" envDefault:"production"`

	// IsDev controls development mode behavior (template hot reloading, insecure cookies on http).
	// Set APP_ENV=development, DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	Session SessionConfig
	Backend BackendConfig

	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	HTTP HTTPConfig

	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Session.Sanitize()
	c.Backend.Sanitize()
	c.Observability.Sanitize()

	c.detectDevMode()
}

// Validate reports configuration that must stop the process from starting.
// A missing API base URL is not fatal: the backend client reports it on every call instead.
func (c *AppConfig) Validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return ErrSessionSecretMissing
	}
	if c.Session.Store == SessionStoreRedis && strings.TrimSpace(c.Redis.URI) == "" && !c.Redis.UseCluster {
		return errors.New("SESSION_STORE=redis requires REDIS_URI")
	}
	return nil
}

// detectDevMode checks APP_ENV, DEV and NODE_ENV.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if !c.IsDev {
		c.IsDev = isDevEnv(c.Env) || isDevEnv(strings.ToLower(os.Getenv("NODE_ENV")))
	}
	if c.IsDev {
		c.Env = "development"
	} else if c.Env != "development" {
		c.Env = "production"
	}
}

func isDevEnv(v string) bool {
	return v == "development" || v == "dev"
}
