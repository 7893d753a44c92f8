package config

import (
	"os"
	"strings"
	"time"
)

// BackendConfig describes how to reach the inventory REST backend.
type BackendConfig struct {
	// BaseURL is the backend origin, e.g. "https://api.example.com".
	// NEXT_PUBLIC_API_BASE_URL is accepted as a fallback.
	BaseURL string `env:"API_BASE_URL"`

	// Timeout bounds a single backend call. Zero disables the client-side timeout.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`
}

// Sanitize trims the base URL and drops one trailing slash.
func (b *BackendConfig) Sanitize() {
	if strings.TrimSpace(b.BaseURL) == "" {
		b.BaseURL = os.Getenv("NEXT_PUBLIC_API_BASE_URL")
	}
	b.BaseURL = strings.TrimSuffix(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout < 0 {
		b.Timeout = 0
	}
}

// Configured reports whether a backend base URL is available.
func (b BackendConfig) Configured() bool {
	return b.BaseURL != ""
}
