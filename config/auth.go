package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// SessionStoreMode selects where session state lives between requests.
type SessionStoreMode string

const (
	// SessionStoreCookie keeps the whole session inside the signed cookie token.
	SessionStoreCookie SessionStoreMode = "cookie"
	// SessionStoreRedis keeps session state in Redis; the cookie only carries the session id.
	SessionStoreRedis SessionStoreMode = "redis"
	// SessionStoreMemory keeps session state in process memory (development only).
	SessionStoreMemory SessionStoreMode = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreMode.
func (m *SessionStoreMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "cookie", "redis", "memory":
		*m = SessionStoreMode(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreMode: %q (valid options: cookie, redis, memory)", v)
	}
}

// Stateful reports whether session state is held server-side.
func (m SessionStoreMode) Stateful() bool {
	return m == SessionStoreRedis || m == SessionStoreMemory
}

// SessionConfig groups session cookie and token configuration.
type SessionConfig struct {
	// Secret signs and verifies session tokens. NEXTAUTH_SECRET is accepted as a fallback.
	Secret string `env:"SESSION_SECRET"`

	Store SessionStoreMode `env:"SESSION_STORE" envDefault:"cookie"`

	// TTL bounds the lifetime of a session from sign-in.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"8h"`

	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"stockme_session"`

	// KeyPrefix namespaces session keys in Redis.
	KeyPrefix string `env:"SESSION_KEY_PREFIX" envDefault:"stockme:session:"`
}

// Sanitize resolves the secret fallback and clamps the lifetime.
func (s *SessionConfig) Sanitize() {
	if strings.TrimSpace(s.Secret) == "" {
		s.Secret = os.Getenv("NEXTAUTH_SECRET")
	}
	if s.Store == "" {
		s.Store = SessionStoreCookie
	}
	if s.TTL <= 0 {
		s.TTL = 8 * time.Hour
	}
	if strings.TrimSpace(s.CookieName) == "" {
		s.CookieName = "stockme_session"
	}
}
