package httpx

import (
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
)

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// SkipIfNoTemplates checks if templates are available and skips the test if not.
func SkipIfNoTemplates(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("Templates not available, skipping integration test")
	}
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// TestSession returns a valid session for role that expires in an hour.
func TestSession(role domainauth.Role) *domainauth.Session {
	now := time.Now()
	return &domainauth.Session{
		ID:          "sess-" + string(role),
		UserID:      "user-" + string(role),
		Role:        role,
		AccessToken: "token-" + string(role),
		DisplayName: "Test " + role.Label(),
		Email:       string(role) + "@example.com",
		IssuedAt:    now,
		ExpiresAt:   now.Add(time.Hour),
	}
}

// WithTestSession attaches sess to r the way RouteGuard does.
func WithTestSession(r *http.Request, sess *domainauth.Session) *http.Request {
	return r.WithContext(SetSessionInContext(r.Context(), sess))
}

// AsHTMX marks r as an htmx request, optionally targeting an element id.
func AsHTMX(r *http.Request, target string) *http.Request {
	r.Header.Set("Hx-Request", "true")
	if target != "" {
		r.Header.Set("Hx-Target", target)
	}
	return r
}
