package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
)

// LoginPath is where unauthenticated browsers are sent.
const LoginPath = "/login"

// Classification says whether a path needs a session.
type Classification int

const (
	// Protected paths require a resolved session.
	Protected Classification = iota
	// Public paths are served without looking at the session.
	Public
)

func (c Classification) String() string {
	if c == Public {
		return "public"
	}
	return "protected"
}

// PublicRoutes lists the glob patterns served without a session. The
// trailing-star forms keep plain prefix semantics: "/apiary" is as public as "/api/x".
//
//nolint:gochecknoglobals // static read-only route table
var PublicRoutes = []string{
	"/login",
	"/register",
	"/api*",
	"/api*/**",
	"/_next*",
	"/_next*/**",
	"/static*",
	"/static*/**",
	"/favicon.ico",
	"/healthz",
}

// fileExtension matches any path with a dot followed by anything, the same
// way asset requests were recognised before the glob table existed.
var fileExtension = regexp.MustCompile(`\.(.*)$`)

// Classify reports whether path is public or protected. It depends on nothing
// but the path.
func Classify(path string) Classification {
	for _, pattern := range PublicRoutes {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return Public
		}
	}
	if fileExtension.MatchString(path) {
		return Public
	}
	return Protected
}

// SessionResolver turns a session cookie value into a live session.
type SessionResolver interface {
	Resolve(ctx context.Context, value string) (*domainauth.Session, error)
}

// GuardConfig configures RouteGuard.
type GuardConfig struct {
	Resolver   SessionResolver
	CookieName string
	Logger     *slog.Logger
}

// RouteGuard lets public paths through untouched and requires a session for
// everything else. A resolved session is attached to the request context.
func RouteGuard(cfg GuardConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultSessionCookieName
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if Classify(r.URL.Path) == Public {
				next.ServeHTTP(w, r)
				return
			}
			sess := sessionFromCookie(r, cfg)
			if sess == nil {
				redirectToLogin(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(SetSessionInContext(r.Context(), sess)))
		})
	}
}

// OptionalSession attaches a session when the cookie resolves and otherwise
// leaves the request alone. Used by public routes that still care who is asking.
func OptionalSession(cfg GuardConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultSessionCookieName
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess := sessionFromCookie(r, cfg); sess != nil {
				r = r.WithContext(SetSessionInContext(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionFromCookie(r *http.Request, cfg GuardConfig) *domainauth.Session {
	if sess, ok := GetUserSessionFromContext(r.Context()); ok {
		return sess
	}
	c, err := r.Cookie(cfg.CookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	sess, err := cfg.Resolver.Resolve(r.Context(), c.Value)
	if err != nil {
		cfg.Logger.DebugContext(r.Context(), "session not resolved", "path", r.URL.Path, "error", err)
		return nil
	}
	return sess
}

// requireSession is the page-level second check. It returns the session, or
// redirects and returns nil.
func requireSession(w http.ResponseWriter, r *http.Request) *domainauth.Session {
	if sess, ok := GetUserSessionFromContext(r.Context()); ok {
		return sess
	}
	redirectToLogin(w, r)
	return nil
}

// redirectToLogin sends the browser to the login page with the current path as
// callbackUrl. htmx requests get HX-Redirect so the whole page navigates.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	target := domainauth.ParseDestination(redirectPathForRequest(r)).LoginURL(LoginPath)
	if IsHTMX(r) {
		SetHXRedirect(w, target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// redirectPathForRequest prefers the page the user is looking at over the
// fragment URL for htmx requests.
func redirectPathForRequest(r *http.Request) string {
	if IsHTMX(r) {
		if current := pathFromURL(r.Header.Get("Hx-Current-Url")); current != "" {
			return current
		}
	}
	return r.URL.RequestURI()
}
