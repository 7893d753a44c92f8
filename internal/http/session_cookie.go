package httpx

import (
	"net/http"
	"time"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
)

// DefaultSessionCookieName names the signed session cookie.
const DefaultSessionCookieName = "stockme_session"

// SessionCookies writes and clears the session cookie.
type SessionCookies struct {
	Name   string
	Domain string
	Now    func() time.Time
}

func (c SessionCookies) name() string {
	if c.Name == "" {
		return DefaultSessionCookieName
	}
	return c.Name
}

func (c SessionCookies) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Set stores value with MaxAge equal to the session's remaining lifetime.
func (c SessionCookies) Set(w http.ResponseWriter, r *http.Request, sess *domainauth.Session, value string) {
	maxAge := int(sess.ExpiresAt.Sub(c.now()).Seconds())
	if maxAge <= 0 {
		c.Clear(w, r)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// Clear expires the cookie, mirroring the attributes used by Set.
func (c SessionCookies) Clear(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
	})
}

// Value returns the raw cookie value, or "".
func (c SessionCookies) Value(r *http.Request) string {
	ck, err := r.Cookie(c.name())
	if err != nil {
		return ""
	}
	return ck.Value
}
