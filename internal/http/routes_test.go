package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
)

func newTestRouter(t *testing.T, sess *domainauth.Session) http.Handler {
	t.Helper()
	auth := &fakeAuth{resolve: func(value string) (*domainauth.Session, error) {
		if value == "valid" && sess != nil {
			return sess, nil
		}
		return nil, http.ErrNoCookie
	}}
	h, err := NewRouter(RouterServices{
		Auth:           auth,
		Inventory:      &fakeInventory{products: sampleProducts()},
		Requests:       &fakeRequests{requests: sampleRequests(), products: sampleProducts()},
		Directory:      &fakeDirectory{dir: sampleDirectory()},
		Dashboard:      &fakeDashboard{},
		Settings:       &fakeSettings{},
		Templates:      RequireTemplateRenderer(t),
		MetricsHandler: promhttp.Handler(),
	})
	require.NoError(t, err)
	return h
}

func withSessionCookie(r *http.Request) *http.Request {
	r.AddCookie(&http.Cookie{Name: DefaultSessionCookieName, Value: "valid"})
	return r
}

func TestRouter_PublicRoutes(t *testing.T) {
	h := newTestRouter(t, nil)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodHead, "/healthz", http.StatusOK},
		{http.MethodGet, "/login", http.StatusOK},
		{http.MethodGet, "/register", http.StatusOK},
		{http.MethodGet, "/api/session", http.StatusOK},
		{http.MethodGet, "/static/css/app.css", http.StatusOK},
		{http.MethodGet, "/favicon.ico", http.StatusMovedPermanently},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		})
	}
}

func TestRouter_ProtectedRedirects(t *testing.T) {
	h := newTestRouter(t, nil)

	for _, path := range []string{"/", "/inventory", "/requests", "/users", "/settings", "/about", "/metrics", "/nowhere"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.True(t, strings.HasPrefix(w.Header().Get("Location"), LoginPath), path)
	}
}

func TestRouter_SignedInPages(t *testing.T) {
	h := newTestRouter(t, TestSession(domainauth.RoleAdmin))

	for _, path := range []string{"/", "/inventory", "/requests", "/users", "/settings", "/about"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, withSessionCookie(httptest.NewRequest(http.MethodGet, path, nil)))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html", path)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, withSessionCookie(httptest.NewRequest(http.MethodGet, "/nowhere", nil)))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_SignedInLoginRedirects(t *testing.T) {
	h := newTestRouter(t, TestSession(domainauth.RoleStaff))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, withSessionCookie(httptest.NewRequest(http.MethodGet, "/login", nil)))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestRouter_PostRequiresCSRF(t *testing.T) {
	h := newTestRouter(t, TestSession(domainauth.RoleAdmin))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, withSessionCookie(httptest.NewRequest(http.MethodPost, "/inventory/p1/delete", nil)))
	assert.Equal(t, http.StatusForbidden, w.Code)

	req := withSessionCookie(httptest.NewRequest(http.MethodPost, "/inventory/p1/delete", nil))
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: "tok"})
	req.Header.Set(DefaultCSRFHeaderName, "tok")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, AsHTMX(req, ""))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "#product-p1", w.Header().Get("Hx-Retarget"))
}

func TestRouter_Compression(t *testing.T) {
	auth := &fakeAuth{}
	h, err := NewRouter(RouterServices{
		Auth:             auth,
		Templates:        RequireTemplateRenderer(t),
		CompressionLevel: 5,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}

func TestStaticWithCacheHeaders(t *testing.T) {
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	w := httptest.NewRecorder()
	staticWithCacheHeaders(next, true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/x.css", nil))
	assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	staticWithCacheHeaders(next, false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/x.css", nil))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")
}
