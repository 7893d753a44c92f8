package httpx

import (
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	stockme "github.com/dreamteam/stockme-dashboard"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth      AuthService
	Inventory InventoryService
	Requests  RequestsService
	Directory DirectoryService
	Dashboard DashboardService
	Settings  SettingsService

	// Templates is optional; when nil one is built for IsDev/TemplatesDir.
	Templates    *TemplateRenderer
	TemplatesDir string

	CookieName   string
	CookieDomain string

	// Compression is applied when CompressionLevel is non-zero.
	CompressionLevel int

	// Metrics is optional. MetricsHandler is mounted at MetricsPath when set,
	// behind RouteGuard like every page.
	Metrics        httpObserver
	MetricsHandler http.Handler
	MetricsPath    string

	IsDev  bool         // Development mode flag for hot reloading, etc.
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

// NewRouter creates the HTTP router wrapped in the browser middleware chain:
// Recover, Logging, Metrics, Compression, CSRF, RouteGuard.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Auth == nil {
		panic("RouterServices.Auth is required") //nolint:forbidigo // Fail fast during server setup.
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tr := services.Templates
	if tr == nil {
		var err error
		tr, err = NewTemplateRenderer(TemplateRendererConfig{
			TemplateFS: TemplateFSFor(services.IsDev, services.TemplatesDir, logger),
			Logger:     logger,
		})
		if err != nil {
			return nil, err
		}
	}

	guardCfg := GuardConfig{Resolver: services.Auth, CookieName: services.CookieName, Logger: logger}
	authHandlers := &AuthHandlers{
		Svc:     services.Auth,
		Cookies: SessionCookies{Name: services.CookieName, Domain: services.CookieDomain},
		T:       tr,
		Logger:  logger,
	}
	ui := &UIHandlers{
		T:            tr,
		InventorySvc: services.Inventory,
		RequestsSvc:  services.Requests,
		DirectorySvc: services.Directory,
		DashboardSvc: services.Dashboard,
		SettingsSvc:  services.Settings,
		IsDev:        services.IsDev,
		Logger:       logger,
	}

	mux := http.NewServeMux()
	registerAuthRoutes(mux, authHandlers, OptionalSession(guardCfg))
	registerUIRoutes(mux, ui)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	if services.MetricsHandler != nil {
		path := services.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, services.MetricsHandler)
	}
	mux.Handle("GET /static/", staticHandler(services.IsDev))
	mux.Handle("GET /favicon.ico", http.RedirectHandler("/static/favicon.svg", http.StatusMovedPermanently))
	mux.HandleFunc("/", ui.NotFound)

	var compression Middleware
	if services.CompressionLevel != 0 {
		compression = Compression(CompressionConfig{Level: services.CompressionLevel, Logger: logger})
	}

	return Chain(mux,
		Recover(logger),
		Logging(logger),
		Metrics(services.Metrics),
		compression,
		CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain}),
		RouteGuard(guardCfg),
	), nil
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, optional func(http.Handler) http.Handler) {
	mux.Handle("GET /login", optional(http.HandlerFunc(h.LoginPage)))
	mux.HandleFunc("POST /login", h.Login)
	mux.Handle("GET /register", optional(http.HandlerFunc(h.RegisterPage)))
	mux.HandleFunc("POST /register", h.Register)
	mux.HandleFunc("POST /logout", h.Logout)
	mux.Handle("GET /api/session", optional(http.HandlerFunc(h.Session)))
}

// registerUIRoutes registers every page and form endpoint. All of them sit
// behind RouteGuard.
func registerUIRoutes(mux *http.ServeMux, h *UIHandlers) {
	mux.HandleFunc("GET /{$}", h.Dashboard)
	mux.HandleFunc("GET /about", h.About)

	mux.HandleFunc("GET /inventory", h.Inventory)
	mux.HandleFunc("GET /inventory/new", h.InventoryNew)
	mux.HandleFunc("GET /inventory/{id}/edit", h.InventoryEdit)
	mux.HandleFunc("POST /inventory", h.InventoryCreate)
	mux.HandleFunc("POST /inventory/{id}", h.InventoryUpdate)
	mux.HandleFunc("POST /inventory/{id}/delete", h.InventoryDelete)

	mux.HandleFunc("GET /requests", h.Requests)
	mux.HandleFunc("GET /requests/new", h.RequestNew)
	mux.HandleFunc("GET /requests/{id}/edit", h.RequestEdit)
	mux.HandleFunc("POST /requests", h.RequestCreate)
	mux.HandleFunc("POST /requests/{id}", h.RequestUpdate)
	mux.HandleFunc("POST /requests/{id}/delete", h.RequestDelete)

	mux.HandleFunc("GET /users", h.Users)

	mux.HandleFunc("GET /settings", h.SettingsPage)
	mux.HandleFunc("POST /settings", h.SettingsSave)
	mux.HandleFunc("POST /settings/reset", h.SettingsReset)
}

// TemplateFSFor picks the template source: the on-disk directory in dev mode
// (so Watch can hot reload it), the embedded copy otherwise.
func TemplateFSFor(isDev bool, dir string, logger *slog.Logger) fs.FS {
	if dir == "" {
		dir = TemplatePathFromRoot
	}
	if isDev {
		if fsys, ok := DevTemplateFS(dir); ok {
			return fsys
		}
		logger.Warn("template directory not found, using embedded templates", "dir", dir)
	}
	sub, err := fs.Sub(stockme.TemplateFS, "frontend/templates")
	if err != nil {
		logger.Error("failed to create sub-filesystem for templates; falling back to disk", "error", err)
		return os.DirFS(dir)
	}
	return sub
}

// staticHandler serves /static/* from disk in dev mode and from the embedded
// filesystem otherwise.
func staticHandler(isDev bool) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), false)
	}
	staticSub, err := fs.Sub(stockme.StaticFS, "frontend/static")
	if err != nil {
		slog.Default().Error("failed to create sub-filesystem for static assets", "error", err)
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir("frontend/static"))), false)
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))), true)
}

// staticWithCacheHeaders lets browsers cache embedded assets for an hour and
// disables caching for assets served from disk.
func staticWithCacheHeaders(handler http.Handler, cacheable bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cacheable {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
			w.Header().Set("Pragma", "no-cache")
			w.Header().Set("Expires", "0")
		}
		handler.ServeHTTP(w, r)
	})
}
