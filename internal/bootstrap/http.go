package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dreamteam/stockme-dashboard/config"
	httpx "github.com/dreamteam/stockme-dashboard/internal/http"
	"github.com/dreamteam/stockme-dashboard/internal/observability/metrics"
)

const shutdownWaitTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler builds the template renderer and the router with its
// middleware chain. In dev mode templates are served from disk and reloaded
// on change until ctx ends.
func BuildHTTPHandler(ctx context.Context, cfg *HTTPServerConfig) (http.Handler, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	tr, err := httpx.NewTemplateRenderer(httpx.TemplateRendererConfig{
		TemplateFS: httpx.TemplateFSFor(appCfg.IsDev, appCfg.HTTP.TemplatesDir, logger),
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if appCfg.IsDev {
		if _, ok := httpx.DevTemplateFS(appCfg.HTTP.TemplatesDir); ok {
			if watchErr := tr.Watch(ctx, appCfg.HTTP.TemplatesDir); watchErr != nil {
				logger.Warn("template hot reload disabled", "error", watchErr)
			}
		}
	}

	services := httpx.RouterServices{
		Auth:         cfg.Services.Auth,
		Inventory:    cfg.Services.Inventory,
		Requests:     cfg.Services.Requests,
		Directory:    cfg.Services.Directory,
		Dashboard:    cfg.Services.Dashboard,
		Settings:     cfg.Services.Settings,
		Templates:    tr,
		CookieName:   appCfg.Session.CookieName,
		CookieDomain: appCfg.HTTP.CookieDomain,
		IsDev:        appCfg.IsDev,
		Logger:       logger,
	}
	if appCfg.HTTP.CompressionEnabled {
		logger.Info("HTTP compression enabled", "level", appCfg.HTTP.CompressionLevel)
		services.CompressionLevel = appCfg.HTTP.CompressionLevel
	}
	if m := cfg.Services.Metrics; m != nil && appCfg.Observability.MetricsEnabled {
		services.Metrics = m
		if appCfg.Observability.MetricsAddr == "" {
			services.MetricsHandler = m.Handler()
			services.MetricsPath = appCfg.Observability.MetricsPath
		}
	}

	return httpx.NewRouter(services)
}

// NewHTTPServer wraps handler in an http.Server using the configured timeouts.
func NewHTTPServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	addr := cfg.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":3000"
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// NewMetricsServer returns the scrape listener, or nil when metrics are off or
// share the main router.
func NewMetricsServer(cfg config.ObservabilityConfig, m *metrics.Metrics) *http.Server {
	if m == nil || !cfg.MetricsEnabled || cfg.MetricsAddr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("GET "+cfg.MetricsPath, m.Handler())
	return &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// startServer runs server in the background. A listen failure is sent on errCh.
func startServer(logger *slog.Logger, name string, server *http.Server, errCh chan<- error) {
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr, "handler", name)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("%s server: %w", name, err)
		}
	}()
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return nil
	}
	if logger != nil {
		logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownWaitTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if logger != nil {
		logger.Info("HTTP server stopped")
	}
	return nil
}

// RunHTTPServer serves until SIGINT/SIGTERM or a listen failure, then shuts
// the server down gracefully.
func RunHTTPServer(cfg *HTTPServerConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler, err := BuildHTTPHandler(ctx, cfg)
	if err != nil {
		return err
	}
	server := NewHTTPServer(cfg.Config.HTTP, handler)
	metricsServer := NewMetricsServer(cfg.Config.Observability, cfg.Services.Metrics)

	errCh := make(chan error, 2)
	startServer(logger, "app", server, errCh)
	if metricsServer != nil {
		startServer(logger, "metrics", metricsServer, errCh)
	}
	shutdown := func() error {
		// The service context is already cancelled; shut down on a fresh one.
		return errors.Join(
			ShutdownHTTPServer(context.Background(), server, logger),
			ShutdownHTTPServer(context.Background(), metricsServer, logger),
		)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cancel()
		return shutdown()
	case err := <-errCh:
		logger.Error("service error", "error", err)
		cancel()
		if stopErr := shutdown(); stopErr != nil {
			logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}
