package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dreamteam/stockme-dashboard/config"
	"github.com/dreamteam/stockme-dashboard/internal/adapters/backendapi"
	"github.com/dreamteam/stockme-dashboard/internal/backend"
	"github.com/dreamteam/stockme-dashboard/internal/data"
	"github.com/dreamteam/stockme-dashboard/internal/observability/metrics"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth      *service.AuthService
	Inventory *service.InventoryService
	Requests  *service.RequestService
	Directory *service.DirectoryService
	Dashboard *service.DashboardService
	Settings  *service.SettingsService

	Backend *backend.Client
	Metrics *metrics.Metrics
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	// DB is optional; without it settings live in memory.
	DB *sql.DB
	// RedisClient is required only for SESSION_STORE=redis.
	RedisClient redis.UniversalClient
	// Metrics is optional; nil builds a fresh registry when metrics are enabled.
	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// NewBackendClient builds the API client from config.
func NewBackendClient(cfg config.BackendConfig, m *metrics.Metrics, logger *slog.Logger) *backend.Client {
	opts := backend.ClientOptions{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Logger:  logger,
	}
	// A typed nil *Metrics must not reach the interface.
	if m != nil {
		opts.Metrics = m
	}
	return backend.NewClient(opts)
}

// NewSettingsRepository returns the Postgres repository when a DB is
// available and the in-memory one otherwise.
//
//nolint:ireturn // the repository implementation is picked at runtime.
func NewSettingsRepository(db *sql.DB) ports.SettingsRepository {
	if db == nil {
		return data.NewMemorySettingsRepo()
	}
	return data.NewSettingsRepo(db)
}

// NewServices wires the backend gateway, session handling and page services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service dependencies require config")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := deps.Metrics
	if m == nil && cfg.Observability.MetricsEnabled {
		m = metrics.New()
	}

	client := NewBackendClient(cfg.Backend, m, logger)
	if !client.Configured() {
		logger.Warn("API_BASE_URL is not set; every backend call will fail until it is configured")
	}
	gateway := backendapi.New(client)

	sessions, err := BuildSessionOptions(SessionBackendConfig{
		Session:     cfg.Session,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build sessions: %w", err)
	}

	observe := service.AuthObservability{Logger: logger}
	if m != nil {
		observe.Metrics = m
	}
	auth := service.NewAuthService(service.AuthServiceOptions{
		Gateway:  gateway,
		Sessions: sessions,
		Observe:  observe,
	})

	inv := service.NewInventoryService(service.InventoryServiceOptions{Products: gateway, Logger: logger})
	reqs := service.NewRequestService(service.RequestServiceOptions{Requests: gateway, Products: gateway, Logger: logger})
	dir := service.NewDirectoryService(gateway)

	return ServiceContainer{
		Auth:      auth,
		Inventory: inv,
		Requests:  reqs,
		Directory: dir,
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			Inventory: inv,
			Requests:  reqs,
			Directory: dir,
		}),
		Settings: service.NewSettingsService(service.SettingsServiceOptions{
			Repo:   NewSettingsRepository(deps.DB),
			Logger: logger,
		}),
		Backend: client,
		Metrics: m,
	}, nil
}
