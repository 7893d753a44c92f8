package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/dreamteam/stockme-dashboard/config"
	"github.com/dreamteam/stockme-dashboard/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	logger := bootstrap.InitLogger(slog.LevelInfo)
	if err := run(ctx, logger); err != nil {
		logger.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := bootstrap.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger = bootstrap.InitLogger(cfg.Observability.SlogLevel())

	logStartupInfo(ctx, logger, &cfg)

	db, redisClient, err := initInfrastructure(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if cerr := db.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close database failed", "error", cerr)
			}
		}()
	}
	if redisClient != nil {
		defer func() {
			if cerr := redisClient.Close(); cerr != nil {
				logger.ErrorContext(ctx, "close redis failed", "error", cerr)
			}
		}()
	}

	services, err := bootstrap.NewServices(&bootstrap.ServiceDeps{
		Config:      &cfg,
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	return bootstrap.RunHTTPServer(&bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting stockme dashboard",
		"env", cfg.Env,
		"addr", cfg.HTTP.Addr,
		"backend_configured", cfg.Backend.Configured(),
		"session_store", cfg.Session.Store,
		"db_enabled", cfg.Postgres.Enabled,
		"metrics_enabled", cfg.Observability.MetricsEnabled)
}

// initInfrastructure connects Postgres when enabled and Redis when the
// session store needs it. Either may be nil.
//
//nolint:ireturn // returning redis.UniversalClient keeps sentinel/cluster support flexible.
func initInfrastructure(
	ctx context.Context,
	cfg *config.AppConfig,
	logger *slog.Logger,
) (*sql.DB, redis.UniversalClient, error) {
	var db *sql.DB
	if cfg.Postgres.Enabled {
		var err error
		db, err = bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: cfg.Postgres, Logger: logger})
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
		if cfg.Postgres.RunMigrationsOnStart {
			if err = bootstrap.RunMigrations(ctx, db, logger); err != nil {
				closeDB(ctx, db, logger)
				return nil, nil, err
			}
		} else {
			logger.InfoContext(ctx, "skipping database migrations on startup", "reason", "disabled via config")
		}
	} else {
		logger.InfoContext(ctx, "postgres disabled; workspace settings are kept in memory")
	}

	if cfg.Session.Store != config.SessionStoreRedis {
		return db, nil, nil
	}
	redisClient, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{RedisConfig: cfg.Redis, Logger: logger})
	if err != nil {
		closeDB(ctx, db, logger)
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	return db, redisClient, nil
}

func closeDB(ctx context.Context, db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if cerr := db.Close(); cerr != nil {
		logger.ErrorContext(ctx, "close database after startup failure", "error", cerr)
	}
}
