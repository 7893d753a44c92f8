package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	// Registers the "pgx" database/sql driver.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"

	"github.com/dreamteam/stockme-dashboard/config"
	"github.com/dreamteam/stockme-dashboard/internal/migrate"
)

// DatabaseConfig contains configuration for database connections.
type DatabaseConfig struct {
	DBConfig    config.DBConfig
	RedisConfig config.RedisConfig
	Logger      *slog.Logger
}

// PostgresDSN builds the connection URL. url.URL escapes special characters
// in credentials.
func PostgresDSN(cfg config.DBConfig) string {
	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Name,
	}
	q := u.Query()
	q.Set("sslmode", cfg.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// ConnectDB establishes a connection to the PostgreSQL database.
func ConnectDB(cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", PostgresDSN(cfg.DBConfig))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Settings are the only table; a small pool is plenty.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		if closeErr := db.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close database connection: %w", closeErr))
		}
		return nil, fmt.Errorf("ping database: %w", pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("database connected",
			"host", cfg.DBConfig.Host,
			"port", cfg.DBConfig.Port,
			"database", cfg.DBConfig.Name,
		)
	}

	return db, nil
}

// ConnectRedis opens the session store's Redis client. REDIS_USE_CLUSTER and
// REDIS_USE_SENTINEL pick the topology; otherwise REDIS_URI names one server.
//
//nolint:ireturn // the topology decides the concrete client.
func ConnectRedis(cfg DatabaseConfig) (redis.UniversalClient, error) {
	opts, desc, err := redisOptions(cfg.RedisConfig)
	if err != nil {
		return nil, err
	}
	client := redis.NewUniversalClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if pingErr := client.Ping(ctx).Err(); pingErr != nil {
		if closeErr := client.Close(); closeErr != nil {
			pingErr = errors.Join(pingErr, fmt.Errorf("close redis client: %w", closeErr))
		}
		return nil, fmt.Errorf("ping redis %s: %w", desc, pingErr)
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("redis connected", "addr", desc)
	}
	return client, nil
}

// redisOptions maps RedisConfig onto go-redis options. desc names the
// target for logs and never carries credentials.
func redisOptions(cfg config.RedisConfig) (*redis.UniversalOptions, string, error) {
	opts := &redis.UniversalOptions{Password: cfg.Password, DB: cfg.DB}

	base, err := parseRedisURI(cfg.URI)
	if err != nil {
		return nil, "", err
	}
	if base != nil {
		opts.Username = base.Username
		if base.Password != "" {
			opts.Password = base.Password
		}
		opts.TLSConfig = base.TLSConfig
		if base.DB != 0 {
			opts.DB = base.DB
		}
	}

	switch {
	case cfg.UseSentinel:
		nodes := normalizeAddrs(cfg.SentinelNodes)
		if len(nodes) == 0 {
			return nil, "", errors.New("redis sentinel configuration requires at least one sentinel node")
		}
		opts.Addrs = nodes
		opts.MasterName = cfg.SentinelMasterName
		opts.SentinelPassword = cfg.SentinelPassword
		return opts, "sentinel:" + cfg.SentinelMasterName, nil

	case cfg.UseCluster:
		nodes := normalizeAddrs(cfg.ClusterNodes)
		if len(nodes) == 0 && base != nil {
			nodes = []string{base.Addr}
		}
		if len(nodes) == 0 {
			return nil, "", errors.New("redis cluster configuration requires at least one address")
		}
		opts.Addrs = nodes
		opts.IsClusterMode = true
		// Cluster nodes only have DB 0.
		opts.DB = 0
		return opts, "cluster:" + strings.Join(nodes, ","), nil

	default:
		if base == nil {
			return nil, "", errors.New("redis direct configuration requires a URI")
		}
		opts.Addrs = []string{base.Addr}
		return opts, base.Addr, nil
	}
}

// parseRedisURI accepts a redis:// or rediss:// URL, or a bare host:port. A
// blank URI yields nil.
func parseRedisURI(uri string) (*redis.Options, error) {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "":
		return nil, nil //nolint:nilnil // absent URI is not an error
	case strings.HasPrefix(uri, "redis://"), strings.HasPrefix(uri, "rediss://"):
		opt, err := redis.ParseURL(uri)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return opt, nil
	default:
		return &redis.Options{Addr: uri}, nil
	}
}

func normalizeAddrs(raw []string) []string {
	result := make([]string, 0, len(raw))
	for _, addr := range raw {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if err := migrate.Run(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	if logger != nil {
		logger.InfoContext(ctx, "database migrations completed")
	}

	return nil
}
