package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dreamteam/stockme-dashboard/config"
	"github.com/dreamteam/stockme-dashboard/internal/adapters/memstore"
	redisadapter "github.com/dreamteam/stockme-dashboard/internal/adapters/redis"
	"github.com/dreamteam/stockme-dashboard/internal/adapters/sessiontoken"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

// SessionBackendConfig contains what is needed to pick a session codec and store.
type SessionBackendConfig struct {
	Session     config.SessionConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// BuildSessionOptions selects the codec and store for SESSION_STORE.
// cookie mode has no store: the signed token carries the bearer token.
func BuildSessionOptions(cfg SessionBackendConfig) (service.SessionOptions, error) {
	mode := cfg.Session.Store
	if mode == "" {
		mode = config.SessionStoreCookie
	}

	codec, err := sessiontoken.New(sessiontoken.Options{
		Secret:    cfg.Session.Secret,
		Stateless: !mode.Stateful(),
	})
	if err != nil {
		return service.SessionOptions{}, fmt.Errorf("session codec: %w", err)
	}
	opts := service.SessionOptions{Codec: codec, TTL: cfg.Session.TTL}

	switch mode {
	case config.SessionStoreRedis:
		if cfg.RedisClient == nil {
			return service.SessionOptions{}, errors.New("SESSION_STORE=redis but redis client not configured")
		}
		opts.Store = redisadapter.NewSessionStoreWithPrefix(cfg.RedisClient, cfg.Session.KeyPrefix)
	case config.SessionStoreMemory:
		if cfg.Logger != nil {
			cfg.Logger.Warn("using in-memory session store; sessions are lost on restart")
		}
		opts.Store = memstore.New()
	case config.SessionStoreCookie:
	default:
		return service.SessionOptions{}, fmt.Errorf("unknown session store %q", mode)
	}
	return opts, nil
}
