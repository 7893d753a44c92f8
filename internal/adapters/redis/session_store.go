package redis

// Package redis provides Redis-based adapters for the StockMe dashboard.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

// DefaultKeyPrefix namespaces session keys.
const DefaultKeyPrefix = "stockme:session:"

const scanBatch = 200

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStore is a Redis-based session store for production use.
// It handles TTL semantics automatically based on session ExpiresAt.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewSessionStore creates a new Redis-based session store.
func NewSessionStore(client redis.UniversalClient) *SessionStore {
	return NewSessionStoreWithPrefix(client, DefaultKeyPrefix)
}

// NewSessionStoreWithPrefix creates a Redis session store with a custom key prefix.
func NewSessionStoreWithPrefix(client redis.UniversalClient, prefix string) *SessionStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &SessionStore{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// Key returns the Redis key for a session id.
func (s *SessionStore) Key(id string) string {
	return s.prefix + id
}

// Save stores sess with a TTL equal to its remaining lifetime.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		// Session is already expired, don't save it
		return errors.New("session is expired")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.client.Set(ctx, s.Key(sess.ID), data, ttl).Err()
}

// Get loads a session; unknown or expired ids yield ports.ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, s.Key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.Session{}, ports.ErrSessionNotFound
		}
		return domainauth.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess domainauth.Session
	if unmarshalErr := json.Unmarshal(data, &sess); unmarshalErr != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", unmarshalErr)
	}

	// Redis TTL normally removes the key first.
	if sess.Expired(s.now()) {
		if deleteErr := s.Delete(ctx, id); deleteErr != nil {
			return domainauth.Session{}, fmt.Errorf("cleanup expired session: %w", deleteErr)
		}
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	return sess, nil
}

// Delete removes a session. Unknown ids are not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil // Nothing to delete
	}
	return s.client.Del(ctx, s.Key(id)).Err()
}

// StoredSession is a listing row for operators; it never carries the bearer token.
type StoredSession struct {
	ID        string
	UserID    string
	Email     string
	Role      domainauth.Role
	ExpiresAt time.Time
}

// List scans every session under the prefix.
func (s *SessionStore) List(ctx context.Context) ([]StoredSession, error) {
	var out []StoredSession
	err := s.scan(ctx, func(keys []string) error {
		vals, err := s.client.MGet(ctx, keys...).Result()
		if err != nil {
			return fmt.Errorf("redis mget: %w", err)
		}
		for i, v := range vals {
			raw, ok := v.(string)
			if !ok {
				continue // expired between SCAN and MGET
			}
			var sess domainauth.Session
			if json.Unmarshal([]byte(raw), &sess) != nil {
				continue
			}
			out = append(out, StoredSession{
				ID:        strings.TrimPrefix(keys[i], s.prefix),
				UserID:    sess.UserID,
				Email:     sess.Email,
				Role:      domainauth.NormalizeRole(string(sess.Role)),
				ExpiresAt: sess.ExpiresAt,
			})
		}
		return nil
	})
	return out, err
}

// Purge deletes every session under the prefix and reports how many were removed.
func (s *SessionStore) Purge(ctx context.Context) (int64, error) {
	var removed int64
	err := s.scan(ctx, func(keys []string) error {
		n, err := s.client.Del(ctx, keys...).Result()
		if err != nil {
			return fmt.Errorf("redis del: %w", err)
		}
		removed += n
		return nil
	})
	return removed, err
}

func (s *SessionStore) scan(ctx context.Context, fn func(keys []string) error) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if fnErr := fn(keys); fnErr != nil {
				return fnErr
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
