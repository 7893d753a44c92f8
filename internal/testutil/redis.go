package testutil

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// defaultTestRedisDB keeps tests away from DB 0, which a local dev server uses.
const defaultTestRedisDB = 15

// redisCandidates lists where a test Redis may live: REDIS_ADDR first, then
// the CI service name, a plain local server and the docker-compose test port.
func redisCandidates() []string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return []string{addr}
	}
	return []string{"redis:6379", "localhost:6379", "localhost:56379"}
}

func testRedisDB(t testing.TB) int {
	v := os.Getenv("TEST_REDIS_DB")
	if v == "" {
		return defaultTestRedisDB
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < 0 {
		t.Logf("ignoring invalid TEST_REDIS_DB=%q", v)
		return defaultTestRedisDB
	}
	return i
}

// SetupTestRedis returns a client for the first reachable test Redis with its
// database flushed. The test is skipped when none answers.
func SetupTestRedis(t testing.TB) *redis.Client {
	t.Helper()
	db := testRedisDB(t)

	var lastErr error
	for _, addr := range redisCandidates() {
		client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := client.Ping(ctx).Err()
		if err == nil {
			err = client.FlushDB(ctx).Err()
		}
		cancel()
		if err != nil {
			lastErr = err
			_ = client.Close()
			continue
		}
		t.Logf("using redis %s db=%d", addr, db)
		return client
	}
	unavailable(t, requireRedis(), "redis not available for testing: %v", lastErr)
	return nil
}
