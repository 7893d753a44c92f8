package testutil

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	// Registers the pgx driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dreamteam/stockme-dashboard/internal/migrate"
)

// TestDBConfig locates the Postgres instance used by integration tests.
// The default port matches the test profile in docker-compose; CI sets
// TEST_DB_PORT=5432.
type TestDBConfig struct {
	Host     string `env:"TEST_DB_HOST"     envDefault:"localhost"`
	Port     string `env:"TEST_DB_PORT"     envDefault:"55432"`
	User     string `env:"TEST_DB_USER"     envDefault:"stockme"`
	Password string `env:"TEST_DB_PASSWORD" envDefault:"stockme"`
	DBName   string `env:"TEST_DB_NAME"     envDefault:"stockme"`
	SSLMode  string `env:"DB_SSL_MODE"      envDefault:"disable"`
}

// DefaultTestDBConfig reads TestDBConfig from the environment.
func DefaultTestDBConfig() TestDBConfig {
	var cfg TestDBConfig
	if err := env.Parse(&cfg); err != nil {
		// Only string fields, so Parse cannot fail on values.
		panic(fmt.Sprintf("testutil: parse test db config: %v", err))
	}
	return cfg
}

// DSN returns a pgx connection string. A non-empty schema is put first on
// the search_path.
func (c TestDBConfig) DSN(schema string) string {
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	if schema != "" {
		q.Set("search_path", schema+",public")
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func requireDB() bool    { return envBool("TEST_REQUIRE_DB") || envBool("TEST_REQUIRE_INFRA") }
func requireRedis() bool { return envBool("TEST_REQUIRE_REDIS") || envBool("TEST_REQUIRE_INFRA") }

// unavailable skips the test, or fails it when the caller demanded the
// infrastructure through TEST_REQUIRE_*.
func unavailable(t testing.TB, required bool, format string, args ...any) {
	t.Helper()
	if required {
		t.Fatalf(format, args...)
	}
	t.Skipf(format, args...)
}

func openAndPing(dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// SkipIfNoTestDB skips the test when the test database cannot be reached.
func SkipIfNoTestDB(t testing.TB) {
	t.Helper()
	db, err := openAndPing(DefaultTestDBConfig().DSN(""), 2*time.Second)
	if err != nil {
		unavailable(t, requireDB(), "test database not available: %v", err)
		return
	}
	_ = db.Close()
}

// SetupTestDB connects to the shared test database, migrates it and empties
// workspace_settings. The connection is closed when the test ends.
func SetupTestDB(t testing.TB) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)

	db, err := openAndPing(DefaultTestDBConfig().DSN(""), 5*time.Second)
	if err != nil {
		t.Fatalf("connect test database (is docker-compose up?): %v", err)
	}
	t.Cleanup(func() {
		truncateSettings(t, db)
		if cerr := db.Close(); cerr != nil {
			t.Logf("close test db: %v", cerr)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := migrate.Run(ctx, db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	truncateSettings(t, db)
	return db
}

func truncateSettings(t testing.TB, db *sql.DB) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, "DELETE FROM workspace_settings"); err != nil {
		t.Logf("clean workspace_settings: %v", err)
	}
}

// SetupEphemeralSchemaDB migrates a fresh schema that only this test sees and
// drops it afterwards. Useful when packages run their database tests in
// parallel.
func SetupEphemeralSchemaDB(t testing.TB) *sql.DB {
	t.Helper()
	SkipIfNoTestDB(t)
	cfg := DefaultTestDBConfig()

	admin, err := openAndPing(cfg.DSN(""), 5*time.Second)
	if err != nil {
		t.Fatalf("connect admin db: %v", err)
	}
	schema := schemaName()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := admin.ExecContext(ctx, "CREATE SCHEMA "+schema); err != nil {
		_ = admin.Close()
		t.Fatalf("create schema %s: %v", schema, err)
	}

	db, err := openAndPing(cfg.DSN(schema), 5*time.Second)
	t.Cleanup(func() {
		if db != nil {
			_ = db.Close()
		}
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dropCancel()
		if _, derr := admin.ExecContext(dropCtx, "DROP SCHEMA IF EXISTS "+schema+" CASCADE"); derr != nil {
			t.Logf("drop schema %s: %v", schema, derr)
		}
		_ = admin.Close()
	})
	if err != nil {
		t.Fatalf("connect schema %s: %v", schema, err)
	}
	t.Logf("using ephemeral schema %s", schema)

	if err := migrate.Run(ctx, db); err != nil {
		t.Fatalf("migrate schema %s: %v", schema, err)
	}
	return db
}

func schemaName() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("t_%d", time.Now().UnixNano())
	}
	return "t_" + hex.EncodeToString(b)
}

// WithAutoDB runs fn against an ephemeral schema when TEST_DB_EPHEMERAL is
// set and against the shared test database otherwise.
func WithAutoDB(t testing.TB, fn func(*sql.DB)) {
	t.Helper()
	if envBool("TEST_DB_EPHEMERAL") {
		fn(SetupEphemeralSchemaDB(t))
		return
	}
	fn(SetupTestDB(t))
}
