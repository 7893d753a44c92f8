package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamteam/stockme-dashboard/config"
	redisadapter "github.com/dreamteam/stockme-dashboard/internal/adapters/redis"
	"github.com/dreamteam/stockme-dashboard/internal/data"
	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/workspace"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

func testApp(t *testing.T) *app {
	t.Helper()
	a := newApp()
	a.loaded = true
	a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	a.stdin = strings.NewReader("")
	return a
}

func execute(a *app, args ...string) (string, error) {
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func withMemorySettings(a *app) *service.SettingsService {
	svc := service.NewSettingsService(service.SettingsServiceOptions{
		Repo:   data.NewMemorySettingsRepo(),
		Logger: a.logger,
	})
	a.openSettings = func(context.Context) (settingsAdmin, func(), error) { return svc, nil, nil }
	return svc
}

type fakeSessions struct {
	sessions []redisadapter.StoredSession
	purged   bool
}

func (f *fakeSessions) List(context.Context) ([]redisadapter.StoredSession, error) {
	return f.sessions, nil
}

func (f *fakeSessions) Purge(context.Context) (int64, error) {
	f.purged = true
	return int64(len(f.sessions)), nil
}

func TestRoutesClassify(t *testing.T) {
	out, err := execute(testApp(t), "routes", "classify", "/login", "/inventory", "/api/session")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"/login", "public"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"/inventory", "protected"}, strings.Fields(lines[1]))
}

func TestRoutesClassify_RequiresPath(t *testing.T) {
	_, err := execute(testApp(t), "routes", "classify")
	require.Error(t, err)
}

func TestSettingsShow_PrintsDefaults(t *testing.T) {
	a := testApp(t)
	withMemorySettings(a)

	out, err := execute(a, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "workspaceName: Dream Team Inventory")
	assert.Contains(t, out, "enforceMfa: true")
}

func TestSettingsExportImportRoundTrip(t *testing.T) {
	a := testApp(t)
	svc := withMemorySettings(a)
	file := filepath.Join(t.TempDir(), "settings.yaml")

	out, err := execute(a, "settings", "export", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "settings exported to "+file)

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	edited := strings.Replace(string(raw), "Dream Team Inventory", "Warehouse North", 1)
	require.NoError(t, os.WriteFile(file, []byte(edited), 0o600))

	out, err = execute(a, "settings", "import", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, `imported settings for "Warehouse North"`)

	s, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Warehouse North", s.General.WorkspaceName)
	assert.Equal(t, importActor, s.UpdatedBy)
}

func TestSettingsImport_RejectsInvalid(t *testing.T) {
	a := testApp(t)
	withMemorySettings(a)
	dir := t.TempDir()

	t.Run("unknown key", func(t *testing.T) {
		file := filepath.Join(dir, "unknown.yaml")
		require.NoError(t, os.WriteFile(file, []byte("general:\n  workspaceNmae: Typo\n"), 0o600))
		_, err := execute(a, "settings", "import", "--file", file)
		require.Error(t, err)
	})

	t.Run("fails validation", func(t *testing.T) {
		s := workspace.Defaults()
		s.General.SupportEmail = "not-an-email"
		var buf bytes.Buffer
		require.NoError(t, writeSettingsYAML(&buf, s))
		file := filepath.Join(dir, "invalid.yaml")
		require.NoError(t, os.WriteFile(file, buf.Bytes(), 0o600))

		_, err := execute(a, "settings", "import", "--file", file)
		require.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		file := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(file, nil, 0o600))
		_, err := execute(a, "settings", "import", "--file", file)
		require.ErrorContains(t, err, "empty")
	})

	t.Run("file flag is required", func(t *testing.T) {
		_, err := execute(a, "settings", "import")
		require.Error(t, err)
	})
}

func TestSettingsReset(t *testing.T) {
	a := testApp(t)
	svc := withMemorySettings(a)
	custom := workspace.Defaults()
	custom.General.WorkspaceName = "Custom"
	_, err := svc.Import(context.Background(), custom, "test")
	require.NoError(t, err)

	t.Run("declined", func(t *testing.T) {
		a.stdin = strings.NewReader("n\n")
		_, err := execute(a, "settings", "reset")
		require.ErrorIs(t, err, errAborted)

		s, err := svc.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Custom", s.General.WorkspaceName)
	})

	t.Run("confirmed", func(t *testing.T) {
		a.stdin = strings.NewReader("yes\n")
		out, err := execute(a, "settings", "reset")
		require.NoError(t, err)
		assert.Contains(t, out, "restored to defaults")

		s, err := svc.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Dream Team Inventory", s.General.WorkspaceName)
	})
}

func TestSettingsCommands_NeedPostgres(t *testing.T) {
	a := testApp(t)
	a.cfg = config.AppConfig{}

	_, err := execute(a, "settings", "show")
	require.ErrorContains(t, err, "DB_ENABLED")
}

func TestSessionsList(t *testing.T) {
	a := testApp(t)
	store := &fakeSessions{sessions: []redisadapter.StoredSession{{
		ID:        "sid-1",
		UserID:    "u1",
		Email:     "ops@example.com",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}}}
	a.openSessions = func(context.Context) (sessionAdmin, func(), error) { return store, nil, nil }

	out, err := execute(a, "sessions", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "EXPIRES")
	assert.Contains(t, out, "sid-1")
	assert.Contains(t, out, "ops@example.com")
	assert.Contains(t, out, "2025-01-02T03:04:05Z")
}

func TestSessionsList_Empty(t *testing.T) {
	a := testApp(t)
	a.openSessions = func(context.Context) (sessionAdmin, func(), error) { return &fakeSessions{}, nil, nil }

	out, err := execute(a, "sessions", "list")
	require.NoError(t, err)
	assert.Equal(t, "no sessions\n", out)
}

func TestSessionsPurge(t *testing.T) {
	a := testApp(t)
	store := &fakeSessions{sessions: make([]redisadapter.StoredSession, 3)}
	closed := false
	a.openSessions = func(context.Context) (sessionAdmin, func(), error) {
		return store, func() { closed = true }, nil
	}

	out, err := execute(a, "sessions", "purge", "--yes")
	require.NoError(t, err)
	assert.True(t, store.purged)
	assert.True(t, closed)
	assert.Contains(t, out, "purged 3 sessions")
}

func TestSessionsCommands_NeedRedisStore(t *testing.T) {
	a := testApp(t)
	a.cfg.Session.Store = config.SessionStoreCookie

	_, err := execute(a, "sessions", "list")
	require.ErrorContains(t, err, "SESSION_STORE=redis")
}

func TestBackendPing(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, pingPath, r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"data":[{"id":"p1"},{"id":"p2"}]}`))
		}))
		t.Cleanup(srv.Close)

		a := testApp(t)
		a.cfg.Backend = config.BackendConfig{BaseURL: srv.URL, Timeout: time.Second}
		out, err := execute(a, "backend", "ping")
		require.NoError(t, err)
		assert.Contains(t, out, srv.URL+": ok (2 products)")
	})

	t.Run("rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"success":false,"msg":"maintenance"}`))
		}))
		t.Cleanup(srv.Close)

		a := testApp(t)
		a.cfg.Backend = config.BackendConfig{BaseURL: srv.URL}
		out, err := execute(a, "backend", "ping")
		require.Error(t, err)
		assert.Contains(t, out, "HTTP 503 maintenance")
	})

	t.Run("not configured", func(t *testing.T) {
		a := testApp(t)
		_, err := execute(a, "backend", "ping")
		require.ErrorContains(t, err, "API base URL is not configured.")
	})
}

func TestConfirm(t *testing.T) {
	a := testApp(t)
	var out bytes.Buffer

	require.NoError(t, a.confirm(&out, "x", true))
	assert.Empty(t, out.String())

	a.stdin = strings.NewReader("Y\n")
	require.NoError(t, a.confirm(&out, "Drop it.", false))
	assert.Contains(t, out.String(), "Drop it. Continue? [y/N]: ")

	a.stdin = strings.NewReader("")
	require.ErrorIs(t, a.confirm(&out, "x", false), errAborted)
}
