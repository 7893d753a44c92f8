package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/directory"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

func sampleDirectory() directory.Directory {
	meta := directory.EmptyMeta()
	meta.TotalUsers = 2
	meta.RoleSummary[domainauth.RoleAdmin] = 1
	meta.RoleSummary[domainauth.RoleStaff] = 1
	meta.RequestSummary = directory.RequestSummary{TotalRequests: 7, StockIn: 4, StockOut: 3}
	return directory.Directory{
		Meta: meta,
		Entries: []directory.Entry{
			{ID: "u1", Name: "Ploy Admin", Email: "ploy@example.com", Role: domainauth.RoleAdmin, Tel: "021234567"},
			{
				ID: "u2", Name: "Tong Staff", Email: "tong@example.com", Role: domainauth.RoleStaff,
				RequestSummary: &directory.RequestSummary{TotalRequests: 7, StockIn: 4, StockOut: 3},
			},
		},
	}
}

func TestUsers_AdminSeesDirectory(t *testing.T) {
	dir := &fakeDirectory{dir: sampleDirectory()}
	ui := newUI(t)
	ui.DirectorySvc = dir

	w := httptest.NewRecorder()
	ui.Users(w, adminRequest(http.MethodGet, "/users?role=staff"))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, dir.calls)
	assert.Equal(t, "staff", dir.lastRole)
	body := w.Body.String()
	assert.True(t, ContainsAll(body, []string{"Ploy Admin", "tong@example.com", "021234567", `id="users-table"`, "Users Directory"}))
	assert.NotContains(t, body, service.DirectoryRestricted.Title)
}

func TestUsers_StaffIsRestricted(t *testing.T) {
	dir := &fakeDirectory{dir: sampleDirectory()}
	ui := newUI(t)
	ui.DirectorySvc = dir

	w := httptest.NewRecorder()
	ui.Users(w, staffRequest(http.MethodGet, "/users"))

	assert.Zero(t, dir.calls, "staff never reach the backend")
	body := w.Body.String()
	assert.Contains(t, body, service.DirectoryRestricted.Title)
	assert.NotContains(t, body, "Ploy Admin")
	assert.NotContains(t, body, `id="users-table"`)
}

func TestUsers_SearchFragment(t *testing.T) {
	ui := newUI(t)
	ui.DirectorySvc = &fakeDirectory{dir: sampleDirectory()}

	w := httptest.NewRecorder()
	ui.Users(w, AsHTMX(adminRequest(http.MethodGet, "/users?search=tong"), "users-table"))

	body := w.Body.String()
	assert.NotContains(t, body, "<html")
	assert.Contains(t, body, "Tong Staff")
	assert.NotContains(t, body, "Ploy Admin")

	w = httptest.NewRecorder()
	ui.Users(w, AsHTMX(adminRequest(http.MethodGet, "/users?search=nobody"), "users-table"))
	assert.Contains(t, w.Body.String(), "No users match your search.")
}

func TestUsers_InvalidRoleFallsBackToAll(t *testing.T) {
	dir := &fakeDirectory{dir: sampleDirectory()}
	ui := newUI(t)
	ui.DirectorySvc = dir

	ui.Users(httptest.NewRecorder(), adminRequest(http.MethodGet, "/users?role=owner"))
	assert.Equal(t, directory.RoleFilterAll, dir.lastRole)
}

func TestUsers_BackendForbidden(t *testing.T) {
	ui := newUI(t)
	ui.DirectorySvc = &fakeDirectory{err: apperrors.Forbidden("Directory access revoked.")}

	w := httptest.NewRecorder()
	ui.Users(w, adminRequest(http.MethodGet, "/users"))

	body := w.Body.String()
	assert.Contains(t, body, "Directory access revoked.")
	assert.Contains(t, body, "Access Restricted")
	assert.NotContains(t, body, "No users found.")
}
