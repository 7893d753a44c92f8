package backendapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamteam/stockme-dashboard/internal/backend"
	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

type fakeBackend struct {
	t       *testing.T
	routes  map[string]http.HandlerFunc
	lastReq *http.Request
	body    []byte
}

func newFakeBackend(t *testing.T) (*fakeBackend, *Gateway) {
	t.Helper()
	fb := &fakeBackend{t: t, routes: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.lastReq = r.Clone(context.Background())
		fb.body, _ = io.ReadAll(r.Body)
		h, ok := fb.routes[r.Method+" "+r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return fb, New(backend.NewClient(backend.ClientOptions{BaseURL: srv.URL}))
}

func reply(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func TestGateway_Login(t *testing.T) {
	fb, g := newFakeBackend(t)
	fb.routes["POST /api/v1/auth/login"] = reply(http.StatusOK, map[string]any{
		"success": true, "_id": "u1", "name": "Ann", "email": "ann@x.co", "token": "tkn",
	})

	res, err := g.Login(context.Background(), domainauth.Credentials{Email: "ann@x.co", Password: "pw"})

	require.NoError(t, err)
	assert.Equal(t, ports.LoginResult{UserID: "u1", Name: "Ann", Email: "ann@x.co", Token: "tkn"}, res)
	assert.Empty(t, fb.lastReq.Header.Get("Authorization"))
	assert.JSONEq(t, `{"email":"ann@x.co","password":"pw"}`, string(fb.body))
}

func TestGateway_LoginRejections(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
		message string
	}{
		{"401 with msg", reply(http.StatusUnauthorized, map[string]any{"success": false, "msg": "Invalid credentials"}), 401, "Invalid credentials"},
		{"401 error field ignored", reply(http.StatusUnauthorized, map[string]any{"success": false, "error": "nope"}), 401, ""},
		{"success false", reply(http.StatusOK, map[string]any{"success": false, "msg": "Account locked"}), 200, "Account locked"},
		{"missing token", reply(http.StatusOK, map[string]any{"success": true}), 200, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, g := newFakeBackend(t)
			fb.routes["POST /api/v1/auth/login"] = tt.handler

			_, err := g.Login(context.Background(), domainauth.Credentials{Email: "a@b.co", Password: "x"})

			var rej *ports.RejectedError
			require.ErrorAs(t, err, &rej)
			assert.Equal(t, tt.status, rej.Status)
			assert.Equal(t, tt.message, rej.Message)
		})
	}
}

func TestGateway_Profile(t *testing.T) {
	fb, g := newFakeBackend(t)
	fb.routes["GET /api/v1/auth/me"] = reply(http.StatusOK, map[string]any{
		"success": true, "data": map[string]any{"_id": "u1", "name": "Ann", "email": "ann@x.co", "role": "admin"},
	})

	p, err := g.Profile(context.Background(), "tkn")

	require.NoError(t, err)
	assert.Equal(t, "admin", p.Role)
	assert.Equal(t, "Bearer tkn", fb.lastReq.Header.Get("Authorization"))
}

func TestGateway_Register(t *testing.T) {
	fb, g := newFakeBackend(t)
	fb.routes["POST /api/v1/auth/register"] = reply(http.StatusCreated, map[string]any{"success": true})

	err := g.Register(context.Background(), domainauth.Registration{
		Name: "Ann", Tel: "0800", Email: "ann@x.co", Password: " pw ", Role: domainauth.RoleAdmin,
	})

	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Ann","tel":"0800","email":"ann@x.co","password":" pw ","role":"admin"}`, string(fb.body))

	fb.routes["POST /api/v1/auth/register"] = reply(http.StatusBadRequest, map[string]any{"success": false, "msg": "Email taken"})
	err = g.Register(context.Background(), domainauth.Registration{Name: "Ann", Tel: "1", Email: "a@b.co", Password: "x", Role: domainauth.RoleStaff})
	var rej *ports.RejectedError
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "Email taken", rej.Message)
}

func TestGateway_Products(t *testing.T) {
	fb, g := newFakeBackend(t)
	fb.routes["GET /api/v1/products"] = reply(http.StatusOK, map[string]any{
		"success": true, "count": 1,
		"data": []map[string]any{{"_id": "p1", "name": "Widget", "sku": "W-1", "stockQuantity": 4, "isActive": true}},
	})
	fb.routes["PUT /api/v1/products/p1"] = reply(http.StatusOK, map[string]any{
		"success": true, "data": map[string]any{"_id": "p1", "name": "Widget v2"},
	})
	fb.routes["DELETE /api/v1/products/p1"] = reply(http.StatusOK, map[string]any{"success": true, "data": map[string]any{}})

	products, err := g.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Empty(t, fb.lastReq.Header.Get("Authorization"))
	assert.InDelta(t, 4, products[0].StockQuantity, 0)

	updated, err := g.UpdateProduct(context.Background(), "tkn", "p1", inventory.ProductInput{Name: "Widget v2", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", updated.Name)
	assert.Equal(t, "Bearer tkn", fb.lastReq.Header.Get("Authorization"))

	require.NoError(t, g.DeleteProduct(context.Background(), "tkn", "p1"))
}

func TestGateway_CreateRequestPayload(t *testing.T) {
	fb, g := newFakeBackend(t)
	fb.routes["POST /api/v1/requests"] = reply(http.StatusCreated, map[string]any{
		"success": true,
		"data": map[string]any{
			"_id": "r1", "transactionType": "stockOut", "itemAmount": 2,
			"transactionDate": "2024-05-01T00:00:00.000Z", "user": "u1", "product_id": "p1",
		},
	})

	in := inventory.RequestInput{
		ProductID:       "p1",
		TransactionType: inventory.StockOut,
		ItemAmount:      2,
		TransactionDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	got, err := g.CreateRequest(context.Background(), "tkn", in)

	require.NoError(t, err)
	assert.Equal(t, "r1", got.ID)
	assert.JSONEq(t, `{"product_id":"p1","transactionType":"stockOut","itemAmount":2,"transactionDate":"2024-05-01T00:00:00Z"}`, string(fb.body))
}

func TestGateway_ListUsersRoleFilter(t *testing.T) {
	fb, g := newFakeBackend(t)
	fb.routes["GET /api/v1/users"] = reply(http.StatusOK, map[string]any{
		"success": true, "count": "2", "data": []map[string]any{{"id": "u1", "role": "admin"}},
	})

	resp, err := g.ListUsers(context.Background(), "tkn", domainauth.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "role=admin", fb.lastReq.URL.RawQuery)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, resp.Count.Int())

	_, err = g.ListUsers(context.Background(), "tkn", "")
	require.NoError(t, err)
	assert.Empty(t, fb.lastReq.URL.RawQuery)
}

func TestGateway_ErrorsPassThrough(t *testing.T) {
	_, g := newFakeBackend(t)

	_, err := g.ListRequests(context.Background(), "tkn")

	var apiErr *backend.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}
