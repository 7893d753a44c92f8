// Package backendapi implements the backend-facing ports over backend.Client.
package backendapi

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/dreamteam/stockme-dashboard/internal/backend"
	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/directory"
	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

const (
	pathLogin    = "/api/v1/auth/login"
	pathMe       = "/api/v1/auth/me"
	pathRegister = "/api/v1/auth/register"
	pathLogout   = "/api/v1/auth/logout"
	pathProducts = "/api/v1/products"
	pathRequests = "/api/v1/requests"
	pathUsers    = "/api/v1/users"
)

// Compile-time conformance to ports.
var (
	_ ports.AuthGateway      = (*Gateway)(nil)
	_ ports.ProductGateway   = (*Gateway)(nil)
	_ ports.RequestGateway   = (*Gateway)(nil)
	_ ports.DirectoryGateway = (*Gateway)(nil)
)

// Gateway talks to the inventory REST API.
type Gateway struct {
	client *backend.Client
}

// New wraps a backend client.
func New(client *backend.Client) *Gateway {
	return &Gateway{client: client}
}

type loginResponse struct {
	Success bool    `json:"success"`
	ID      string  `json:"_id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Token   string  `json:"token"`
	Msg     *string `json:"msg,omitempty"`
}

type profileDTO struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Tel   string `json:"tel"`
	Role  string `json:"role"`
}

type registerResponse struct {
	Success bool    `json:"success"`
	Msg     *string `json:"msg,omitempty"`
}

// Login posts credentials without an Authorization header. Non-2xx answers,
// success=false and missing tokens all come back as *ports.RejectedError.
func (g *Gateway) Login(ctx context.Context, creds domainauth.Credentials) (ports.LoginResult, error) {
	var resp loginResponse
	err := g.client.Do(ctx, pathLogin, backend.Options{
		Method:         http.MethodPost,
		Body:           map[string]string{"email": creds.Email, "password": creds.Password},
		SkipAuthHeader: true,
		LenientJSON:    true,
	}, &resp)
	if err != nil {
		return ports.LoginResult{}, rejection(err)
	}
	if !resp.Success || resp.Token == "" {
		return ports.LoginResult{}, &ports.RejectedError{Status: http.StatusOK, Message: deref(resp.Msg)}
	}
	return ports.LoginResult{UserID: resp.ID, Name: resp.Name, Email: resp.Email, Token: resp.Token}, nil
}

// Profile fetches /auth/me with the given bearer token.
func (g *Gateway) Profile(ctx context.Context, token string) (ports.Profile, error) {
	resp, err := backend.Fetch[backend.Envelope[*profileDTO]](ctx, g.client, pathMe, backend.Options{
		Token:       token,
		LenientJSON: true,
	})
	if err != nil {
		return ports.Profile{}, err
	}
	if resp.Data == nil {
		return ports.Profile{}, nil
	}
	d := resp.Data
	return ports.Profile{ID: d.ID, Name: d.Name, Email: d.Email, Tel: d.Tel, Role: d.Role}, nil
}

// Register creates an account. The email is trimmed, the password sent as typed.
func (g *Gateway) Register(ctx context.Context, reg domainauth.Registration) error {
	var resp registerResponse
	err := g.client.Do(ctx, pathRegister, backend.Options{
		Method: http.MethodPost,
		Body: map[string]string{
			"name":     reg.Name,
			"tel":      reg.Tel,
			"email":    reg.Email,
			"password": reg.Password,
			"role":     string(reg.Role),
		},
		SkipAuthHeader: true,
		LenientJSON:    true,
	}, &resp)
	if err != nil {
		return rejection(err)
	}
	if !resp.Success {
		return &ports.RejectedError{Status: http.StatusOK, Message: deref(resp.Msg)}
	}
	return nil
}

// Logout invalidates the token on the backend.
func (g *Gateway) Logout(ctx context.Context, token string) error {
	return g.client.Do(ctx, pathLogout, backend.Options{Token: token}, nil)
}

// ListProducts reads the public catalogue.
func (g *Gateway) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	resp, err := backend.Fetch[backend.ListEnvelope[inventory.Product]](ctx, g.client, pathProducts, backend.Options{})
	return resp.Data, err
}

// CreateProduct posts a new item and returns the stored record.
func (g *Gateway) CreateProduct(ctx context.Context, token string, in inventory.ProductInput) (inventory.Product, error) {
	resp, err := backend.Fetch[backend.Envelope[inventory.Product]](ctx, g.client, pathProducts, backend.Options{
		Method: http.MethodPost, Body: in, Token: token,
	})
	return resp.Data, err
}

// UpdateProduct replaces an item and returns the stored record.
func (g *Gateway) UpdateProduct(ctx context.Context, token, id string, in inventory.ProductInput) (inventory.Product, error) {
	resp, err := backend.Fetch[backend.Envelope[inventory.Product]](ctx, g.client, itemPath(pathProducts, id), backend.Options{
		Method: http.MethodPut, Body: in, Token: token,
	})
	return resp.Data, err
}

// DeleteProduct removes an item.
func (g *Gateway) DeleteProduct(ctx context.Context, token, id string) error {
	return g.client.Do(ctx, itemPath(pathProducts, id), backend.Options{Method: http.MethodDelete, Token: token}, nil)
}

// ListRequests reads stock requests visible to the token's user.
func (g *Gateway) ListRequests(ctx context.Context, token string) ([]inventory.Request, error) {
	resp, err := backend.Fetch[backend.ListEnvelope[inventory.Request]](ctx, g.client, pathRequests, backend.Options{Token: token})
	return resp.Data, err
}

// CreateRequest posts a new stock request.
func (g *Gateway) CreateRequest(ctx context.Context, token string, in inventory.RequestInput) (inventory.Request, error) {
	resp, err := backend.Fetch[backend.Envelope[inventory.Request]](ctx, g.client, pathRequests, backend.Options{
		Method: http.MethodPost, Body: in, Token: token,
	})
	return resp.Data, err
}

// UpdateRequest replaces a stock request.
func (g *Gateway) UpdateRequest(ctx context.Context, token, id string, in inventory.RequestInput) (inventory.Request, error) {
	resp, err := backend.Fetch[backend.Envelope[inventory.Request]](ctx, g.client, itemPath(pathRequests, id), backend.Options{
		Method: http.MethodPut, Body: in, Token: token,
	})
	return resp.Data, err
}

// DeleteRequest removes a stock request.
func (g *Gateway) DeleteRequest(ctx context.Context, token, id string) error {
	return g.client.Do(ctx, itemPath(pathRequests, id), backend.Options{Method: http.MethodDelete, Token: token}, nil)
}

// ListUsers reads the user directory, optionally filtered by role.
func (g *Gateway) ListUsers(ctx context.Context, token string, role domainauth.Role) (directory.Response, error) {
	path := pathUsers
	if role != "" {
		path += "?" + url.Values{"role": {string(role)}}.Encode()
	}
	return backend.Fetch[directory.Response](ctx, g.client, path, backend.Options{Token: token})
}

func itemPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}

// rejection turns a non-2xx answer into a RejectedError carrying the
// payload's msg field. Other failures pass through.
func rejection(err error) error {
	var apiErr *backend.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	msg, _ := apiErr.PayloadString("msg")
	return &ports.RejectedError{Status: apiErr.Status, Message: msg}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
