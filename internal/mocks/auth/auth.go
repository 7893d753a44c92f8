package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.AuthGateway = (*FakeAuthGateway)(nil)

// Account is a registered user known to FakeAuthGateway.
type Account struct {
	ID       string
	Name     string
	Email    string
	Tel      string
	Password string
	Role     string
}

// FakeAuthGateway simulates the backend's auth endpoints with an in-memory
// account table. Tokens are deterministic: "token-<n>" per successful login.
type FakeAuthGateway struct {
	LoginFunc    func(ctx context.Context, creds domainauth.Credentials) (ports.LoginResult, error)
	ProfileFunc  func(ctx context.Context, token string) (ports.Profile, error)
	RegisterFunc func(ctx context.Context, reg domainauth.Registration) error

	mu        sync.Mutex
	accounts  map[string]Account
	tokens    map[string]string
	loggedOut []string
	logins    int
}

// NewFakeAuthGateway creates a gateway seeded with the given accounts.
func NewFakeAuthGateway(accounts ...Account) *FakeAuthGateway {
	f := &FakeAuthGateway{
		accounts: make(map[string]Account),
		tokens:   make(map[string]string),
	}
	for _, a := range accounts {
		f.AddAccount(a)
	}
	return f
}

// AddAccount registers a with a generated ID when none is set.
func (f *FakeAuthGateway) AddAccount(a Account) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ID == "" {
		a.ID = fmt.Sprintf("user-%d", len(f.accounts)+1)
	}
	f.accounts[a.Email] = a
}

func (f *FakeAuthGateway) Login(ctx context.Context, creds domainauth.Credentials) (ports.LoginResult, error) {
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, creds)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	a, ok := f.accounts[creds.Email]
	if !ok || a.Password != creds.Password {
		return ports.LoginResult{}, &ports.RejectedError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
	}
	f.logins++
	token := fmt.Sprintf("token-%d", f.logins)
	f.tokens[token] = a.Email
	return ports.LoginResult{UserID: a.ID, Name: a.Name, Email: a.Email, Token: token}, nil
}

func (f *FakeAuthGateway) Profile(ctx context.Context, token string) (ports.Profile, error) {
	if f.ProfileFunc != nil {
		return f.ProfileFunc(ctx, token)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	email, ok := f.tokens[token]
	if !ok {
		return ports.Profile{}, &ports.RejectedError{Status: http.StatusUnauthorized, Message: "Not authorized to access this route"}
	}
	a := f.accounts[email]
	return ports.Profile{ID: a.ID, Name: a.Name, Email: a.Email, Tel: a.Tel, Role: a.Role}, nil
}

func (f *FakeAuthGateway) Register(ctx context.Context, reg domainauth.Registration) error {
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, reg)
	}
	f.mu.Lock()
	_, exists := f.accounts[reg.Email]
	f.mu.Unlock()
	if exists {
		return &ports.RejectedError{Status: http.StatusBadRequest, Message: "Email already registered"}
	}
	f.AddAccount(Account{
		Name:     reg.Name,
		Email:    reg.Email,
		Tel:      reg.Tel,
		Password: reg.Password,
		Role:     string(reg.Role),
	})
	return nil
}

func (f *FakeAuthGateway) Logout(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

// LoggedOut returns the tokens passed to Logout, in call order.
func (f *FakeAuthGateway) LoggedOut() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.loggedOut...)
}

// Account returns the stored account for email.
func (f *FakeAuthGateway) Account(email string) (Account, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[email]
	return a, ok
}
