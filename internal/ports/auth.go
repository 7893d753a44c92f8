package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
)

// ErrSessionNotFound is returned by session stores for unknown or expired ids.
var ErrSessionNotFound = errors.New("session not found")

// RejectedError reports that the backend refused a login or registration.
// Message is the backend's msg field and may be empty.
type RejectedError struct {
	Status  int
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "backend rejected the request"
	}
	return "backend rejected the request: " + e.Message
}

// LoginResult is the backend's answer to a successful credential exchange.
type LoginResult struct {
	UserID string
	Name   string
	Email  string
	Token  string
}

// Profile is the identity returned by the backend's "me" endpoint.
type Profile struct {
	ID    string
	Name  string
	Email string
	Tel   string
	// Role is the raw role string; callers normalise it.
	Role string
}

// AuthGateway exchanges credentials with the inventory backend.
type AuthGateway interface {
	// Login exchanges email/password for a bearer token.
	Login(ctx context.Context, creds domainauth.Credentials) (LoginResult, error)
	// Profile fetches the identity bound to token.
	Profile(ctx context.Context, token string) (Profile, error)
	// Register creates an account; it does not sign in.
	Register(ctx context.Context, reg domainauth.Registration) error
	// Logout invalidates token on the backend.
	Logout(ctx context.Context, token string) error
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionCodec turns sessions into signed cookie values and back.
// Stateless codecs embed the bearer token; stateful ones carry only the id.
type SessionCodec interface {
	Encode(sess domainauth.Session) (string, error)
	Decode(value string) (domainauth.Session, error)
}
