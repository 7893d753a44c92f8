package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Roles lists the recognised roles in display order.
var Roles = []Role{RoleAdmin, RoleStaff}

// Label is the human-readable role name.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	default:
		return "Staff"
	}
}

// NormalizeRole lower-cases and trims a role string. Anything that is not a
// recognised role, including an empty value, resolves to staff.
func NormalizeRole(raw string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleStaff
	}
}

// ParseRole is the strict form of NormalizeRole used for user input.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	switch r {
	case RoleAdmin, RoleStaff:
		return r, true
	default:
		return "", false
	}
}

// ErrIncompleteSession is returned by Session.Validate for partially populated sessions.
var ErrIncompleteSession = errors.New("session is incomplete")

// Session is the authenticated identity held for one browser visit.
// ID is an opaque session identifier used by server-side stores.
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Role        Role      `json:"role"`
	AccessToken string    `json:"access_token"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Validate enforces that a session is either complete or treated as absent.
func (s *Session) Validate() error {
	if s == nil {
		return ErrIncompleteSession
	}
	if strings.TrimSpace(s.UserID) == "" || strings.TrimSpace(s.AccessToken) == "" || s.Role == "" {
		return ErrIncompleteSession
	}
	if strings.TrimSpace(s.DisplayName) == "" || strings.TrimSpace(s.Email) == "" {
		return ErrIncompleteSession
	}
	return nil
}

// Expired reports whether the session is past its expiry at now.
// A zero ExpiresAt never expires.
func (s *Session) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// IsAdmin reports whether the normalised role is admin.
func (s *Session) IsAdmin() bool {
	return s != nil && NormalizeRole(string(s.Role)) == RoleAdmin
}

// Decision is the authorization view derived from a session snapshot.
// It is recomputed for every request and never stored.
type Decision struct {
	IsAuthenticated bool
	Role            Role
	CanManage       bool
}

// Decide derives a Decision from the given session. Nil or incomplete sessions
// are unauthenticated staff.
func Decide(s *Session) Decision {
	if s.Validate() != nil {
		return Decision{Role: RoleStaff}
	}
	role := NormalizeRole(string(s.Role))
	return Decision{
		IsAuthenticated: true,
		Role:            role,
		CanManage:       role == RoleAdmin,
	}
}

// IsAdmin is shorthand for an authenticated admin decision.
func (d Decision) IsAdmin() bool {
	return d.IsAuthenticated && d.Role == RoleAdmin
}
