// Package testutil provides testing utilities and helpers for the StockMe dashboard.
package testutil

import (
	"time"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/inventory"
)

// SessionBuilder provides a fluent interface for building sessions for testing.
type SessionBuilder struct {
	sess domainauth.Session
}

// NewSession creates a SessionBuilder for a complete staff session valid for an hour.
func NewSession() *SessionBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &SessionBuilder{
		sess: domainauth.Session{
			ID:          "sess-1",
			UserID:      "user-1",
			Role:        domainauth.RoleStaff,
			AccessToken: "token-1",
			DisplayName: "Test User",
			Email:       "test.user@example.com",
			IssuedAt:    now,
			ExpiresAt:   now.Add(time.Hour),
		},
	}
}

// WithID sets the session id.
func (b *SessionBuilder) WithID(id string) *SessionBuilder {
	b.sess.ID = id
	return b
}

// WithRole sets the role.
func (b *SessionBuilder) WithRole(role domainauth.Role) *SessionBuilder {
	b.sess.Role = role
	return b
}

// Admin is shorthand for WithRole(RoleAdmin).
func (b *SessionBuilder) Admin() *SessionBuilder {
	return b.WithRole(domainauth.RoleAdmin)
}

// WithToken sets the bearer token.
func (b *SessionBuilder) WithToken(token string) *SessionBuilder {
	b.sess.AccessToken = token
	return b
}

// ExpiringAt sets the expiry.
func (b *SessionBuilder) ExpiringAt(t time.Time) *SessionBuilder {
	b.sess.ExpiresAt = t
	return b
}

// Build returns the constructed session.
func (b *SessionBuilder) Build() domainauth.Session {
	return b.sess
}

// Ptr returns a pointer to a copy of the constructed session.
func (b *SessionBuilder) Ptr() *domainauth.Session {
	s := b.sess
	return &s
}

// ProductBuilder provides a fluent interface for building catalogue items.
type ProductBuilder struct {
	p inventory.Product
}

// NewProduct creates a ProductBuilder with sensible defaults.
func NewProduct(id string) *ProductBuilder {
	return &ProductBuilder{
		p: inventory.Product{
			ID:            id,
			Name:          "Product " + id,
			SKU:           "SKU-" + id,
			Description:   "Test product",
			Category:      "General",
			Price:         10,
			StockQuantity: 5,
			Unit:          "pcs",
			Picture:       "https://example.com/" + id + ".png",
			IsActive:      true,
		},
	}
}

// Named sets the name.
func (b *ProductBuilder) Named(name string) *ProductBuilder {
	b.p.Name = name
	return b
}

// InCategory sets the category.
func (b *ProductBuilder) InCategory(c string) *ProductBuilder {
	b.p.Category = c
	return b
}

// WithStock sets the stock quantity.
func (b *ProductBuilder) WithStock(q float64) *ProductBuilder {
	b.p.StockQuantity = q
	return b
}

// Build returns the constructed product.
func (b *ProductBuilder) Build() inventory.Product {
	return b.p
}
