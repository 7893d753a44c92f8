// Package memstore is an in-process session store for development and tests.
// Sessions are lost on restart and are not shared between replicas.
package memstore

import (
	"context"
	"errors"
	"sync"
	"time"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

var _ ports.SessionStore = (*Store)(nil)

// Store keeps sessions in a map guarded by a mutex.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]domainauth.Session
	now      func() time.Time
}

// New creates an empty Store.
func New() *Store {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty Store using now for expiry checks.
func NewWithClock(now func() time.Time) *Store {
	return &Store{sessions: make(map[string]domainauth.Session), now: now}
}

// Save stores sess; expired sessions are rejected like the Redis store does.
func (s *Store) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	if sess.Expired(s.now()) {
		return errors.New("session is expired")
	}
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()
	return nil
}

// Get returns the session or ports.ErrSessionNotFound. Expired entries are evicted.
func (s *Store) Get(_ context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	if sess.Expired(s.now()) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes a session.
func (s *Store) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

// Len reports how many sessions are held, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
