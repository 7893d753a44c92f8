package data

import (
	"context"
	"maps"
	"strings"
	"sync"

	"github.com/dreamteam/stockme-dashboard/internal/domain/workspace"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

var _ ports.SettingsRepository = (*MemorySettingsRepo)(nil)

// MemorySettingsRepo keeps settings in process memory. It is used when no
// database is configured; contents are lost on restart.
type MemorySettingsRepo struct {
	mu           sync.RWMutex
	items        map[string]workspace.Settings
	timeProvider TimeProvider
}

// NewMemorySettingsRepo creates an empty in-memory repository.
func NewMemorySettingsRepo() *MemorySettingsRepo {
	return &MemorySettingsRepo{items: map[string]workspace.Settings{}, timeProvider: &RealTimeProvider{}}
}

// NewMemorySettingsRepoWithTimeProvider creates an in-memory repository with a custom clock.
func NewMemorySettingsRepoWithTimeProvider(tp TimeProvider) *MemorySettingsRepo {
	return &MemorySettingsRepo{items: map[string]workspace.Settings{}, timeProvider: tp}
}

// Get returns a copy of the settings under key.
func (r *MemorySettingsRepo) Get(_ context.Context, key string) (workspace.Settings, error) {
	if strings.TrimSpace(key) == "" {
		return workspace.Settings{}, ErrSettingsKeyRequired
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[key]
	if !ok {
		return workspace.Settings{}, apperrors.NotFoundf("workspace settings %q not found", key)
	}
	return clone(s), nil
}

// Put stores a copy of s under key.
func (r *MemorySettingsRepo) Put(_ context.Context, key string, s workspace.Settings) (workspace.Settings, error) {
	if strings.TrimSpace(key) == "" {
		return workspace.Settings{}, ErrSettingsKeyRequired
	}
	s.UpdatedAt = r.timeProvider.Now().UTC()
	r.mu.Lock()
	r.items[key] = clone(s)
	r.mu.Unlock()
	return s, nil
}

// Delete removes key.
func (r *MemorySettingsRepo) Delete(_ context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrSettingsKeyRequired
	}
	r.mu.Lock()
	delete(r.items, key)
	r.mu.Unlock()
	return nil
}

func clone(s workspace.Settings) workspace.Settings {
	s.Toggles = maps.Clone(s.Toggles)
	return s
}
