package ports

import (
	"context"

	"github.com/dreamteam/stockme-dashboard/internal/domain/workspace"
)

// SettingsRepository stores workspace settings by key.
// Get returns an error satisfying errors.IsNotFound when nothing is stored.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (workspace.Settings, error)
	Put(ctx context.Context, key string, s workspace.Settings) (workspace.Settings, error)
	Delete(ctx context.Context, key string) error
}
