package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/dreamteam/stockme-dashboard/internal/data/pgxutil"
	"github.com/dreamteam/stockme-dashboard/internal/domain/workspace"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

var _ ports.SettingsRepository = (*SettingsRepo)(nil)

const (
	settingsGetQuery = `
		SELECT settings, updated_at, updated_by
		FROM workspace_settings
		WHERE key = $1`

	settingsUpsertQuery = `
		INSERT INTO workspace_settings (key, settings, updated_at, updated_by)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET settings = EXCLUDED.settings,
		    updated_at = EXCLUDED.updated_at,
		    updated_by = EXCLUDED.updated_by
		RETURNING updated_at, updated_by`

	settingsDeleteQuery = `DELETE FROM workspace_settings WHERE key = $1`
)

// settingsPayload is the JSONB document; audit columns live outside it.
type settingsPayload struct {
	General workspace.General `json:"general"`
	Toggles workspace.Toggles `json:"toggles"`
}

// SettingsRepo persists workspace settings in Postgres.
type SettingsRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewSettingsRepo creates a new SettingsRepo with real time provider.
func NewSettingsRepo(db *sql.DB) *SettingsRepo {
	return &SettingsRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewSettingsRepoWithTimeProvider creates a new SettingsRepo with a custom time provider (useful for tests).
func NewSettingsRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *SettingsRepo {
	return &SettingsRepo{DB: db, timeProvider: tp}
}

// Get loads the settings stored under key.
func (r *SettingsRepo) Get(ctx context.Context, key string) (workspace.Settings, error) {
	if strings.TrimSpace(key) == "" {
		return workspace.Settings{}, ErrSettingsKeyRequired
	}

	var (
		raw       []byte
		updatedAt time.Time
		updatedBy string
	)
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, settingsGetQuery, key).Scan(&raw, &updatedAt, &updatedBy)
	})
	if err != nil {
		return workspace.Settings{}, apperrors.MapDBError(err)
	}

	var payload settingsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return workspace.Settings{}, fmt.Errorf("decode workspace settings: %w", err)
	}
	return workspace.Settings{
		General:   payload.General,
		Toggles:   payload.Toggles,
		UpdatedAt: updatedAt.UTC(),
		UpdatedBy: updatedBy,
	}, nil
}

// Put upserts the settings under key and returns them with the stored audit fields.
func (r *SettingsRepo) Put(ctx context.Context, key string, s workspace.Settings) (workspace.Settings, error) {
	if strings.TrimSpace(key) == "" {
		return workspace.Settings{}, ErrSettingsKeyRequired
	}

	raw, err := json.Marshal(settingsPayload{General: s.General, Toggles: s.Toggles})
	if err != nil {
		return workspace.Settings{}, fmt.Errorf("encode workspace settings: %w", err)
	}

	now := r.timeProvider.Now().UTC()
	err = pgxutil.WithTx(ctx, r.DB, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, settingsUpsertQuery, key, raw, now, s.UpdatedBy).
			Scan(&s.UpdatedAt, &s.UpdatedBy)
	})
	if err != nil {
		return workspace.Settings{}, apperrors.MapDBError(err)
	}
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

// Delete removes the row for key. Deleting a missing key is not an error.
func (r *SettingsRepo) Delete(ctx context.Context, key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrSettingsKeyRequired
	}
	err := pgxutil.WithConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, settingsDeleteQuery, key)
		return execErr
	})
	return apperrors.MapDBError(err)
}
