package service

import (
	"context"
	"errors"
	"log/slog"

	domainauth "github.com/dreamteam/stockme-dashboard/internal/domain/auth"
	"github.com/dreamteam/stockme-dashboard/internal/domain/workspace"
	apperrors "github.com/dreamteam/stockme-dashboard/internal/errors"
	"github.com/dreamteam/stockme-dashboard/internal/ports"
)

const (
	msgSettingsLoad  = "Unable to load workspace settings."
	msgSettingsSave  = "Unable to save workspace settings. Please try again."
	msgSettingsReset = "Unable to reset workspace settings. Please try again."
)

// SettingsServiceOptions groups dependencies for SettingsService.
type SettingsServiceOptions struct {
	Repo   ports.SettingsRepository
	Key    string
	Logger *slog.Logger
}

// SettingsService reads and writes the workspace preferences.
type SettingsService struct {
	repo   ports.SettingsRepository
	key    string
	logger *slog.Logger
}

// NewSettingsService constructs a new SettingsService.
func NewSettingsService(opts SettingsServiceOptions) *SettingsService {
	if opts.Repo == nil {
		panic("SettingsRepository is required")
	}
	key := opts.Key
	if key == "" {
		key = workspace.DefaultKey
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{repo: opts.Repo, key: key, logger: logger.With("component", "settings_service")}
}

// Get returns the stored settings, or the defaults when none are stored.
func (s *SettingsService) Get(ctx context.Context) (workspace.Settings, error) {
	stored, err := s.repo.Get(ctx, s.key)
	if apperrors.IsNotFound(err) {
		return workspace.Defaults(), nil
	}
	if err != nil {
		return workspace.Settings{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, msgSettingsLoad)
	}
	return stored.Normalize(), nil
}

// Save validates and stores in on behalf of an admin session.
func (s *SettingsService) Save(ctx context.Context, sess *domainauth.Session, in workspace.Settings) (workspace.Settings, error) {
	if !CanEditSettings(domainauth.Decide(sess)) {
		return workspace.Settings{}, forbidden(SettingsRestricted)
	}
	return s.Import(ctx, in, actor(sess))
}

// Import validates and stores in, recording by as the editor.
func (s *SettingsService) Import(ctx context.Context, in workspace.Settings, by string) (workspace.Settings, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		var fe *workspace.FieldError
		if errors.As(err, &fe) {
			return workspace.Settings{}, apperrors.ValidationField(fe.Field, fe.Error())
		}
		return workspace.Settings{}, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	in.UpdatedBy = by
	saved, err := s.repo.Put(ctx, s.key, in)
	if err != nil {
		if apperrors.IsValidation(err) || apperrors.IsConflict(err) {
			return workspace.Settings{}, err
		}
		return workspace.Settings{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, msgSettingsSave)
	}
	s.logger.InfoContext(ctx, "workspace settings saved", "key", s.key, "updated_by", by)
	return saved, nil
}

// Reset restores the defaults on behalf of an admin session.
func (s *SettingsService) Reset(ctx context.Context, sess *domainauth.Session) (workspace.Settings, error) {
	if !CanEditSettings(domainauth.Decide(sess)) {
		return workspace.Settings{}, forbidden(SettingsRestricted)
	}
	return s.RestoreDefaults(ctx)
}

// RestoreDefaults drops the stored settings so reads fall back to the defaults.
func (s *SettingsService) RestoreDefaults(ctx context.Context) (workspace.Settings, error) {
	if err := s.repo.Delete(ctx, s.key); err != nil && !apperrors.IsNotFound(err) {
		return workspace.Settings{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, msgSettingsReset)
	}
	s.logger.InfoContext(ctx, "workspace settings reset", "key", s.key)
	return workspace.Defaults(), nil
}

func actor(sess *domainauth.Session) string {
	if sess == nil {
		return ""
	}
	if sess.Email != "" {
		return sess.Email
	}
	return sess.UserID
}
