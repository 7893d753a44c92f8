package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dreamteam/stockme-dashboard/internal/bootstrap"
	"github.com/dreamteam/stockme-dashboard/internal/data"
	"github.com/dreamteam/stockme-dashboard/internal/domain/workspace"
	"github.com/dreamteam/stockme-dashboard/internal/service"
)

// importActor is recorded as the editor of settings imported from a file.
const importActor = "stockme-admin"

// settingsAdmin is the part of SettingsService the CLI drives.
type settingsAdmin interface {
	Get(ctx context.Context) (workspace.Settings, error)
	Import(ctx context.Context, in workspace.Settings, by string) (workspace.Settings, error)
	RestoreDefaults(ctx context.Context) (workspace.Settings, error)
}

// connectSettings opens the Postgres settings repository.
func (a *app) connectSettings(_ context.Context) (settingsAdmin, func(), error) {
	if !a.cfg.Postgres.Enabled {
		return nil, nil, errors.New("settings commands need Postgres (set DB_ENABLED=true)")
	}
	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: a.cfg.Postgres, Logger: a.logger})
	if err != nil {
		return nil, nil, fmt.Errorf("connect db: %w", err)
	}
	svc := service.NewSettingsService(service.SettingsServiceOptions{
		Repo:   data.NewSettingsRepo(db),
		Logger: a.logger,
	})
	return svc, func() {
		if closeErr := db.Close(); closeErr != nil {
			a.logger.Warn("db close failed", "error", closeErr)
		}
	}, nil
}

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect, export, import or reset workspace settings",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the current settings as YAML",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.withSettings(cmd, func(svc settingsAdmin) error {
					s, err := svc.Get(cmd.Context())
					if err != nil {
						return err
					}
					return writeSettingsYAML(cmd.OutOrStdout(), s)
				})
			},
		},
		newSettingsExportCmd(a),
		newSettingsImportCmd(a),
		newSettingsResetCmd(a),
	)
	return cmd
}

func newSettingsExportCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current settings to a YAML file (stdout by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSettings(cmd, func(svc settingsAdmin) error {
				s, err := svc.Get(cmd.Context())
				if err != nil {
					return err
				}
				if file == "" {
					return writeSettingsYAML(cmd.OutOrStdout(), s)
				}
				f, err := os.Create(file)
				if err != nil {
					return fmt.Errorf("create %s: %w", file, err)
				}
				if err := writeSettingsYAML(f, s); err != nil {
					_ = f.Close()
					return err
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("close %s: %w", file, err)
				}
				return writef(cmd.OutOrStdout(), "settings exported to %s\n", file)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "destination file")
	return cmd
}

func newSettingsImportCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate and store settings from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			in, err := parseSettingsYAML(raw)
			if err != nil {
				return err
			}
			return a.withSettings(cmd, func(svc settingsAdmin) error {
				saved, err := svc.Import(cmd.Context(), in, importActor)
				if err != nil {
					return err
				}
				return writef(cmd.OutOrStdout(), "imported settings for %q\n", saved.General.WorkspaceName)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML file to import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newSettingsResetCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the default workspace settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.confirm(cmd.OutOrStdout(), "This replaces the stored workspace settings with the defaults.", yes); err != nil {
				return err
			}
			return a.withSettings(cmd, func(svc settingsAdmin) error {
				if _, err := svc.RestoreDefaults(cmd.Context()); err != nil {
					return err
				}
				return writef(cmd.OutOrStdout(), "workspace settings restored to defaults\n")
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) withSettings(cmd *cobra.Command, fn func(settingsAdmin) error) error {
	svc, closeFn, err := a.openSettings(cmd.Context())
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}
	return fn(svc)
}

func writeSettingsYAML(w io.Writer, s workspace.Settings) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return enc.Close()
}

// parseSettingsYAML decodes a settings document. Unknown keys are rejected.
func parseSettingsYAML(raw []byte) (workspace.Settings, error) {
	var s workspace.Settings
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return s, errors.New("settings file is empty")
		}
		return s, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}
