package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dreamteam/stockme-dashboard/internal/bootstrap"
	"github.com/dreamteam/stockme-dashboard/internal/migrate"
)

const defaultMigrationTimeout = 5 * time.Minute

func newMigrateCmd(a *app) *cobra.Command {
	var (
		timeout time.Duration
		status  bool
	)
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the embedded database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{DBConfig: a.cfg.Postgres, Logger: a.logger})
			if err != nil {
				return fmt.Errorf("connect db: %w", err)
			}
			defer func() {
				if closeErr := db.Close(); closeErr != nil {
					a.logger.Warn("db close failed", "error", closeErr)
				}
			}()

			if !status {
				a.logger.Info("running database migrations")
				if err := bootstrap.RunMigrations(ctx, db, a.logger); err != nil {
					return err
				}
			}

			applied, err := migrate.Status(ctx, db)
			if err != nil {
				return fmt.Errorf("migration status: %w", err)
			}
			return printMigrations(cmd, applied)
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", defaultMigrationTimeout, "overall timeout")
	cmd.Flags().BoolVar(&status, "status", false, "only report which migrations are applied")
	return cmd
}

func printMigrations(cmd *cobra.Command, ms []migrate.Migration) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	if err := writef(tw, "VERSION\tAPPLIED\n"); err != nil {
		return err
	}
	for _, m := range ms {
		if err := writef(tw, "%s\t%t\n", m.Version, m.Applied); err != nil {
			return err
		}
	}
	return tw.Flush()
}
