package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/dreamteam/stockme-dashboard/config"
	redisadapter "github.com/dreamteam/stockme-dashboard/internal/adapters/redis"
	"github.com/dreamteam/stockme-dashboard/internal/bootstrap"
)

type sessionAdmin interface {
	List(ctx context.Context) ([]redisadapter.StoredSession, error)
	Purge(ctx context.Context) (int64, error)
}

func (a *app) connectSessions(_ context.Context) (sessionAdmin, func(), error) {
	if a.cfg.Session.Store != config.SessionStoreRedis {
		return nil, nil, errors.New("session commands need SESSION_STORE=redis")
	}
	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{RedisConfig: a.cfg.Redis, Logger: a.logger})
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	store := redisadapter.NewSessionStoreWithPrefix(client, a.cfg.Session.KeyPrefix)
	return store, func() {
		if closeErr := client.Close(); closeErr != nil {
			a.logger.Warn("redis close failed", "error", closeErr)
		}
	}, nil
}

func newSessionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Inspect or revoke server-side sessions in Redis",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSessions(cmd, func(store sessionAdmin) error {
				sessions, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				return printSessions(cmd, sessions)
			})
		},
	}

	var yes bool
	purge := &cobra.Command{
		Use:   "purge",
		Short: "Delete every stored session, signing all users out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.confirm(cmd.OutOrStdout(), "Every signed-in user will be signed out.", yes); err != nil {
				return err
			}
			return a.withSessions(cmd, func(store sessionAdmin) error {
				n, err := store.Purge(cmd.Context())
				if err != nil {
					return err
				}
				return writef(cmd.OutOrStdout(), "purged %d sessions\n", n)
			})
		},
	}
	purge.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	cmd.AddCommand(list, purge)
	return cmd
}

func (a *app) withSessions(cmd *cobra.Command, fn func(sessionAdmin) error) error {
	store, closeFn, err := a.openSessions(cmd.Context())
	if err != nil {
		return err
	}
	if closeFn != nil {
		defer closeFn()
	}
	return fn(store)
}

func printSessions(cmd *cobra.Command, sessions []redisadapter.StoredSession) error {
	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		return writef(out, "no sessions\n")
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if err := writef(tw, "ID\tUSER\tEMAIL\tROLE\tEXPIRES\n"); err != nil {
		return err
	}
	for _, s := range sessions {
		if err := writef(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.UserID, s.Email, s.Role, s.ExpiresAt.UTC().Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return tw.Flush()
}
