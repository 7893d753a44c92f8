package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/dreamteam/stockme-dashboard/internal/backend"
	"github.com/dreamteam/stockme-dashboard/internal/bootstrap"
)

const pingPath = "/api/v1/products"

func newBackendCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backend",
		Short: "Check the inventory backend API",
	}
	var timeout time.Duration
	ping := &cobra.Command{
		Use:   "ping",
		Short: "GET " + pingPath + " through the API client and report the outcome",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg.Backend
			if timeout > 0 {
				cfg.Timeout = timeout
			}
			client := bootstrap.NewBackendClient(cfg, nil, a.logger)
			return pingBackend(cmd, client)
		},
	}
	ping.Flags().DurationVar(&timeout, "timeout", 0, "override API_TIMEOUT for this call")
	cmd.AddCommand(ping)
	return cmd
}

func pingBackend(cmd *cobra.Command, client *backend.Client) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	start := time.Now()
	var env backend.ListEnvelope[json.RawMessage]
	err := client.Do(ctx, pingPath, backend.Options{Method: http.MethodGet}, &env)
	elapsed := time.Since(start).Round(time.Millisecond)

	var apiErr *backend.APIError
	switch {
	case err == nil:
		return writef(out, "%s: ok (%d products) in %s\n", client.BaseURL(), len(env.Data), elapsed)
	case errors.As(err, &apiErr):
		if werr := writef(out, "%s: HTTP %d %s in %s\n", client.BaseURL(), apiErr.Status, apiErr.Message, elapsed); werr != nil {
			return werr
		}
		return fmt.Errorf("backend ping: %w", err)
	default:
		return fmt.Errorf("backend ping: %w", err)
	}
}
