// Command stockme-admin is the operator CLI for the StockMe dashboard.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dreamteam/stockme-dashboard/config"
	"github.com/dreamteam/stockme-dashboard/internal/bootstrap"
)

var errAborted = errors.New("aborted by user")

// app carries what every command needs. The open* hooks are replaced in tests.
type app struct {
	logger *slog.Logger
	cfg    config.AppConfig
	loaded bool
	stdin  io.Reader

	openSettings func(ctx context.Context) (settingsAdmin, func(), error)
	openSessions func(ctx context.Context) (sessionAdmin, func(), error)
}

func newApp() *app {
	a := &app{
		logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})),
		stdin:  os.Stdin,
	}
	a.openSettings = a.connectSettings
	a.openSessions = a.connectSessions
	return a
}

func main() {
	if err := newRootCmd(newApp()).Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1) //nolint:forbidigo // CLI must propagate command execution failure to callers
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "stockme-admin",
		Short:         "Operator tools for the StockMe dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}
	root.AddCommand(
		newMigrateCmd(a),
		newSettingsCmd(a),
		newSessionsCmd(a),
		newBackendCmd(a),
		newRoutesCmd(),
	)
	return root
}

// load reads configuration once. Tests preload cfg and skip it.
func (a *app) load() error {
	if a.loaded {
		return nil
	}
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.loaded = true
	a.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Observability.SlogLevel()}))
	return nil
}

// confirm asks on out and reads the answer from a.stdin. yes skips the prompt.
func (a *app) confirm(out io.Writer, prompt string, yes bool) error {
	if yes {
		return nil
	}
	if err := writef(out, "%s Continue? [y/N]: ", prompt); err != nil {
		return fmt.Errorf("print confirmation prompt: %w", err)
	}
	resp, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(resp)) {
	case "y", "yes":
		return nil
	default:
		return errAborted
	}
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
