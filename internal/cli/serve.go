package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wayfare/wayfare/internal/server"
)

// serveCommand creates the serve command for running the HTTP editor API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP editor API",
		Long: `Run the HTTP editor API.

The server exposes editor sessions over REST: create a session from a trip,
mutate its day graphs node by node, undo and redo, and finally apply the
result into the schedule store. Session and schedule backends come from the
config file (memory by default; redis and mongo for multi-instance setups).

The server runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default: from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	sessions, err := newSessionStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize session store: %w", err)
	}
	defer sessions.Close()

	schedules, err := newScheduleStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize schedule store: %w", err)
	}
	defer schedules.Close(ctx)

	c.Logger.Info("starting server",
		"addr", addr,
		"sessions", cfg.Session.Backend,
		"schedules", cfg.Store.Backend,
	)

	srv := server.New(sessions, schedules, c.Logger,
		server.WithSessionTTL(cfg.SessionTTL()),
		server.WithValidateOptions(cfg.ValidateOptions()),
		server.WithLayoutOptions(cfg.LayoutOptions()),
	)
	return srv.ListenAndServe(ctx, addr)
}
