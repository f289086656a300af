package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/obst/pkg/server"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API.

Routes:
  GET  /healthz
  GET  /api/v1/sample
  POST /api/v1/build
  POST /api/v1/layout
  POST /api/v1/render

The server uses the cache backend from the [cache] section of the config
file; redis or mongo let several instances share results. It shuts down
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: config [server] addr, or :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	cfg := c.serverConfig(addr)
	cfg.Runner = runner
	server.InstallHooks(c.Logger)

	srv := server.New(cfg)
	c.Logger.Debug("starting server", "cache", c.Config.Cache.Backend, "max_entries", cfg.MaxEntries)

	return srv.ListenAndServe(ctx)
}

// serverConfig maps the [server] config section to server settings. A
// non-empty addr overrides the configured one.
func (c *CLI) serverConfig(addr string) server.Config {
	s := c.Config.Server
	if addr == "" {
		addr = s.Addr
	}
	return server.Config{
		Addr:            addr,
		ReadTimeout:     s.ReadTimeout.Std(),
		WriteTimeout:    s.WriteTimeout.Std(),
		ShutdownTimeout: s.ShutdownTimeout.Std(),
		MaxBodyBytes:    s.MaxBodyBytes,
		MaxEntries:      c.Config.Build.MaxEntries,
		Logger:          c.Logger,
	}
}
