package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/winborder/internal/colors"
	"github.com/1broseidon/winborder/internal/config"
	"github.com/1broseidon/winborder/internal/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol server",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		Long: `Start the MCP server on stdio. Designed to be invoked by MCP clients.

Example:
  claude mcp add winborder -- winborder mcp serve`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if res, err := opts.load(); err == nil {
				cfg = res.Config
			}
			// stdout carries the protocol, so logs go to stderr.
			logger, _, err := opts.logger(os.Stderr, cfg.LogLevel)
			if err != nil {
				return err
			}

			server := mcp.NewServer(mcp.Options{
				Resolver: colors.NewResolver(accentFor(cfg, logger), logger),
				Logger:   logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.Run(ctx)
		},
	})
	return cmd
}
