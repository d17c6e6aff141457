package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/colors"
	"github.com/1broseidon/winborder/internal/ipc"
)

const (
	ServerName    = "winborder"
	ServerVersion = "0.1.0"
)

// Daemon is the part of the IPC client the tools use.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	ListBorders() ([]border.Snapshot, error)
	Reload() (*ipc.ReloadData, error)
}

// Options configures a Server.
type Options struct {
	// Daemon defaults to an IPC client on the default socket.
	Daemon Daemon
	// Resolver backs resolve_color. Defaults to one using the desktop accent.
	Resolver *colors.Resolver
	Logger   *slog.Logger
}

// Server is the MCP server exposing border status and color resolution.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
	resolver  *colors.Resolver
	logger    *slog.Logger
}

// NewServer creates a new MCP server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	daemon := opts.Daemon
	if daemon == nil {
		daemon = ipc.NewClient()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = colors.NewResolver(nil, logger)
	}

	s := &Server{
		daemon:   daemon,
		resolver: resolver,
		logger:   logger,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server starting", "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Connect serves a single session over t.
func (s *Server) Connect(ctx context.Context, t mcpsdk.Transport) (*mcpsdk.ServerSession, error) {
	return s.mcpServer.Connect(ctx, t, nil)
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "border_status",
		Description: "Report whether the winborder daemon is running and summarize it: borders drawn, borders visible, window rules loaded, DPI, log level and config warnings. Never fails; a stopped daemon is reported with running=false.",
	}, s.handleBorderStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_borders",
		Description: "List every border the daemon is drawing with its window id, lifecycle state, focus, frame geometry, opacity and paint.",
	}, s.handleListBorders)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "reload_config",
		Description: "Ask the daemon to re-read its config file. An invalid config is rejected and the running config stays in effect.",
	}, s.handleReloadConfig)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resolve_color",
		Description: "Resolve a border color setting to the paint winborder would draw, without contacting the daemon. Invalid tokens fall back the same way the daemon does (bad hex to white, bad rgb() to black).",
	}, s.handleResolveColor)
}
