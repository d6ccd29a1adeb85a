package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/workspace-launcher/internal/workspace"
)

const (
	ServerName    = "workspace-launcher"
	ServerVersion = "0.1.0"
)

// Server exposes templates, monitors and launching over MCP.
type Server struct {
	mcpServer *mcpsdk.Server
	launcher  *workspace.Launcher
	logger    *slog.Logger
}

// NewServer creates an MCP server backed by l.
func NewServer(l *workspace.Launcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{launcher: l, logger: logger}
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
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_templates",
		Description: "List workspace templates in the templates directory with their description and window count.",
	}, s.handleListTemplates)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List connected monitors with geometry. The primary monitor can be referenced as 'primary' in templates.",
	}, s.handleListMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resolve_position",
		Description: "Resolve a position string against a monitor and return the absolute pixel rectangle a window would occupy.",
	}, s.handleResolvePosition)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "launch_template",
		Description: "Launch every window of a template and place it. Returns a per-window report; individual window failures do not fail the call.",
	}, s.handleLaunchTemplate)
}
