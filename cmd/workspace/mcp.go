package main

import (
	"github.com/spf13/cobra"

	"github.com/1broseidon/workspace-launcher/internal/mcp"
)

func (a *app) newMCPCmd() *cobra.Command {
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Model Context Protocol integration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (stdio transport)",
		Long: `Start the MCP server on stdio. Designed to be invoked by MCP clients.

Tools: list_templates, list_monitors, resolve_position, launch_template.

Example:
  <client> mcp add workspace -- workspace mcp serve`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usageErrorf("mcp serve takes no arguments")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// Logs must stay off stdout, which carries the protocol.
			server := mcp.NewServer(a.launcher(), a.logger)
			return server.Run(cmd.Context())
		},
	}

	mcpCmd.AddCommand(serve)
	return mcpCmd
}
