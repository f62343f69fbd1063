package cli

import (
	mcpadapter "github.com/repotriage/repotriage/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the repotriage MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start repotriage MCP server (stdio)",
		Long:  "Start the repotriage MCP server using stdio transport. This allows AI coding assistants to analyze repositories, inspect the rule catalog, and create task cards.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewServer()
			return server.ServeStdio(s)
		},
	}
}
