package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new MCP server with all repotriage tools and resources
// registered. Credentials are read from the environment when a tool runs, so
// the server starts even when no tokens are configured.
func NewServer() *server.MCPServer {
	s := server.NewMCPServer(
		"repotriage",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s)
	registerResources(s)

	return s
}
