package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewArmshiftMCPServer creates a new MCP server with the armshift tools and
// resources registered. The projectPath is the root directory of the project
// to migrate.
func NewArmshiftMCPServer(projectPath string) *server.MCPServer {
	s := server.NewMCPServer(
		"armshift",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath)
	registerResources(s, projectPath)

	return s
}
