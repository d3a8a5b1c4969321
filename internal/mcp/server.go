// Package mcp exposes the renderer and the artifact catalog as MCP tools
// over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/folioworks/folio/internal/catalog"
	"github.com/folioworks/folio/internal/markdown"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server over the portfolio content.
type Server struct {
	catalog  *catalog.Store
	readmes  catalog.ReadmeSource
	renderer markdown.Renderer
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(store *catalog.Store, readmes catalog.ReadmeSource, renderer markdown.Renderer) *Server {
	s := &Server{
		catalog:  store,
		readmes:  readmes,
		renderer: renderer,
	}

	s.mcp = server.NewMCPServer(
		"folio",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(renderMarkdownTool, s.handleRenderMarkdown)
	s.mcp.AddTool(listArtifactsTool, s.handleListArtifacts)
	s.mcp.AddTool(getArtifactReadmeTool, s.handleGetArtifactReadme)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
