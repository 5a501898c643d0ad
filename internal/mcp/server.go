// Package mcp exposes the legal corpus to MCP clients over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/library"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/search"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes corpus query tools.
type Server struct {
	lib    *library.Library
	scorer *search.Scorer
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server over the given corpus.
func NewServer(lib *library.Library, scorer *search.Scorer) *Server {
	s := &Server{
		lib:    lib,
		scorer: scorer,
	}

	s.mcp = server.NewMCPServer(
		"matrizlegal",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchLegislationTool, s.handleSearchLegislation)
	s.mcp.AddTool(getDocumentTool, s.handleGetDocument)
	s.mcp.AddTool(getArticleTool, s.handleGetArticle)
	s.mcp.AddTool(getCorpusStatsTool, s.handleGetCorpusStats)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
