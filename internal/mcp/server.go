package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/casegallery/internal/gallery"
	"github.com/ziadkadry99/casegallery/internal/notes"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes read-only corpus tools.
type Server struct {
	corpus *gallery.Corpus
	notes  *notes.Renderer
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server over a built corpus.
func NewServer(corpus *gallery.Corpus) *Server {
	s := &Server{
		corpus: corpus,
		notes:  notes.NewRenderer(),
	}

	s.mcp = server.NewMCPServer(
		"casegallery",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listCollectionsTool, s.handleListCollections)
	s.mcp.AddTool(getCollectionTool, s.handleGetCollection)
	s.mcp.AddTool(getNoteTool, s.handleGetNote)
	s.mcp.AddTool(resolveOverlayTool, s.handleResolveOverlay)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
