package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/ziadkadry99/themegen/internal/creations"
	"github.com/ziadkadry99/themegen/internal/theme"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Generator produces designs for a request.
type Generator interface {
	Generate(ctx context.Context, req theme.Request) (*theme.Generation, error)
}

// Server wraps an MCP server that lets agents generate and fetch designs.
type Server struct {
	gen      Generator
	store    *creations.Store
	provider string
	log      zerolog.Logger
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server. gen may be nil, in which case only the
// read-only tools work.
func NewServer(gen Generator, store *creations.Store, provider string, log zerolog.Logger) *Server {
	s := &Server{
		gen:      gen,
		store:    store,
		provider: provider,
		log:      log.With().Str("component", "mcp").Logger(),
	}

	s.mcp = server.NewMCPServer(
		"themegen",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(generateDesignsTool, s.handleGenerateDesigns)
	s.mcp.AddTool(listCreationsTool, s.handleListCreations)
	s.mcp.AddTool(getDesignPromptTool, s.handleGetDesignPrompt)
	s.mcp.AddTool(getDesignMarkupTool, s.handleGetDesignMarkup)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
