// Package mcp exposes config generation, code modification, validation, and
// library queries as MCP tools over stdio.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/propsmith/propsmith/pkg/generator"
	"github.com/propsmith/propsmith/pkg/library"
	"github.com/propsmith/propsmith/pkg/modifier"
	"github.com/propsmith/propsmith/pkg/validator"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server, exposing generation, modification,
// validation, and library query tools.
type Server struct {
	mcpServer *server.MCPServer

	gen       *generator.Cache
	modifier  *modifier.Modifier
	validator *validator.Validator
	query     *library.QueryService // may be nil when no library is loaded

	logger *slog.Logger
}

// NewServer creates an MCP server. The query service is optional; library
// tools report an error when it is absent.
func NewServer(gen *generator.Cache, mod *modifier.Modifier, val *validator.Validator, query *library.QueryService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		gen:       gen,
		modifier:  mod,
		validator: val,
		query:     query,
		logger:    logger,
	}

	s.mcpServer = server.NewMCPServer(
		"propsmith",
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: generateConfigTool(), Handler: s.handleGenerateConfig},
		server.ServerTool{Tool: applyClassTool(), Handler: s.handleApplyClass},
		server.ServerTool{Tool: applyAttributeTool(), Handler: s.handleApplyAttribute},
		server.ServerTool{Tool: applyContentTool(), Handler: s.handleApplyContent},
		server.ServerTool{Tool: applyPropertyTool(), Handler: s.handleApplyProperty},
		server.ServerTool{Tool: validateConfigTool(), Handler: s.handleValidateConfig},
		server.ServerTool{Tool: listComponentsTool(), Handler: s.handleListComponents},
		server.ServerTool{Tool: searchComponentsTool(), Handler: s.handleSearchComponents},
		server.ServerTool{Tool: getComponentTool(), Handler: s.handleGetComponent},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
