// Copyright 2026 Convertly MCP Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package server implements the MCP server that exposes Convertly file
// conversion as tools, resources, and prompts over stdio.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/convertly/convertly-mcp/internal/convertly"
	"github.com/convertly/convertly-mcp/internal/metrics"
)

// Rate limits applied per server instance. Submissions are scarcer than
// reads because each one consumes account quota.
const (
	defaultCallsPerMinute       = 100
	defaultSubmissionsPerMinute = 10
)

// Server wraps the MCP server and exposes Convertly tools.
type Server struct {
	mcpServer *server.MCPServer
	client    *convertly.Client
	limiter   *RateLimiter
	logger    *slog.Logger
	name      string
	version   string
}

// Config configures the MCP server.
type Config struct {
	// Name is the server name advertised to clients (default: "convertly").
	Name string

	// Version is the adapter version (default: "dev").
	Version string

	// Client performs the Convertly API calls. Required.
	Client *convertly.Client

	// Logger receives server logs. Must write to stderr or a file; stdout
	// carries the MCP stdio protocol. Default: text handler on stderr.
	Logger *slog.Logger
}

// NewServer creates an MCP server with all tools, resources, and prompts
// registered.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("convertly client is required")
	}
	if cfg.Name == "" {
		cfg.Name = "convertly"
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	mcpServer := server.NewMCPServer(cfg.Name, cfg.Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, true),
		server.WithPromptCapabilities(true),
	)

	s := &Server{
		mcpServer: mcpServer,
		client:    cfg.Client,
		limiter:   NewRateLimiter(defaultCallsPerMinute, defaultSubmissionsPerMinute),
		logger:    cfg.Logger,
		name:      cfg.Name,
		version:   cfg.Version,
	}

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s, nil
}

// Run serves the MCP protocol over stdio until the transport closes.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting convertly MCP server", slog.String("version", s.version))
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("mcp server error: %w", err)
	}
	return nil
}

// tool wraps a handler with the shared rate limit check and per-tool call
// metrics. Handler failures surface as isError results, never as protocol
// errors or panics.
func (s *Server) tool(name string, handler server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if !s.limiter.AllowCall() {
			metrics.RecordToolCall(name, true)
			return errorResponse("Rate limit exceeded. Please try again later."), nil
		}

		result, err := handler(ctx, request)
		failed := err != nil || (result != nil && result.IsError)
		metrics.RecordToolCall(name, failed)
		if failed {
			s.logger.Warn("tool call failed", slog.String("tool", name))
		}
		return result, err
	}
}

// Helper to create an error response.
func errorResponse(message string) *mcp.CallToolResult {
	return mcp.NewToolResultError(message)
}

// Helper to create a plain-text success response.
func textResponse(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// jsonResponse encodes v as indented JSON in a text response.
func jsonResponse(v any) *mcp.CallToolResult {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResponse(fmt.Sprintf("Failed to encode result: %v", err))
	}
	return textResponse(string(encoded))
}
