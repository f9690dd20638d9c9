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

package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// handleListFormats implements the list_supported_formats tool.
func (s *Server) handleListFormats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	refresh := request.GetBool("refresh", false)

	catalog, err := s.client.SupportedFormats(ctx, refresh)
	if err != nil {
		return errorResponse(fmt.Sprintf("Failed to fetch supported formats: %v", err)), nil
	}
	return jsonResponse(catalog), nil
}

// handleUsage implements the get_usage tool.
func (s *Server) handleUsage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	usage, err := s.client.Usage(ctx)
	if err != nil {
		return errorResponse(fmt.Sprintf("Failed to fetch usage: %v", err)), nil
	}
	return jsonResponse(usage), nil
}

// handleFileMetadata implements the get_file_metadata tool.
func (s *Server) handleFileMetadata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return errorResponse("Missing or invalid 'path' argument"), nil
	}

	info, err := s.client.FileMetadata(path)
	if err != nil {
		return errorResponse(fmt.Sprintf("Failed to inspect file: %v", err)), nil
	}
	return jsonResponse(info), nil
}

// handleEstimate implements the estimate_output_size tool.
func (s *Server) handleEstimate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return errorResponse("Missing or invalid 'path' argument"), nil
	}
	target, err := request.RequireString("target_format")
	if err != nil {
		return errorResponse("Missing or invalid 'target_format' argument"), nil
	}

	estimate, err := s.client.EstimateOutputSize(path, target, optionsArg(request))
	if err != nil {
		return errorResponse(fmt.Sprintf("Estimation failed: %v", err)), nil
	}
	return jsonResponse(estimate), nil
}
