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
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/convertly/convertly-mcp/internal/formats"
)

const (
	formatsResourceURI = "convertly://formats"
	presetsResourceURI = "convertly://presets"
)

// registerResources registers the read-only reference resources.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(
		formatsResourceURI,
		"Supported formats",
		mcp.WithResourceDescription("Formats the conversion service supports, grouped by category. Fetched live from the API."),
		mcp.WithMIMEType("application/json"),
	), s.handleFormatsResource)

	s.mcpServer.AddResource(mcp.NewResource(
		presetsResourceURI,
		"Recommended conversion presets",
		mcp.WithResourceDescription("Recommended default options per media category, applied automatically unless overridden."),
		mcp.WithMIMEType("application/json"),
	), s.handlePresetsResource)
}

func (s *Server) handleFormatsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	catalog, err := s.client.SupportedFormats(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("fetching supported formats: %w", err)
	}
	encoded, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      formatsResourceURI,
			MIMEType: "application/json",
			Text:     string(encoded),
		},
	}, nil
}

func (s *Server) handlePresetsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	table := map[string]formats.Options{}
	for _, category := range formats.Categories() {
		table[string(category)] = formats.PresetFor(category)
	}
	encoded, err := json.MarshalIndent(map[string]interface{}{
		"version": formats.PresetsVersion,
		"presets": table,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      presetsResourceURI,
			MIMEType: "application/json",
			Text:     string(encoded),
		},
	}, nil
}
