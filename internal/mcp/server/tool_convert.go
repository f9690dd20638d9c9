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

	"github.com/convertly/convertly-mcp/internal/convertly"
	"github.com/convertly/convertly-mcp/internal/formats"
)

// optionsArg extracts the optional conversion options object.
func optionsArg(request mcp.CallToolRequest) formats.Options {
	args := request.GetArguments()
	raw, ok := args["options"].(map[string]interface{})
	if !ok {
		return nil
	}
	return formats.Options(raw)
}

// handleConvertFile implements the convert_file tool.
func (s *Server) handleConvertFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return errorResponse("Missing or invalid 'path' argument"), nil
	}
	target, err := request.RequireString("target_format")
	if err != nil {
		return errorResponse("Missing or invalid 'target_format' argument"), nil
	}

	if !s.limiter.AllowSubmission() {
		return errorResponse("Submission rate limit exceeded. Please try again later."), nil
	}

	job, err := s.client.Convert(ctx, path, target, optionsArg(request))
	if err != nil {
		return errorResponse(fmt.Sprintf("Conversion failed: %v", err)), nil
	}

	if request.GetBool("wait", false) {
		finished, err := s.client.WaitForConversion(ctx, job.ID, convertly.PollOptions{})
		if err != nil {
			return errorResponse(fmt.Sprintf("Conversion %s submitted but waiting failed: %v", job.ID, err)), nil
		}
		job = finished
	}

	return jsonResponse(job), nil
}

// handleConvertData implements the convert_data tool.
func (s *Server) handleConvertData(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	encoded, err := request.RequireString("data")
	if err != nil {
		return errorResponse("Missing or invalid 'data' argument"), nil
	}
	filename, err := request.RequireString("filename")
	if err != nil {
		return errorResponse("Missing or invalid 'filename' argument"), nil
	}
	target, err := request.RequireString("target_format")
	if err != nil {
		return errorResponse("Missing or invalid 'target_format' argument"), nil
	}

	data, err := convertly.DecodePayload(encoded)
	if err != nil {
		return errorResponse(fmt.Sprintf("Invalid payload: %v", err)), nil
	}

	if !s.limiter.AllowSubmission() {
		return errorResponse("Submission rate limit exceeded. Please try again later."), nil
	}

	job, err := s.client.ConvertData(ctx, data, filename, target, optionsArg(request))
	if err != nil {
		return errorResponse(fmt.Sprintf("Conversion failed: %v", err)), nil
	}
	return jsonResponse(job), nil
}

// handleBatchConvert implements the batch_convert tool.
func (s *Server) handleBatchConvert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	target, err := request.RequireString("target_format")
	if err != nil {
		return errorResponse("Missing or invalid 'target_format' argument"), nil
	}

	rawPaths, ok := request.GetArguments()["paths"].([]interface{})
	if !ok || len(rawPaths) == 0 {
		return errorResponse("Missing or invalid 'paths' argument"), nil
	}
	paths := make([]string, 0, len(rawPaths))
	for _, raw := range rawPaths {
		path, ok := raw.(string)
		if !ok {
			return errorResponse("Every entry in 'paths' must be a string"), nil
		}
		paths = append(paths, path)
	}

	// The whole batch consumes a single submission token; per-file quota is
	// the server's to enforce.
	if !s.limiter.AllowSubmission() {
		return errorResponse("Submission rate limit exceeded. Please try again later."), nil
	}

	items := s.client.ConvertBatch(ctx, paths, target, optionsArg(request))

	succeeded := 0
	for _, item := range items {
		if item.Error == "" {
			succeeded++
		}
	}
	return jsonResponse(map[string]interface{}{
		"submitted": succeeded,
		"failed":    len(items) - succeeded,
		"items":     items,
	}), nil
}
