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
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/convertly/convertly-mcp/internal/convertly"
)

// handleConversionStatus implements the get_conversion_status tool.
func (s *Server) handleConversionStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := request.RequireString("job_id")
	if err != nil {
		return errorResponse("Missing or invalid 'job_id' argument"), nil
	}

	job, err := s.client.Job(ctx, jobID)
	if err != nil {
		return errorResponse(fmt.Sprintf("Failed to fetch conversion: %v", err)), nil
	}
	return jsonResponse(job), nil
}

// handleWaitForConversion implements the wait_for_conversion tool.
func (s *Server) handleWaitForConversion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := request.RequireString("job_id")
	if err != nil {
		return errorResponse("Missing or invalid 'job_id' argument"), nil
	}

	opts := convertly.PollOptions{}
	if secs := request.GetFloat("timeout_seconds", 0); secs > 0 {
		opts.Timeout = time.Duration(secs * float64(time.Second))
	}
	if secs := request.GetFloat("interval_seconds", 0); secs > 0 {
		opts.Interval = time.Duration(secs * float64(time.Second))
	}

	job, err := s.client.WaitForConversion(ctx, jobID, opts)
	if err != nil {
		return errorResponse(fmt.Sprintf("Waiting for conversion failed: %v", err)), nil
	}
	return jsonResponse(job), nil
}

// handleListConversions implements the list_conversions tool.
func (s *Server) handleListConversions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page := request.GetInt("page", 1)
	pageSize := request.GetInt("page_size", 0)

	list, err := s.client.ListConversions(ctx, page, pageSize)
	if err != nil {
		return errorResponse(fmt.Sprintf("Failed to list conversions: %v", err)), nil
	}
	return jsonResponse(list), nil
}

// handleCancelConversion implements the cancel_conversion tool.
func (s *Server) handleCancelConversion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := request.RequireString("job_id")
	if err != nil {
		return errorResponse("Missing or invalid 'job_id' argument"), nil
	}

	result, err := s.client.Cancel(ctx, jobID)
	if err != nil {
		return errorResponse(fmt.Sprintf("Failed to cancel conversion: %v", err)), nil
	}
	return jsonResponse(result), nil
}

// handleRetryConversion implements the retry_conversion tool.
func (s *Server) handleRetryConversion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := request.RequireString("job_id")
	if err != nil {
		return errorResponse("Missing or invalid 'job_id' argument"), nil
	}

	// Always fails with resubmission guidance.
	return errorResponse(s.client.RetryConversion(jobID).Error()), nil
}
