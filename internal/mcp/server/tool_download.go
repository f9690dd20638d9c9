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
	"os"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/convertly/convertly-mcp/internal/validation"
)

// handleDownloadFile implements the download_file tool: fetch the job,
// download its output, and write it to a validated local path.
func (s *Server) handleDownloadFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := request.RequireString("job_id")
	if err != nil {
		return errorResponse("Missing or invalid 'job_id' argument"), nil
	}
	savePath, err := request.RequireString("save_path")
	if err != nil {
		return errorResponse("Missing or invalid 'save_path' argument"), nil
	}

	job, err := s.client.Job(ctx, jobID)
	if err != nil {
		return errorResponse(fmt.Sprintf("Failed to fetch conversion: %v", err)), nil
	}

	result, err := s.client.Download(ctx, job)
	if err != nil {
		return errorResponse(fmt.Sprintf("Download failed: %v", err)), nil
	}

	target, err := validation.ValidateSavePath(savePath, result.Filename)
	if err != nil {
		return errorResponse(fmt.Sprintf("Invalid save path: %v", err)), nil
	}

	if err := os.WriteFile(target, result.Data, 0o644); err != nil {
		return errorResponse(fmt.Sprintf("Failed to write %s: %v", target, err)), nil
	}

	s.logger.Info("conversion downloaded",
		"job_id", jobID,
		"path", target,
		"bytes", len(result.Data),
	)
	return jsonResponse(map[string]interface{}{
		"path":          target,
		"bytes_written": len(result.Data),
		"content_type":  result.ContentType,
	}), nil
}
