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
	"github.com/mark3labs/mcp-go/mcp"
)

// registerTools registers all Convertly tools with the MCP server.
func (s *Server) registerTools() {
	optionsSchema := map[string]interface{}{
		"type":        "object",
		"description": "Conversion options (e.g. bitrate, quality, crf). Merged over the recommended preset for the target format; your values win.",
	}

	// Tool: convert_file
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "convert_file",
		Description: "Convert a local file to another format. Submits the conversion and returns the job; set wait=true to block until it finishes.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the local file to convert",
				},
				"target_format": map[string]interface{}{
					"type":        "string",
					"description": "Output format (e.g. 'mp3', 'pdf', 'webp')",
				},
				"options": optionsSchema,
				"wait": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, wait for the conversion to finish before returning (default: false)",
					"default":     false,
				},
			},
			Required: []string{"path", "target_format"},
		},
	}, s.tool("convert_file", s.handleConvertFile))

	// Tool: convert_data
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "convert_data",
		Description: "Convert base64-encoded data to another format. Accepts raw base64 or a data: URL.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"data": map[string]interface{}{
					"type":        "string",
					"description": "Base64-encoded file content, optionally as a data: URL",
				},
				"filename": map[string]interface{}{
					"type":        "string",
					"description": "Filename for the payload, including its current extension",
				},
				"target_format": map[string]interface{}{
					"type":        "string",
					"description": "Output format (e.g. 'mp3', 'pdf', 'webp')",
				},
				"options": optionsSchema,
			},
			Required: []string{"data", "filename", "target_format"},
		},
	}, s.tool("convert_data", s.handleConvertData))

	// Tool: batch_convert
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "batch_convert",
		Description: "Convert several local files to the same target format. Files are submitted in order; one failure does not stop the rest.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"paths": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Paths of the local files to convert",
				},
				"target_format": map[string]interface{}{
					"type":        "string",
					"description": "Output format applied to every file",
				},
				"options": optionsSchema,
			},
			Required: []string{"paths", "target_format"},
		},
	}, s.tool("batch_convert", s.handleBatchConvert))

	// Tool: get_conversion_status
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_conversion_status",
		Description: "Get the current status of a conversion job.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"job_id": map[string]interface{}{
					"type":        "string",
					"description": "The conversion job ID (UUID)",
				},
			},
			Required: []string{"job_id"},
		},
	}, s.tool("get_conversion_status", s.handleConversionStatus))

	// Tool: wait_for_conversion
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "wait_for_conversion",
		Description: "Wait for a conversion job to finish, polling until it completes, fails, or the timeout elapses.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"job_id": map[string]interface{}{
					"type":        "string",
					"description": "The conversion job ID (UUID)",
				},
				"timeout_seconds": map[string]interface{}{
					"type":        "number",
					"description": "Maximum seconds to wait (default: 300)",
				},
				"interval_seconds": map[string]interface{}{
					"type":        "number",
					"description": "Seconds between polls (default: 2)",
				},
			},
			Required: []string{"job_id"},
		},
	}, s.tool("wait_for_conversion", s.handleWaitForConversion))

	// Tool: download_file
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "download_file",
		Description: "Download the output of a completed conversion to a local path.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"job_id": map[string]interface{}{
					"type":        "string",
					"description": "The conversion job ID (UUID)",
				},
				"save_path": map[string]interface{}{
					"type":        "string",
					"description": "Where to save the file. A directory uses the converted filename; a file path is used as-is.",
				},
			},
			Required: []string{"job_id", "save_path"},
		},
	}, s.tool("download_file", s.handleDownloadFile))

	// Tool: list_conversions
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_conversions",
		Description: "List the account's conversion jobs, newest first, one page at a time.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"page": map[string]interface{}{
					"type":        "number",
					"description": "Page number, starting at 1 (default: 1)",
				},
				"page_size": map[string]interface{}{
					"type":        "number",
					"description": "Jobs per page, 1-100 (default: 10)",
				},
			},
		},
	}, s.tool("list_conversions", s.handleListConversions))

	// Tool: cancel_conversion
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "cancel_conversion",
		Description: "Cancel a conversion job. Jobs already processing cannot be canceled; the result says whether cancellation succeeded.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"job_id": map[string]interface{}{
					"type":        "string",
					"description": "The conversion job ID (UUID)",
				},
			},
			Required: []string{"job_id"},
		},
	}, s.tool("cancel_conversion", s.handleCancelConversion))

	// Tool: retry_conversion
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "retry_conversion",
		Description: "Retry a failed conversion. The service does not retain source files, so this explains how to resubmit instead.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"job_id": map[string]interface{}{
					"type":        "string",
					"description": "The conversion job ID (UUID)",
				},
			},
			Required: []string{"job_id"},
		},
	}, s.tool("retry_conversion", s.handleRetryConversion))

	// Tool: list_supported_formats
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "list_supported_formats",
		Description: "List the formats the conversion service supports, grouped by category.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"refresh": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, bypass the cached catalog (default: false)",
					"default":     false,
				},
			},
		},
	}, s.tool("list_supported_formats", s.handleListFormats))

	// Tool: get_usage
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_usage",
		Description: "Get current account usage and subscription limits.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.tool("get_usage", s.handleUsage))

	// Tool: get_file_metadata
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "get_file_metadata",
		Description: "Inspect a local file: size, extension, MIME type, modification time. No data leaves the machine.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the local file",
				},
			},
			Required: []string{"path"},
		},
	}, s.tool("get_file_metadata", s.handleFileMetadata))

	// Tool: estimate_output_size
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "estimate_output_size",
		Description: "Estimate the output size of converting a local file, with a confidence level. A heuristic, not a guarantee.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the local file",
				},
				"target_format": map[string]interface{}{
					"type":        "string",
					"description": "Output format to estimate for",
				},
				"options": optionsSchema,
			},
			Required: []string{"path", "target_format"},
		},
	}, s.tool("estimate_output_size", s.handleEstimate))
}
