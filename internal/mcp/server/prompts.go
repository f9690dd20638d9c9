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

// registerPrompts registers the guided-workflow prompts.
func (s *Server) registerPrompts() {
	s.mcpServer.AddPrompt(mcp.NewPrompt("convert-file",
		mcp.WithPromptDescription("Guide a file conversion from start to download"),
		mcp.WithArgument("path",
			mcp.ArgumentDescription("Path to the file to convert"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("target_format",
			mcp.ArgumentDescription("Desired output format"),
		),
	), s.handleConvertFilePrompt)

	s.mcpServer.AddPrompt(mcp.NewPrompt("optimize-for-size",
		mcp.WithPromptDescription("Choose conversion options that minimize output size"),
		mcp.WithArgument("path",
			mcp.ArgumentDescription("Path to the file to shrink"),
			mcp.RequiredArgument(),
		),
	), s.handleOptimizeForSizePrompt)
}

func (s *Server) handleConvertFilePrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	path := request.Params.Arguments["path"]
	if path == "" {
		return nil, fmt.Errorf("'path' argument is required")
	}
	target := request.Params.Arguments["target_format"]

	text := fmt.Sprintf(`Convert the file at %q`, path)
	if target != "" {
		text += fmt.Sprintf(" to %s", target)
	}
	text += `.

Steps:
1. Call get_file_metadata to confirm the file exists and check its size and type.
2. Call list_supported_formats to confirm the target format is available.` + "\n"
	if target == "" {
		text += "3. Ask me which output format I want, suggesting sensible targets for the file's category.\n4."
	} else {
		text += "3."
	}
	text += ` Call convert_file with the path and target format, then wait_for_conversion until it finishes.
Finally, call download_file to save the result next to the original, and report the output path and size.`

	return &mcp.GetPromptResult{
		Description: "Guided file conversion",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}

func (s *Server) handleOptimizeForSizePrompt(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	path := request.Params.Arguments["path"]
	if path == "" {
		return nil, fmt.Errorf("'path' argument is required")
	}

	text := fmt.Sprintf(`Help me shrink the file at %q as much as possible while keeping acceptable quality.

Steps:
1. Call get_file_metadata to see its size and category.
2. Read the convertly://presets resource for the recommended defaults.
3. Propose a target format and options tuned for size (for audio: lower bitrate; for video: higher crf; for images: webp with lower quality).
4. Call estimate_output_size for each candidate and compare the estimates.
5. Once I pick one, run convert_file with those options, wait for it, and download the result.`, path)

	return &mcp.GetPromptResult{
		Description: "Size-optimized conversion",
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.NewTextContent(text),
			},
		},
	}, nil
}
