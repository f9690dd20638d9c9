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

package convertly

import (
	"fmt"
	"path/filepath"
	"strings"

	"os"

	"github.com/convertly/convertly-mcp/internal/formats"
	"github.com/convertly/convertly-mcp/internal/validation"
)

// FileMetadata stats a validated local path and classifies its MIME type
// from the static extension table. Purely local; no network call.
func (c *Client) FileMetadata(path string) (*FileInfo, error) {
	resolved, err := validation.ValidateFilePath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", resolved, err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(resolved)), ".")
	return &FileInfo{
		Path:       resolved,
		SizeBytes:  info.Size(),
		Extension:  ext,
		MIMEType:   formats.MIMEType(ext),
		ModifiedAt: info.ModTime(),
	}, nil
}
