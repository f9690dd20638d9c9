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
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/convertly/convertly-mcp/internal/formats"
	"github.com/convertly/convertly-mcp/internal/validation"
)

// maxPayloadBytes is the absolute submission ceiling. Tier-specific smaller
// limits are enforced remotely.
const maxPayloadBytes = int64(10) << 30

// Convert submits a local file for conversion. The path and target format
// are validated before any bytes leave the machine.
func (c *Client) Convert(ctx context.Context, path, target string, opts formats.Options) (*Job, error) {
	resolved, err := validation.ValidateFilePath(path)
	if err != nil {
		return nil, err
	}

	target = formats.Normalize(target)
	catalog, err := c.SupportedFormats(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("checking target format: %w", err)
	}
	if !catalog.Supports(target) {
		return nil, fmt.Errorf("unsupported target format %q", target)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", resolved, err)
	}

	return c.ConvertData(ctx, data, filepath.Base(resolved), target, opts)
}

// ConvertData submits an in-memory payload for conversion. The effective
// options are the target category's preset overlaid with the caller's
// overrides.
func (c *Client) ConvertData(ctx context.Context, data []byte, filename, target string, opts formats.Options) (*Job, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("payload is empty")
	}
	if int64(len(data)) > maxPayloadBytes {
		return nil, fmt.Errorf("payload of %d bytes exceeds the %d byte ceiling", len(data), maxPayloadBytes)
	}
	target = formats.Normalize(target)
	if target == "" {
		return nil, fmt.Errorf("target format is required")
	}
	filename = validation.SanitizeFilename(filename)

	merged := formats.OptionsForTarget(target, opts)

	body, contentType, err := buildSubmission(data, filename, target, merged)
	if err != nil {
		return nil, err
	}

	var job Job
	if err := c.do(ctx, http.MethodPost, "/conversions", body, contentType, &job); err != nil {
		return nil, err
	}

	c.logger.Info("conversion submitted",
		"job_id", job.ID,
		"filename", filename,
		"target", target,
		"size_bytes", len(data),
	)
	return &job, nil
}

// ConvertBatch submits each path in order, collecting per-item outcomes.
// One file's failure never aborts the rest of the batch.
func (c *Client) ConvertBatch(ctx context.Context, paths []string, target string, opts formats.Options) []BatchItem {
	items := make([]BatchItem, 0, len(paths))
	for _, path := range paths {
		item := BatchItem{Path: path}
		job, err := c.Convert(ctx, path, target, opts)
		if err != nil {
			item.Error = err.Error()
		} else {
			item.Job = job
		}
		items = append(items, item)
	}
	return items
}

// DecodePayload turns a base64 payload, optionally wrapped in a data URL,
// into raw bytes.
func DecodePayload(encoded string) ([]byte, error) {
	if strings.HasPrefix(encoded, "data:") {
		comma := strings.Index(encoded, ",")
		if comma < 0 {
			return nil, fmt.Errorf("malformed data URL: missing comma")
		}
		encoded = encoded[comma+1:]
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decoding base64 payload: %w", err)
	}
	return data, nil
}

// buildSubmission assembles the multipart form for POST /api/conversions:
// the file part, the output_format field, and a JSON options field when any
// options are set.
func buildSubmission(data []byte, filename, target string, opts formats.Options) (*bytes.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("building multipart form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("writing file part: %w", err)
	}

	if err := w.WriteField("output_format", target); err != nil {
		return nil, "", fmt.Errorf("writing output_format field: %w", err)
	}

	if len(opts) > 0 {
		encoded, err := json.Marshal(opts)
		if err != nil {
			return nil, "", fmt.Errorf("encoding options: %w", err)
		}
		if err := w.WriteField("options", string(encoded)); err != nil {
			return nil, "", fmt.Errorf("writing options field: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart form: %w", err)
	}

	// bytes.Reader gives net/http a GetBody, so retried submissions replay
	// the form.
	return bytes.NewReader(buf.Bytes()), w.FormDataContentType(), nil
}
