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
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/convertly/convertly-mcp/internal/formats"
	"github.com/convertly/convertly-mcp/internal/tracing"
	"github.com/convertly/convertly-mcp/internal/validation"
)

// Download fetches the converted bytes for a completed job. The download
// locator is pre-signed and time-limited, so the request carries no
// Authorization header and an already-expired locator fails without a fetch.
func (c *Client) Download(ctx context.Context, job *Job) (*DownloadResult, error) {
	if job == nil {
		return nil, fmt.Errorf("job is required")
	}

	switch job.Status {
	case StatusCompleted:
		// Downloadable.
	case StatusFailed:
		reason := job.Error
		if reason == "" {
			reason = "unknown error"
		}
		return nil, fmt.Errorf("conversion %s failed: %s", job.ID, reason)
	default:
		return nil, fmt.Errorf("conversion %s is not completed (status: %s)", job.ID, job.Status)
	}

	if job.DownloadURL == "" {
		return nil, fmt.Errorf("conversion %s has no download URL", job.ID)
	}
	if job.DownloadExpiresAt != nil && c.now().After(*job.DownloadExpiresAt) {
		return nil, &DownloadExpiredError{JobID: job.ID, ExpiredAt: *job.DownloadExpiresAt}
	}

	ctx = tracing.ToContext(ctx, tracing.NewCorrelationID())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, job.DownloadURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building download request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading conversion %s: %w", job.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.apiError(resp, tracing.FromContext(ctx))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading download body: %w", err)
	}

	return &DownloadResult{
		Data:        data,
		Filename:    downloadFilename(resp, job),
		ContentType: downloadContentType(resp, job),
	}, nil
}

// downloadFilename prefers the server-supplied Content-Disposition name,
// falling back to the original filename with the target extension.
func downloadFilename(resp *http.Response, job *Job) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if name := params["filename"]; name != "" {
				return validation.SanitizeFilename(name)
			}
		}
	}
	name := job.Filename
	if name == "" {
		name = validation.FallbackFilename
	}
	return validation.ReplaceExtension(name, job.TargetFormat)
}

func downloadContentType(resp *http.Response, job *Job) string {
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return formats.MIMEType(job.TargetFormat)
}
