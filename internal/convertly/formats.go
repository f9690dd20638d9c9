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
	"net/http"
	"time"

	"github.com/convertly/convertly-mcp/internal/metrics"
)

// formatCacheTTL is how long a fetched format catalog stays fresh.
const formatCacheTTL = time.Hour

// SupportedFormats returns the category-to-formats catalog. Responses are
// cached for formatCacheTTL; force bypasses the cache and refreshes it.
func (c *Client) SupportedFormats(ctx context.Context, force bool) (*FormatCatalog, error) {
	if !force {
		if cached := c.cachedCatalog(); cached != nil {
			metrics.RecordCacheHit()
			return cached, nil
		}
	}
	metrics.RecordCacheMiss()

	var catalog FormatCatalog
	if err := c.do(ctx, http.MethodGet, "/formats", nil, "", &catalog); err != nil {
		return nil, err
	}

	c.cachedFormats = &catalog
	c.cachedAt = c.now()
	return &catalog, nil
}

// ClearFormatCache drops the cached catalog; the next call re-fetches.
func (c *Client) ClearFormatCache() {
	c.cachedFormats = nil
	c.cachedAt = time.Time{}
}

// cachedCatalog returns the cache slot's contents while still fresh, nil
// otherwise.
func (c *Client) cachedCatalog() *FormatCatalog {
	if c.cachedFormats == nil {
		return nil
	}
	if c.now().Sub(c.cachedAt) >= formatCacheTTL {
		return nil
	}
	return c.cachedFormats
}

// Usage returns the live account usage snapshot. Deliberately never cached:
// consumption counters move with every conversion.
func (c *Client) Usage(ctx context.Context) (*Usage, error) {
	var usage Usage
	if err := c.do(ctx, http.MethodGet, "/usage", nil, "", &usage); err != nil {
		return nil, err
	}
	return &usage, nil
}
