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
	"net/http"
	"net/url"

	"github.com/convertly/convertly-mcp/internal/validation"
)

// Pagination bounds for ListConversions.
const (
	maxPageSize     = 100
	defaultPageSize = 10
)

// Job fetches the current snapshot of a conversion job. Identifiers that
// are not canonical UUIDs are rejected without a network call.
func (c *Client) Job(ctx context.Context, id string) (*Job, error) {
	if err := validation.ValidateJobID(id); err != nil {
		return nil, err
	}

	var job Job
	if err := c.do(ctx, http.MethodGet, "/conversions/"+id, nil, "", &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// ListConversions returns one page of the account's conversions. Page
// numbers below 1 clamp to 1; page size clamps into [1, maxPageSize] with 0
// meaning the default. Pagination is translated to the API's skip/limit.
func (c *Client) ListConversions(ctx context.Context, page, pageSize int) (*ConversionList, error) {
	if page < 1 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = defaultPageSize
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	query := url.Values{}
	query.Set("skip", fmt.Sprint((page-1)*pageSize))
	query.Set("limit", fmt.Sprint(pageSize))

	var list ConversionList
	if err := c.do(ctx, http.MethodGet, "/conversions?"+query.Encode(), nil, "", &list); err != nil {
		return nil, err
	}
	list.Page = page
	list.PageSize = pageSize
	return &list, nil
}

// Cancel deletes a conversion job. The remote API cannot delete in-progress
// jobs, so a processing job yields a structured non-error failure; delete
// problems are likewise reported in the result rather than raised.
func (c *Client) Cancel(ctx context.Context, id string) (*CancelResult, error) {
	job, err := c.Job(ctx, id)
	if err != nil {
		return nil, err
	}

	if job.Status == StatusProcessing {
		return &CancelResult{
			ID:      id,
			Success: false,
			Status:  job.Status,
			Reason:  "conversion is processing and cannot be canceled; wait for it to finish",
		}, nil
	}

	if err := c.do(ctx, http.MethodDelete, "/conversions/"+id, nil, "", nil); err != nil {
		return &CancelResult{
			ID:      id,
			Success: false,
			Status:  job.Status,
			Reason:  err.Error(),
		}, nil
	}

	return &CancelResult{ID: id, Success: true, Status: job.Status}, nil
}

// RetryConversion always fails with guidance: the adapter does not retain
// source bytes and the API has no retry endpoint, so the caller must
// resubmit the original file.
func (c *Client) RetryConversion(id string) error {
	return fmt.Errorf("conversion %s cannot be retried: source files are not retained; resubmit the original file with a new conversion", id)
}
