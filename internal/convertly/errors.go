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
	"time"
)

// APIError is a non-2xx response from the Convertly API, surfaced after the
// retry budget (for transient statuses) is spent. Detail is the server's
// human-readable message when the body carried parseable JSON.
type APIError struct {
	StatusCode    int
	Detail        string
	CorrelationID string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("convertly api error (status %d)", e.StatusCode)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.CorrelationID != "" {
		msg += " [correlation ID: " + e.CorrelationID + "]"
	}
	return msg
}

// RateLimitError reports an exhausted retry budget against a rate-limited
// endpoint, with the server's wait hint when one was supplied.
type RateLimitError struct {
	RetryAfter    time.Duration
	CorrelationID string
}

func (e *RateLimitError) Error() string {
	msg := "convertly api rate limit exceeded"
	if e.RetryAfter > 0 {
		msg += fmt.Sprintf(": retry after %s", e.RetryAfter)
	}
	if e.CorrelationID != "" {
		msg += " [correlation ID: " + e.CorrelationID + "]"
	}
	return msg
}

// DownloadExpiredError means the job completed but its download locator's
// expiry instant has passed; no fetch was attempted.
type DownloadExpiredError struct {
	JobID     string
	ExpiredAt time.Time
}

func (e *DownloadExpiredError) Error() string {
	return fmt.Sprintf("download for conversion %s expired at %s; resubmit the conversion", e.JobID, e.ExpiredAt.Format(time.RFC3339))
}

// WaitTimeoutError means polling gave up before the job reached a terminal
// state.
type WaitTimeoutError struct {
	JobID      string
	LastStatus JobStatus
	Elapsed    time.Duration
}

func (e *WaitTimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for conversion %s (last status: %s)", e.Elapsed.Round(time.Millisecond), e.JobID, e.LastStatus)
}
