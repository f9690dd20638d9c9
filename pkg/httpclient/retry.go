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

package httpclient

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// retryTransport wraps an http.RoundTripper to add bounded retries with
// exponential backoff and Retry-After cooperation.
type retryTransport struct {
	base        http.RoundTripper
	maxRetries  int
	baseBackoff time.Duration
	maxBackoff  time.Duration
	observer    Observer

	// sleep is swapped out by tests to avoid real delays.
	sleep func(ctx context.Context, d time.Duration) error
}

func newRetryTransport(base http.RoundTripper, cfg Config) *retryTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &retryTransport{
		base:        base,
		maxRetries:  cfg.RetryAttempts,
		baseBackoff: cfg.RetryBackoff,
		maxBackoff:  cfg.MaxBackoff,
		observer:    cfg.Observer,
		sleep:       sleepContext,
	}
}

// RoundTrip implements http.RoundTripper. The request is attempted at most
// maxRetries+1 times; after the budget is exhausted the last response or
// error is returned as-is.
func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var lastResp *http.Response
	var lastErr error

	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if attempt > 0 {
			delay := t.backoff(attempt - 1)
			// A server-supplied Retry-After wait is honored exactly in place
			// of the computed backoff.
			if lastResp != nil && lastResp.StatusCode == http.StatusTooManyRequests {
				if hint := retryAfterHint(lastResp); hint > 0 {
					delay = hint
				}
			}
			if err := t.sleep(req.Context(), delay); err != nil {
				return nil, err
			}
			if err := rewindBody(req); err != nil {
				return nil, err
			}
			if t.observer != nil {
				t.observer.RetryObserved()
			}
		}

		resp, err := t.base.RoundTrip(req)
		if err != nil {
			if !isRetryableError(err) {
				return nil, err
			}
			lastErr = err
			lastResp = nil
			continue
		}

		if !isTransientStatus(resp.StatusCode) {
			return resp, nil
		}

		// Keep the response for Retry-After inspection; release the
		// connection when another attempt remains.
		if attempt < t.maxRetries && resp.Body != nil {
			resp.Body.Close()
		}
		lastResp = resp
		lastErr = nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return lastResp, nil
}

// isTransientStatus reports whether a status code belongs to the fixed set
// that may succeed on retry: 408, 429, 500, 502, 503, 504.
func isTransientStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// isRetryableError reports whether a network-level error is worth retrying.
// Explicit cancellations and deadline expiry are not.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return isRetryableError(urlErr.Err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	// Remaining transport-level failures (refused, reset, DNS) are treated as
	// transient.
	return true
}

// backoff returns the exponential delay seeded at baseBackoff: attempt 0
// waits the base, attempt 1 twice that, and so on, capped at maxBackoff.
func (t *retryTransport) backoff(attempt int) time.Duration {
	delay := t.baseBackoff
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= t.maxBackoff {
			return t.maxBackoff
		}
	}
	if delay > t.maxBackoff {
		return t.maxBackoff
	}
	return delay
}

// retryAfterHint extracts a Retry-After wait from a response. Both the
// delta-seconds and HTTP-date forms are accepted. Returns 0 when absent or
// unparseable.
func retryAfterHint(resp *http.Response) time.Duration {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(header); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
	}
	return 0
}

// rewindBody restores the request body before a retry attempt.
func rewindBody(req *http.Request) error {
	if req.Body == nil || req.GetBody == nil {
		return nil
	}
	body, err := req.GetBody()
	if err != nil {
		return err
	}
	req.Body = body
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
