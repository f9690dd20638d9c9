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
	"log/slog"
	"net/http"
	"time"

	"github.com/convertly/convertly-mcp/internal/tracing"
)

// loggingTransport wraps an http.RoundTripper to add request logging,
// User-Agent injection, and correlation-ID propagation.
type loggingTransport struct {
	base      http.RoundTripper
	userAgent string
	observer  Observer
}

func newLoggingTransport(base http.RoundTripper, userAgent string, observer Observer) *loggingTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &loggingTransport{
		base:      base,
		userAgent: userAgent,
		observer:  observer,
	}
}

// RoundTrip implements http.RoundTripper. Every attempt of a logical call
// passes through here, so each attempt carries the same correlation ID from
// the request context and produces its own log record.
func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}

	if id := tracing.FromContextOrEmpty(req.Context()); id != "" {
		req.Header.Set(tracing.HeaderCorrelationID, id.String())
	}

	resp, err := t.base.RoundTrip(req)
	duration := time.Since(start)

	logURL := sanitizeURL(req.URL)
	if err != nil {
		if t.observer != nil {
			t.observer.RequestObserved(req.Method, 0, duration)
		}
		slog.Warn("http request failed",
			"method", req.Method,
			"url", logURL,
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	if t.observer != nil {
		t.observer.RequestObserved(req.Method, resp.StatusCode, duration)
	}
	level := slog.LevelDebug
	if resp.StatusCode >= 400 {
		level = slog.LevelWarn
	}
	slog.Log(req.Context(), level, "http request",
		"method", req.Method,
		"url", logURL,
		"status", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	)

	return resp, nil
}
