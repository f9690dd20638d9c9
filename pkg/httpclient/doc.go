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

// Package httpclient builds the HTTP client used for every outbound call to
// the Convertly API.
//
// The factory composes two transport layers around a pooled *http.Transport:
//   - A logging transport that injects the User-Agent header, propagates the
//     X-Correlation-ID header from the request context, and emits structured
//     slog records with sanitized URLs.
//   - A retry transport that retries transient failures (408, 429, 5xx, and
//     network errors that are not cancellations) with exponential backoff.
//
// # Retry behavior
//
// The delay before retry attempt n is RetryBackoff * 2^(n-1), capped at
// MaxBackoff. A 429 response carrying a Retry-After header overrides the
// computed delay: the server-supplied value is honored exactly. Once the
// retry budget is exhausted the last response (or last error) is returned to
// the caller; turning that into a typed error is the API client's job.
//
// Request bodies are replayed between attempts through req.GetBody, so POSTs
// built with bytes.Reader payloads retry safely.
//
// # Security
//
// Sensitive query parameters are redacted before logging and Authorization
// headers are never logged. TLS 1.2 is the floor.
package httpclient
