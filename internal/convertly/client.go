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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/convertly/convertly-mcp/internal/log"
	"github.com/convertly/convertly-mcp/internal/metrics"
	"github.com/convertly/convertly-mcp/internal/tracing"
	"github.com/convertly/convertly-mcp/pkg/httpclient"
)

// clientVersion is reported in the User-Agent of every request.
const clientVersion = "1.0.0"

const userAgent = "convertly-mcp/" + clientVersion

// errorBodyLimit bounds how much of an error response body is read when
// looking for a detail message.
const errorBodyLimit = 64 << 10

// Client is the typed Convertly API client. Construct with New.
type Client struct {
	cfg     Config
	baseURL string
	http    *http.Client
	logger  *slog.Logger

	// Single-slot supported-formats cache; see package doc for the
	// synchronization story.
	cachedFormats *FormatCatalog
	cachedAt      time.Time

	// Clock and sleep are injectable so polling tests can simulate elapsed
	// time without real delays.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New validates the configuration and constructs a Client. Credential and
// base-address problems fail here, before any network use.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	cfg.applyDefaults()

	if err := validateCredential(cfg.APIKey); err != nil {
		return nil, err
	}

	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.Timeout
	httpCfg.RetryAttempts = cfg.MaxRetries
	httpCfg.UserAgent = userAgent
	httpCfg.Observer = metrics.TransportObserver{}

	httpClient, err := httpclient.New(httpCfg)
	if err != nil {
		return nil, fmt.Errorf("building http client: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}
	logger = log.WithComponent(logger, "convertly")
	logger.Debug("client configured",
		"base_url", baseURL,
		"api_key", log.SanitizeAPIKey(cfg.APIKey),
		"timeout", cfg.Timeout,
		"max_retries", cfg.MaxRetries,
	)

	return &Client{
		cfg:     cfg,
		baseURL: baseURL,
		http:    httpClient,
		logger:  logger,
		now:     time.Now,
		sleep:   sleepContext,
	}, nil
}

// BaseURL returns the normalized base address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) apiURL(path string) string {
	return c.baseURL + "/api" + path
}

// do performs one logical API call: a fresh correlation ID is minted for
// the call and rides on every retry attempt; the JSON response body is
// decoded into out when out is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	corrID := tracing.NewCorrelationID()
	ctx = tracing.ToContext(ctx, corrID)

	req, err := http.NewRequestWithContext(ctx, method, c.apiURL(path), body)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.apiError(resp, corrID)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

// apiError shapes a non-2xx response into a typed error carrying the
// server's detail message (when parseable) and the call's correlation ID.
func (c *Client) apiError(resp *http.Response, corrID tracing.CorrelationID) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))

	if resp.StatusCode == http.StatusTooManyRequests {
		return &RateLimitError{
			RetryAfter:    retryAfterSeconds(resp),
			CorrelationID: corrID.String(),
		}
	}

	detail := ""
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		detail = payload.Detail
	}
	if detail == "" {
		detail = http.StatusText(resp.StatusCode)
	}

	return &APIError{
		StatusCode:    resp.StatusCode,
		Detail:        detail,
		CorrelationID: corrID.String(),
	}
}

// retryAfterSeconds reads the delta-seconds form of Retry-After, the only
// form the Convertly API emits.
func retryAfterSeconds(resp *http.Response) time.Duration {
	if seconds, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 0
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
