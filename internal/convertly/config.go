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
	"net"
	"net/url"
	"strings"
	"time"
)

// CredentialPrefix marks an API key as belonging to the Convertly service.
// Keys without it are rejected before any network use.
const CredentialPrefix = "cvt_"

// DefaultBaseURL is the production Convertly endpoint.
const DefaultBaseURL = "https://api.convertly.com"

// Config configures a Client. The credential is carried opaquely in requests
// and never logged.
type Config struct {
	// APIKey is the pre-issued Convertly credential. Required; must start
	// with CredentialPrefix.
	APIKey string

	// BaseURL overrides the API base address. Normalized at construction:
	// trailing slashes stripped, http upgraded to https unless the host is
	// loopback. Default: DefaultBaseURL.
	BaseURL string

	// Timeout is the hard per-request timeout. Default: 30s.
	Timeout time.Duration

	// MaxRetries bounds retries beyond the initial attempt. Default: 3.
	MaxRetries int
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = 30 * time.Second
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = 3
	}
}

// validateCredential checks the API key shape without echoing the key in
// the error.
func validateCredential(key string) error {
	if key == "" {
		return fmt.Errorf("api key is required")
	}
	if !strings.HasPrefix(key, CredentialPrefix) {
		return fmt.Errorf("api key must start with %q", CredentialPrefix)
	}
	if len(key) == len(CredentialPrefix) {
		return fmt.Errorf("api key is missing its secret part")
	}
	return nil
}

// normalizeBaseURL canonicalizes the base address: well-formed absolute URL,
// no trailing slash, https enforced for non-loopback hosts.
func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid base URL %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid base URL %q: missing host", raw)
	}
	if u.Scheme == "http" && !isLoopbackHost(u.Hostname()) {
		u.Scheme = "https"
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/"), nil
}

func isLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}
