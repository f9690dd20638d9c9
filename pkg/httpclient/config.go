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
	"fmt"
	"time"
)

// Observer receives notifications about transport activity. Implementations
// must be safe for concurrent use. A nil Observer disables instrumentation.
type Observer interface {
	// RequestObserved is called once per attempt with the final outcome.
	// status is 0 when no response was obtained.
	RequestObserved(method string, status int, duration time.Duration)

	// RetryObserved is called before each retry attempt.
	RetryObserved()
}

// Config configures the HTTP client built by New.
type Config struct {
	// Timeout is the hard per-request timeout. An in-flight request that has
	// not produced a response within this duration is aborted.
	// Default: 30s. Must be > 0.
	Timeout time.Duration

	// RetryAttempts is the number of retries beyond the initial attempt
	// (0 disables retries). Default: 3. Must be >= 0.
	RetryAttempts int

	// RetryBackoff seeds the exponential backoff schedule: the delay before
	// retry n is RetryBackoff * 2^(n-1). Default: 1s.
	RetryBackoff time.Duration

	// MaxBackoff caps a single computed delay. Default: 30s.
	// Must be >= RetryBackoff.
	MaxBackoff time.Duration

	// UserAgent is sent on every request. Required.
	UserAgent string

	// Observer, when set, is notified about requests and retries.
	Observer Observer
}

// DefaultConfig returns a Config with the defaults used against the
// Convertly API.
func DefaultConfig() Config {
	return Config{
		Timeout:       30 * time.Second,
		RetryAttempts: 3,
		RetryBackoff:  time.Second,
		MaxBackoff:    30 * time.Second,
	}
}

// Validate reports whether the configuration is usable.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %v", c.Timeout)
	}
	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry_attempts must be >= 0, got %d", c.RetryAttempts)
	}
	if c.RetryAttempts > 0 {
		if c.RetryBackoff <= 0 {
			return fmt.Errorf("retry_backoff must be > 0 when retries are enabled, got %v", c.RetryBackoff)
		}
		if c.MaxBackoff < c.RetryBackoff {
			return fmt.Errorf("max_backoff (%v) must be >= retry_backoff (%v)", c.MaxBackoff, c.RetryBackoff)
		}
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user_agent is required")
	}
	return nil
}
