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

package server

import "golang.org/x/time/rate"

// RateLimiter bounds MCP tool usage with two token buckets: one for all
// tool calls and a tighter one for conversion submissions, which consume
// account quota.
type RateLimiter struct {
	calls       *rate.Limiter
	submissions *rate.Limiter
}

// NewRateLimiter creates a limiter allowing callsPerMinute total tool calls
// and submissionsPerMinute conversion submissions. Both buckets start full.
func NewRateLimiter(callsPerMinute, submissionsPerMinute int) *RateLimiter {
	return &RateLimiter{
		calls:       rate.NewLimiter(rate.Limit(callsPerMinute)/60, callsPerMinute),
		submissions: rate.NewLimiter(rate.Limit(submissionsPerMinute)/60, submissionsPerMinute),
	}
}

// AllowCall reports whether any tool call may proceed.
func (rl *RateLimiter) AllowCall() bool {
	return rl.calls.Allow()
}

// AllowSubmission reports whether a conversion submission may proceed.
// Callers must have already passed AllowCall.
func (rl *RateLimiter) AllowSubmission() bool {
	return rl.submissions.Allow()
}
