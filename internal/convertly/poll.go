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
	"time"

	"github.com/convertly/convertly-mcp/internal/validation"
)

// Polling defaults for WaitForConversion.
const (
	DefaultPollInterval = 2 * time.Second
	DefaultPollTimeout  = 5 * time.Minute
)

// PollOptions controls WaitForConversion. Zero values mean the defaults.
type PollOptions struct {
	Interval time.Duration
	Timeout  time.Duration
}

func (o PollOptions) withDefaults() PollOptions {
	if o.Interval <= 0 {
		o.Interval = DefaultPollInterval
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultPollTimeout
	}
	return o
}

// WaitForConversion polls a job at a fixed interval until it reaches a
// terminal status or the wall-clock timeout elapses. The timeout is checked
// after each fetch, so a job that completes on the final poll still returns
// successfully. The returned job is the last observed snapshot; on timeout a
// WaitTimeoutError carries the last status seen.
func (c *Client) WaitForConversion(ctx context.Context, id string, opts PollOptions) (*Job, error) {
	if err := validation.ValidateJobID(id); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	start := c.now()
	for {
		job, err := c.Job(ctx, id)
		if err != nil {
			return nil, err
		}
		if job.Status.Terminal() {
			return job, nil
		}

		elapsed := c.now().Sub(start)
		if elapsed >= opts.Timeout {
			return job, &WaitTimeoutError{
				JobID:      id,
				LastStatus: job.Status,
				Elapsed:    elapsed,
			}
		}

		c.logger.Debug("conversion not finished, polling again",
			"job_id", id,
			"status", job.Status,
			"elapsed", elapsed,
		)
		if err := c.sleep(ctx, opts.Interval); err != nil {
			return job, err
		}
	}
}
