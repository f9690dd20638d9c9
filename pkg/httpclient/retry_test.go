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
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

// scriptedTransport returns one canned response per attempt and records what
// it saw.
type scriptedTransport struct {
	responses []*http.Response
	errs      []error
	attempts  int
	bodies    []string
}

func (s *scriptedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	i := s.attempts
	s.attempts++

	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		req.Body.Close()
		s.bodies = append(s.bodies, string(data))
	}

	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return response(http.StatusOK), nil
}

func response(status int, header ...string) *http.Response {
	h := http.Header{}
	for i := 0; i+1 < len(header); i += 2 {
		h.Set(header[i], header[i+1])
	}
	return &http.Response{
		StatusCode: status,
		Header:     h,
		Body:       io.NopCloser(strings.NewReader("")),
	}
}

// testRetryTransport builds a retryTransport over the script with an
// instant, recorded sleep.
func testRetryTransport(script *scriptedTransport, retries int) (*retryTransport, *[]time.Duration) {
	cfg := DefaultConfig()
	cfg.RetryAttempts = retries
	cfg.UserAgent = "test"

	t := newRetryTransport(script, cfg)
	var slept []time.Duration
	t.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	return t, &slept
}

func newRequest(t *testing.T, method string) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, "https://api.example.com/api/formats", nil)
	if err != nil {
		t.Fatal(err)
	}
	return req
}

func TestRetryRecoversFromTransientStatus(t *testing.T) {
	script := &scriptedTransport{responses: []*http.Response{
		response(http.StatusServiceUnavailable),
		response(http.StatusServiceUnavailable),
		response(http.StatusOK),
	}}
	rt, slept := testRetryTransport(script, 3)

	resp, err := rt.RoundTrip(newRequest(t, http.MethodGet))
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if script.attempts != 3 {
		t.Errorf("attempts = %d, want 3", script.attempts)
	}
	// Exponential schedule seeded at the base, no jitter.
	want := []time.Duration{time.Second, 2 * time.Second}
	if len(*slept) != len(want) {
		t.Fatalf("slept = %v", *slept)
	}
	for i, d := range want {
		if (*slept)[i] != d {
			t.Errorf("delay %d = %v, want %v", i, (*slept)[i], d)
		}
	}
}

func TestRetryBudgetExhausted(t *testing.T) {
	script := &scriptedTransport{responses: []*http.Response{
		response(http.StatusServiceUnavailable),
		response(http.StatusServiceUnavailable),
		response(http.StatusServiceUnavailable),
	}}
	rt, _ := testRetryTransport(script, 2)

	resp, err := rt.RoundTrip(newRequest(t, http.MethodGet))
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	// MaxRetries+1 total attempts, then the last response comes back as-is.
	if script.attempts != 3 {
		t.Errorf("attempts = %d, want 3", script.attempts)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestNonTransientStatusNotRetried(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusNotFound, http.StatusUnprocessableEntity} {
		script := &scriptedTransport{responses: []*http.Response{response(status)}}
		rt, slept := testRetryTransport(script, 3)

		resp, err := rt.RoundTrip(newRequest(t, http.MethodGet))
		if err != nil {
			t.Fatalf("status %d: error = %v", status, err)
		}
		if resp.StatusCode != status || script.attempts != 1 || len(*slept) != 0 {
			t.Errorf("status %d: attempts = %d, slept = %v", status, script.attempts, *slept)
		}
	}
}

func TestRetryAfterHonoredExactly(t *testing.T) {
	script := &scriptedTransport{responses: []*http.Response{
		response(http.StatusTooManyRequests, "Retry-After", "7"),
		response(http.StatusOK),
	}}
	rt, slept := testRetryTransport(script, 3)

	if _, err := rt.RoundTrip(newRequest(t, http.MethodGet)); err != nil {
		t.Fatal(err)
	}
	if len(*slept) != 1 || (*slept)[0] != 7*time.Second {
		t.Errorf("slept = %v, want exactly the Retry-After hint", *slept)
	}
}

func TestRetryAfterMissingFallsBackToBackoff(t *testing.T) {
	script := &scriptedTransport{responses: []*http.Response{
		response(http.StatusTooManyRequests),
		response(http.StatusOK),
	}}
	rt, slept := testRetryTransport(script, 3)

	if _, err := rt.RoundTrip(newRequest(t, http.MethodGet)); err != nil {
		t.Fatal(err)
	}
	if len(*slept) != 1 || (*slept)[0] != time.Second {
		t.Errorf("slept = %v, want base backoff", *slept)
	}
}

func TestBackoffSchedule(t *testing.T) {
	rt := &retryTransport{baseBackoff: time.Second, maxBackoff: 30 * time.Second}

	want := []time.Duration{
		time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second,
		16 * time.Second, 30 * time.Second, 30 * time.Second,
	}
	for attempt, expected := range want {
		if got := rt.backoff(attempt); got != expected {
			t.Errorf("backoff(%d) = %v, want %v", attempt, got, expected)
		}
	}
}

func TestNetworkErrorRetried(t *testing.T) {
	script := &scriptedTransport{
		errs:      []error{io.ErrUnexpectedEOF},
		responses: []*http.Response{nil, response(http.StatusOK)},
	}
	rt, _ := testRetryTransport(script, 2)

	resp, err := rt.RoundTrip(newRequest(t, http.MethodGet))
	if err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK || script.attempts != 2 {
		t.Errorf("status = %d, attempts = %d", resp.StatusCode, script.attempts)
	}
}

func TestContextErrorsNotRetried(t *testing.T) {
	script := &scriptedTransport{errs: []error{context.Canceled}}
	rt, slept := testRetryTransport(script, 3)

	if _, err := rt.RoundTrip(newRequest(t, http.MethodGet)); err == nil {
		t.Fatal("expected error")
	}
	if script.attempts != 1 || len(*slept) != 0 {
		t.Errorf("attempts = %d, slept = %v", script.attempts, *slept)
	}
}

func TestBodyRewoundBetweenAttempts(t *testing.T) {
	script := &scriptedTransport{responses: []*http.Response{
		response(http.StatusServiceUnavailable),
		response(http.StatusOK),
	}}
	rt, _ := testRetryTransport(script, 2)

	req, err := http.NewRequestWithContext(context.Background(),
		http.MethodPost, "https://api.example.com/api/conversions",
		bytes.NewReader([]byte("payload")))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("RoundTrip() error = %v", err)
	}
	if len(script.bodies) != 2 {
		t.Fatalf("bodies = %d, want 2", len(script.bodies))
	}
	for i, body := range script.bodies {
		if body != "payload" {
			t.Errorf("attempt %d saw body %q", i, body)
		}
	}
}

func TestRetryAfterHint(t *testing.T) {
	if got := retryAfterHint(response(429)); got != 0 {
		t.Errorf("absent header: %v", got)
	}
	if got := retryAfterHint(response(429, "Retry-After", "12")); got != 12*time.Second {
		t.Errorf("seconds form: %v", got)
	}
	if got := retryAfterHint(response(429, "Retry-After", "junk")); got != 0 {
		t.Errorf("unparseable: %v", got)
	}
	future := time.Now().Add(90 * time.Second).UTC().Format(http.TimeFormat)
	if got := retryAfterHint(response(429, "Retry-After", future)); got < 80*time.Second || got > 90*time.Second {
		t.Errorf("date form: %v", got)
	}
}
