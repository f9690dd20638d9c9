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

// Package metrics exposes Prometheus instrumentation for the adapter:
// outbound API traffic, retry pressure, and format-cache effectiveness.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "convertly_api_request_duration_seconds",
			Help:    "Duration of outbound Convertly API request attempts",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	retriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "convertly_api_retries_total",
		Help: "Total retry attempts against the Convertly API",
	})

	formatCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convertly_format_cache_total",
			Help: "Format-list cache lookups by outcome",
		},
		[]string{"outcome"},
	)

	toolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convertly_tool_calls_total",
			Help: "MCP tool invocations by tool and outcome",
		},
		[]string{"tool", "outcome"},
	)
)

// TransportObserver implements httpclient.Observer on top of the package
// counters. The zero value is ready to use.
type TransportObserver struct{}

// RequestObserved records one request attempt. status 0 means no response
// was obtained and is reported as "error".
func (TransportObserver) RequestObserved(method string, status int, duration time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	requestDuration.WithLabelValues(method, label).Observe(duration.Seconds())
}

// RetryObserved records one retry attempt.
func (TransportObserver) RetryObserved() {
	retriesTotal.Inc()
}

// RecordCacheHit records a format-cache hit.
func RecordCacheHit() { formatCache.WithLabelValues("hit").Inc() }

// RecordCacheMiss records a format-cache miss or bypass.
func RecordCacheMiss() { formatCache.WithLabelValues("miss").Inc() }

// RecordToolCall records an MCP tool invocation outcome.
func RecordToolCall(tool string, isError bool) {
	outcome := "ok"
	if isError {
		outcome = "error"
	}
	toolCalls.WithLabelValues(tool, outcome).Inc()
}

// Serve runs a Prometheus scrape endpoint on addr until ctx is canceled.
// It returns nil on graceful shutdown.
func Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
