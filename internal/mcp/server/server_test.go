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

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/convertly/convertly-mcp/internal/convertly"
)

// newTestServer builds a Server whose client talks to the given handler.
func newTestServer(t *testing.T, handler http.Handler) *Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := convertly.New(convertly.Config{
		APIKey:  "cvt_test_secret",
		BaseURL: srv.URL,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("convertly.New() error = %v", err)
	}

	s, err := NewServer(Config{
		Name:    "convertly-test",
		Version: "0.0.1",
		Client:  client,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return s
}

func callRequest(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil || len(result.Content) == 0 {
		t.Fatal("result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text
}

func TestNewServerRequiresClient(t *testing.T) {
	if _, err := NewServer(Config{}); err == nil {
		t.Error("NewServer() without client should fail")
	}
}

func TestNewServerDefaults(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())
	if s.name != "convertly-test" || s.version != "0.0.1" {
		t.Errorf("server identity = %s/%s", s.name, s.version)
	}
	if s.limiter == nil || s.logger == nil {
		t.Error("limiter or logger not initialized")
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(3, 1)

	for i := 0; i < 3; i++ {
		if !rl.AllowCall() {
			t.Fatalf("call %d should be allowed by full bucket", i+1)
		}
	}
	if rl.AllowCall() {
		t.Error("call beyond the burst should be rejected")
	}

	if !rl.AllowSubmission() {
		t.Error("first submission should be allowed")
	}
	if rl.AllowSubmission() {
		t.Error("second submission should exceed the burst")
	}
}

func TestToolWrapperRateLimits(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())
	s.limiter = NewRateLimiter(1, 1)

	handler := s.tool("get_usage", func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return textResponse("ok"), nil
	})

	result, err := handler(context.Background(), callRequest(nil))
	if err != nil || result.IsError {
		t.Fatalf("first call: result = %+v, err = %v", result, err)
	}

	result, err = handler(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("rate-limited call returned protocol error: %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), "Rate limit") {
		t.Errorf("rate-limited call result = %+v", result)
	}
}

func TestHandleUsage(t *testing.T) {
	s := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/usage" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"tier":"pro","conversions_used":7,"limits":{"unlimited":true}}`))
	}))

	result, err := s.handleUsage(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handleUsage() error = %v", err)
	}
	if result.IsError {
		t.Fatalf("result is error: %s", resultText(t, result))
	}
	text := resultText(t, result)
	if !strings.Contains(text, `"tier": "pro"`) || !strings.Contains(text, `"unlimited": true`) {
		t.Errorf("usage JSON = %s", text)
	}
}

func TestHandleConversionStatusBadID(t *testing.T) {
	s := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid job ID must not reach the network")
	}))

	result, err := s.handleConversionStatus(context.Background(), callRequest(map[string]interface{}{
		"job_id": "not-a-uuid",
	}))
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	if !result.IsError {
		t.Error("expected isError result for invalid job ID")
	}
}

func TestHandleRetryConversionAlwaysErrors(t *testing.T) {
	s := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("retry must not touch the network")
	}))

	result, err := s.handleRetryConversion(context.Background(), callRequest(map[string]interface{}{
		"job_id": "0b9faf94-8c7e-4a9d-9f3a-333333333333",
	}))
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	if !result.IsError || !strings.Contains(resultText(t, result), "resubmit") {
		t.Errorf("result = %+v", result)
	}
}

func TestHandleConvertFileMissingArgs(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	result, err := s.handleConvertFile(context.Background(), callRequest(map[string]interface{}{
		"target_format": "mp3",
	}))
	if err != nil || !result.IsError {
		t.Errorf("missing path: result = %+v, err = %v", result, err)
	}

	result, err = s.handleConvertFile(context.Background(), callRequest(map[string]interface{}{
		"path": "/tmp/whatever.wav",
	}))
	if err != nil || !result.IsError {
		t.Errorf("missing target: result = %+v, err = %v", result, err)
	}
}

func TestHandleBatchConvertValidatesPaths(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	result, err := s.handleBatchConvert(context.Background(), callRequest(map[string]interface{}{
		"target_format": "mp3",
	}))
	if err != nil || !result.IsError {
		t.Errorf("missing paths: result = %+v, err = %v", result, err)
	}

	result, err = s.handleBatchConvert(context.Background(), callRequest(map[string]interface{}{
		"target_format": "mp3",
		"paths":         []interface{}{"ok.wav", 42},
	}))
	if err != nil || !result.IsError {
		t.Errorf("non-string path: result = %+v, err = %v", result, err)
	}
}

func TestPresetsResource(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	contents, err := s.handlePresetsResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handlePresetsResource() error = %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d entries", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("contents[0] is %T", contents[0])
	}
	if text.URI != presetsResourceURI || text.MIMEType != "application/json" {
		t.Errorf("resource envelope = %+v", text)
	}
	if !strings.Contains(text.Text, `"bitrate"`) || !strings.Contains(text.Text, `"version"`) {
		t.Errorf("presets JSON = %s", text.Text)
	}
}

func TestFormatsResource(t *testing.T) {
	s := newTestServer(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"formats":{"audio":["mp3","wav"]}}`))
	}))

	contents, err := s.handleFormatsResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("handleFormatsResource() error = %v", err)
	}
	text := contents[0].(mcp.TextResourceContents)
	if !strings.Contains(text.Text, `"mp3"`) {
		t.Errorf("formats JSON = %s", text.Text)
	}
}

func TestConvertFilePrompt(t *testing.T) {
	s := newTestServer(t, http.NotFoundHandler())

	_, err := s.handleConvertFilePrompt(context.Background(), mcp.GetPromptRequest{})
	if err == nil {
		t.Error("expected error when path argument is missing")
	}

	request := mcp.GetPromptRequest{}
	request.Params.Arguments = map[string]string{
		"path":          "/data/song.wav",
		"target_format": "mp3",
	}
	result, err := s.handleConvertFilePrompt(context.Background(), request)
	if err != nil {
		t.Fatalf("prompt error = %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("messages = %d", len(result.Messages))
	}
	content, ok := result.Messages[0].Content.(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T", result.Messages[0].Content)
	}
	if !strings.Contains(content.Text, "/data/song.wav") || !strings.Contains(content.Text, "mp3") {
		t.Errorf("prompt text = %s", content.Text)
	}
}
