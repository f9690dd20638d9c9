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
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/convertly/convertly-mcp/internal/formats"
)

// conversionAPI serves the format catalog and accepts submissions, recording
// the last multipart form it saw.
type conversionAPI struct {
	t           *testing.T
	submissions int
	lastFile    string
	lastName    string
	lastTarget  string
	lastOptions map[string]any
}

func (a *conversionAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/formats":
		w.Write([]byte(catalogJSON))
	case r.Method == http.MethodPost && r.URL.Path == "/api/conversions":
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			a.t.Errorf("parsing multipart form: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			a.t.Errorf("missing file part: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)

		a.submissions++
		a.lastFile = string(data)
		a.lastName = header.Filename
		a.lastTarget = r.FormValue("output_format")
		a.lastOptions = nil
		if raw := r.FormValue("options"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &a.lastOptions); err != nil {
				a.t.Errorf("options field is not JSON: %v", err)
			}
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"0b9faf94-8c7e-4a9d-9f3a-111111111111","status":"pending","target_format":"` + a.lastTarget + `"}`))
	default:
		a.t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestConvertSubmitsMultipart(t *testing.T) {
	api := &conversionAPI{t: t}
	client, _ := newTestClient(t, api)

	dir := t.TempDir()
	path := filepath.Join(dir, "song.wav")
	if err := os.WriteFile(path, []byte("RIFFdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	job, err := client.Convert(context.Background(), path, "MP3", formats.Options{"bitrate": "128k"})
	if err != nil {
		t.Fatalf("Convert() error = %v", err)
	}
	if job.ID == "" || job.Status != StatusPending {
		t.Errorf("job = %+v", job)
	}

	if api.lastFile != "RIFFdata" {
		t.Errorf("file bytes = %q", api.lastFile)
	}
	if api.lastName != "song.wav" {
		t.Errorf("filename = %q", api.lastName)
	}
	if api.lastTarget != "mp3" {
		t.Errorf("output_format = %q, want normalized mp3", api.lastTarget)
	}
	// Caller override wins over the audio preset; preset fills the rest.
	if api.lastOptions["bitrate"] != "128k" {
		t.Errorf("bitrate = %v, want caller override", api.lastOptions["bitrate"])
	}
	if api.lastOptions["sample_rate"] != "44100" {
		t.Errorf("sample_rate = %v, want preset default", api.lastOptions["sample_rate"])
	}
}

func TestConvertRejectsUnsupportedTarget(t *testing.T) {
	api := &conversionAPI{t: t}
	client, _ := newTestClient(t, api)

	dir := t.TempDir()
	path := filepath.Join(dir, "song.wav")
	if err := os.WriteFile(path, []byte("RIFFdata"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := client.Convert(context.Background(), path, "xyz", nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported target format") {
		t.Fatalf("error = %v, want unsupported target format", err)
	}
	if api.submissions != 0 {
		t.Errorf("submissions = %d, want 0", api.submissions)
	}
}

func TestConvertDataFastFailures(t *testing.T) {
	// Any request means a validation check leaked through.
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
	}))

	if _, err := client.ConvertData(context.Background(), nil, "a.wav", "mp3", nil); err == nil {
		t.Error("expected error for empty payload")
	}
	if _, err := client.ConvertData(context.Background(), []byte("x"), "a.wav", "", nil); err == nil {
		t.Error("expected error for missing target")
	}
}

func TestConvertBatchContinuesAfterFailure(t *testing.T) {
	api := &conversionAPI{t: t}
	client, _ := newTestClient(t, api)

	dir := t.TempDir()
	good1 := filepath.Join(dir, "one.wav")
	good2 := filepath.Join(dir, "two.wav")
	for _, p := range []string{good1, good2} {
		if err := os.WriteFile(p, []byte("RIFF"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	missing := filepath.Join(dir, "missing.wav")

	items := client.ConvertBatch(context.Background(), []string{good1, missing, good2}, "mp3", nil)
	if len(items) != 3 {
		t.Fatalf("items = %d, want 3", len(items))
	}
	if items[0].Job == nil || items[0].Error != "" {
		t.Errorf("item 0 = %+v, want success", items[0])
	}
	if items[1].Job != nil || items[1].Error == "" {
		t.Errorf("item 1 = %+v, want failure", items[1])
	}
	if items[2].Job == nil || items[2].Error != "" {
		t.Errorf("item 2 = %+v, want success after earlier failure", items[2])
	}
	if api.submissions != 2 {
		t.Errorf("submissions = %d, want 2", api.submissions)
	}
}

func TestDecodePayload(t *testing.T) {
	raw := []byte("hello convertly")
	encoded := base64.StdEncoding.EncodeToString(raw)

	got, err := DecodePayload(encoded)
	if err != nil || string(got) != string(raw) {
		t.Errorf("plain base64: got %q, %v", got, err)
	}

	got, err = DecodePayload("data:audio/wav;base64," + encoded)
	if err != nil || string(got) != string(raw) {
		t.Errorf("data URL: got %q, %v", got, err)
	}

	if _, err := DecodePayload("data:audio/wav;base64"); err == nil {
		t.Error("expected error for data URL without comma")
	}
	if _, err := DecodePayload("!!not base64!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}
