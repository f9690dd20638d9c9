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
	"net/http"
	"testing"
	"time"
)

const catalogJSON = `{"formats":{"audio":["mp3","wav","flac"],"image":["png","jpg"]}}`

func TestSupportedFormatsCaching(t *testing.T) {
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/formats" {
			t.Errorf("path = %q", r.URL.Path)
		}
		calls++
		w.Write([]byte(catalogJSON))
	})

	client, _ := newTestClient(t, handler)
	fake := time.Now()
	client.now = func() time.Time { return fake }

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		catalog, err := client.SupportedFormats(ctx, false)
		if err != nil {
			t.Fatalf("SupportedFormats() error = %v", err)
		}
		if !catalog.Supports("mp3") {
			t.Error("catalog should support mp3")
		}
	}
	if calls != 1 {
		t.Errorf("calls within TTL = %d, want 1", calls)
	}

	// Past the TTL the next call re-fetches.
	fake = fake.Add(time.Hour + time.Minute)
	if _, err := client.SupportedFormats(ctx, false); err != nil {
		t.Fatalf("SupportedFormats() after expiry error = %v", err)
	}
	if calls != 2 {
		t.Errorf("calls after expiry = %d, want 2", calls)
	}

	// Force bypasses a fresh cache.
	if _, err := client.SupportedFormats(ctx, true); err != nil {
		t.Fatalf("SupportedFormats(force) error = %v", err)
	}
	if calls != 3 {
		t.Errorf("calls after force = %d, want 3", calls)
	}

	// Clearing drops the slot.
	client.ClearFormatCache()
	if _, err := client.SupportedFormats(ctx, false); err != nil {
		t.Fatalf("SupportedFormats() after clear error = %v", err)
	}
	if calls != 4 {
		t.Errorf("calls after clear = %d, want 4", calls)
	}
}

func TestUsageNeverCached(t *testing.T) {
	var calls int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"tier":"free","conversions_used":1,"limits":{"unlimited":false}}`))
	})

	client, _ := newTestClient(t, handler)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := client.Usage(ctx); err != nil {
			t.Fatalf("Usage() error = %v", err)
		}
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestCatalogSupports(t *testing.T) {
	catalog := &FormatCatalog{Formats: map[string][]string{
		"audio": {"mp3", "wav"},
	}}

	if !catalog.Supports("MP3") {
		t.Error("Supports should be case-insensitive")
	}
	if !catalog.Supports(".wav") {
		t.Error("Supports should strip a leading dot")
	}
	if catalog.Supports("ogg") {
		t.Error("ogg is not in the catalog")
	}

	var nilCatalog *FormatCatalog
	if nilCatalog.Supports("mp3") {
		t.Error("nil catalog supports nothing")
	}
}
