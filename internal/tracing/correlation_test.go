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

package tracing

import (
	"context"
	"net/http"
	"testing"
)

func TestNewCorrelationIDIsValidUUID(t *testing.T) {
	id := NewCorrelationID()
	if !id.IsValid() {
		t.Errorf("generated correlation ID %q is not a valid UUID", id)
	}
}

func TestNewCorrelationIDsAreUnique(t *testing.T) {
	seen := make(map[CorrelationID]bool)
	for i := 0; i < 100; i++ {
		id := NewCorrelationID()
		if seen[id] {
			t.Fatalf("duplicate correlation ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name string
		id   CorrelationID
		want bool
	}{
		{"canonical lowercase", "550e8400-e29b-41d4-a716-446655440000", true},
		{"uppercase accepted", "550E8400-E29B-41D4-A716-446655440000", true},
		{"empty", "", false},
		{"not a uuid", "not-a-uuid", false},
		{"missing group", "550e8400-e29b-41d4-a716", false},
		{"non-hex characters", "550e8400-e29b-41d4-a716-44665544zzzz", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.IsValid(); got != tt.want {
				t.Errorf("IsValid(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	id := NewCorrelationID()
	ctx := ToContext(context.Background(), id)

	if got := FromContext(ctx); got != id {
		t.Errorf("FromContext returned %s, want %s", got, id)
	}
	if got := FromContextOrEmpty(ctx); got != id {
		t.Errorf("FromContextOrEmpty returned %s, want %s", got, id)
	}
}

func TestFromContextMintsWhenAbsent(t *testing.T) {
	id := FromContext(context.Background())
	if !id.IsValid() {
		t.Errorf("FromContext minted invalid ID %q", id)
	}
	if got := FromContextOrEmpty(context.Background()); got != "" {
		t.Errorf("FromContextOrEmpty returned %q, want empty", got)
	}
}

func TestInjectIntoRequest(t *testing.T) {
	id := NewCorrelationID()
	ctx := ToContext(context.Background(), id)

	req, err := http.NewRequest(http.MethodGet, "https://api.convertly.com/api/formats", nil)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}

	InjectIntoRequest(ctx, req)
	if got := req.Header.Get(HeaderCorrelationID); got != id.String() {
		t.Errorf("header = %q, want %q", got, id)
	}

	// No ID in context leaves the header unset.
	req2, _ := http.NewRequest(http.MethodGet, "https://api.convertly.com/api/formats", nil)
	InjectIntoRequest(context.Background(), req2)
	if got := req2.Header.Get(HeaderCorrelationID); got != "" {
		t.Errorf("header = %q, want empty", got)
	}
}
