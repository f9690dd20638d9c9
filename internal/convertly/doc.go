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

// Package convertly is the typed client for the Convertly file-conversion
// API. It owns no conversion logic: every operation validates its inputs
// locally, forwards the request over the resilient transport, and shapes the
// response for the MCP adapter.
//
// The client is safe for concurrent use. The only mutable state is the
// single-slot supported-formats cache, whose unlocked read-then-write race
// is benign: the worst case is one redundant fetch near TTL expiry.
package convertly
