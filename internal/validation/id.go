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

package validation

import (
	"fmt"
	"regexp"
)

// Canonical UUID textual form: 8-4-4-4-12 hex groups, case-insensitive.
var jobIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// ValidateJobID rejects identifiers that are not canonical UUIDs before any
// network call is made with them.
func ValidateJobID(id string) error {
	if !jobIDRegex.MatchString(id) {
		return fmt.Errorf("invalid conversion job ID %q: must be a UUID", id)
	}
	return nil
}
