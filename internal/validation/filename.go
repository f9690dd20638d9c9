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
	"path/filepath"
	"strings"
)

// FallbackFilename is substituted when sanitization leaves nothing usable.
const FallbackFilename = "file"

// maxFilenameLen is the longest filename most filesystems accept.
const maxFilenameLen = 255

// unsafeFilenameChars are stripped from filenames in addition to the
// control range.
const unsafeFilenameChars = `<>:"/\|?*`

// SanitizeFilename reduces a name to a safe basename: directory components
// are dropped, control and unsafe characters removed, and the result
// truncated to 255 characters with the extension preserved.
func SanitizeFilename(name string) string {
	// Basename only; handles both separator styles.
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))

	var b strings.Builder
	for _, r := range name {
		if r < 0x20 || r == 0x7f {
			continue
		}
		if strings.ContainsRune(unsafeFilenameChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	name = b.String()

	if name == "" || name == "." || name == ".." {
		return FallbackFilename
	}

	if len(name) > maxFilenameLen {
		ext := filepath.Ext(name)
		if len(ext) >= maxFilenameLen {
			return name[:maxFilenameLen]
		}
		name = name[:maxFilenameLen-len(ext)] + ext
	}

	return name
}

// ReplaceExtension swaps a filename's extension for the target format's,
// used to derive download names when the server supplies none.
func ReplaceExtension(name, format string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	if base == "" {
		base = FallbackFilename
	}
	return base + "." + strings.TrimPrefix(format, ".")
}
