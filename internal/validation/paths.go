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

// Package validation guards every local input before the client spends
// network cost: file paths, save paths, filenames, and job identifiers.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// AllowedPathsEnv names the environment variable holding optional
// doublestar patterns (list-separated) that input paths must match.
const AllowedPathsEnv = "CONVERTLY_ALLOWED_PATHS"

// ValidateFilePath resolves and checks a local input file path. It returns
// the resolved absolute path of an existing regular file, with symlinks
// followed. The primary traversal defense is resolution followed by the
// existence check; the post-resolution ".." scan is defense in depth only.
func ValidateFilePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("path contains a null byte")
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	info, err := os.Lstat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file does not exist: %s", absPath)
		}
		return "", fmt.Errorf("inspecting path: %w", err)
	}

	resolved := absPath
	if info.Mode()&os.ModeSymlink != 0 {
		resolved, err = filepath.EvalSymlinks(absPath)
		if err != nil {
			return "", fmt.Errorf("resolving symlinks: %w", err)
		}
		info, err = os.Stat(resolved)
		if err != nil {
			return "", fmt.Errorf("inspecting symlink target: %w", err)
		}
	}

	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("not a regular file: %s", resolved)
	}

	if !filepath.IsAbs(resolved) || strings.Contains(resolved, "..") {
		return "", fmt.Errorf("resolved path failed traversal check: %s", resolved)
	}

	if err := checkAllowedPatterns(resolved); err != nil {
		return "", err
	}

	return resolved, nil
}

// ValidateSavePath resolves and checks a destination path for a downloaded
// file. If the path is an existing directory, the sanitized filename is
// appended; otherwise the parent directory must already exist.
func ValidateSavePath(path, filename string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("save path is empty")
	}
	if strings.ContainsRune(path, 0) {
		return "", fmt.Errorf("save path contains a null byte")
	}
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("save path contains a traversal sequence")
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		return filepath.Join(absPath, SanitizeFilename(filename)), nil
	}

	parent := filepath.Dir(absPath)
	info, err := os.Stat(parent)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("parent directory does not exist: %s", parent)
	}

	return absPath, nil
}

// checkAllowedPatterns enforces the optional allowed-path allowlist. With
// the environment variable unset, every path is allowed.
func checkAllowedPatterns(path string) error {
	raw := os.Getenv(AllowedPathsEnv)
	if raw == "" {
		return nil
	}
	normalized := filepath.ToSlash(path)
	for _, pattern := range filepath.SplitList(raw) {
		matched, err := doublestar.Match(filepath.ToSlash(pattern), normalized)
		if err != nil {
			// Invalid pattern - skip it
			continue
		}
		if matched {
			return nil
		}
	}
	return fmt.Errorf("path is not covered by %s", AllowedPathsEnv)
}
