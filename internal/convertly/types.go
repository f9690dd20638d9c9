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
	"strings"
	"time"

	"github.com/convertly/convertly-mcp/internal/formats"
)

// JobStatus is the lifecycle state of a conversion job. The remote service
// is the sole writer; the client only observes.
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusExpired    JobStatus = "expired"
)

// Terminal reports whether polling should stop at this status.
func (s JobStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Job is a snapshot of a remote conversion job.
type Job struct {
	ID                string     `json:"id"`
	Status            JobStatus  `json:"status"`
	SourceFormat      string     `json:"source_format"`
	TargetFormat      string     `json:"target_format"`
	Filename          string     `json:"filename"`
	CreatedAt         time.Time  `json:"created_at"`
	StartedAt         *time.Time `json:"started_at,omitempty"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	Error             string     `json:"error,omitempty"`
	DownloadURL       string     `json:"download_url,omitempty"`
	DownloadExpiresAt *time.Time `json:"download_expires_at,omitempty"`
}

// FormatCatalog maps categories to the formats the service can produce.
type FormatCatalog struct {
	Formats map[string][]string `json:"formats"`
}

// Supports reports whether the catalog lists the target format in any
// category. Comparison is case-insensitive with a leading dot stripped.
func (c *FormatCatalog) Supports(target string) bool {
	if c == nil {
		return false
	}
	want := formats.Normalize(target)
	for _, list := range c.Formats {
		for _, f := range list {
			if strings.EqualFold(f, want) {
				return true
			}
		}
	}
	return false
}

// UsageLimits describes a subscription tier's caps. Unlimited tiers carry
// Unlimited=true and a zero cap; the two are never conflated.
type UsageLimits struct {
	Unlimited           bool  `json:"unlimited"`
	ConversionsPerMonth int64 `json:"conversions_per_month,omitempty"`
	MaxFileSizeBytes    int64 `json:"max_file_size_bytes,omitempty"`
}

// Usage is the current account consumption snapshot. Never cached.
type Usage struct {
	Tier            string      `json:"tier"`
	ConversionsUsed int64       `json:"conversions_used"`
	Limits          UsageLimits `json:"limits"`
}

// ConversionList is one page of conversion jobs.
type ConversionList struct {
	Conversions []Job `json:"conversions"`
	Total       int   `json:"total"`

	// Page and PageSize echo the clamped pagination the client requested.
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// CancelResult is the structured outcome of a cancel request. Cancellation
// of an in-progress job is a non-error failure so callers can branch without
// unwrapping errors.
type CancelResult struct {
	ID      string    `json:"id"`
	Success bool      `json:"success"`
	Status  JobStatus `json:"status,omitempty"`
	Reason  string    `json:"reason,omitempty"`
}

// DownloadResult carries a completed conversion's bytes and derived name.
type DownloadResult struct {
	Data        []byte
	Filename    string
	ContentType string
}

// FileInfo describes a local file; produced without any network call.
type FileInfo struct {
	Path       string    `json:"path"`
	SizeBytes  int64     `json:"size_bytes"`
	Extension  string    `json:"extension"`
	MIMEType   string    `json:"mime_type"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Confidence labels how much to trust a size estimate.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Estimate is a client-side output-size approximation, not a guarantee.
type Estimate struct {
	EstimatedBytes int64      `json:"estimated_bytes"`
	Confidence     Confidence `json:"confidence"`
	Rationale      string     `json:"rationale"`
}

// BatchItem is the per-file outcome of a batch submission.
type BatchItem struct {
	Path  string `json:"path"`
	Job   *Job   `json:"job,omitempty"`
	Error string `json:"error,omitempty"`
}
