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
	"fmt"
	"strconv"
	"strings"

	"github.com/convertly/convertly-mcp/internal/formats"
)

// uncompressedAudioKbps approximates the bitrate of CD-quality PCM. Lossy
// target sizes scale as target_kbps over this figure.
const uncompressedAudioKbps = 1400.0

// defaultAudioKbps is assumed when neither the caller nor the preset names a
// bitrate.
const defaultAudioKbps = 192.0

// EstimateOutputSize predicts the output size of converting a local file to
// the target format. Purely heuristic and purely local; the result is an
// approximation for planning, never a guarantee.
func (c *Client) EstimateOutputSize(path, target string, opts formats.Options) (*Estimate, error) {
	info, err := c.FileMetadata(path)
	if err != nil {
		return nil, err
	}
	target = formats.Normalize(target)
	if target == "" {
		return nil, fmt.Errorf("target format is required")
	}
	return estimateBytes(info.SizeBytes, info.Extension, target, formats.OptionsForTarget(target, opts)), nil
}

// estimateBytes applies the per-category ratio rules. Split out from
// EstimateOutputSize so the heuristics are testable without the filesystem.
func estimateBytes(sourceBytes int64, source, target string, opts formats.Options) *Estimate {
	sourceCat, sourceKnown := formats.CategoryOf(source)
	targetCat, targetKnown := formats.CategoryOf(target)

	if !sourceKnown || !targetKnown || sourceCat != targetCat {
		return newEstimate(sourceBytes, 1.0, ConfidenceLow,
			fmt.Sprintf("no size model for %s to %s; assuming similar size", source, target))
	}

	switch targetCat {
	case formats.CategoryAudio:
		return estimateAudio(sourceBytes, source, target, opts)
	case formats.CategoryVideo:
		return estimateVideo(sourceBytes, target, opts)
	case formats.CategoryImage:
		return estimateImage(sourceBytes, source, target, opts)
	case formats.CategoryDocument:
		if target == "pdf" {
			return newEstimate(sourceBytes, 0.8, ConfidenceMedium,
				"document to PDF typically shrinks slightly")
		}
		return newEstimate(sourceBytes, 1.0, ConfidenceLow,
			"document conversions vary widely with content")
	default:
		return newEstimate(sourceBytes, 1.0, ConfidenceLow,
			fmt.Sprintf("%s conversions vary widely with content", targetCat))
	}
}

func estimateAudio(sourceBytes int64, source, target string, opts formats.Options) *Estimate {
	kbps := bitrateKbps(opts)

	if formats.IsLossyAudio(target) {
		ratio := kbps / uncompressedAudioKbps
		if formats.IsLosslessAudio(source) {
			return newEstimate(sourceBytes, ratio, ConfidenceHigh,
				fmt.Sprintf("lossless %s encoded at %.0f kbps", source, kbps))
		}
		// Lossy to lossy: the source is already compressed, so the bitrate
		// model only bounds the result.
		return newEstimate(sourceBytes, ratio, ConfidenceMedium,
			fmt.Sprintf("re-encoding lossy %s at %.0f kbps", source, kbps))
	}

	// Lossy source expanding into a lossless container.
	if formats.IsLossyAudio(source) {
		multiplier := 6.0
		if target == "wav" || target == "aiff" {
			multiplier = 10.0
		}
		return newEstimate(sourceBytes, multiplier, ConfidenceLow,
			fmt.Sprintf("decompressing %s into %s", source, target))
	}

	// Lossless to lossless: FLAC-family targets compress PCM roughly in half.
	if target == "flac" || target == "alac" {
		return newEstimate(sourceBytes, 0.6, ConfidenceMedium,
			fmt.Sprintf("lossless %s compressed to %s", source, target))
	}
	return newEstimate(sourceBytes, 1.0, ConfidenceMedium,
		fmt.Sprintf("lossless %s repackaged as %s", source, target))
}

func estimateVideo(sourceBytes int64, target string, opts formats.Options) *Estimate {
	crf := 23.0
	if v, ok := numericOption(opts, "crf"); ok {
		crf = v
	}

	var ratio float64
	switch {
	case crf < 20:
		ratio = 1.2
	case crf > 28:
		ratio = 0.4
	default:
		ratio = 0.7
	}
	return newEstimate(sourceBytes, ratio, ConfidenceLow,
		fmt.Sprintf("video re-encode to %s at CRF %.0f; size depends heavily on content", target, crf))
}

func estimateImage(sourceBytes int64, source, target string, opts formats.Options) *Estimate {
	if formats.IsLosslessImage(target) {
		return newEstimate(sourceBytes, 1.5, ConfidenceLow,
			fmt.Sprintf("lossless %s output is often larger than %s", target, source))
	}

	quality := 85.0
	if v, ok := numericOption(opts, "quality"); ok {
		quality = v
	}
	ratio := quality / 100.0
	confidence := ConfidenceMedium
	rationale := fmt.Sprintf("lossy %s at quality %.0f", target, quality)
	if formats.IsLosslessImage(source) {
		// Compressing a lossless source shrinks far more than the quality
		// knob alone suggests.
		ratio *= 0.3
		confidence = ConfidenceLow
		rationale = fmt.Sprintf("lossless %s compressed to %s at quality %.0f", source, target, quality)
	}
	return newEstimate(sourceBytes, ratio, confidence, rationale)
}

func newEstimate(sourceBytes int64, ratio float64, confidence Confidence, rationale string) *Estimate {
	estimated := int64(float64(sourceBytes) * ratio)
	if estimated < 1 && sourceBytes > 0 {
		estimated = 1
	}
	return &Estimate{
		EstimatedBytes: estimated,
		Confidence:     confidence,
		Rationale:      rationale,
	}
}

// bitrateKbps reads the "bitrate" option, accepting "192k", "192", or a bare
// number, and falls back to the audio preset default.
func bitrateKbps(opts formats.Options) float64 {
	if v, ok := numericOption(opts, "bitrate"); ok {
		return v
	}
	return defaultAudioKbps
}

func numericOption(opts formats.Options, key string) (float64, bool) {
	raw, ok := opts[key]
	if !ok {
		return 0, false
	}
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(v)), "k")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}
