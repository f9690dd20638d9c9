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

package formats

// PresetsVersion identifies the recommended-defaults table. Bump when the
// table changes so callers can tell which defaults a job was built with.
const PresetsVersion = "2026-06"

// Options is an open key-value bag of conversion parameters. Keys the
// registry does not know about are passed through to the remote API
// untouched, preserving forward compatibility with its evolving parameter
// set.
type Options map[string]any

// presets holds the recommended default options per category.
var presets = map[Category]Options{
	CategoryAudio: {
		"bitrate":     "192k",
		"sample_rate": "44100",
	},
	CategoryVideo: {
		"crf":    "23",
		"preset": "medium",
	},
	CategoryImage: {
		"quality": "85",
	},
	CategoryDocument: {},
	CategoryEbook:    {},
}

// PresetFor returns a copy of the recommended defaults for a category.
// Unknown categories get an empty bag.
func PresetFor(category Category) Options {
	defaults := presets[category]
	out := make(Options, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	return out
}

// MergeOptions layers caller overrides on top of preset defaults. When both
// specify a key the caller value wins. Neither input is mutated.
func MergeOptions(preset, overrides Options) Options {
	merged := make(Options, len(preset)+len(overrides))
	for k, v := range preset {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// OptionsForTarget builds the effective options bag for a conversion to the
// given target format: the category preset overlaid with caller overrides.
func OptionsForTarget(target string, overrides Options) Options {
	category, ok := CategoryOf(target)
	if !ok {
		// Unknown target: pass caller options through untouched.
		return MergeOptions(nil, overrides)
	}
	return MergeOptions(PresetFor(category), overrides)
}
