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

// Package formats holds the static format registry: file-extension
// categories, MIME types, and the preset tables of recommended conversion
// options. Everything here is pure lookup data; the authoritative list of
// convertible formats comes from the remote API.
package formats

import "strings"

// Category groups file formats by media kind.
type Category string

const (
	CategoryAudio    Category = "audio"
	CategoryVideo    Category = "video"
	CategoryImage    Category = "image"
	CategoryDocument Category = "document"
	CategoryEbook    Category = "ebook"
)

// Categories lists all known categories in a stable order.
func Categories() []Category {
	return []Category{CategoryAudio, CategoryVideo, CategoryImage, CategoryDocument, CategoryEbook}
}

var extensionCategories = map[string]Category{
	// Audio
	"mp3": CategoryAudio, "wav": CategoryAudio, "flac": CategoryAudio,
	"aac": CategoryAudio, "ogg": CategoryAudio, "opus": CategoryAudio,
	"m4a": CategoryAudio, "wma": CategoryAudio, "aiff": CategoryAudio,
	"alac": CategoryAudio,

	// Video
	"mp4": CategoryVideo, "mkv": CategoryVideo, "webm": CategoryVideo,
	"avi": CategoryVideo, "mov": CategoryVideo, "wmv": CategoryVideo,
	"flv": CategoryVideo, "mpeg": CategoryVideo, "mpg": CategoryVideo,
	"m4v": CategoryVideo, "3gp": CategoryVideo,

	// Image
	"jpg": CategoryImage, "jpeg": CategoryImage, "png": CategoryImage,
	"gif": CategoryImage, "webp": CategoryImage, "bmp": CategoryImage,
	"tiff": CategoryImage, "tif": CategoryImage, "svg": CategoryImage,
	"heic": CategoryImage, "avif": CategoryImage, "ico": CategoryImage,

	// Document
	"pdf": CategoryDocument, "doc": CategoryDocument, "docx": CategoryDocument,
	"odt": CategoryDocument, "rtf": CategoryDocument, "txt": CategoryDocument,
	"html": CategoryDocument, "md": CategoryDocument, "xls": CategoryDocument,
	"xlsx": CategoryDocument, "ppt": CategoryDocument, "pptx": CategoryDocument,
	"csv": CategoryDocument,

	// Ebook
	"epub": CategoryEbook, "mobi": CategoryEbook, "azw3": CategoryEbook,
	"fb2": CategoryEbook, "lit": CategoryEbook,
}

var mimeTypes = map[string]string{
	"mp3": "audio/mpeg", "wav": "audio/wav", "flac": "audio/flac",
	"aac": "audio/aac", "ogg": "audio/ogg", "opus": "audio/opus",
	"m4a": "audio/mp4", "wma": "audio/x-ms-wma", "aiff": "audio/aiff",

	"mp4": "video/mp4", "mkv": "video/x-matroska", "webm": "video/webm",
	"avi": "video/x-msvideo", "mov": "video/quicktime", "wmv": "video/x-ms-wmv",
	"flv": "video/x-flv", "mpeg": "video/mpeg", "mpg": "video/mpeg",
	"m4v": "video/x-m4v", "3gp": "video/3gpp",

	"jpg": "image/jpeg", "jpeg": "image/jpeg", "png": "image/png",
	"gif": "image/gif", "webp": "image/webp", "bmp": "image/bmp",
	"tiff": "image/tiff", "tif": "image/tiff", "svg": "image/svg+xml",
	"heic": "image/heic", "avif": "image/avif", "ico": "image/x-icon",

	"pdf": "application/pdf", "doc": "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"odt":  "application/vnd.oasis.opendocument.text",
	"rtf":  "application/rtf", "txt": "text/plain", "html": "text/html",
	"md":   "text/markdown", "csv": "text/csv",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",

	"epub": "application/epub+zip", "mobi": "application/x-mobipocket-ebook",
	"azw3": "application/vnd.amazon.ebook", "fb2": "application/x-fictionbook+xml",
}

// Lossless audio formats; everything else in the audio category is lossy.
var losslessAudio = map[string]bool{
	"wav": true, "flac": true, "aiff": true, "alac": true,
}

// Lossless image formats.
var losslessImage = map[string]bool{
	"png": true, "bmp": true, "tiff": true, "tif": true,
}

// Normalize lowercases a format name and strips a leading dot.
func Normalize(format string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
}

// CategoryOf returns the category for a format or extension, and whether the
// format is known to the registry.
func CategoryOf(format string) (Category, bool) {
	c, ok := extensionCategories[Normalize(format)]
	return c, ok
}

// MIMEType returns the MIME type for a format, falling back to
// application/octet-stream for unknown formats.
func MIMEType(format string) string {
	if m, ok := mimeTypes[Normalize(format)]; ok {
		return m
	}
	return "application/octet-stream"
}

// IsLosslessAudio reports whether the format is a lossless audio format.
func IsLosslessAudio(format string) bool {
	return losslessAudio[Normalize(format)]
}

// IsLossyAudio reports whether the format is a lossy audio format.
func IsLossyAudio(format string) bool {
	f := Normalize(format)
	c, ok := extensionCategories[f]
	return ok && c == CategoryAudio && !losslessAudio[f]
}

// IsLosslessImage reports whether the format is a lossless image format.
func IsLosslessImage(format string) bool {
	return losslessImage[Normalize(format)]
}
