// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// sniffed maps detected extensions onto registry format keys.
var sniffed = map[string]string{
	"wav":  "wav",
	"mp3":  "mp3",
	"ogg":  "ogg",
	"oga":  "ogg",
	"flac": "flac",
	"aiff": "aiff",
	"aif":  "aiff",
	"m4a":  "m4a",
	"mp4":  "m4a",
	"aac":  "aac",
	"asf":  "wma",
	"wma":  "wma",
	"opus": "opus",
}

// Sniff inspects the leading bytes of data and returns the format key of the
// audio container it holds. ok is false when the content is not recognized as
// audio.
func Sniff(data []byte) (format string, ok bool) {
	if len(data) == 0 {
		return "", false
	}

	ext := strings.TrimPrefix(mimetype.Detect(data).Extension(), ".")
	format, ok = sniffed[ext]
	if !ok {
		return "", false
	}

	// Opus and Vorbis share the Ogg container; the first packet tells them apart.
	if format == "ogg" && bytes.Contains(data[:min(len(data), 64)], []byte("OpusHead")) {
		return "opus", true
	}

	return format, true
}

// HintFormat extracts a format key from a filename or bare extension.
func HintFormat(hint string) string {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return ""
	}
	if ext := filepath.Ext(hint); ext != "" {
		return normalizeKey(ext)
	}
	return normalizeKey(hint)
}

// DetectFormat picks the format for data: content first, hint second.
func DetectFormat(data []byte, hint string) string {
	if format, ok := Sniff(data); ok {
		return format
	}
	return HintFormat(hint)
}
