// SPDX-License-Identifier: EPL-2.0

package server

import (
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces a client supplied filename to a safe ASCII name:
// accents are folded, path separators and whitespace become underscores and
// anything outside [A-Za-z0-9_.-] is dropped. The result may be empty.
func SecureFilename(name string) string {
	folded := make([]rune, 0, len(name))
	for _, r := range norm.NFKD.String(name) {
		if r < 0x80 {
			folded = append(folded, r)
		}
	}
	name = string(folded)

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")

	return strings.Trim(name, "._")
}

// Stem drops the final extension of name and sanitizes the rest, or returns
// fallback when nothing usable is left.
func Stem(name, fallback string) string {
	name = strings.TrimSuffix(name, path.Ext(name))
	if safe := SecureFilename(name); safe != "" {
		return safe
	}
	return fallback
}

// OutputFilename names the mix after both inputs.
func OutputFilename(speech, music, ext string) string {
	return "mixed_" + Stem(speech, "speech") + "_" + Stem(music, "music") + "." + ext
}
