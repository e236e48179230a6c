// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"slices"
	"strings"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/ffmpeg"
)

// undecodable lists the allowed upload extensions that no native decoder in
// reg handles while the ffmpeg fallback binary is missing. Uploads of these
// types will fail to decode.
func undecodable(allowed []string, reg *audio.Registry, tool ffmpeg.Tool) []string {
	if _, err := tool.Available(); err == nil {
		return nil
	}

	native := reg.Formats()

	var missing []string
	for _, ext := range allowed {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if !slices.Contains(native, ext) {
			missing = append(missing, ext)
		}
	}
	return missing
}
