// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import "errors"

var (
	// ErrNotFound indicates the ffmpeg binary is not installed or not in PATH.
	ErrNotFound = errors.New("ffmpeg binary not found")

	// ErrNoOutput indicates ffmpeg exited cleanly without writing any data.
	ErrNoOutput = errors.New("ffmpeg produced no output")
)
