// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrEmptyStream    = errors.New("audio stream has no samples")
	ErrInvalidFormat  = errors.New("invalid sample rate or channel count")
	ErrFormatMismatch = errors.New("streams differ in sample rate or channels")

	// ErrUnsupportedEncoding is wrapped by decoders that recognize a
	// container but not the sample encoding inside it. A more capable
	// decoder may still read such input.
	ErrUnsupportedEncoding = errors.New("unsupported sample encoding")
)
