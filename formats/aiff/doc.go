// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF audio file decoding.
//
// This package uses github.com/go-audio/aiff. AIFF stores samples big-endian
// and signed; the decoder accepts 16, 24 and 32-bit PCM with any channel
// count and normalizes to float32 in [-1,1]:
//
//	src, err := aiff.Decoder{}.Decode(file)
//	switch {
//	case errors.Is(err, aiff.ErrNotAiffFile):
//	    // not FORM/AIFF
//	case errors.Is(err, aiff.ErrUnsupportedBitDepth):
//	    // 8-bit or unusual sample size
//	}
//
// Like the WAV decoder, input that is not an io.ReadSeeker is buffered in
// memory first. Encoding to AIFF is not supported.
package aiff
