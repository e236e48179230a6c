// SPDX-License-Identifier: EPL-2.0

// Package vorbis provides Ogg Vorbis audio file decoding.
//
// This package uses github.com/jfreymuth/oggvorbis, a pure Go decoder.
// The stream's own rate and channel count are reported unchanged, with
// samples interleaved as float32 in [-1,1]:
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // not an Ogg Vorbis stream
//	}
//	buf, err := audio.ReadAll(src)
//
// ReadSamples only fills whole frames. A destination shorter than one frame
// reads nothing. Vorbis encoding is not supported.
package vorbis
