// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which renders every
// stream as interleaved 16-bit stereo regardless of the channel mode in the
// file. The Source therefore always reports two channels; mono recordings
// come out with identical left and right samples.
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // not MPEG audio, or no decodable frame
//	}
//	buf, err := audio.ReadAll(src)
//
// Frames split across reads of the underlying decoder are reassembled, so
// every ReadSamples call returns whole stereo frames. MP3 encoding is handled
// by the ffmpeg package.
package mp3
