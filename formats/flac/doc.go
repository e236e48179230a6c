// SPDX-License-Identifier: EPL-2.0

// Package flac provides FLAC audio file decoding through
// github.com/gopxl/beep/v2/flac.
//
// beep streams every file as stereo float64 frames. The source converts them
// back to the channel count declared in the stream info, so mono files
// report one channel. Layouts with more than two channels are rejected with
// ErrUnsupportedChannels.
package flac
