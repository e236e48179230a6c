// SPDX-License-Identifier: EPL-2.0

// Package ffmpeg runs the ffmpeg binary as a subprocess for the formats that
// have no pure Go codec here.
//
// Decoder is the registry fallback: it hands the whole input to ffmpeg and
// reads back s16le PCM at a fixed rate and channel count, which covers AAC,
// M4A, WMA, Opus and anything else ffmpeg can read. MP3Encoder renders a
// buffer as WAV in memory and has libmp3lame turn it into MP3. Metadata is
// stripped and bitexact flags are set, so the same buffer always encodes to
// the same bytes.
//
// Every call starts its own process bounded by Tool.Timeout. A missing binary
// is reported as ErrNotFound before any work is done.
package ffmpeg
