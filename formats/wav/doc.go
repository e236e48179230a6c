// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Both directions use github.com/go-audio/wav.
//
// # Decoding
//
// The Decoder accepts integer PCM at 8 (unsigned), 16, 24 and 32 bits and
// 32-bit IEEE float, in plain or extensible format chunks, with any number of
// channels. The extensible SubFormat is read with github.com/go-audio/riff.
// Other encodings (A-law, ADPCM, 64-bit float) fail with an error wrapping
// audio.ErrUnsupportedEncoding:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// Inputs that are not an io.ReadSeeker are read into memory first, since
// the chunk walker needs to seek.
//
// # Encoding
//
// Encoder renders an audio.Buffer as 16-bit PCM. Samples outside [-1,1] are
// clamped. The header sizes are patched once the data is written, so the file
// is assembled in a github.com/orcaman/writerseeker buffer and copied to the
// destination in one piece:
//
//	var out bytes.Buffer
//	err := wav.Encoder{}.Encode(&out, buf)
//
// Encoding the same buffer twice yields identical bytes.
package wav
