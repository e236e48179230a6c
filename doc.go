// SPDX-License-Identifier: EPL-2.0

// Package audmix lays background music under a speech recording.
//
// An Engine takes two encoded audio files and returns one encoded mix:
//
//	engine, _ := audmix.NewEngine(audmix.DefaultOptions())
//	res, err := engine.Mix(audmix.MixRequest{
//	    Speech: audmix.Input{Data: speechBytes, Hint: "talk.wav"},
//	    Music:  audmix.Input{Data: musicBytes, Hint: "bed.mp3"},
//	})
//	// res.Data is an MP3 of exactly the speech length
//
// # Pipeline
//
// Mix runs these stages, each built from the audio subpackage:
//  1. Decode both inputs (format sniffed from content, the hint is a fallback)
//  2. Resample the music to the speech sample rate when they differ
//  3. Loop or cut the music to exactly the speech length (audio.Looper)
//  4. Fade the music in and out (audio.Fader)
//  5. Lower the music by a fixed number of decibels (audio.Gain)
//  6. Sum speech and music, clamping to full scale (audio.Overlay)
//  7. Encode with the configured audio.Encoder
//
// The output takes the speech sample rate and the wider of the two channel
// layouts.
//
// # Formats
//
// Decoding is native for WAV, MP3, Ogg Vorbis, AIFF and FLAC. Anything else
// (M4A, AAC, WMA, Opus) goes through the ffmpeg binary when it is installed.
// Output is MP3 through ffmpeg by default, or 16-bit PCM WAV without any
// external tool:
//
//	opts := audmix.DefaultOptions()
//	opts.Encoder = wav.Encoder{}
//
// # Errors
//
// Mix returns *DecodeError naming the input that failed, *EncodeError when the
// output cannot be rendered, or *InvalidInputError for structural problems.
// An empty input is reported as a *DecodeError whose cause is an
// *InvalidInputError, so errors.As matches both.
package audmix
