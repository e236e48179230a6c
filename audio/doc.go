// SPDX-License-Identifier: EPL-2.0

// Package audio provides the streaming building blocks the mixer is made of.
//
// Everything is a Source: a pull-based stream of interleaved float32 samples
// in [-1,1] with a fixed rate and channel count.
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Decoders produce Sources, the stages below wrap them, and ReadAll collects
// the result into a Buffer that an Encoder can write out.
//
// # Stages
//
//   - Resampler converts the sample rate with cubic interpolation.
//   - ChannelMapper converts the channel count. NewMonoMixer averages down to
//     one channel; mono input is duplicated when widening.
//   - Looper repeats a decoded Buffer, or cuts it, to an exact frame count.
//   - Fader applies linear fade-in and fade-out ramps over a known length.
//   - Gain applies a static attenuation given in decibels.
//   - Overlay sums a layer onto a base, clamping to [-1,1]. The output is
//     exactly as long as the base.
//
// A typical chain conforms the music to the speech and lays it underneath:
//
//	music = audio.NewChannelMapper(audio.NewResampler(music, rate), channels)
//	bed := audio.NewGain(audio.NewFader(audio.NewLooper(musicBuf, frames), frames, in, out), -10)
//	mix, err := audio.NewOverlay(speech, bed)
//	out, err := audio.ReadAll(mix)
//
// # Format Registry
//
// Registry maps format names to Decoders. Names are case-insensitive and a
// leading dot is ignored. Lookup falls back to the decoder installed with
// SetFallback when no exact entry exists. Sniff and DetectFormat pick the
// format from the content first and the file name second.
//
// # Errors
//
// ReadSamples returns io.EOF at the end of a stream, possibly together with
// the last samples. Any other error is a decode or processing failure:
//
//	for {
//	    n, err := src.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
