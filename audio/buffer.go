// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

// Buffer is a fully decoded PCM stream held in memory.
// Data holds interleaved float32 samples in [-1,1].
type Buffer struct {
	SampleRate int
	Channels   int
	Data       []float32
}

// Frames returns the number of sample frames (samples per channel).
func (b *Buffer) Frames() int {
	if b.Channels <= 0 {
		return 0
	}
	return len(b.Data) / b.Channels
}

// Duration is the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return FramesToDuration(b.Frames(), b.SampleRate)
}

// Source returns a new Source positioned at the start of the buffer.
// The buffer data is only read, never written.
func (b *Buffer) Source() Source {
	return &bufferSource{buf: b}
}

// FramesToDuration converts a frame count at rate to a duration.
func FramesToDuration(frames, rate int) time.Duration {
	return time.Duration(int64(frames) * int64(time.Second) / int64(rate))
}

// DurationToFrames converts d to a frame count at rate, rounding down.
// Results beyond the int range saturate.
func DurationToFrames(d time.Duration, rate int) int {
	if d <= 0 || rate <= 0 {
		return 0
	}

	// whole seconds and the remainder are scaled apart so d*rate never
	// has to fit in an int64
	sec, rem := int64(d/time.Second), int64(d%time.Second)
	if sec > (math.MaxInt64-int64(rate))/int64(rate) {
		return math.MaxInt
	}
	return int(sec*int64(rate) + rem*int64(rate)/int64(time.Second))
}

type bufferSource struct {
	buf *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *bufferSource) Channels() int   { return s.buf.Channels }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.buf.Channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.pos >= len(s.buf.Data) {
		return 0, io.EOF
	}

	n := copy(dst, s.buf.Data[s.pos:])
	s.pos += n

	if s.pos >= len(s.buf.Data) {
		return n, io.EOF
	}
	return n, nil
}

// ReadAll drains src into a Buffer and closes it.
// A stream that ends without producing a single frame yields ErrEmptyStream.
func ReadAll(src Source) (*Buffer, error) {
	channels := src.Channels()
	rate := src.SampleRate()
	if channels <= 0 || rate <= 0 {
		_ = src.Close()
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidFormat, rate, channels)
	}

	size := src.BufSize()
	if size < channels {
		size = 4096
	}
	size -= size % channels

	out := &Buffer{SampleRate: rate, Channels: channels}
	buf := make([]float32, size)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			out.Data = append(out.Data, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			// Some decoders report (0, nil) at end of stream.
			break
		}
	}

	if err := src.Close(); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	// Drop a trailing partial frame.
	out.Data = out.Data[:out.Frames()*channels]
	if len(out.Data) == 0 {
		return nil, ErrEmptyStream
	}

	return out, nil
}
