// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"fmt"
	"io"

	"github.com/gopxl/beep/v2"
	beepflac "github.com/gopxl/beep/v2/flac"
	"github.com/ik5/audmix/audio"
)

// streamer is the subset of beep.StreamSeekCloser the source needs.
type streamer interface {
	Stream(samples [][2]float64) (n int, ok bool)
	Err() error
	Close() error
}

// source adapts a beep stream, which always yields stereo frames, to the
// channel count the FLAC stream actually carries.
type source struct {
	st         streamer
	sampleRate int
	channels   int
	frames     [][2]float64
	done       bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 }

func (s *source) Close() error {
	if err := s.st.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if s.done {
		return 0, io.EOF
	}

	want := len(dst) / s.channels
	if want == 0 {
		return 0, nil
	}
	if cap(s.frames) < want {
		s.frames = make([][2]float64, want)
	}
	s.frames = s.frames[:want]

	n, ok := s.st.Stream(s.frames)
	if err := s.st.Err(); err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	for f := range n {
		if s.channels == 1 {
			dst[f] = float32(s.frames[f][0])
			continue
		}
		dst[2*f] = float32(s.frames[f][0])
		dst[2*f+1] = float32(s.frames[f][1])
	}

	if !ok {
		s.done = true
		return n * s.channels, io.EOF
	}
	return n * s.channels, nil
}

// Decoder reads FLAC streams. Only mono and stereo layouts are supported.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	st, format, err := beepflac.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newSource(st, format)
}

func newSource(st streamer, format beep.Format) (audio.Source, error) {
	if format.NumChannels < 1 || format.NumChannels > 2 {
		_ = st.Close()
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedChannels, format.NumChannels)
	}

	return &source{
		st:         st,
		sampleRate: int(format.SampleRate),
		channels:   format.NumChannels,
	}, nil
}
