// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

// go-mp3 always renders interleaved stereo, 16-bit little-endian.
const (
	channels       = 2
	bytesPerSample = 2
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	buf        []byte
	carry      []byte // partial frame left over from the previous read
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / bytesPerSample }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	frameBytes := s.channels * bytesPerSample
	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n := copy(s.buf, s.carry)
	s.carry = s.carry[:0]

	var err error
	for n < frameBytes && err == nil {
		var m int
		m, err = s.dec.Read(s.buf[n:])
		n += m
		if m == 0 && err == nil {
			err = io.EOF
		}
	}
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("%w", err)
	}

	whole := n - n%frameBytes
	if err == nil && whole < n {
		s.carry = append(s.carry, s.buf[whole:n]...)
	}
	if whole == 0 {
		return 0, io.EOF
	}

	samples := whole / bytesPerSample
	for i := range samples {
		dst[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(s.buf[2*i:])))
	}

	return samples, err
}

// Decoder reads MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   channels,
		buf:        make([]byte, 8192),
	}, nil
}
