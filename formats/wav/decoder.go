// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"
	"math"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/audmix/audio"
)

const (
	formatPCM        = 1
	formatIEEEFloat  = 3
	formatExtensible = 0xFFFE
)

// sampleEncoding returns the format tag of the fmt chunk. For
// WAVE_FORMAT_EXTENSIBLE it returns the tag carried in the SubFormat GUID.
// The reader is rewound before returning.
func sampleEncoding(rs io.ReadSeeker) (uint16, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	defer rs.Seek(0, io.SeekStart)

	p := riff.New(rs)
	if err := p.ParseHeaders(); err != nil {
		return 0, err
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, err
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}

		var tag uint16
		if err := ch.ReadLE(&tag); err != nil {
			return 0, err
		}
		if tag != formatExtensible {
			return tag, nil
		}

		// SubFormat starts 24 bytes into the chunk
		if ch.Size < 40 {
			return 0, ErrUnsupportedWavLayout
		}
		var skip [22]byte
		if err := ch.ReadLE(&skip); err != nil {
			return 0, err
		}
		if err := ch.ReadLE(&tag); err != nil {
			return 0, err
		}
		return tag, nil
	}
}

// wavReader is an interface for gowav.Decoder to allow testing
type wavReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type source struct {
	dec        wavReader
	sampleRate int
	channels   int
	bitDepth   int
	float      bool
	intBuf     *goaudio.IntBuffer
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int {
	if s.intBuf != nil {
		return cap(s.intBuf.Data)
	}
	return 4096
}

// scale returns the divisor and offset that map a raw sample to [-1,1).
// 8-bit WAV samples are unsigned.
func scale(bitDepth int) (float32, float32) {
	switch bitDepth {
	case 8:
		return 128.0, 128.0
	case 24:
		return 8388608.0, 0
	case 32:
		return 2147483648.0, 0
	default:
		return 32768.0, 0
	}
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.intBuf == nil || cap(s.intBuf.Data) < len(dst) {
		s.intBuf = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.dec.Format(),
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.intBuf.Data = s.intBuf.Data[:len(dst)]
	}

	n, err := s.dec.PCMBuffer(s.intBuf)
	if n == 0 {
		if err != nil && err != io.EOF {
			return 0, fmt.Errorf("%w", err)
		}
		return 0, io.EOF
	}

	if s.float {
		// go-audio hands back the raw bits as a signed 32-bit integer
		for i := range n {
			v := math.Float32frombits(uint32(int32(s.intBuf.Data[i])))
			dst[i] = min(max(v, -1), 1)
		}
	} else {
		div, offset := scale(s.bitDepth)
		for i := range n {
			dst[i] = (float32(s.intBuf.Data[i]) - offset) / div
		}
	}

	if err == io.EOF || (err == nil && n < len(dst)) {
		return n, io.EOF
	}
	if err != nil {
		return n, fmt.Errorf("%w", err)
	}

	return n, nil
}

// Decoder reads RIFF/WAVE files holding integer PCM at 8, 16, 24 or 32 bits
// or 32-bit IEEE float, in plain or extensible fmt chunks. Other encodings
// fail with errors wrapping audio.ErrUnsupportedEncoding.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	// go-audio walks chunks with Seek
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	encoding, err := sampleEncoding(rs)
	if err != nil {
		return nil, ErrNotWavFile
	}
	if encoding != formatPCM && encoding != formatIEEEFloat {
		return nil, fmt.Errorf("%w: format tag 0x%04x", ErrOnlyPCMSupported, encoding)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	switch {
	case encoding == formatIEEEFloat && dec.BitDepth != 32:
		return nil, fmt.Errorf("%w: %d-bit float", ErrUnsupportedBitDepth, dec.BitDepth)
	case dec.BitDepth != 8 && dec.BitDepth != 16 && dec.BitDepth != 24 && dec.BitDepth != 32:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.SampleRate < 1 {
		return nil, ErrUnsupportedWavLayout
	}

	return &source{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		bitDepth:   int(dec.BitDepth),
		float:      encoding == formatIEEEFloat,
	}, nil
}
