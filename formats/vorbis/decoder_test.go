// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audmix/audio"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing. Like the
// real reader it fills whole frames and reports the number of samples.
type mockOggVorbisReader struct {
	sampleRate   int
	channels     int
	samples      []float32
	offset       int
	returnErrors bool
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.returnErrors {
		return 0, io.ErrUnexpectedEOF
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	n := min(len(buf), len(m.samples)-m.offset)
	n -= n % m.channels
	copy(buf, m.samples[m.offset:m.offset+n])
	m.offset += n

	return n, nil
}

func newTestSource(m *mockOggVorbisReader) *source {
	return &source{dec: m, sampleRate: m.sampleRate, channels: m.channels}
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"text", []byte("This is not Ogg Vorbis data")},
		{"empty", nil},
		{"bare ogg magic", []byte("OggS\x00\x02")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); err == nil {
				t.Error("Decode() error = nil, want error")
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{sampleRate: 48000, channels: 2})

	if src.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() <= 0 {
		t.Errorf("BufSize() = %d, want > 0", src.BufSize())
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		dstLen   int
	}{
		{"mono", 1, 5},
		{"stereo", 2, 4},
		{"stereo odd dst", 2, 5},
		{"5.1", 6, 12},
		{"5.1 short dst", 6, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			samples := make([]float32, 10*tt.channels)
			for i := range samples {
				samples[i] = float32(i) / float32(len(samples))
			}
			src := newTestSource(&mockOggVorbisReader{sampleRate: 44100, channels: tt.channels, samples: samples})

			var got []float32
			dst := make([]float32, tt.dstLen)
			for {
				n, err := src.ReadSamples(dst)
				if n%tt.channels != 0 {
					t.Fatalf("ReadSamples() = %d, not whole frames", n)
				}
				got = append(got, dst[:n]...)
				if err == io.EOF {
					break
				}
				if err != nil {
					t.Fatalf("ReadSamples() error = %v", err)
				}
			}

			if len(got) != len(samples) {
				t.Fatalf("read %d samples, want %d", len(got), len(samples))
			}
			for i := range samples {
				if got[i] != samples[i] {
					t.Fatalf("sample %d = %v, want %v", i, got[i], samples[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_DstSmallerThanFrame(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: []float32{0.1, 0.2}})

	n, err := src.ReadSamples(make([]float32, 1))
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(1) = %d, %v; want 0, nil", n, err)
	}

	n, err = src.ReadSamples(nil)
	if n != 0 || err != nil {
		t.Errorf("ReadSamples(nil) = %d, %v; want 0, nil", n, err)
	}
}

func TestSource_ReadSamples_EOF(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{sampleRate: 44100, channels: 1, samples: []float32{0.5}})

	buf, err := audio.ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(buf.Data) != 1 || buf.Data[0] != 0.5 {
		t.Errorf("ReadAll() = %v, want [0.5]", buf.Data)
	}

	for range 2 {
		if n, err := src.ReadSamples(make([]float32, 4)); n != 0 || err != io.EOF {
			t.Errorf("ReadSamples() after end = %d, %v; want 0, io.EOF", n, err)
		}
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newTestSource(&mockOggVorbisReader{sampleRate: 44100, channels: 2, returnErrors: true})

	_, err := src.ReadSamples(make([]float32, 8))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func BenchmarkSource_ReadSamples(b *testing.B) {
	samples := make([]float32, 2*44100)
	dst := make([]float32, 4096)
	b.ReportAllocs()

	for b.Loop() {
		src := newTestSource(&mockOggVorbisReader{sampleRate: 44100, channels: 2, samples: samples})
		for {
			if _, err := src.ReadSamples(dst); err != nil {
				break
			}
		}
	}
}
