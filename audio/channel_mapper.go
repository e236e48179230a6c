// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMapper converts an interleaved stream to a different channel count.
//
// Downmix to mono averages all input channels. Upmix from mono duplicates the
// single channel. Between two multi-channel layouts the shared channels are
// copied and any extra output channel carries the average of the input.
type ChannelMapper struct {
	src Source
	out int
	tmp []float32
}

func NewChannelMapper(src Source, channels int) *ChannelMapper {
	return &ChannelMapper{
		src: src,
		out: channels,
		tmp: make([]float32, 4096),
	}
}

// NewMonoMixer converts src to mono by averaging channels.
func NewMonoMixer(src Source) *ChannelMapper {
	return NewChannelMapper(src, 1)
}

func (m *ChannelMapper) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMapper) Channels() int   { return m.out }
func (m *ChannelMapper) BufSize() int    { return m.src.BufSize() }
func (m *ChannelMapper) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

func (m *ChannelMapper) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}

	in := m.src.Channels()
	if in == m.out {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.out
	need := frames * in

	// grow tmp without shrinking it
	if cap(m.tmp) < need {
		m.tmp = make([]float32, max(need, 8192))
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp)
	if n == 0 {
		return 0, err
	}
	frames = n / in

	switch {
	case m.out == 1:
		downmix(dst, m.tmp, frames, in)
	case in == 1:
		for f := range frames {
			v := m.tmp[f]
			base := f * m.out
			for c := range m.out {
				dst[base+c] = v
			}
		}
	default:
		shared := min(in, m.out)
		inv := float32(1.0) / float32(in)
		for f := range frames {
			src := m.tmp[f*in : f*in+in]
			out := dst[f*m.out : f*m.out+m.out]
			copy(out, src[:shared])
			if shared < m.out {
				sum := float32(0)
				for _, v := range src {
					sum += v
				}
				for c := shared; c < m.out; c++ {
					out[c] = sum * inv
				}
			}
		}
	}

	return frames * m.out, err
}

// downmix averages interleaved frames of in channels into mono dst.
func downmix(dst, src []float32, frames, in int) {
	switch in {
	case 2:
		for f := range frames {
			idx := f << 1
			dst[f] = (src[idx] + src[idx+1]) * 0.5
		}
	case 4:
		for f := range frames {
			idx := f << 2
			dst[f] = (src[idx] + src[idx+1] + src[idx+2] + src[idx+3]) * 0.25
		}
	default:
		inv := float32(1.0) / float32(in)
		for f := range frames {
			sum := float32(0)
			base := f * in
			for c := range in {
				sum += src[base+c]
			}
			dst[f] = sum * inv
		}
	}
}
