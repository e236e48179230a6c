// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audmix/utils"
)

// Resampler streams from src to a target sample rate using cubic interpolation.
// Works on interleaved samples; preserves channel count.
// A one-pole low-pass runs on the input when downsampling.
type Resampler struct {
	src      Source
	dstRate  int
	ratio    float64 // source frames per output frame
	channels int

	// window of 4 frames around the read position:
	// win[0] = t-1, win[1] = t0, win[2] = t+1, win[3] = t+2
	// Slots past the end of the source repeat the last frame and are not real.
	win  [4][]float32
	real [4]bool
	pos  float64 // fractional position between win[1] and win[2]

	frame  []float32
	primed bool
	eof    bool

	lowPass bool
	seeded  bool
	alpha   float32
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	ratio := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		ratio:    ratio,
		channels: channels,
		frame:    make([]float32, channels),
		lowPass:  ratio > 1.0,
		alpha:    0.5,
		state:    make([]float32, channels),
	}

	for i := range r.win {
		r.win[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// readFrame pulls one frame from src into r.frame.
func (r *Resampler) readFrame() (bool, error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.frame)
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("%w", err)
	}
	if err == io.EOF {
		r.eof = true
	}
	if n < r.channels {
		return false, nil
	}

	if r.lowPass {
		if !r.seeded {
			// start the filter at the first sample to avoid a ramp from zero
			copy(r.state, r.frame)
			r.seeded = true
		}
		for c := range r.channels {
			r.frame[c] = r.alpha*r.frame[c] + (1-r.alpha)*r.state[c]
			r.state[c] = r.frame[c]
		}
	}
	return true, nil
}

// prime fills the initial window. win[0] and win[1] both start on the first frame.
func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.readFrame()
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	copy(r.win[0], r.frame)
	copy(r.win[1], r.frame)
	r.real[1] = true

	for i := 2; i < len(r.win); i++ {
		ok, err := r.readFrame()
		if err != nil {
			return err
		}
		if ok {
			copy(r.win[i], r.frame)
			r.real[i] = true
			continue
		}
		copy(r.win[i], r.win[i-1])
	}
	return nil
}

// advance shifts the window by one source frame.
func (r *Resampler) advance() error {
	copy(r.win[0], r.win[1])
	copy(r.win[1], r.win[2])
	copy(r.win[2], r.win[3])
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]

	ok, err := r.readFrame()
	if err != nil {
		return err
	}
	if ok {
		copy(r.win[3], r.frame)
	}
	r.real[3] = ok

	if !r.real[1] {
		return io.EOF
	}
	return nil
}

// ReadSamples produces dst samples at the target rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}
	if !r.real[1] {
		return 0, io.EOF
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}

		x := float32(r.pos)
		base := written * r.channels
		for c := range r.channels {
			dst[base+c] = utils.CubicInterpolate(r.win[0][c], r.win[1][c], r.win[2][c], r.win[3][c], x)
		}

		written++
		r.pos += r.ratio
	}

	return written * r.channels, nil
}
