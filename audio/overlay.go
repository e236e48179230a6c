// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Overlay sums two aligned streams sample for sample, starting both at time
// zero. The output ends with base; if layer ends first the rest of base passes
// through alone. Sums are clamped to [-1,1].
// Both streams must share sample rate and channel count.
type Overlay struct {
	base  Source
	layer Source
	tmp   []float32

	layerDone bool
}

func NewOverlay(base, layer Source) (*Overlay, error) {
	if base.SampleRate() != layer.SampleRate() || base.Channels() != layer.Channels() {
		return nil, fmt.Errorf("%w: %d Hz/%d ch over %d Hz/%d ch", ErrFormatMismatch,
			layer.SampleRate(), layer.Channels(), base.SampleRate(), base.Channels())
	}

	return &Overlay{
		base:  base,
		layer: layer,
		tmp:   make([]float32, 4096),
	}, nil
}

func (o *Overlay) SampleRate() int { return o.base.SampleRate() }
func (o *Overlay) Channels() int   { return o.base.Channels() }
func (o *Overlay) BufSize() int    { return o.base.BufSize() }

func (o *Overlay) Close() error {
	return errors.Join(o.base.Close(), o.layer.Close())
}

func (o *Overlay) ReadSamples(dst []float32) (int, error) {
	n, err := o.base.ReadSamples(dst)
	if n == 0 {
		return 0, err
	}

	if cap(o.tmp) < n {
		o.tmp = make([]float32, n)
	}

	got := 0
	for !o.layerDone && got < n {
		m, lerr := o.layer.ReadSamples(o.tmp[got:n])
		got += m
		if lerr == io.EOF {
			o.layerDone = true
			break
		}
		if lerr != nil {
			return 0, fmt.Errorf("reading overlay layer: %w", lerr)
		}
		if m == 0 {
			break
		}
	}

	for i := range got {
		v := dst[i] + o.tmp[i]
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		dst[i] = v
	}
	for i := got; i < n; i++ {
		if dst[i] > 1 {
			dst[i] = 1
		} else if dst[i] < -1 {
			dst[i] = -1
		}
	}

	return n, err
}
