// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	"github.com/ik5/audmix/utils"
)

// Gain scales every sample of src by a fixed level given in decibels.
type Gain struct {
	src Source
	mul float32
}

func NewGain(src Source, db float64) *Gain {
	return &Gain{
		src: src,
		mul: utils.DBToGain(db),
	}
}

func (g *Gain) SampleRate() int { return g.src.SampleRate() }
func (g *Gain) Channels() int   { return g.src.Channels() }
func (g *Gain) BufSize() int    { return g.src.BufSize() }
func (g *Gain) Close() error {
	if err := g.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (g *Gain) ReadSamples(dst []float32) (int, error) {
	n, err := g.src.ReadSamples(dst)
	if g.mul == 1 {
		return n, err
	}
	for i := range n {
		dst[i] *= g.mul
	}
	return n, err
}
