// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Fader applies a linear fade-in at the start and a linear fade-out at the end
// of a stream whose length in frames is known in advance.
//
// The fade-in gain is 0 on the first frame and reaches 1 after fadeIn frames.
// The fade-out gain reaches 0 on the last frame. Both windows are capped at
// the stream length; where they overlap the lower gain applies.
type Fader struct {
	src     Source
	total   int
	fadeIn  int
	fadeOut int
	frame   int // index of the next frame to be read
}

func NewFader(src Source, totalFrames, fadeInFrames, fadeOutFrames int) *Fader {
	return &Fader{
		src:     src,
		total:   totalFrames,
		fadeIn:  min(max(fadeInFrames, 0), totalFrames),
		fadeOut: min(max(fadeOutFrames, 0), totalFrames),
	}
}

func (f *Fader) SampleRate() int { return f.src.SampleRate() }
func (f *Fader) Channels() int   { return f.src.Channels() }
func (f *Fader) BufSize() int    { return f.src.BufSize() }
func (f *Fader) Close() error {
	if err := f.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// GainAt returns the amplitude multiplier of frame i.
func (f *Fader) GainAt(i int) float32 {
	g := float32(1)
	if f.fadeIn > 0 && i < f.fadeIn {
		g = float32(i) / float32(f.fadeIn)
	}
	if f.fadeOut > 0 {
		left := f.total - 1 - i // frames after i
		if left < f.fadeOut {
			out := float32(max(left, 0)) / float32(f.fadeOut)
			g = min(g, out)
		}
	}
	return g
}

func (f *Fader) ReadSamples(dst []float32) (int, error) {
	n, err := f.src.ReadSamples(dst)
	ch := f.src.Channels()

	for i := 0; i+ch <= n; i += ch {
		g := f.GainAt(f.frame)
		if g != 1 {
			for c := range ch {
				dst[i+c] *= g
			}
		}
		f.frame++
	}

	return n, err
}
