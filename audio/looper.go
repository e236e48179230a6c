// SPDX-License-Identifier: EPL-2.0

package audio

import "io"

// Looper plays a Buffer from the start, repeating it end to end until exactly
// total frames have been produced. A longer buffer is cut to its leading
// total frames; a shorter one wraps around. Nothing is resampled or padded.
type Looper struct {
	buf   *Buffer
	total int // frames to produce
	done  int // frames produced
	pos   int // sample offset into buf.Data
}

func NewLooper(buf *Buffer, totalFrames int) *Looper {
	return &Looper{
		buf:   buf,
		total: totalFrames,
	}
}

func (l *Looper) SampleRate() int { return l.buf.SampleRate }
func (l *Looper) Channels() int   { return l.buf.Channels }
func (l *Looper) BufSize() int    { return 4096 }
func (l *Looper) Close() error    { return nil }

// Loops reports how many times the buffer is started over the full length,
// counting a partial final pass.
func (l *Looper) Loops() int {
	frames := l.buf.Frames()
	if frames == 0 {
		return 0
	}
	return (l.total + frames - 1) / frames
}

func (l *Looper) ReadSamples(dst []float32) (int, error) {
	ch := l.buf.Channels
	if len(dst)%ch != 0 {
		return 0, ErrInvalidDstSize
	}
	if l.done >= l.total || len(l.buf.Data) == 0 {
		return 0, io.EOF
	}

	want := min(len(dst)/ch, l.total-l.done) * ch
	n := 0
	for n < want {
		if l.pos >= len(l.buf.Data) {
			l.pos = 0
		}
		c := copy(dst[n:want], l.buf.Data[l.pos:])
		l.pos += c
		n += c
	}
	l.done += n / ch

	if l.done >= l.total {
		return n, io.EOF
	}
	return n, nil
}
