// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"encoding/binary"
	"fmt"
	"io"
	"strconv"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

const (
	DefaultSampleRate = 44100
	DefaultChannels   = 2
)

// Decoder transcodes any input ffmpeg understands (AAC, M4A, WMA, Opus, ...)
// into signed 16-bit PCM at a fixed rate and channel count.
type Decoder struct {
	Tool       Tool
	SampleRate int
	Channels   int
}

func (d Decoder) rate() int {
	if d.SampleRate <= 0 {
		return DefaultSampleRate
	}
	return d.SampleRate
}

func (d Decoder) channels() int {
	if d.Channels <= 0 {
		return DefaultChannels
	}
	return d.Channels
}

func (d Decoder) Decode(r io.Reader) (audio.Source, error) {
	input, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	rate, channels := d.rate(), d.channels()
	raw, err := d.Tool.Run(input,
		"-i", "pipe:0",
		"-vn",
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(rate),
		"-ac", strconv.Itoa(channels),
		"pipe:1",
	)
	if err != nil {
		return nil, err
	}

	return PCMToBuffer(raw, rate, channels).Source(), nil
}

// PCMToBuffer converts interleaved s16le bytes to a Buffer.
// A trailing partial sample or frame is dropped.
func PCMToBuffer(raw []byte, rate, channels int) *audio.Buffer {
	samples := len(raw) / 2
	samples -= samples % channels

	data := make([]float32, samples)
	for i := range data {
		data[i] = utils.Int16ToFloat32(int16(binary.LittleEndian.Uint16(raw[2*i:])))
	}

	return &audio.Buffer{SampleRate: rate, Channels: channels, Data: data}
}
