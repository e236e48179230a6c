// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
	"github.com/orcaman/writerseeker"
)

const (
	ContentType = "audio/wav"
	Extension   = "wav"

	bitDepth   = 16
	chunkFrame = 8192 // frames per encoder write
)

// Encoder renders a Buffer as a 16-bit PCM WAV file.
type Encoder struct{}

func (Encoder) ContentType() string { return ContentType }
func (Encoder) Extension() string   { return Extension }

// Encode writes b to w. The RIFF header sizes are patched after the data is
// written, so the file is assembled in memory and copied to w once complete.
func (Encoder) Encode(w io.Writer, b *audio.Buffer) error {
	if b == nil || b.Frames() == 0 {
		return ErrEmptyBuffer
	}

	ws := &writerseeker.WriterSeeker{}
	if err := encodeTo(ws, b); err != nil {
		return err
	}

	if _, err := io.Copy(w, ws.BytesReader()); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func encodeTo(ws io.WriteSeeker, b *audio.Buffer) error {
	enc := gowav.NewEncoder(ws, b.SampleRate, bitDepth, b.Channels, formatPCM)

	chunk := chunkFrame * b.Channels
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: b.Channels, SampleRate: b.SampleRate},
		Data:           make([]int, min(chunk, len(b.Data))),
		SourceBitDepth: bitDepth,
	}

	for i := 0; i < len(b.Data); i += chunk {
		end := min(i+chunk, len(b.Data))
		buf.Data = buf.Data[:end-i]
		utils.Float32sToInts(buf.Data, b.Data[i:end])

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav samples: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav header: %w", err)
	}
	return nil
}
