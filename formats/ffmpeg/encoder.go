// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/wav"
)

const (
	MP3ContentType = "audio/mpeg"
	MP3Extension   = "mp3"
	DefaultBitrate = "192k"
)

// MP3Encoder renders a Buffer to MP3 through ffmpeg's libmp3lame.
// The buffer is handed over as an in-memory WAV file.
type MP3Encoder struct {
	Tool    Tool
	Bitrate string
}

func (MP3Encoder) ContentType() string { return MP3ContentType }
func (MP3Encoder) Extension() string   { return MP3Extension }

func (e MP3Encoder) Encode(w io.Writer, b *audio.Buffer) error {
	// fail before rendering anything when the binary is missing
	if _, err := e.Tool.Available(); err != nil {
		return err
	}

	var pcm bytes.Buffer
	if err := (wav.Encoder{}).Encode(&pcm, b); err != nil {
		return fmt.Errorf("rendering wav for ffmpeg: %w", err)
	}

	bitrate := e.Bitrate
	if bitrate == "" {
		bitrate = DefaultBitrate
	}

	out, err := e.Tool.Run(pcm.Bytes(),
		"-f", "wav",
		"-i", "pipe:0",
		"-map_metadata", "-1",
		"-fflags", "+bitexact",
		"-flags:a", "+bitexact",
		"-codec:a", "libmp3lame",
		"-b:a", bitrate,
		"-f", "mp3",
		"pipe:1",
	)
	if err != nil {
		return err
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}
