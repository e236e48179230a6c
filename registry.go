// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"strings"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/aiff"
	"github.com/ik5/audmix/formats/ffmpeg"
	"github.com/ik5/audmix/formats/flac"
	"github.com/ik5/audmix/formats/mp3"
	"github.com/ik5/audmix/formats/vorbis"
	"github.com/ik5/audmix/formats/wav"
)

// NewRegistry returns a registry with every native decoder registered and
// ffmpeg, run through tool, as the fallback for anything else.
func NewRegistry(tool ffmpeg.Tool) *audio.Registry {
	reg := NewNativeRegistry()
	reg.SetFallback(ffmpeg.Decoder{Tool: tool})

	return reg
}

// NewNativeRegistry registers the pure Go decoders only.
func NewNativeRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("flac", flac.Decoder{})

	return reg
}

// NewEncoder returns the encoder for an output format: "mp3" or "wav".
func NewEncoder(format, bitrate string, tool ffmpeg.Tool) (audio.Encoder, error) {
	switch strings.ToLower(format) {
	case ffmpeg.MP3Extension:
		return ffmpeg.MP3Encoder{Tool: tool, Bitrate: bitrate}, nil
	case wav.Extension:
		return wav.Encoder{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoder, format)
	}
}
