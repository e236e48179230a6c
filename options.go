// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"log/slog"
	"math"
	"time"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/ffmpeg"
)

const (
	DefaultFadeIn      = 2 * time.Second
	DefaultFadeOut     = 2 * time.Second
	DefaultMusicGainDB = -10.0
)

// Options tune an Engine. The zero value of a pointer field selects its
// default; the numeric fields are taken as given.
type Options struct {
	// FadeIn is the length of the music fade-in, capped at the speech length.
	FadeIn time.Duration
	// FadeOut is the length of the music fade-out, capped at the speech length.
	FadeOut time.Duration
	// MusicGainDB is the static level applied to the music. Must be <= 0.
	MusicGainDB float64

	// Registry supplies decoders. nil means NewRegistry(ffmpeg.Tool{}).
	Registry *audio.Registry
	// Encoder renders the mix. nil means MP3 through ffmpeg.
	Encoder audio.Encoder
	// Logger receives per-stage debug logs. nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the settings of the original deployment with
// symmetric two second fades.
func DefaultOptions() Options {
	return Options{
		FadeIn:      DefaultFadeIn,
		FadeOut:     DefaultFadeOut,
		MusicGainDB: DefaultMusicGainDB,
	}
}

func (o Options) validate() error {
	if o.FadeIn < 0 {
		return &InvalidInputError{Field: "fade-in", Reason: "must not be negative"}
	}
	if o.FadeOut < 0 {
		return &InvalidInputError{Field: "fade-out", Reason: "must not be negative"}
	}
	if math.IsNaN(o.MusicGainDB) || math.IsInf(o.MusicGainDB, 0) {
		return &InvalidInputError{Field: "music gain", Reason: "must be a finite number"}
	}
	if o.MusicGainDB > 0 {
		return &InvalidInputError{Field: "music gain", Reason: "must not raise the music above 0 dB"}
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.Registry == nil {
		o.Registry = NewRegistry(ffmpeg.Tool{})
	}
	if o.Encoder == nil {
		o.Encoder = ffmpeg.MP3Encoder{}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}
