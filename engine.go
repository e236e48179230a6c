// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ik5/audmix/audio"
)

// Input is one uploaded audio file.
type Input struct {
	// Data is the encoded file. It is only read.
	Data []byte
	// Hint is a filename or extension. Content sniffing takes precedence;
	// the hint is used only when the content is not recognized.
	Hint string
}

// MixRequest pairs the speech track with the background music.
type MixRequest struct {
	Speech Input
	Music  Input
}

// MixResult is the encoded mix.
type MixResult struct {
	Data        []byte
	ContentType string
	// Extension of the output format, without the dot.
	Extension  string
	Duration   time.Duration
	SampleRate int
	Channels   int
}

// Engine lays background music under speech. An Engine holds no per-call
// state and is safe for concurrent use.
type Engine struct {
	fadeIn   time.Duration
	fadeOut  time.Duration
	gainDB   float64
	registry *audio.Registry
	encoder  audio.Encoder
	log      *slog.Logger
}

func NewEngine(opts Options) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	return &Engine{
		fadeIn:   opts.FadeIn,
		fadeOut:  opts.FadeOut,
		gainDB:   opts.MusicGainDB,
		registry: opts.Registry,
		encoder:  opts.Encoder,
		log:      opts.Logger,
	}, nil
}

// ContentType of the results this engine produces.
func (e *Engine) ContentType() string { return e.encoder.ContentType() }

// Extension of the results this engine produces.
func (e *Engine) Extension() string { return e.encoder.Extension() }

// Mix decodes both inputs, matches the music to the speech length, fades and
// attenuates it, overlays it beneath the speech and encodes the result.
// Errors are *DecodeError, *EncodeError or *InvalidInputError.
func (e *Engine) Mix(req MixRequest) (*MixResult, error) {
	speech, err := e.Decode(InputSpeech, req.Speech)
	if err != nil {
		return nil, err
	}

	music, err := e.Decode(InputMusic, req.Music)
	if err != nil {
		return nil, err
	}

	mixed, err := e.MixBuffers(speech, music)
	if err != nil {
		return nil, err
	}

	e.log.Debug("encoding mix", slog.String("format", e.encoder.Extension()))

	var out bytes.Buffer
	if err := e.encoder.Encode(&out, mixed); err != nil {
		return nil, &EncodeError{Format: e.encoder.Extension(), Err: err}
	}

	return &MixResult{
		Data:        out.Bytes(),
		ContentType: e.encoder.ContentType(),
		Extension:   e.encoder.Extension(),
		Duration:    mixed.Duration(),
		SampleRate:  mixed.SampleRate,
		Channels:    mixed.Channels,
	}, nil
}

// Decode reads one input into memory. name is InputSpeech or InputMusic and
// only labels errors.
func (e *Engine) Decode(name string, in Input) (*audio.Buffer, error) {
	if len(in.Data) == 0 {
		return nil, &DecodeError{
			Input: name,
			Err:   &InvalidInputError{Field: name, Reason: "empty buffer"},
		}
	}

	format := audio.DetectFormat(in.Data, in.Hint)
	dec, ok := e.registry.Lookup(format)
	if !ok {
		return nil, &DecodeError{Input: name, Format: format, Err: ErrUnsupportedFormat}
	}

	e.log.Debug("loading audio",
		slog.String("input", name),
		slog.String("format", format),
		slog.Int("bytes", len(in.Data)),
	)

	src, err := dec.Decode(bytes.NewReader(in.Data))
	if errors.Is(err, audio.ErrUnsupportedEncoding) {
		src, err = e.retryWithFallback(name, in.Data, err)
	}
	if err != nil {
		return nil, &DecodeError{Input: name, Format: format, Err: err}
	}

	buf, err := audio.ReadAll(src)
	if errors.Is(err, audio.ErrEmptyStream) {
		err = &InvalidInputError{Field: name, Reason: "no audio frames"}
	}
	if err != nil {
		return nil, &DecodeError{Input: name, Format: format, Err: err}
	}

	e.log.Debug("audio loaded",
		slog.String("input", name),
		slog.Duration("duration", buf.Duration()),
		slog.Int("sample_rate", buf.SampleRate),
		slog.Int("channels", buf.Channels),
	)

	return buf, nil
}

// retryWithFallback hands input the native decoder could not read to the
// registry fallback. cause is returned unchanged when there is none.
func (e *Engine) retryWithFallback(name string, data []byte, cause error) (audio.Source, error) {
	fallback, ok := e.registry.Fallback()
	if !ok {
		return nil, cause
	}

	e.log.Debug("native decoder rejected input, using fallback",
		slog.String("input", name),
		slog.String("reason", cause.Error()),
	)

	src, err := fallback.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w; fallback: %w", cause, err)
	}
	return src, nil
}

// MixBuffers runs the mixing stages on decoded audio and returns a new buffer
// with the speech sample rate, the wider of the two channel layouts and
// exactly as many frames as the speech. Neither argument is modified.
func (e *Engine) MixBuffers(speech, music *audio.Buffer) (*audio.Buffer, error) {
	if speech == nil || speech.Frames() == 0 {
		return nil, &InvalidInputError{Field: InputSpeech, Reason: "no audio frames"}
	}
	if music == nil || music.Frames() == 0 {
		return nil, &InvalidInputError{Field: InputMusic, Reason: "no audio frames"}
	}

	rate := speech.SampleRate
	channels := max(speech.Channels, music.Channels)
	frames := speech.Frames()

	e.log.Debug("speech duration", slog.Duration("duration", speech.Duration()))

	if music.SampleRate != rate {
		e.log.Debug("resampling music",
			slog.Int("from", music.SampleRate),
			slog.Int("to", rate),
		)

		resampled, err := audio.ReadAll(audio.NewResampler(music.Source(), rate))
		if err != nil {
			return nil, fmt.Errorf("resampling music: %w", err)
		}
		music = resampled
	}

	looper := audio.NewLooper(music, frames)
	if music.Frames() < frames {
		e.log.Debug("music is shorter than speech, looping", slog.Int("loops", looper.Loops()))
	}

	fadeIn := audio.DurationToFrames(e.fadeIn, rate)
	fadeOut := audio.DurationToFrames(e.fadeOut, rate)

	e.log.Debug("shaping music",
		slog.Duration("adjusted_duration", audio.FramesToDuration(frames, rate)),
		slog.Duration("fade_in", audio.FramesToDuration(min(fadeIn, frames), rate)),
		slog.Duration("fade_out", audio.FramesToDuration(min(fadeOut, frames), rate)),
		slog.Float64("gain_db", e.gainDB),
	)

	var bed audio.Source = audio.NewChannelMapper(looper, channels)
	bed = audio.NewFader(bed, frames, fadeIn, fadeOut)
	bed = audio.NewGain(bed, e.gainDB)

	voice := audio.NewChannelMapper(speech.Source(), channels)

	e.log.Debug("mixing speech and music")

	overlay, err := audio.NewOverlay(voice, bed)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	mixed, err := audio.ReadAll(overlay)
	if err != nil {
		return nil, fmt.Errorf("mixing: %w", err)
	}

	return mixed, nil
}
