// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"log/slog"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/config"
	"github.com/ik5/audmix/formats/ffmpeg"
	"github.com/ik5/audmix/internal/server"
	"github.com/ik5/audmix/logger"
	"github.com/samber/do/v2"
)

// RegisterDI provides every service built from cfg. Services are lazy, so a
// command only constructs what it invokes.
func RegisterDI(injector do.Injector, cfg *config.Config, log *slog.Logger) {
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, log)

	do.Provide(injector, func(i do.Injector) (ffmpeg.Tool, error) {
		c := do.MustInvoke[*config.Config](i)
		return ffmpeg.Tool{Path: c.FFmpeg.Path, Timeout: c.FFmpeg.Timeout}, nil
	})

	do.Provide(injector, func(i do.Injector) (*audio.Registry, error) {
		c := do.MustInvoke[*config.Config](i)
		reg := audmix.NewNativeRegistry()
		reg.SetFallback(ffmpeg.Decoder{
			Tool:       do.MustInvoke[ffmpeg.Tool](i),
			SampleRate: c.FFmpeg.SampleRate,
			Channels:   c.FFmpeg.Channels,
		})
		return reg, nil
	})

	do.Provide(injector, func(i do.Injector) (audio.Encoder, error) {
		c := do.MustInvoke[*config.Config](i)
		return audmix.NewEncoder(c.Mix.OutputFormat, c.Mix.MP3Bitrate, do.MustInvoke[ffmpeg.Tool](i))
	})

	do.Provide(injector, func(i do.Injector) (*audmix.Engine, error) {
		c := do.MustInvoke[*config.Config](i)
		enc, err := do.Invoke[audio.Encoder](i)
		if err != nil {
			return nil, err
		}
		return audmix.NewEngine(audmix.Options{
			FadeIn:      c.Mix.FadeIn,
			FadeOut:     c.Mix.FadeOut,
			MusicGainDB: c.Mix.MusicGainDB,
			Registry:    do.MustInvoke[*audio.Registry](i),
			Encoder:     enc,
			Logger:      logger.WithComponent(do.MustInvoke[*slog.Logger](i), "engine"),
		})
	})

	do.Provide(injector, func(i do.Injector) (*server.Server, error) {
		c := do.MustInvoke[*config.Config](i)
		engine, err := do.Invoke[*audmix.Engine](i)
		if err != nil {
			return nil, err
		}
		return server.New(engine, c.Server, logger.WithComponent(do.MustInvoke[*slog.Logger](i), "server")), nil
	})
}

// NewInjector returns a fresh injector with RegisterDI applied.
func NewInjector(cfg *config.Config, log *slog.Logger) do.Injector {
	injector := do.New()
	RegisterDI(injector, cfg, log)

	return injector
}
