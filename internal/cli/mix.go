// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/internal/server"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func (a *app) newMixCommand() *cobra.Command {
	var speechPath, musicPath, outPath string

	cmd := &cobra.Command{
		Use:   "mix",
		Short: "Mix two local files",
		Long: `Mix a speech file with a music file and write the result.

When --out is omitted the result is written to the current directory as
mixed_<speech>_<music>.<ext>.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.setup()
			if err != nil {
				return err
			}

			injector := NewInjector(cfg, log)
			defer injector.Shutdown()

			engine, err := do.Invoke[*audmix.Engine](injector)
			if err != nil {
				return fmt.Errorf("failed to build engine: %w", err)
			}

			if ext := strings.TrimPrefix(filepath.Ext(outPath), "."); outPath != "" && !strings.EqualFold(ext, engine.Extension()) {
				log.Warn("output file extension does not match the encoded format",
					slog.String("file", outPath),
					slog.String("format", engine.Extension()),
				)
			}

			speech, err := os.ReadFile(speechPath)
			if err != nil {
				return fmt.Errorf("reading speech: %w", err)
			}
			music, err := os.ReadFile(musicPath)
			if err != nil {
				return fmt.Errorf("reading music: %w", err)
			}

			res, err := engine.Mix(audmix.MixRequest{
				Speech: audmix.Input{Data: speech, Hint: filepath.Base(speechPath)},
				Music:  audmix.Input{Data: music, Hint: filepath.Base(musicPath)},
			})
			if err != nil {
				return err
			}

			if outPath == "" {
				outPath = server.OutputFilename(filepath.Base(speechPath), filepath.Base(musicPath), res.Extension)
			}
			if err := os.WriteFile(outPath, res.Data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}

			log.Info("mix written",
				slog.String("file", outPath),
				slog.Duration("duration", res.Duration),
				slog.Int("sample_rate", res.SampleRate),
				slog.Int("channels", res.Channels),
			)
			fmt.Fprintln(cmd.OutOrStdout(), outPath)

			return nil
		},
	}

	cmd.Flags().StringVarP(&speechPath, "speech", "s", "", "speech file")
	cmd.Flags().StringVarP(&musicPath, "music", "m", "", "background music file")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file")
	cmd.Flags().Duration("fade-in", audmix.DefaultFadeIn, "music fade-in length")
	cmd.Flags().Duration("fade-out", audmix.DefaultFadeOut, "music fade-out length")
	cmd.Flags().Float64("gain", audmix.DefaultMusicGainDB, "music level in dB, zero or negative")
	cmd.Flags().String("format", "mp3", "output format (mp3, wav)")
	cmd.Flags().String("bitrate", "192k", "mp3 bitrate")

	_ = cmd.MarkFlagRequired("speech")
	_ = cmd.MarkFlagRequired("music")

	mustBind(a.v, cmd.Flags(), map[string]string{
		"mix.fade_in":       "fade-in",
		"mix.fade_out":      "fade-out",
		"mix.music_gain_db": "gain",
		"mix.output_format": "format",
		"mix.mp3_bitrate":   "bitrate",
	})

	return cmd
}
