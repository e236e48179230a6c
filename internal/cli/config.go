// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ik5/audmix/config"
	"github.com/ik5/audmix/logger"
	"github.com/spf13/cobra"
)

func (a *app) newConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management commands",
		Long:  "Commands for inspecting and validating audmix configuration.",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "validate",
			Short: "Validate configuration",
			Long:  "Validate the current configuration file and environment variables.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				logger.Setup("info", "text")

				if _, err := a.loadConfig(); err != nil {
					slog.Error("Configuration validation failed", slog.Any("error", err))
					return err
				}

				slog.Info("Configuration is valid")
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show current configuration",
			Long:  "Display the configuration values resolved from defaults, file and environment.",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				logger.Setup("info", "text")

				cfg, err := config.Load(a.v, a.cfgFile)
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}

				printConfig(cmd, cfg)
				return nil
			},
		},
	)

	return cmd
}

func printConfig(cmd *cobra.Command, cfg *config.Config) {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w, "Current Configuration:")
	fmt.Fprintf(w, "  Mix:\n")
	fmt.Fprintf(w, "    Fade in: %s\n", cfg.Mix.FadeIn)
	fmt.Fprintf(w, "    Fade out: %s\n", cfg.Mix.FadeOut)
	fmt.Fprintf(w, "    Music gain: %.1f dB\n", cfg.Mix.MusicGainDB)
	fmt.Fprintf(w, "    Output format: %s\n", cfg.Mix.OutputFormat)
	fmt.Fprintf(w, "    MP3 bitrate: %s\n", cfg.Mix.MP3Bitrate)
	fmt.Fprintf(w, "  FFmpeg:\n")
	fmt.Fprintf(w, "    Path: %s\n", cfg.FFmpeg.Path)
	fmt.Fprintf(w, "    Timeout: %s\n", cfg.FFmpeg.Timeout)
	fmt.Fprintf(w, "    Decode rate: %d Hz, %d channels\n", cfg.FFmpeg.SampleRate, cfg.FFmpeg.Channels)
	fmt.Fprintf(w, "  Server:\n")
	fmt.Fprintf(w, "    Address: %s\n", cfg.Server.Addr)
	fmt.Fprintf(w, "    Max upload: %d bytes\n", cfg.Server.MaxUploadBytes)
	fmt.Fprintf(w, "    Allowed extensions: %s\n", strings.Join(cfg.Server.AllowedExtensions, ", "))
	fmt.Fprintf(w, "  Logging:\n")
	fmt.Fprintf(w, "    Level: %s\n", cfg.Logging.Level)
	fmt.Fprintf(w, "    Format: %s\n", cfg.Logging.Format)
}
