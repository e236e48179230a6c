// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/ffmpeg"
	"github.com/ik5/audmix/internal/server"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func (a *app) newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP upload endpoint",
		Long: `Serve POST /mix, which takes multipart fields "speech" and "music" and
answers with the mixed file, and GET /healthz.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := a.setup()
			if err != nil {
				return err
			}

			injector := NewInjector(cfg, log)
			defer injector.Shutdown()

			srv, err := do.Invoke[*server.Server](injector)
			if err != nil {
				return fmt.Errorf("failed to build server: %w", err)
			}

			engine := do.MustInvoke[*audmix.Engine](injector)
			reg := do.MustInvoke[*audio.Registry](injector)
			log.Info("mixer ready",
				slog.String("output", engine.Extension()),
				slog.String("content_type", engine.ContentType()),
				slog.Any("native_formats", reg.Formats()),
			)
			if missing := undecodable(cfg.Server.AllowedExtensions, reg, do.MustInvoke[ffmpeg.Tool](injector)); len(missing) > 0 {
				log.Warn("ffmpeg not found, uploads of these types will be rejected", slog.Any("extensions", missing))
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringP("addr", "a", ":8080", "listen address")
	cmd.Flags().Int64("max-upload", 100*1024*1024, "maximum request body in bytes")
	cmd.Flags().StringSlice("allowed", nil, "allowed upload extensions")

	mustBind(a.v, cmd.Flags(), map[string]string{
		"server.addr":               "addr",
		"server.max_upload_bytes":   "max-upload",
		"server.allowed_extensions": "allowed",
	})

	return cmd
}
