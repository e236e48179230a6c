// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"log/slog"

	"github.com/ik5/audmix/config"
	"github.com/ik5/audmix/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// app carries the state shared by every command of one root.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
}

// NewRootCommand builds the audmix command tree on its own viper instance.
func NewRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "audmix",
		Short: "Lay background music under a speech recording",
		Long: `audmix mixes a speech recording with background music.

The music is looped or cut to the length of the speech, faded in and out,
attenuated and mixed beneath the speech. The result is written as MP3 or WAV,
either from the command line or through an HTTP upload endpoint.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "text", "log format (text, json)")

	mustBind(a.v, root.PersistentFlags(), map[string]string{
		"logging.level":  "log-level",
		"logging.format": "log-format",
	})

	root.AddCommand(
		a.newMixCommand(),
		a.newServeCommand(),
		a.newConfigCommand(),
		newVersionCommand(),
	)

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		return 1
	}
	return 0
}

// loadConfig reads the configuration, applies --verbose and validates it.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if a.verbose {
		cfg.Logging.Level = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// setup loads the configuration and installs the logger it names.
func (a *app) setup() (*config.Config, *slog.Logger, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger.Setup(cfg.Logging.Level, cfg.Logging.Format), nil
}

// mustBind binds config keys to flags. A missing flag is a programming error.
func mustBind(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for key, name := range keys {
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			panic(fmt.Sprintf("binding %s to --%s: %v", key, name, err))
		}
	}
}
