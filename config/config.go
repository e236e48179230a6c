// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. AUDMIX_MIX_FADE_IN.
const EnvPrefix = "AUDMIX"

// Config holds all configuration for the application
type Config struct {
	Mix     MixConfig     `mapstructure:"mix"`
	FFmpeg  FFmpegConfig  `mapstructure:"ffmpeg"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// MixConfig holds the mixing engine parameters
type MixConfig struct {
	FadeIn       time.Duration `mapstructure:"fade_in"`
	FadeOut      time.Duration `mapstructure:"fade_out"`
	MusicGainDB  float64       `mapstructure:"music_gain_db"`
	OutputFormat string        `mapstructure:"output_format"` // mp3 or wav
	MP3Bitrate   string        `mapstructure:"mp3_bitrate"`
}

// FFmpegConfig holds settings for the external ffmpeg binary
type FFmpegConfig struct {
	Path       string        `mapstructure:"path"`
	Timeout    time.Duration `mapstructure:"timeout"`
	SampleRate int           `mapstructure:"sample_rate"` // decode rate for formats without a native decoder
	Channels   int           `mapstructure:"channels"`
}

// ServerConfig holds the upload endpoint settings
type ServerConfig struct {
	Addr              string        `mapstructure:"addr"`
	MaxUploadBytes    int64         `mapstructure:"max_upload_bytes"`
	AllowedExtensions []string      `mapstructure:"allowed_extensions"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or text
}

// DefaultAllowedExtensions is the upload whitelist of the original service.
var DefaultAllowedExtensions = []string{"mp3", "wav", "ogg", "flac", "m4a", "aac", "wma"}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("mix.fade_in", "2s")
	v.SetDefault("mix.fade_out", "2s")
	v.SetDefault("mix.music_gain_db", -10.0)
	v.SetDefault("mix.output_format", "mp3")
	v.SetDefault("mix.mp3_bitrate", "192k")
	v.SetDefault("ffmpeg.path", "ffmpeg")
	v.SetDefault("ffmpeg.timeout", "2m")
	v.SetDefault("ffmpeg.sample_rate", 44100)
	v.SetDefault("ffmpeg.channels", 2)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.max_upload_bytes", 100*1024*1024)
	v.SetDefault("server.allowed_extensions", DefaultAllowedExtensions)
	v.SetDefault("server.read_header_timeout", "5s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file (file, or config.yaml in the search path when
// file is empty) into v and decodes the result. A missing config.yaml in the
// search path is not an error; a missing explicit file is.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.audmix")
		v.AddConfigPath("/etc/audmix")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		slog.Debug("No config file found, using defaults and environment variables")
	} else {
		slog.Info("Using config file", slog.String("file", v.ConfigFileUsed()))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Mix.FadeIn < 0 {
		return &ConfigError{Field: "mix.fade_in", Message: "must not be negative"}
	}
	if c.Mix.FadeOut < 0 {
		return &ConfigError{Field: "mix.fade_out", Message: "must not be negative"}
	}
	if c.Mix.MusicGainDB > 0 || math.IsNaN(c.Mix.MusicGainDB) {
		return &ConfigError{Field: "mix.music_gain_db", Message: "must be zero or negative"}
	}
	switch strings.ToLower(c.Mix.OutputFormat) {
	case "mp3", "wav":
	default:
		return &ConfigError{Field: "mix.output_format", Message: "must be mp3 or wav"}
	}
	if c.FFmpeg.SampleRate <= 0 {
		return &ConfigError{Field: "ffmpeg.sample_rate", Message: "must be positive"}
	}
	if c.FFmpeg.Channels <= 0 {
		return &ConfigError{Field: "ffmpeg.channels", Message: "must be positive"}
	}
	if c.Server.MaxUploadBytes <= 0 {
		return &ConfigError{Field: "server.max_upload_bytes", Message: "must be positive"}
	}
	if len(c.Server.AllowedExtensions) == 0 {
		return &ConfigError{Field: "server.allowed_extensions", Message: "at least one extension is required"}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
