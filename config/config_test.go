// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(New(), writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Mix.FadeIn != 2*time.Second || cfg.Mix.FadeOut != 2*time.Second {
		t.Errorf("fades = %v/%v, want 2s/2s", cfg.Mix.FadeIn, cfg.Mix.FadeOut)
	}
	if cfg.Mix.MusicGainDB != -10 {
		t.Errorf("MusicGainDB = %v, want -10", cfg.Mix.MusicGainDB)
	}
	if cfg.Mix.OutputFormat != "mp3" || cfg.Mix.MP3Bitrate != "192k" {
		t.Errorf("output = %q at %q, want mp3 at 192k", cfg.Mix.OutputFormat, cfg.Mix.MP3Bitrate)
	}
	if cfg.FFmpeg.Path != "ffmpeg" || cfg.FFmpeg.Timeout != 2*time.Minute {
		t.Errorf("FFmpeg = %+v", cfg.FFmpeg)
	}
	if cfg.FFmpeg.SampleRate != 44100 || cfg.FFmpeg.Channels != 2 {
		t.Errorf("FFmpeg layout = %d/%d, want 44100/2", cfg.FFmpeg.SampleRate, cfg.FFmpeg.Channels)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Server.MaxUploadBytes != 100<<20 {
		t.Errorf("MaxUploadBytes = %d, want %d", cfg.Server.MaxUploadBytes, 100<<20)
	}
	if !slices.Equal(cfg.Server.AllowedExtensions, DefaultAllowedExtensions) {
		t.Errorf("AllowedExtensions = %v, want %v", cfg.Server.AllowedExtensions, DefaultAllowedExtensions)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults error = %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
mix:
  fade_in: 500ms
  fade_out: 3s
  music_gain_db: -6
  output_format: wav
server:
  addr: 127.0.0.1:9000
  allowed_extensions: [wav, mp3]
logging:
  level: debug
  format: json
`)

	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Mix.FadeIn != 500*time.Millisecond || cfg.Mix.FadeOut != 3*time.Second {
		t.Errorf("fades = %v/%v, want 500ms/3s", cfg.Mix.FadeIn, cfg.Mix.FadeOut)
	}
	if cfg.Mix.MusicGainDB != -6 || cfg.Mix.OutputFormat != "wav" {
		t.Errorf("Mix = %+v", cfg.Mix)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
	if !slices.Equal(cfg.Server.AllowedExtensions, []string{"wav", "mp3"}) {
		t.Errorf("AllowedExtensions = %v", cfg.Server.AllowedExtensions)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	// untouched keys keep their defaults
	if cfg.Mix.MP3Bitrate != "192k" {
		t.Errorf("MP3Bitrate = %q, want default", cfg.Mix.MP3Bitrate)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("AUDMIX_MIX_FADE_IN", "1500ms")
	t.Setenv("AUDMIX_MIX_MUSIC_GAIN_DB", "-3.5")
	t.Setenv("AUDMIX_FFMPEG_PATH", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("AUDMIX_SERVER_ADDR", ":9999")
	t.Setenv("AUDMIX_LOGGING_LEVEL", "warn")

	// environment beats the file
	path := writeConfig(t, "server:\n  addr: \":7000\"\n")

	cfg, err := Load(New(), path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Mix.FadeIn != 1500*time.Millisecond {
		t.Errorf("FadeIn = %v, want 1.5s", cfg.Mix.FadeIn)
	}
	if cfg.Mix.MusicGainDB != -3.5 {
		t.Errorf("MusicGainDB = %v, want -3.5", cfg.Mix.MusicGainDB)
	}
	if cfg.FFmpeg.Path != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpeg.Path = %q", cfg.FFmpeg.Path)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q, want :9999", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadMalformed(t *testing.T) {
	if _, err := Load(New(), writeConfig(t, "mix: [unclosed\n")); err == nil {
		t.Fatal("Load() error = nil, want parse error")
	}
}

func validConfig() *Config {
	return &Config{
		Mix: MixConfig{
			FadeIn:       2 * time.Second,
			FadeOut:      2 * time.Second,
			MusicGainDB:  -10,
			OutputFormat: "mp3",
			MP3Bitrate:   "192k",
		},
		FFmpeg: FFmpegConfig{Path: "ffmpeg", Timeout: time.Minute, SampleRate: 44100, Channels: 2},
		Server: ServerConfig{
			Addr:              ":8080",
			MaxUploadBytes:    1 << 20,
			AllowedExtensions: []string{"wav"},
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"valid", func(*Config) {}, ""},
		{"zero gain", func(c *Config) { c.Mix.MusicGainDB = 0 }, ""},
		{"wav upper case", func(c *Config) { c.Mix.OutputFormat = "WAV" }, ""},
		{"negative fade-in", func(c *Config) { c.Mix.FadeIn = -time.Second }, "mix.fade_in"},
		{"negative fade-out", func(c *Config) { c.Mix.FadeOut = -time.Second }, "mix.fade_out"},
		{"positive gain", func(c *Config) { c.Mix.MusicGainDB = 1 }, "mix.music_gain_db"},
		{"unknown format", func(c *Config) { c.Mix.OutputFormat = "flac" }, "mix.output_format"},
		{"zero ffmpeg rate", func(c *Config) { c.FFmpeg.SampleRate = 0 }, "ffmpeg.sample_rate"},
		{"zero ffmpeg channels", func(c *Config) { c.FFmpeg.Channels = 0 }, "ffmpeg.channels"},
		{"zero upload limit", func(c *Config) { c.Server.MaxUploadBytes = 0 }, "server.max_upload_bytes"},
		{"empty whitelist", func(c *Config) { c.Server.AllowedExtensions = nil }, "server.allowed_extensions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tt.modify(cfg)
			err := cfg.Validate()

			if tt.field == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error = %v, want *ConfigError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}
}
