// SPDX-License-Identifier: EPL-2.0

package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := WithComponent(New(&buf, "info", "json"), "engine")

	l.Debug("hidden")
	l.Info("mixed", slog.Int("frames", 42))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if rec["msg"] != "mixed" || rec["component"] != "engine" || rec["frames"] != float64(42) {
		t.Errorf("record = %v", rec)
	}
}

func TestNew_Text(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, "debug", "text")
	l.Debug("loading audio", slog.String("input", "speech"))

	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "input=speech") {
		t.Errorf("text output = %q", out)
	}
}
