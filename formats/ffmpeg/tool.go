// SPDX-License-Identifier: EPL-2.0

package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

const (
	DefaultBinary  = "ffmpeg"
	DefaultTimeout = 2 * time.Minute
)

// Tool runs ffmpeg as a filter: bytes in on stdin, bytes out on stdout.
// Every call starts its own process, so a Tool is safe for concurrent use.
type Tool struct {
	// Path is the binary name or path. Empty means DefaultBinary.
	Path string
	// Timeout bounds a single invocation. Zero means DefaultTimeout.
	Timeout time.Duration
}

func (t Tool) binary() string {
	if t.Path == "" {
		return DefaultBinary
	}
	return t.Path
}

// Available resolves the binary and reports ErrNotFound when it is missing.
func (t Tool) Available() (string, error) {
	path, err := exec.LookPath(t.binary())
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, t.binary())
	}
	return path, nil
}

// Run pipes input through ffmpeg with args and returns stdout.
// args must read from pipe:0 and write to pipe:1.
func (t Tool) Run(input []byte, args ...string) ([]byte, error) {
	path, err := t.Available()
	if err != nil {
		return nil, err
	}

	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	full := append([]string{"-hide_banner", "-loglevel", "error"}, args...)
	cmd := exec.CommandContext(ctx, path, full...)
	cmd.Stdin = bytes.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ffmpeg timed out after %s: %w", timeout, ctx.Err())
		}
		if msg != "" {
			return nil, fmt.Errorf("ffmpeg: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}

	if stdout.Len() == 0 {
		return nil, ErrNoOutput
	}
	return stdout.Bytes(), nil
}
