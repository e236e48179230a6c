// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidDstSize, "dst size must be multiple of channels"},
		{ErrEmptyStream, "audio stream has no samples"},
		{ErrInvalidFormat, "invalid sample rate or channel count"},
		{ErrFormatMismatch, "streams differ in sample rate or channels"},
		{ErrUnsupportedEncoding, "unsupported sample encoding"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}

		wrapped := fmt.Errorf("decoding: %w", tt.err)
		if !errors.Is(wrapped, tt.err) {
			t.Errorf("errors.Is() failed for wrapped %q", tt.want)
		}
	}

	if errors.Is(ErrEmptyStream, ErrInvalidFormat) {
		t.Error("distinct sentinels compare equal")
	}
}
