// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"errors"
	"slices"
	"testing"

	"github.com/ik5/audmix/formats/ffmpeg"
	"github.com/ik5/audmix/formats/wav"
)

func TestNewNativeRegistry(t *testing.T) {
	t.Parallel()

	reg := NewNativeRegistry()

	for _, format := range []string{"wav", "wave", "mp3", "ogg", "oga", "aif", "aiff", "flac"} {
		if _, ok := reg.Get(format); !ok {
			t.Errorf("Get(%q) not registered", format)
		}
	}

	if _, ok := reg.Lookup("m4a"); ok {
		t.Error("Lookup(m4a) found a decoder without a fallback")
	}
	if !slices.IsSorted(reg.Formats()) {
		t.Errorf("Formats() = %v, not sorted", reg.Formats())
	}
}

func TestNewRegistry_Fallback(t *testing.T) {
	t.Parallel()

	reg := NewRegistry(ffmpeg.Tool{Path: "ffmpeg"})

	for _, format := range []string{"m4a", "aac", "wma", "opus"} {
		dec, ok := reg.Lookup(format)
		if !ok {
			t.Fatalf("Lookup(%q) found nothing", format)
		}
		if _, isFFmpeg := dec.(ffmpeg.Decoder); !isFFmpeg {
			t.Errorf("Lookup(%q) = %T, want ffmpeg.Decoder", format, dec)
		}
	}

	if dec, _ := reg.Lookup("WAV"); dec != (wav.Decoder{}) {
		t.Errorf("Lookup(WAV) = %T, want the native decoder", dec)
	}
}

func TestNewEncoder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format      string
		contentType string
		wantErr     bool
	}{
		{"mp3", "audio/mpeg", false},
		{"MP3", "audio/mpeg", false},
		{"wav", "audio/wav", false},
		{"ogg", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			enc, err := NewEncoder(tt.format, "128k", ffmpeg.Tool{})
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownEncoder) {
					t.Errorf("NewEncoder(%q) error = %v, want ErrUnknownEncoder", tt.format, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("NewEncoder(%q) error = %v", tt.format, err)
			}
			if enc.ContentType() != tt.contentType {
				t.Errorf("ContentType() = %q, want %q", enc.ContentType(), tt.contentType)
			}
		})
	}

	enc, _ := NewEncoder("mp3", "320k", ffmpeg.Tool{})
	if mp3, ok := enc.(ffmpeg.MP3Encoder); !ok || mp3.Bitrate != "320k" {
		t.Errorf("NewEncoder(mp3) = %#v, want bitrate 320k", enc)
	}
}
