// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"bytes"
	"testing"

	"github.com/ik5/audmix/internal/audiotest"
)

func oggPage(codecHeader string) []byte {
	page := append([]byte("OggS\x00"), make([]byte, 23)...)
	page = append(page, codecHeader...)
	return append(page, make([]byte, 32)...)
}

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		data   []byte
		want   string
		wantOK bool
	}{
		{"wav", audiotest.ConstantWAV(8000, 1, 16, 0), "wav", true},
		{"mp3 with id3", append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 64)...), "mp3", true},
		{"flac", append([]byte("fLaC\x00\x00\x00\x22"), make([]byte, 64)...), "flac", true},
		{"ogg vorbis", oggPage("\x01vorbis"), "ogg", true},
		{"ogg opus", oggPage("OpusHead"), "opus", true},
		{"aiff", append([]byte("FORM\x00\x00\x00\x40AIFFCOMM"), make([]byte, 64)...), "aiff", true},
		{"text", []byte("this is not audio at all"), "", false},
		{"zeros", make([]byte, 128), "", false},
		{"empty", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := Sniff(tt.data)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Sniff() = %q, %v; want %q, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestHintFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hint string
		want string
	}{
		{"speech.MP3", "mp3"},
		{"/tmp/uploads/music.flac", "flac"},
		{"talk.final.wav", "wav"},
		{".ogg", "ogg"},
		{"m4a", "m4a"},
		{" WAV ", "wav"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := HintFormat(tt.hint); got != tt.want {
			t.Errorf("HintFormat(%q) = %q, want %q", tt.hint, got, tt.want)
		}
	}
}

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	wav := audiotest.ConstantWAV(8000, 1, 16, 0)
	unknown := bytes.Repeat([]byte{0x00}, 64)

	tests := []struct {
		name string
		data []byte
		hint string
		want string
	}{
		{"content wins over hint", wav, "speech.mp3", "wav"},
		{"hint used when content unknown", unknown, "speech.m4a", "m4a"},
		{"nothing known", unknown, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := DetectFormat(tt.data, tt.hint); got != tt.want {
				t.Errorf("DetectFormat() = %q, want %q", got, tt.want)
			}
		})
	}
}
