// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sort"
	"strings"
	"sync"
)

type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Encoder renders a decoded Buffer into a delivery container.
type Encoder interface {
	Encode(w io.Writer, b *Buffer) error
	// ContentType is the MIME type of the encoded output.
	ContentType() string
	// Extension is the file extension of the encoded output, without the dot.
	Extension() string
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
// Keys are matched case-insensitively and may carry a leading dot.
type Registry struct {
	codecs   map[string]Decoder
	fallback Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func normalizeKey(format string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[normalizeKey(format)] = d
}

// SetFallback installs the decoder Lookup returns for unregistered formats.
func (r *Registry) SetFallback(d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.fallback = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[normalizeKey(format)]
	return d, ok
}

// Lookup is Get with the fallback decoder applied to unknown formats.
func (r *Registry) Lookup(format string) (Decoder, bool) {
	if d, ok := r.Get(format); ok {
		return d, true
	}

	return r.Fallback()
}

// Fallback returns the decoder installed with SetFallback.
func (r *Registry) Fallback() (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.fallback, r.fallback != nil
}

// Formats lists the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}
