// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"io"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Source is a decoded stream of interleaved float32 samples in [-1, 1].
type Source interface {
	SampleRate() int
	Channels() int
	// ReadSamples fills dst and returns the number of values written, not
	// frames. io.EOF marks the end of the stream.
	ReadSamples(dst []float32) (int, error)
	Close() error
}

// Decoder opens a Source over an encoded input.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format keys ("mp3", "ogg", ...) to decoders.
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

// DefaultRegistry knows every input format this package can decode.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("mp3", MP3Decoder{})
	r.Register("ogg", VorbisDecoder{})
	r.Register("oga", VorbisDecoder{})
	r.Register("aif", AIFFDecoder{})
	r.Register("aiff", AIFFDecoder{})
	r.Register("wav", WAVDecoder{})
	return r
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[strings.ToLower(format)]
	return d, ok
}

// Formats lists the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return slices.Sorted(maps.Keys(r.codecs))
}

// FormatOf is the registry key for a file name: its extension, lower
// cased, without the dot.
func FormatOf(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
