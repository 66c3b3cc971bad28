// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"fmt"
	"io"
	"slices"
	"sync"
	"testing"
)

type nopDecoder struct{ name string }

func (nopDecoder) Decode(io.Reader) (Source, error) { return nil, nil }

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	d := nopDecoder{"x"}
	r.Register("MP3", d)

	got, ok := r.Get("mp3")
	if !ok {
		t.Fatal("Get() failed to find a decoder registered in upper case")
	}
	if got != d {
		t.Error("Get() returned a different decoder")
	}

	if _, ok := r.Get("ogg"); ok {
		t.Error("Get() found an unregistered format")
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	r.Register("wav", nopDecoder{"first"})
	r.Register("wav", nopDecoder{"second"})

	got, _ := r.Get("wav")
	if got.(nopDecoder).name != "second" {
		t.Errorf("Get() = %v, want the last registration", got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav"}
	if got := DefaultRegistry().Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Go(func() {
			key := fmt.Sprintf("f%d", i%5)
			r.Register(key, nopDecoder{key})
			_, _ = r.Get(key)
		})
	}
	wg.Wait()

	if n := len(r.Formats()); n != 5 {
		t.Errorf("len(Formats()) = %d, want 5", n)
	}
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"song.mp3":        "mp3",
		"/a/b/Track.OGG":  "ogg",
		"loop.aif":        "aif",
		"no-extension":    "",
		"archive.tar.wav": "wav",
	}

	for in, want := range tests {
		if got := FormatOf(in); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", in, got, want)
		}
	}
}
