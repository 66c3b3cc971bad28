// SPDX-License-Identifier: EPL-2.0

package player

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/ik5/wavdac/audio"
	"github.com/ik5/wavdac/formats/wav"
	"github.com/ik5/wavdac/storage"
)

// transport binds one file to the converter and moves its samples into the
// converter queue whenever tick is called.
type transport struct {
	vol  *storage.Volume
	dac  audio.DAC
	conf audio.Config
	log  zerolog.Logger

	name   string
	path   string
	file   afero.File
	hdr    wav.Header
	scaler audio.Scaler
	raw    []byte
	pos    int64 // offset of the next byte to read

	playing  bool
	paused   bool
	finished bool
}

func (t *transport) loaded() bool { return t.file != nil }

func (t *transport) load(name string) error {
	p := t.vol.Path(name)
	if t.file != nil && name == t.name {
		return nil
	}

	t.halt()
	t.unload()

	f, err := t.vol.Open(name)
	if err != nil {
		return err
	}

	hdr, err := wav.ReadHeader(f)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", p, err)
	}

	t.name = name
	t.path = p
	t.file = f
	t.hdr = hdr
	t.pos = hdr.DataStart
	t.scaler = audio.NewScaler(hdr.BitsPerSample, t.conf.Resolution)
	t.raw = make([]byte, t.conf.BufferSize*t.scaler.Width())

	if err := t.begin(); err != nil {
		t.unload()
		return err
	}

	t.log.Debug().
		Str("file", p).
		Int("sample_rate", hdr.SampleRate).
		Int("bits", hdr.BitsPerSample).
		Int64("samples", hdr.SampleCount()).
		Msg("file loaded")

	return nil
}

func (t *transport) unload() {
	if t.file != nil {
		if err := t.file.Close(); err != nil {
			t.log.Warn().Err(err).Str("file", t.path).Msg("closing audio file")
		}
	}
	t.name = ""
	t.path = ""
	t.file = nil
	t.hdr = wav.Header{}
	t.raw = nil
	t.pos = 0
	t.playing = false
	t.paused = false
	t.finished = false
}

func (t *transport) begin() error {
	cfg := t.conf
	cfg.Frequency = t.hdr.ConverterFrequency()

	if err := t.dac.Begin(cfg); err != nil {
		if errors.Is(err, audio.ErrConverterConfig) {
			return fmt.Errorf("%s: %w", t.path, err)
		}
		return fmt.Errorf("%w: %s (%w)", audio.ErrConverterConfig, t.path, err)
	}
	return nil
}

// start puts a loaded file into the playing state and pushes what the
// converter can take.
func (t *transport) start() error {
	if !t.playing {
		if err := t.begin(); err != nil {
			return err
		}
		t.playing = true
		t.paused = false
		t.finished = false
		t.log.Debug().Str("file", t.path).Msg("playing")
	}
	return t.tick()
}

func (t *transport) pause() {
	if !t.playing {
		return
	}
	t.dac.Stop()
	t.playing = false
	t.paused = true
	t.log.Debug().Str("file", t.path).Msg("paused")
}

// halt stops converter output without touching the read position.
func (t *transport) halt() {
	if t.playing {
		t.dac.Stop()
	}
	t.playing = false
	t.paused = false
}

// stop halts output and rewinds to the first sample.
func (t *transport) stop() error {
	t.halt()
	if t.file == nil {
		return nil
	}

	t.pos = t.hdr.DataStart
	if _, err := t.file.Seek(t.pos, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %s (%w)", ErrStreamIO, t.path, err)
	}
	return nil
}

// tick fills every free converter buffer. Reads never go past the end of
// the data chunk, so chunks trailing the samples are not played.
func (t *transport) tick() error {
	end := t.hdr.DataEnd()

	for t.playing && t.dac.Available() {
		if t.pos >= end {
			t.finished = true
			t.log.Debug().Str("file", t.path).Msg("finished")
			return t.stop()
		}

		want := min(int64(len(t.raw)), end-t.pos)
		n, err := io.ReadFull(t.file, t.raw[:want])
		t.pos += int64(n)

		switch {
		case err == nil:
		case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
			// the data chunk is shorter than declared
			t.pos = end
		default:
			t.halt()
			return fmt.Errorf("%w: %s (%w)", ErrStreamIO, t.path, err)
		}

		if n == 0 {
			continue
		}

		buf := t.dac.Dequeue()
		t.scaler.Scale(t.raw[:n], buf)
		t.dac.Write(buf)
	}

	return nil
}

// position is the number of samples read so far and in total.
func (t *transport) position() (int64, int64) {
	if t.file == nil || t.hdr.BitsPerSample == 0 {
		return 0, 0
	}
	read := (t.pos - t.hdr.DataStart) * 8 / int64(t.hdr.BitsPerSample)
	return read, t.hdr.SampleCount()
}
