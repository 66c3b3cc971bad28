// SPDX-License-Identifier: EPL-2.0

package dac

import (
	"fmt"
	"io"
	"sync"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/wavdac/audio"
)

const sinkBitDepth = 16

// WAVSink renders converter output into a 16-bit mono WAV file at the
// converter clock rate. It never applies back-pressure, so a player pumping
// it writes a whole track per pump.
//
// All tracks of a session must share one clock rate: Begin with a different
// frequency than the first one fails with audio.ErrConverterConfig.
type WAVSink struct {
	mtx *sync.Mutex

	w       io.WriteSeeker
	enc     *wav.Encoder
	cfg     audio.Config
	running bool
	intBuf  *goaudio.IntBuffer
	err     error
}

func NewWAVSink(w io.WriteSeeker) *WAVSink {
	return &WAVSink{mtx: &sync.Mutex{}, w: w}
}

func (s *WAVSink) Begin(cfg audio.Config) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if err := cfg.Validate(); err != nil {
		return err
	}

	if s.enc == nil {
		s.enc = wav.NewEncoder(s.w, cfg.Frequency, sinkBitDepth, 1, 1)
		s.intBuf = &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: 1, SampleRate: cfg.Frequency},
			Data:           make([]int, cfg.BufferSize),
			SourceBitDepth: sinkBitDepth,
		}
	} else if cfg.Frequency != s.cfg.Frequency {
		return fmt.Errorf("%w: sink is recording at %d Hz, got %d Hz", audio.ErrConverterConfig, s.cfg.Frequency, cfg.Frequency)
	}

	s.cfg = cfg
	s.running = true

	return nil
}

func (s *WAVSink) Available() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.running && s.err == nil
}

func (s *WAVSink) Dequeue() audio.Buffer {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return make(audio.Buffer, s.cfg.BufferSize)
}

func (s *WAVSink) Write(buf audio.Buffer) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if !s.running || s.err != nil {
		return
	}

	if cap(s.intBuf.Data) < len(buf) {
		s.intBuf.Data = make([]int, len(buf))
	}
	s.intBuf.Data = s.intBuf.Data[:len(buf)]

	mid := int(s.cfg.Resolution.Midpoint())
	shift := sinkBitDepth - int(s.cfg.Resolution)
	for i, code := range buf {
		s.intBuf.Data[i] = (int(code) - mid) << shift
	}

	if err := s.enc.Write(s.intBuf); err != nil {
		s.err = err
	}
}

func (s *WAVSink) Stop() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.running = false
}

// Close finalizes the WAV header. The first write error, if any, is
// reported here.
func (s *WAVSink) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.running = false
	if s.enc == nil {
		return s.err
	}
	if err := s.enc.Close(); err != nil && s.err == nil {
		s.err = err
	}
	return s.err
}
