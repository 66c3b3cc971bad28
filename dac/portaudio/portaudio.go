// SPDX-License-Identifier: EPL-2.0

// Package portaudio drives the host sound card as a buffer-queue converter.
package portaudio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/rs/zerolog"

	"github.com/ik5/wavdac/audio"
)

// DAC plays converter codes on the default output device.
//
// Buffers circulate between two channels: free holds buffers the caller may
// Dequeue, ready holds written buffers waiting for the PortAudio callback.
// The callback plays silence when ready is empty.
type DAC struct {
	mtx *sync.Mutex
	log zerolog.Logger

	stream  *portaudio.Stream
	cfg     audio.Config
	running bool

	free  chan audio.Buffer
	ready chan audio.Buffer
}

// New initializes PortAudio. Close must be called to release it.
func New(logger *zerolog.Logger) (*DAC, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("portaudio: %w", err)
	}

	log := zerolog.Nop()
	if logger != nil {
		log = *logger
	}

	return &DAC{mtx: &sync.Mutex{}, log: log}, nil
}

func (d *DAC) Begin(cfg audio.Config) error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if err := cfg.Validate(); err != nil {
		return err
	}

	if d.stream != nil && cfg != d.cfg {
		d.closeStream()
	}

	if d.stream == nil {
		if err := d.open(cfg); err != nil {
			return fmt.Errorf("%w: %w", audio.ErrConverterConfig, err)
		}
	}

	if !d.running {
		if err := d.stream.Start(); err != nil {
			return fmt.Errorf("%w: %w", audio.ErrConverterConfig, err)
		}
		d.running = true
	}

	return nil
}

func (d *DAC) open(cfg audio.Config) error {
	d.free = make(chan audio.Buffer, cfg.BufferCount)
	d.ready = make(chan audio.Buffer, cfg.BufferCount)
	for range cfg.BufferCount {
		d.free <- make(audio.Buffer, cfg.BufferSize)
	}

	mid := int32(cfg.Resolution.Midpoint())
	shift := 16 - int(cfg.Resolution)
	free, ready := d.free, d.ready

	// The stream rate is the converter clock; codes are output one per
	// frame.
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(cfg.Frequency), cfg.BufferSize, func(out []int16) {
		select {
		case buf := <-ready:
			n := min(len(out), len(buf))
			for i := range n {
				out[i] = int16((int32(buf[i]) - mid) << shift)
			}
			clear(out[n:])
			free <- buf
		default:
			clear(out)
		}
	})
	if err != nil {
		return err
	}

	d.stream = stream
	d.cfg = cfg
	d.log.Debug().
		Int("frequency", cfg.Frequency).
		Int("buffer_size", cfg.BufferSize).
		Int("buffer_count", cfg.BufferCount).
		Msg("output stream opened")

	return nil
}

func (d *DAC) Available() bool {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	return d.running && len(d.free) > 0
}

func (d *DAC) Dequeue() audio.Buffer {
	d.mtx.Lock()
	free := d.free
	d.mtx.Unlock()

	return <-free
}

func (d *DAC) Write(buf audio.Buffer) {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if !d.running {
		d.free <- buf
		return
	}
	d.ready <- buf
}

func (d *DAC) Stop() {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	d.stop()
}

func (d *DAC) stop() {
	if !d.running {
		return
	}
	if err := d.stream.Stop(); err != nil {
		d.log.Warn().Err(err).Msg("stopping output stream")
	}
	d.running = false

	for {
		select {
		case buf := <-d.ready:
			d.free <- buf
		default:
			return
		}
	}
}

func (d *DAC) closeStream() {
	d.stop()
	if err := d.stream.Close(); err != nil {
		d.log.Warn().Err(err).Msg("closing output stream")
	}
	d.stream = nil
}

// Close stops output and terminates PortAudio.
func (d *DAC) Close() error {
	d.mtx.Lock()
	defer d.mtx.Unlock()

	if d.stream != nil {
		d.closeStream()
	}
	return portaudio.Terminate()
}
