// SPDX-License-Identifier: EPL-2.0

package dac

import (
	"slices"
	"sync"

	"github.com/ik5/wavdac/audio"
)

// Recorder is an in-memory converter. It keeps every buffer written to it
// and frees queue slots only when Consume is called, standing in for the
// hardware draining its queue.
type Recorder struct {
	mtx *sync.Mutex

	cfg     audio.Config
	running bool
	queued  int

	// BeginErr, when set, makes Begin fail.
	BeginErr error

	begins  []audio.Config
	stops   int
	written []audio.Buffer
}

func NewRecorder() *Recorder {
	return &Recorder{mtx: &sync.Mutex{}}
}

func (r *Recorder) Begin(cfg audio.Config) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if err := cfg.Validate(); err != nil {
		return err
	}
	if r.BeginErr != nil {
		return r.BeginErr
	}

	r.cfg = cfg
	r.running = true
	r.queued = 0
	r.begins = append(r.begins, cfg)

	return nil
}

func (r *Recorder) Available() bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.running && r.queued < r.cfg.BufferCount
}

func (r *Recorder) Dequeue() audio.Buffer {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return make(audio.Buffer, r.cfg.BufferSize)
}

func (r *Recorder) Write(buf audio.Buffer) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if !r.running {
		return
	}
	r.queued++
	r.written = append(r.written, slices.Clone(buf))
}

func (r *Recorder) Stop() {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.running = false
	r.queued = 0
	r.stops++
}

// Consume frees up to n queued buffers and returns how many were freed.
func (r *Recorder) Consume(n int) int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	n = min(n, r.queued)
	r.queued -= n
	return n
}

// Running reports whether output is started.
func (r *Recorder) Running() bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.running
}

// Queued is the number of written buffers not yet consumed.
func (r *Recorder) Queued() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.queued
}

// Begins returns every configuration Begin accepted, oldest first.
func (r *Recorder) Begins() []audio.Config {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return slices.Clone(r.begins)
}

func (r *Recorder) Stops() int {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return r.stops
}

// Buffers returns copies of every buffer written, oldest first.
func (r *Recorder) Buffers() []audio.Buffer {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return slices.Clone(r.written)
}

// Codes returns every written code in output order.
func (r *Recorder) Codes() []uint16 {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	var out []uint16
	for _, b := range r.written {
		out = append(out, b...)
	}
	return out
}

// Reset forgets everything written so far.
func (r *Recorder) Reset() {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.written = nil
	r.begins = nil
	r.stops = 0
}
