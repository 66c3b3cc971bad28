// SPDX-License-Identifier: EPL-2.0

package dac

import (
	"errors"
	"testing"

	"github.com/ik5/wavdac/audio"
)

func testConfig() audio.Config {
	return audio.Config{
		Resolution:  audio.Resolution12,
		Frequency:   88200,
		BufferSize:  4,
		BufferCount: 2,
	}
}

func TestRecorder_QueueBound(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	if r.Available() {
		t.Fatal("available before Begin")
	}

	if err := r.Begin(testConfig()); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	for i := range 2 {
		if !r.Available() {
			t.Fatalf("buffer %d: not available", i)
		}
		buf := r.Dequeue()
		if len(buf) != 4 {
			t.Fatalf("buffer length = %d, want 4", len(buf))
		}
		buf[0] = uint16(i + 1)
		r.Write(buf)
	}

	if r.Available() {
		t.Fatal("available with a full queue")
	}

	if got := r.Consume(5); got != 2 {
		t.Errorf("Consume = %d, want 2", got)
	}
	if !r.Available() {
		t.Error("not available after Consume")
	}

	bufs := r.Buffers()
	if len(bufs) != 2 || bufs[0][0] != 1 || bufs[1][0] != 2 {
		t.Errorf("Buffers = %v", bufs)
	}
}

func TestRecorder_WriteKeepsCopy(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	if err := r.Begin(testConfig()); err != nil {
		t.Fatal(err)
	}

	buf := r.Dequeue()
	buf[0] = 7
	r.Write(buf)
	buf[0] = 9

	if got := r.Codes()[0]; got != 7 {
		t.Errorf("recorded code = %d, want 7", got)
	}
}

func TestRecorder_Stop(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	if err := r.Begin(testConfig()); err != nil {
		t.Fatal(err)
	}
	r.Write(r.Dequeue())
	r.Stop()

	if r.Running() || r.Available() {
		t.Error("still running after Stop")
	}
	if r.Queued() != 0 {
		t.Errorf("Queued = %d after Stop, want 0", r.Queued())
	}

	r.Write(make(audio.Buffer, 4))
	if len(r.Buffers()) != 1 {
		t.Error("write accepted while stopped")
	}
	if r.Stops() != 1 {
		t.Errorf("Stops = %d, want 1", r.Stops())
	}
}

func TestRecorder_Begin(t *testing.T) {
	t.Parallel()

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()

		r := NewRecorder()
		cfg := testConfig()
		cfg.Frequency = 0
		if err := r.Begin(cfg); !errors.Is(err, audio.ErrConverterConfig) {
			t.Errorf("err = %v, want ErrConverterConfig", err)
		}
		if len(r.Begins()) != 0 {
			t.Error("rejected config recorded")
		}
	})

	t.Run("forced failure", func(t *testing.T) {
		t.Parallel()

		r := NewRecorder()
		r.BeginErr = audio.ErrConverterConfig
		if err := r.Begin(testConfig()); !errors.Is(err, audio.ErrConverterConfig) {
			t.Errorf("err = %v, want ErrConverterConfig", err)
		}
		if r.Running() {
			t.Error("running after failed Begin")
		}
	})

	t.Run("reconfigure", func(t *testing.T) {
		t.Parallel()

		r := NewRecorder()
		first := testConfig()
		second := testConfig()
		second.Frequency = 16000

		for _, cfg := range []audio.Config{first, second} {
			if err := r.Begin(cfg); err != nil {
				t.Fatal(err)
			}
		}

		got := r.Begins()
		if len(got) != 2 || got[1].Frequency != 16000 {
			t.Errorf("Begins = %+v", got)
		}
	})
}

func TestRecorder_Reset(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	if err := r.Begin(testConfig()); err != nil {
		t.Fatal(err)
	}
	r.Write(r.Dequeue())
	r.Stop()
	r.Reset()

	if len(r.Buffers()) != 0 || len(r.Begins()) != 0 || r.Stops() != 0 {
		t.Error("Reset kept history")
	}
}
