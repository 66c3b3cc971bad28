// SPDX-License-Identifier: EPL-2.0

// Package audio defines the converter contract and the sample scaling that
// feeds it.
//
// # Converter Contract
//
// A DAC owns a fixed queue of buffers:
//
//	type DAC interface {
//	    Begin(cfg Config) error
//	    Available() bool
//	    Dequeue() Buffer
//	    Write(buf Buffer)
//	    Stop()
//	}
//
// The caller polls Available, takes a free buffer with Dequeue, fills it
// and gives it back with Write. Nothing in this package runs on its own;
// whoever holds the DAC decides when buffers are refilled.
//
// Drivers live in the dac packages: an in-memory Recorder, a WAV file
// sink and a PortAudio-backed live output.
//
// # Sample Scaling
//
// Converters take unsigned codes of a fixed Resolution. Scaler turns PCM
// bytes of any width into those codes:
//
//	s := audio.NewScaler(16, audio.Resolution12)
//	buf := dac.Dequeue()
//	s.Scale(raw, buf) // pads with silence when raw runs short
//	dac.Write(buf)
//
// Scale does not allocate, so it is safe to call from a tight refill loop.
package audio
