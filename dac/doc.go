// SPDX-License-Identifier: EPL-2.0

// Package dac holds host-side converter drivers implementing audio.DAC.
//
// Recorder keeps written buffers in memory and only frees queue slots when
// told to, which makes it the converter of choice for tests. WAVSink renders
// the converter stream into a WAV file. Live output through the host sound
// card lives in the portaudio subpackage.
package dac
