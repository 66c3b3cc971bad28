// SPDX-License-Identifier: EPL-2.0

// Package wav locates the sample data of RIFF/WAVE files.
//
// The player never decodes WAV files into an intermediate buffer. It only
// needs to know where the samples start, how wide each one is, and how fast
// the converter must be clocked. ReadHeader answers exactly that, leaving
// the reader positioned on the first sample byte so the caller can stream
// from it.
//
// # Chunk Walking
//
// A WAV file is a RIFF container:
//   - "RIFF" tag, 4-byte little-endian size, "WAVE" form type
//   - "fmt " chunk: format tag, channels, sample rate, byte rate,
//     block align, bits per sample
//   - any number of other chunks (LIST, fact, bext, junk...)
//   - "data" chunk holding interleaved samples
//
// The preamble and chunk headers are read through github.com/go-audio/riff.
// Unknown chunks are skipped by seeking, so large metadata blocks cost
// nothing to pass over.
//
// # Derived Values
//
//	h, _ := wav.ReadHeader(file)
//	h.SampleByteWidth()    // bits / 8
//	h.SampleCount()        // data length * 8 / bits
//	h.ConverterFrequency() // sample rate * Oversample
//
// # Error Handling
//
// Every failure wraps ErrMalformedContainer. The detail is one of
// ErrNotWavFile, ErrMissingFormat, ErrMissingData or the underlying I/O
// error:
//
//	if errors.Is(err, wav.ErrMalformedContainer) {
//	    // skip this file
//	}
//
// The format tag is reported but never checked: non-PCM data is streamed
// as if it were PCM.
package wav
