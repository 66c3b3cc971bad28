// SPDX-License-Identifier: EPL-2.0

package wav_test

import (
	"bytes"
	"fmt"

	"github.com/ik5/wavdac/formats/wav"
	"github.com/ik5/wavdac/internal/audiotest"
)

// Example_readHeader locates the samples of a file with a LIST chunk in
// front of them.
func Example_readHeader() {
	data := audiotest.WAV(
		audiotest.PCM16Mono(44100),
		audiotest.PCM16(audiotest.Silence(88200)...),
		audiotest.Chunk{ID: "LIST", Data: make([]byte, 26)},
	)

	h, err := wav.ReadHeader(bytes.NewReader(data))
	if err != nil {
		fmt.Printf("ReadHeader error: %v\n", err)
		return
	}

	fmt.Printf("Sample rate: %d Hz\n", h.SampleRate)
	fmt.Printf("Samples: %d\n", h.SampleCount())
	fmt.Printf("Data starts at byte %d\n", h.DataStart)
	fmt.Printf("Converter clock: %d Hz\n", h.ConverterFrequency())
	fmt.Printf("Duration: %v\n", h.Duration())
	// Output:
	// Sample rate: 44100 Hz
	// Samples: 88200
	// Data starts at byte 78
	// Converter clock: 88200 Hz
	// Duration: 2s
}

// Example_malformed shows the error kind reported for a truncated file.
func Example_malformed() {
	data := audiotest.RIFF(audiotest.FmtChunk(audiotest.PCM16Mono(8000)))

	_, err := wav.ReadHeader(bytes.NewReader(data))
	fmt.Println(err)
	// Output:
	// malformed WAV container: no data chunk
}
