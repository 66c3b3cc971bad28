// SPDX-License-Identifier: EPL-2.0

// Package audiotest builds RIFF/WAVE fixtures and PCM payloads for tests.
//
// The builder writes chunks exactly as asked, including layouts a real
// encoder would never produce (extra chunks, odd sizes, truncation), so
// parser edge cases can be expressed directly.
package audiotest

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Chunk is an arbitrary RIFF chunk. Size overrides the declared size when
// non-zero; otherwise len(Data) is declared.
type Chunk struct {
	ID   string
	Data []byte
	Size uint32
}

// Format describes the fmt chunk of a fixture.
type Format struct {
	AudioFormat   uint16
	Channels      int
	SampleRate    int
	BitsPerSample int
}

// PCM16Mono is the common 16-bit mono PCM format at rate.
func PCM16Mono(rate int) Format {
	return Format{AudioFormat: 1, Channels: 1, SampleRate: rate, BitsPerSample: 16}
}

// FmtChunk encodes f as a 16-byte fmt chunk.
func FmtChunk(f Format) Chunk {
	buf := new(bytes.Buffer)
	width := f.BitsPerSample / 8
	binary.Write(buf, binary.LittleEndian, f.AudioFormat)
	binary.Write(buf, binary.LittleEndian, uint16(f.Channels))
	binary.Write(buf, binary.LittleEndian, uint32(f.SampleRate))
	binary.Write(buf, binary.LittleEndian, uint32(f.SampleRate*f.Channels*width))
	binary.Write(buf, binary.LittleEndian, uint16(f.Channels*width))
	binary.Write(buf, binary.LittleEndian, uint16(f.BitsPerSample))

	return Chunk{ID: "fmt ", Data: buf.Bytes()}
}

// DataChunk wraps raw sample bytes in a data chunk.
func DataChunk(samples []byte) Chunk {
	return Chunk{ID: "data", Data: samples}
}

// RIFF assembles a RIFF/WAVE stream from chunks in the given order. Odd
// sized chunks are followed by a pad byte.
func RIFF(chunks ...Chunk) []byte {
	body := new(bytes.Buffer)
	body.WriteString("WAVE")
	for _, c := range chunks {
		size := c.Size
		if size == 0 {
			size = uint32(len(c.Data))
		}
		body.WriteString(c.ID)
		binary.Write(body, binary.LittleEndian, size)
		body.Write(c.Data)
		if len(c.Data)%2 == 1 {
			body.WriteByte(0)
		}
	}

	out := new(bytes.Buffer)
	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(body.Len()))
	out.Write(body.Bytes())

	return out.Bytes()
}

// WAV builds the canonical fmt+data layout with extra chunks between them.
func WAV(f Format, samples []byte, extra ...Chunk) []byte {
	chunks := make([]Chunk, 0, len(extra)+2)
	chunks = append(chunks, FmtChunk(f))
	chunks = append(chunks, extra...)
	chunks = append(chunks, DataChunk(samples))

	return RIFF(chunks...)
}

// PCM16 encodes samples as little-endian 16-bit PCM.
func PCM16(samples ...int16) []byte {
	out := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(s))
	}
	return out
}

// Silence returns n zero-valued 16-bit samples.
func Silence(n int) []int16 {
	return make([]int16, n)
}

// Ramp returns n samples counting up from start, wrapping at int16 bounds.
// Every sample differs from its neighbours, which makes buffer
// boundaries visible in assertions.
func Ramp(start int16, n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = start + int16(i)
	}
	return out
}

// Sine returns n samples of a sine at freq Hz and half full scale.
func Sine(sampleRate, n int, freq float64) []int16 {
	out := make([]int16, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		out[i] = int16(math.Sin(2*math.Pi*freq*t) * 16384)
	}
	return out
}
