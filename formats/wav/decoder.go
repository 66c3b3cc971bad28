// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/riff"
)

// Oversample is the factor between a file's sample rate and the clock the
// converter is started with.
const Oversample = 2

const (
	riffPreambleSize = 12
	chunkHeaderSize  = 8
	minFmtSize       = 16
)

// Header is the sample geometry of a WAV file and the location of its
// sample data.
type Header struct {
	AudioFormat   uint16
	Channels      int
	SampleRate    int
	ByteRate      int
	BlockAlign    int
	BitsPerSample int

	// DataStart is the offset of the first sample byte, right after the
	// data chunk's size field.
	DataStart int64
	// DataLength is the data chunk's declared byte length.
	DataLength int64
}

// SampleByteWidth is the storage width of a single sample.
func (h Header) SampleByteWidth() int { return h.BitsPerSample / 8 }

// SampleCount is the number of samples (not frames) in the data chunk.
func (h Header) SampleCount() int64 {
	if h.BitsPerSample == 0 {
		return 0
	}
	return h.DataLength * 8 / int64(h.BitsPerSample)
}

// ConverterFrequency is the clock the converter needs for this file.
func (h Header) ConverterFrequency() int { return h.SampleRate * Oversample }

// DataEnd is the offset right after the last sample byte.
func (h Header) DataEnd() int64 { return h.DataStart + h.DataLength }

// Duration of the data chunk at the file's own sample rate.
func (h Header) Duration() time.Duration {
	if h.SampleRate == 0 || h.Channels == 0 {
		return 0
	}
	frames := h.SampleCount() / int64(h.Channels)
	return time.Duration(frames) * time.Second / time.Duration(h.SampleRate)
}

type fmtChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// ReadHeader walks the chunks of a RIFF/WAVE stream up to its data chunk.
//
// Chunks other than "fmt " and "data" are skipped by seeking past their
// declared size, so any number of LIST, fact or vendor chunks may precede
// the samples. The walk is bounded by the stream: running out of bytes
// before a complete data chunk header is found yields
// ErrMalformedContainer.
//
// The format tag is not checked. Any bit depth of at least 8 is accepted
// and treated as PCM.
//
// On success r is positioned at Header.DataStart.
func ReadHeader(r io.ReadSeeker) (Header, error) {
	end, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrMalformedContainer, err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Header{}, fmt.Errorf("%w: %w", ErrMalformedContainer, err)
	}

	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return Header{}, fmt.Errorf("%w: %w: %w", ErrMalformedContainer, ErrNotWavFile, err)
	}
	if p.Format != riff.WavFormatID {
		return Header{}, fmt.Errorf("%w: %w: form type %q", ErrMalformedContainer, ErrNotWavFile, p.Format[:])
	}

	var (
		h      Header
		hasFmt bool
		pos    = int64(riffPreambleSize)
	)

	for {
		id, size, err := p.IDnSize()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return Header{}, fmt.Errorf("%w: %w", ErrMalformedContainer, ErrMissingData)
			}
			return Header{}, fmt.Errorf("%w: %w", ErrMalformedContainer, err)
		}
		pos += chunkHeaderSize
		// IDnSize does not report a short size field.
		if pos > end {
			return Header{}, fmt.Errorf("%w: %w: truncated %q chunk header", ErrMalformedContainer, ErrMissingData, id[:])
		}

		switch id {
		case riff.DataFormatID:
			if !hasFmt {
				return Header{}, fmt.Errorf("%w: %w", ErrMalformedContainer, ErrMissingFormat)
			}
			h.DataStart = pos
			h.DataLength = int64(size)
			if _, err := r.Seek(pos, io.SeekStart); err != nil {
				return Header{}, fmt.Errorf("%w: %w", ErrMalformedContainer, err)
			}
			return h, nil

		case riff.FmtID:
			if err := readFmt(r, size, &h); err != nil {
				return Header{}, err
			}
			hasFmt = true
		}

		// RIFF chunks are word aligned; odd sizes carry one pad byte.
		next := pos + int64(size) + int64(size&1)
		if _, err := r.Seek(next, io.SeekStart); err != nil {
			return Header{}, fmt.Errorf("%w: skipping %q chunk: %w", ErrMalformedContainer, id[:], err)
		}
		pos = next
	}
}

func readFmt(r io.Reader, size uint32, h *Header) error {
	if size < minFmtSize {
		return fmt.Errorf("%w: fmt chunk is %d bytes", ErrMalformedContainer, size)
	}

	var c fmtChunk
	if err := binary.Read(io.LimitReader(r, int64(size)), binary.LittleEndian, &c); err != nil {
		return fmt.Errorf("%w: fmt chunk: %w", ErrMalformedContainer, err)
	}
	if c.BitsPerSample < 8 {
		return fmt.Errorf("%w: %d bits per sample", ErrMalformedContainer, c.BitsPerSample)
	}

	h.AudioFormat = c.AudioFormat
	h.Channels = int(c.NumChannels)
	h.SampleRate = int(c.SampleRate)
	h.ByteRate = int(c.ByteRate)
	h.BlockAlign = int(c.BlockAlign)
	h.BitsPerSample = int(c.BitsPerSample)

	return nil
}
