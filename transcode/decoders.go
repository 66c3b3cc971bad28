// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
)

// MP3Decoder decodes MPEG-1/2 layer III. go-mp3 always yields 16-bit
// stereo.
type MP3Decoder struct{}

func (MP3Decoder) Decode(r io.Reader) (Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	return &mp3Source{dec: dec, rate: dec.SampleRate()}, nil
}

type mp3Reader interface {
	Read([]byte) (int, error)
}

type mp3Source struct {
	dec  mp3Reader
	rate int
	buf  []byte
	odd  []byte // trailing byte of a split sample
}

func (s *mp3Source) SampleRate() int { return s.rate }
func (s *mp3Source) Channels() int   { return 2 }
func (s *mp3Source) Close() error    { return nil }

func (s *mp3Source) ReadSamples(dst []float32) (int, error) {
	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	buf := s.buf[:need]

	lead := copy(buf, s.odd)
	s.odd = s.odd[:0]

	n, err := s.dec.Read(buf[lead:])
	n += lead

	samples := n / 2
	for i := range samples {
		v := int16(uint16(buf[2*i]) | uint16(buf[2*i+1])<<8)
		dst[i] = float32(v) / 32768
	}
	if n%2 == 1 {
		s.odd = append(s.odd, buf[n-1])
	}

	return samples, err
}

// VorbisDecoder decodes Ogg Vorbis.
type VorbisDecoder struct{}

func (VorbisDecoder) Decode(r io.Reader) (Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("ogg: %w", err)
	}

	return &vorbisSource{dec: dec}, nil
}

type vorbisReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type vorbisSource struct {
	dec vorbisReader
}

func (s *vorbisSource) SampleRate() int { return s.dec.SampleRate() }
func (s *vorbisSource) Channels() int   { return s.dec.Channels() }
func (s *vorbisSource) Close() error    { return nil }

func (s *vorbisSource) ReadSamples(dst []float32) (int, error) {
	// oggvorbis already counts values, not frames.
	n := len(dst) - len(dst)%s.dec.Channels()
	if n == 0 {
		return 0, nil
	}
	return s.dec.Read(dst[:n])
}

// AIFFDecoder decodes uncompressed AIFF.
type AIFFDecoder struct{}

func (AIFFDecoder) Decode(r io.Reader) (Source, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("aiff: %w", err)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}
	dec.ReadInfo()

	return newPCMSource(dec, int(dec.BitDepth), dec.SampleRate, int(dec.NumChans), 0)
}

// WAVDecoder decodes integer PCM WAV of any common width and layout, for
// normalizing files that do not match the player's target format.
type WAVDecoder struct{}

func (WAVDecoder) Decode(r io.Reader) (Source, error) {
	rs, err := readSeeker(r)
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	dec.ReadInfo()

	// 8-bit WAV is unsigned
	var bias int
	if dec.BitDepth == 8 {
		bias = -128
	}

	return newPCMSource(dec, int(dec.BitDepth), int(dec.SampleRate), int(dec.NumChans), bias)
}

func readSeeker(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// pcmSource adapts the go-audio integer decoders.
type pcmSource struct {
	dec      pcmReader
	rate     int
	channels int
	bias     int
	scale    float32
	intBuf   *goaudio.IntBuffer
}

func newPCMSource(dec pcmReader, bits, rate, channels, bias int) (*pcmSource, error) {
	switch bits {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bits)
	}
	if rate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidRate, rate, channels)
	}

	return &pcmSource{
		dec:      dec,
		rate:     rate,
		channels: channels,
		bias:     bias,
		scale:    1 / float32(int64(1)<<(bits-1)),
		intBuf: &goaudio.IntBuffer{
			Format: &goaudio.Format{NumChannels: channels, SampleRate: rate},
		},
	}, nil
}

func (s *pcmSource) SampleRate() int { return s.rate }
func (s *pcmSource) Channels() int   { return s.channels }
func (s *pcmSource) Close() error    { return nil }

func (s *pcmSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if cap(s.intBuf.Data) < len(dst) {
		s.intBuf.Data = make([]int, len(dst))
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	for i := range n {
		dst[i] = float32(s.intBuf.Data[i]+s.bias) * s.scale
	}

	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}
