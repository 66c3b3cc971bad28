// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"fmt"
	"io"
	"time"

	"github.com/dhowden/tag"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/rs/zerolog"
)

// DefaultSampleRate keeps the converter clock (twice the file rate) at
// 44.1 kHz.
const DefaultSampleRate = 22050

const (
	outBitDepth = 16
	writeChunk  = 4096
)

// Options configure a Transcoder. Zero fields take their defaults.
type Options struct {
	SampleRate int
	Registry   *Registry
	Logger     *zerolog.Logger
}

// Result describes a written file.
type Result struct {
	SampleRate int
	Samples    int
	Duration   time.Duration

	// Title and Artist come from the input's tags, when it has any.
	Title  string
	Artist string
}

// Transcoder rewrites audio files as 16-bit mono PCM WAV, the layout the
// player streams without any conversion beyond scaling.
type Transcoder struct {
	rate int
	reg  *Registry
	log  zerolog.Logger
}

func New(opts Options) *Transcoder {
	if opts.SampleRate <= 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.Registry == nil {
		opts.Registry = DefaultRegistry()
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	return &Transcoder{rate: opts.SampleRate, reg: opts.Registry, log: log}
}

// Transcode decodes src, which is in the given registry format, and writes
// it to dst.
func (t *Transcoder) Transcode(dst io.WriteSeeker, src io.Reader, format string) (Result, error) {
	dec, ok := t.reg.Get(format)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	var res Result
	if rs, ok := src.(io.ReadSeeker); ok {
		title, artist, err := readTags(rs)
		if err != nil {
			return Result{}, err
		}
		res.Title, res.Artist = title, artist
	}

	in, err := dec.Decode(src)
	if err != nil {
		return Result{}, err
	}
	defer in.Close()

	mono, err := readMono(in)
	if err != nil {
		return Result{}, fmt.Errorf("decoding %s: %w", format, err)
	}
	if in.SampleRate() <= 0 {
		return Result{}, fmt.Errorf("%w: %d Hz", ErrInvalidRate, in.SampleRate())
	}

	out := resample(mono, in.SampleRate(), t.rate)

	t.log.Debug().
		Str("format", format).
		Int("channels", in.Channels()).
		Int("from_rate", in.SampleRate()).
		Int("to_rate", t.rate).
		Int("samples", len(out)).
		Msg("transcoding")

	if err := t.write(dst, out); err != nil {
		return Result{}, err
	}

	res.SampleRate = t.rate
	res.Samples = len(out)
	res.Duration = time.Duration(len(out)) * time.Second / time.Duration(t.rate)

	return res, nil
}

// readTags reads ID3, MP4 or Vorbis comment tags and rewinds rs. Untagged
// input is not an error.
func readTags(rs io.ReadSeeker) (title, artist string, err error) {
	m, tagErr := tag.ReadFrom(rs)
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("rewinding after tags: %w", err)
	}
	if tagErr != nil {
		return "", "", nil
	}
	return m.Title(), m.Artist(), nil
}

func (t *Transcoder) write(dst io.WriteSeeker, samples []float32) error {
	enc := wav.NewEncoder(dst, t.rate, outBitDepth, 1, 1)

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: t.rate},
		Data:           make([]int, 0, writeChunk),
		SourceBitDepth: outBitDepth,
	}

	// an empty input still gets a header
	for start := 0; start == 0 || start < len(samples); start += writeChunk {
		chunk := samples[start:min(start+writeChunk, len(samples))]
		buf.Data = buf.Data[:len(chunk)]
		for i, v := range chunk {
			buf.Data[i] = int(toInt16(v))
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing wav: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}
	return nil
}
