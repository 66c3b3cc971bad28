// SPDX-License-Identifier: EPL-2.0

// Command wavprep converts audio files into 16-bit mono WAV files that
// wavplay can stream.
//
//	wavprep <output dir> <input.{mp3|ogg|aiff|wav}>...
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ik5/wavdac/config"
	"github.com/ik5/wavdac/transcode"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("usage: wavprep <output dir> <input.{mp3|ogg|aiff|wav}>...")
		os.Exit(1)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	log = log.Level(cfg.LogLevel)

	outDir := os.Args[1]
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", outDir).Msg("creating output directory")
	}

	t := transcode.New(cfg.TranscodeOptions(&log))

	failed := 0
	for _, in := range os.Args[2:] {
		out := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))+".wav")

		res, err := convert(t, in, out)
		if err != nil {
			failed++
			log.Error().Err(err).Str("input", in).Msg("conversion failed")
			continue
		}

		log.Info().
			Str("input", in).
			Str("output", out).
			Str("title", res.Title).
			Str("artist", res.Artist).
			Dur("duration", res.Duration).
			Msg("converted")
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func convert(t *transcode.Transcoder, in, out string) (transcode.Result, error) {
	if filepath.Clean(in) == filepath.Clean(out) {
		return transcode.Result{}, fmt.Errorf("%s would overwrite its own input", in)
	}

	src, err := os.Open(in)
	if err != nil {
		return transcode.Result{}, err
	}
	defer src.Close()

	dst, err := os.Create(out)
	if err != nil {
		return transcode.Result{}, err
	}

	res, err := t.Transcode(dst, src, transcode.FormatOf(in))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(out)
		return transcode.Result{}, err
	}

	return res, nil
}
