// SPDX-License-Identifier: EPL-2.0

// Command wavplay plays every WAV file on a mounted storage volume, in
// order or shuffled, on the sound card or into a WAV file.
//
// Settings come from the environment and an optional .env file; see the
// config package.
package main

import (
	"context"
	"errors"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ik5/wavdac/audio"
	"github.com/ik5/wavdac/config"
	"github.com/ik5/wavdac/dac"
	"github.com/ik5/wavdac/dac/portaudio"
	"github.com/ik5/wavdac/player"
	"github.com/ik5/wavdac/storage"
)

const pumpEvery = 10 * time.Millisecond

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading configuration")
	}
	log = log.Level(cfg.LogLevel)

	out, closeOut, err := openOutput(cfg, &log)
	if err != nil {
		log.Fatal().Err(err).Str("output", cfg.Output).Msg("opening output")
	}
	defer func() {
		if err := closeOut.Close(); err != nil {
			log.Error().Err(err).Msg("closing output")
		}
	}()

	vol := storage.NewVolume(
		cfg.Volume,
		storage.DirDevice{Path: filepath.Join(cfg.MountRoot, cfg.Volume)},
		storage.OSMounter{Root: cfg.MountRoot},
		cfg.VolumeOptions(&log),
	)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	pc := cfg.PlayerConfig(&log)
	pc.Rand = rand.New(rand.NewPCG(seed, seed>>32))
	p := player.New(vol, out, pc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, p, cfg, &log); err != nil {
		log.Error().Err(err).Msg("playback stopped")
	}
}

// run plays the catalog until it was played through once when rendering
// to a file, or until ctx is done on the sound card.
func run(ctx context.Context, p *player.Player, cfg config.Config, log *zerolog.Logger) error {
	if cfg.Shuffle {
		if err := p.Shuffle(); err != nil {
			return err
		}
	}
	if err := p.Play(); err != nil {
		return err
	}
	log.Info().Str("file", p.CurrentFile()).Int("catalog", p.Size()).Msg("playing")

	once := cfg.Output != config.OutputPortAudio
	played := 0

	for ctx.Err() == nil {
		if p.IsFinished() {
			played++
			if once && played >= p.Size() {
				return nil
			}
			if err := p.Next(); err != nil {
				return err
			}
			log.Info().Str("file", p.CurrentFile()).Msg("playing")
			continue
		}

		if err := p.Delay(pumpEvery); err != nil {
			return err
		}
	}

	return p.Stop()
}

func openOutput(cfg config.Config, log *zerolog.Logger) (audio.DAC, io.Closer, error) {
	if cfg.Output == config.OutputPortAudio {
		d, err := portaudio.New(log)
		if err != nil {
			return nil, nil, err
		}
		return d, d, nil
	}

	f, err := os.Create(cfg.Output)
	if err != nil {
		return nil, nil, err
	}
	sink := dac.NewWAVSink(f)

	return sink, closerFunc(func() error {
		return errors.Join(sink.Close(), f.Close())
	}), nil
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
