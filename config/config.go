// SPDX-License-Identifier: EPL-2.0

// Package config loads the settings of the wavplay and wavprep commands
// from the environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ik5/wavdac/audio"
	"github.com/ik5/wavdac/player"
	"github.com/ik5/wavdac/storage"
	"github.com/ik5/wavdac/transcode"
)

// ErrInvalid is returned for settings that are present but unusable.
var ErrInvalid = errors.New("invalid configuration")

// OutputPortAudio selects the host sound card. Any other output value is
// the path of a WAV file to render into.
const OutputPortAudio = "portaudio"

type Config struct {
	// MountRoot is the host directory volumes show up under.
	MountRoot string
	Volume    string
	Output    string

	Resolution   audio.Resolution
	BufferSize   int
	BufferCount  int
	CatalogLimit int

	ConnectRetry   time.Duration
	ConnectTimeout time.Duration // 0 waits forever

	Shuffle bool
	Seed    uint64 // 0 seeds from the clock

	// SampleRate is the rate wavprep writes its files at.
	SampleRate int

	LogLevel zerolog.Level
}

// Load reads the given .env files, then the environment. Missing files
// are skipped; variables already set in the environment win over files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, f, err)
		}
	}

	cfg := Config{
		MountRoot:    envStr("WAVPLAY_MOUNT_ROOT", "/media"),
		Volume:       envStr("WAVPLAY_VOLUME", "USB"),
		Output:       envStr("WAVPLAY_OUTPUT", OutputPortAudio),
		Resolution:   audio.Resolution(envInt("WAVPLAY_RESOLUTION", int(audio.DefaultResolution))),
		BufferSize:   envInt("WAVPLAY_BUFFER_SIZE", audio.DefaultBufferSize),
		BufferCount:  envInt("WAVPLAY_BUFFER_COUNT", audio.DefaultBufferCount),
		CatalogLimit: envInt("WAVPLAY_CATALOG_LIMIT", storage.DefaultCatalogLimit),

		ConnectRetry:   time.Duration(envInt("WAVPLAY_CONNECT_RETRY_MS", int(storage.DefaultRetryDelay/time.Millisecond))) * time.Millisecond,
		ConnectTimeout: time.Duration(envInt("WAVPLAY_CONNECT_TIMEOUT_MS", 0)) * time.Millisecond,

		Shuffle: envBool("WAVPLAY_SHUFFLE", false),
		Seed:    uint64(envInt("WAVPLAY_SEED", 0)),

		SampleRate: envInt("WAVPREP_SAMPLE_RATE", transcode.DefaultSampleRate),
	}

	if !cfg.Resolution.Valid() {
		return Config{}, fmt.Errorf("%w: WAVPLAY_RESOLUTION %d", ErrInvalid, int(cfg.Resolution))
	}

	if cfg.SampleRate <= 0 {
		return Config{}, fmt.Errorf("%w: WAVPREP_SAMPLE_RATE %d", ErrInvalid, cfg.SampleRate)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(envStr("WAVPLAY_LOG_LEVEL", "info")))
	if err != nil {
		return Config{}, fmt.Errorf("%w: WAVPLAY_LOG_LEVEL: %w", ErrInvalid, err)
	}
	cfg.LogLevel = level

	return cfg, nil
}

// VolumeOptions are the storage settings for the configured volume.
func (c Config) VolumeOptions(log *zerolog.Logger) storage.Options {
	return storage.Options{
		Limit:          c.CatalogLimit,
		RetryDelay:     c.ConnectRetry,
		ConnectTimeout: c.ConnectTimeout,
		Logger:         log,
	}
}

// PlayerConfig is the player configuration minus its random source.
func (c Config) PlayerConfig(log *zerolog.Logger) player.Config {
	return player.Config{
		Resolution:  c.Resolution,
		BufferSize:  c.BufferSize,
		BufferCount: c.BufferCount,
		Logger:      log,
	}
}

func (c Config) TranscodeOptions(log *zerolog.Logger) transcode.Options {
	return transcode.Options{SampleRate: c.SampleRate, Logger: log}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
