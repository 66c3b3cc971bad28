// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ik5/wavdac/audio"
)

var allKeys = []string{
	"WAVPLAY_MOUNT_ROOT", "WAVPLAY_VOLUME", "WAVPLAY_OUTPUT",
	"WAVPLAY_RESOLUTION", "WAVPLAY_BUFFER_SIZE", "WAVPLAY_BUFFER_COUNT",
	"WAVPLAY_CATALOG_LIMIT", "WAVPLAY_CONNECT_RETRY_MS",
	"WAVPLAY_CONNECT_TIMEOUT_MS", "WAVPLAY_SHUFFLE", "WAVPLAY_SEED",
	"WAVPLAY_LOG_LEVEL", "WAVPREP_SAMPLE_RATE",
}

// clearEnv unsets every setting for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range allKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func missing(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missing(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Config{
		MountRoot:    "/media",
		Volume:       "USB",
		Output:       OutputPortAudio,
		Resolution:   audio.Resolution12,
		BufferSize:   256,
		BufferCount:  16,
		CatalogLimit: 100,
		ConnectRetry: 50 * time.Millisecond,
		SampleRate:   22050,
		LogLevel:     zerolog.InfoLevel,
	}
	if cfg != want {
		t.Errorf("Load() = %+v\nwant %+v", cfg, want)
	}
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("WAVPLAY_VOLUME", "STICK")
	t.Setenv("WAVPLAY_OUTPUT", "/tmp/out.wav")
	t.Setenv("WAVPLAY_RESOLUTION", "16")
	t.Setenv("WAVPLAY_BUFFER_COUNT", "4")
	t.Setenv("WAVPLAY_CATALOG_LIMIT", "0")
	t.Setenv("WAVPLAY_CONNECT_TIMEOUT_MS", "1500")
	t.Setenv("WAVPLAY_SHUFFLE", "true")
	t.Setenv("WAVPLAY_SEED", "42")
	t.Setenv("WAVPLAY_LOG_LEVEL", "DEBUG")
	t.Setenv("WAVPLAY_BUFFER_SIZE", "not a number")

	cfg, err := Load(missing(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Volume != "STICK" || cfg.Output != "/tmp/out.wav" {
		t.Errorf("volume/output = %q/%q", cfg.Volume, cfg.Output)
	}
	if cfg.Resolution != audio.Resolution16 || cfg.BufferCount != 4 || cfg.CatalogLimit != 0 {
		t.Errorf("converter settings = %+v", cfg)
	}
	if cfg.BufferSize != audio.DefaultBufferSize {
		t.Errorf("BufferSize = %d, want fallback on bad input", cfg.BufferSize)
	}
	if cfg.ConnectTimeout != 1500*time.Millisecond {
		t.Errorf("ConnectTimeout = %v", cfg.ConnectTimeout)
	}
	if !cfg.Shuffle || cfg.Seed != 42 {
		t.Errorf("shuffle/seed = %v/%d", cfg.Shuffle, cfg.Seed)
	}
	if cfg.LogLevel != zerolog.DebugLevel {
		t.Errorf("LogLevel = %v", cfg.LogLevel)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)

	file := filepath.Join(t.TempDir(), "player.env")
	content := "WAVPLAY_VOLUME=FLASH\nWAVPLAY_MOUNT_ROOT=/mnt\nWAVPREP_SAMPLE_RATE=16000\n"
	if err := os.WriteFile(file, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WAVPLAY_MOUNT_ROOT", "/run/media")

	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Volume != "FLASH" {
		t.Errorf("Volume = %q, want value from file", cfg.Volume)
	}
	if cfg.MountRoot != "/run/media" {
		t.Errorf("MountRoot = %q, environment must win over file", cfg.MountRoot)
	}
	if cfg.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want value from file", cfg.SampleRate)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"WAVPLAY_RESOLUTION", "24"},
		{"WAVPLAY_LOG_LEVEL", "loud"},
		{"WAVPREP_SAMPLE_RATE", "-8000"},
		{"WAVPREP_SAMPLE_RATE", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(missing(t)); !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestConfig_Options(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missing(t))
	if err != nil {
		t.Fatal(err)
	}

	log := zerolog.Nop()
	vo := cfg.VolumeOptions(&log)
	if vo.Limit != 100 || vo.RetryDelay != 50*time.Millisecond || vo.Logger != &log {
		t.Errorf("VolumeOptions = %+v", vo)
	}

	pc := cfg.PlayerConfig(&log)
	if pc.Resolution != audio.Resolution12 || pc.BufferSize != 256 || pc.BufferCount != 16 {
		t.Errorf("PlayerConfig = %+v", pc)
	}

	to := cfg.TranscodeOptions(&log)
	if to.SampleRate != 22050 || to.Logger != &log {
		t.Errorf("TranscodeOptions = %+v", to)
	}
}
