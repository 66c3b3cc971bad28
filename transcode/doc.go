// SPDX-License-Identifier: EPL-2.0

// Package transcode prepares audio files for a player volume.
//
// The player only streams uncompressed PCM WAV. This package decodes MP3,
// Ogg Vorbis, AIFF and arbitrary PCM WAV, mixes them down to mono,
// resamples them and writes 16-bit WAV files:
//
//	t := transcode.New(transcode.Options{SampleRate: 22050})
//	res, err := t.Transcode(out, in, transcode.FormatOf("song.mp3"))
package transcode
