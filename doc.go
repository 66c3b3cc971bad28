// SPDX-License-Identifier: EPL-2.0

// Package wavdac streams WAV files from a removable storage volume to a
// digital-to-analog converter.
//
// The work is split across subpackages:
//
//   - formats/wav locates the sample data of a RIFF/WAVE file.
//   - audio defines the converter contract and scales PCM samples to
//     converter codes.
//   - storage mounts a volume once and catalogs its WAV files.
//   - player ties them together: load, play, pause, stop, next, prev and
//     shuffle, pumped by the caller.
//   - dac and dac/portaudio are converter drivers for a host.
//   - transcode turns MP3, Ogg Vorbis and AIFF files into WAV files the
//     player can stream.
//
// # Quick Start
//
//	vol := storage.NewVolume("USB",
//		storage.DirDevice{Path: "/media/USB"},
//		storage.OSMounter{Root: "/media"},
//		storage.DefaultOptions())
//
//	out, err := portaudio.New(nil)
//	if err != nil {
//		return err
//	}
//	defer out.Close()
//
//	p := player.New(vol, out, player.Config{})
//	if err := p.Play(); err != nil {
//		return err
//	}
//	for !p.IsFinished() {
//		_ = p.Delay(10 * time.Millisecond)
//	}
package wavdac
