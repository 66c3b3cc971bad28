// SPDX-License-Identifier: EPL-2.0

// Package player streams WAV files from a storage volume to a converter.
//
// A Player mounts and scans its volume lazily, keeps one file loaded, and
// feeds the converter's buffer queue from it. Playback is pumped by the
// caller:
//
//	p := player.New(vol, dac, player.Config{})
//	if err := p.Play(); err != nil {
//		return err
//	}
//	for {
//		if p.IsFinished() {
//			_ = p.Next()
//		}
//		_ = p.Delay(10 * time.Millisecond)
//	}
package player
