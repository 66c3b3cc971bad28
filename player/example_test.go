// SPDX-License-Identifier: EPL-2.0

package player_test

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/ik5/wavdac/dac"
	"github.com/ik5/wavdac/internal/audiotest"
	"github.com/ik5/wavdac/player"
	"github.com/ik5/wavdac/storage"
)

type stick struct{}

func (stick) Connect() bool { return true }

type memMounter struct{ fs afero.Fs }

func (m memMounter) Mount(string, storage.Device) (afero.Fs, error) { return m.fs, nil }

func Example() {
	disk := audiotest.NewDisk()
	short := audiotest.WAV(audiotest.PCM16Mono(22050), audiotest.PCM16(audiotest.Silence(300)...))
	long := audiotest.WAV(audiotest.PCM16Mono(22050), audiotest.PCM16(audiotest.Silence(22050)...))
	_ = disk.WriteFile("/USB/intro.wav", short)
	_ = disk.WriteFile("/USB/song.wav", long)

	vol := storage.NewVolume("USB", stick{}, memMounter{disk}, storage.DefaultOptions())
	p := player.New(vol, dac.NewRecorder(), player.Config{})

	if err := p.Play(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.CurrentFile(), p.IsFinished())

	if err := p.Next(); err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.CurrentFile(), p.Status())

	// Output:
	// intro.wav true
	// song.wav playing
}

func ExamplePlayer_Load() {
	vol := storage.NewVolume("USB", stick{}, memMounter{audiotest.NewDisk()}, storage.DefaultOptions())
	p := player.New(vol, dac.NewRecorder(), player.Config{})

	if err := p.Load("missing.wav"); err != nil {
		fmt.Println(p.HasError())
		fmt.Println(p.ErrorMessage())
	}

	// Output:
	// true
	// can't open audio file: /USB/missing.wav (file does not exist)
}
