// SPDX-License-Identifier: EPL-2.0

package player

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ik5/wavdac/audio"
	"github.com/ik5/wavdac/storage"
)

// DefaultPumpInterval is the pause between pumps inside Delay.
const DefaultPumpInterval = time.Millisecond

// Config tunes a Player. Zero fields take their defaults.
type Config struct {
	Resolution   audio.Resolution
	BufferSize   int
	BufferCount  int
	PumpInterval time.Duration

	// Rand drives Shuffle. It defaults to a source seeded from the clock.
	Rand   *rand.Rand
	Logger *zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.Resolution == 0 {
		c.Resolution = audio.DefaultResolution
	}
	if c.BufferSize <= 0 {
		c.BufferSize = audio.DefaultBufferSize
	}
	if c.BufferCount <= 0 {
		c.BufferCount = audio.DefaultBufferCount
	}
	if c.PumpInterval <= 0 {
		c.PumpInterval = DefaultPumpInterval
	}
	if c.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		c.Rand = rand.New(rand.NewPCG(seed, seed>>32))
	}
	return c
}

// Player plays the WAV files of one storage volume through a converter.
//
// Nothing happens in the background. Playback only advances inside calls
// to Play, Update, Delay, IsPlaying and IsFinished, so the caller must make
// one of them often enough to keep the converter queue from running dry.
//
// Every fallible method returns its error. The most recent one is also
// kept for HasError and ErrorMessage until a load succeeds.
//
// A Player is safe for use from several goroutines.
type Player struct {
	mtx *sync.Mutex

	vol *storage.Volume
	tr  *transport
	rnd *rand.Rand
	log zerolog.Logger

	pump time.Duration
	err  error
}

// New returns a Player for the files of vol. It does not touch the volume
// or the converter.
func New(vol *storage.Volume, dac audio.DAC, cfg Config) *Player {
	cfg = cfg.withDefaults()

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	log = log.With().Str("volume", vol.Name()).Logger()

	return &Player{
		mtx: &sync.Mutex{},
		vol: vol,
		tr: &transport{
			vol: vol,
			dac: dac,
			conf: audio.Config{
				Resolution:  cfg.Resolution,
				BufferSize:  cfg.BufferSize,
				BufferCount: cfg.BufferCount,
			},
			log: log,
		},
		rnd:  cfg.Rand,
		log:  log,
		pump: cfg.PumpInterval,
	}
}

// record keeps err for the status queries and hands it back.
func (p *Player) record(err error) error {
	if err != nil {
		p.err = err
		p.log.Warn().Err(err).Msg("playback error")
	}
	return err
}

func (p *Player) load(name string) error {
	if err := p.tr.load(name); err != nil {
		return p.record(err)
	}
	p.err = nil
	return nil
}

// Load binds name, a file in the volume root, for playback and configures
// the converter for it. Loading the file that is already loaded does
// nothing. On failure nothing stays loaded.
func (p *Player) Load(name string) error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.load(name)
}

func (p *Player) play() error {
	cat, err := p.vol.Scan()
	if err != nil {
		return p.record(err)
	}

	if !p.tr.loaded() {
		first, _ := cat.Name(0)
		if err := p.load(first); err != nil {
			return err
		}
	}

	return p.record(p.tr.start())
}

// Play starts or resumes playback, loading the first catalog entry when
// nothing is loaded yet. The volume is scanned first if needed.
func (p *Player) Play() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.play()
}

// Pause halts output and keeps the read position. It does nothing unless
// playing.
func (p *Player) Pause() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	p.tr.pause()
}

// Stop halts output and rewinds the loaded file to its first sample.
func (p *Player) Stop() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.record(p.tr.stop())
}

// Scan mounts and scans the volume if that has not happened yet.
func (p *Player) Scan() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	_, err := p.vol.Scan()
	return p.record(err)
}

func (p *Player) update() error {
	if !p.tr.playing {
		return nil
	}
	return p.record(p.tr.tick())
}

// Update moves as much audio into the converter as it can take.
func (p *Player) Update() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.update()
}

// Delay blocks for d while keeping playback fed. The lock is released
// between pumps.
func (p *Player) Delay(d time.Duration) error {
	deadline := time.Now().Add(d)

	for {
		p.mtx.Lock()
		err := p.update()
		p.mtx.Unlock()
		if err != nil {
			return err
		}

		left := time.Until(deadline)
		if left <= 0 {
			return nil
		}
		time.Sleep(min(p.pump, left))
	}
}

// IsPlaying pumps playback and reports whether it is still running.
func (p *Player) IsPlaying() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	_ = p.update()
	return p.tr.playing
}

// IsFinished pumps playback and reports whether the loaded file played to
// its end since the last call. The file is rewound when that happens.
func (p *Player) IsFinished() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	_ = p.update()

	done := p.tr.finished
	p.tr.finished = false
	return done
}

// CurrentFile is the name of the loaded file, or "" when none is.
func (p *Player) CurrentFile() string {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.tr.name
}

// File returns catalog entry i. The catalog is empty until the volume has
// been scanned.
func (p *Player) File(i int) (string, bool) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.vol.Catalog().Name(i)
}

func (p *Player) Files() []string {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.vol.Catalog().Names()
}

// Size is the number of catalog entries, 0 before a scan.
func (p *Player) Size() int {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.vol.Catalog().Len()
}

func (p *Player) HasError() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.err != nil
}

// Err is the most recent error, or nil after a successful load.
func (p *Player) Err() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.err
}

func (p *Player) ErrorMessage() string {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.err == nil {
		return ""
	}
	return p.err.Error()
}

func (p *Player) Status() Status {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	switch {
	case p.err != nil:
		return Error
	case p.tr.playing:
		return Playing
	case p.tr.paused:
		return Paused
	case p.tr.finished:
		return Finished
	case p.tr.loaded(), p.vol.Scanned():
		return Idle
	case p.vol.Mounted():
		return MountedUnscanned
	default:
		return NotMounted
	}
}

// Position reports how many samples of the loaded file have been queued
// and how many it holds.
func (p *Player) Position() (played, total int64) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.tr.position()
}
