// SPDX-License-Identifier: EPL-2.0

package player

func (p *Player) step(delta int) error {
	cat, err := p.vol.Scan()
	if err != nil {
		return p.record(err)
	}

	n := cat.Len()
	i := cat.Index(p.tr.name)
	if !p.tr.loaded() || n == 1 || i < 0 {
		i = 0
	} else {
		i = (i + delta + n) % n
	}

	name, _ := cat.Name(i)
	if err := p.load(name); err != nil {
		return err
	}
	return p.play()
}

// Next loads and plays the catalog entry after the current one, wrapping
// to the first. With nothing loaded, or a current file that is not in the
// catalog, it plays the first entry.
func (p *Player) Next() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.step(1)
}

// Prev is Next in the other direction.
func (p *Player) Prev() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	return p.step(-1)
}

// Shuffle reorders the catalog in place. The loaded file is unaffected.
func (p *Player) Shuffle() error {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	cat, err := p.vol.Scan()
	if err != nil {
		return p.record(err)
	}

	cat.Shuffle(p.rnd)
	p.log.Debug().Strs("files", cat.Names()).Msg("catalog shuffled")

	return nil
}
