// SPDX-License-Identifier: EPL-2.0

package storage

import (
	"math/rand/v2"
	"path"
	"slices"
	"strings"
)

// DefaultCatalogLimit is the number of files kept from a scan.
const DefaultCatalogLimit = 100

// Catalog is the ordered list of playable files on a volume.
type Catalog struct {
	names []string
}

// NewCatalog builds a catalog holding names in order.
func NewCatalog(names ...string) *Catalog {
	return &Catalog{names: slices.Clone(names)}
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// Name returns entry i.
func (c *Catalog) Name(i int) (string, bool) {
	if i < 0 || i >= c.Len() {
		return "", false
	}
	return c.names[i], true
}

// Index returns the position of an exact match of name, or -1.
func (c *Catalog) Index(name string) int {
	if c == nil {
		return -1
	}
	return slices.Index(c.names, name)
}

// Names returns a copy of the entries.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return slices.Clone(c.names)
}

// Shuffle permutes the entries in place. Every ordering is equally likely.
func (c *Catalog) Shuffle(r *rand.Rand) {
	if c.Len() < 2 {
		return
	}
	r.Shuffle(len(c.names), func(i, j int) {
		c.names[i], c.names[j] = c.names[j], c.names[i]
	})
}

// IsPlayable reports whether a directory entry name belongs in a catalog:
// a case-insensitive ".wav" extension and not hidden.
func IsPlayable(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(path.Ext(name), ".wav")
}
