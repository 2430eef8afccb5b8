package campus

import (
	"github.com/tidwall/rtree"
)

// Catalog is the read-only set of buildings offered for selection. Order is
// the order the buildings were received in.
type Catalog struct {
	buildings []Building
	byName    map[string]int
	index     rtree.RTreeG[int]
}

// NewCatalog indexes the given buildings. When two buildings share a short
// name, lookups resolve to the first.
func NewCatalog(buildings []Building) *Catalog {
	c := &Catalog{
		buildings: make([]Building, len(buildings)),
		byName:    make(map[string]int, len(buildings)),
	}
	copy(c.buildings, buildings)
	for i, b := range c.buildings {
		if _, dup := c.byName[b.ShortName]; !dup {
			c.byName[b.ShortName] = i
		}
		pt := [2]float64{b.X, b.Y}
		c.index.Insert(pt, pt, i)
	}
	return c
}

// Len returns the number of buildings.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.buildings)
}

// Buildings returns a copy of the option set in received order.
func (c *Catalog) Buildings() []Building {
	if c == nil {
		return []Building{}
	}
	out := make([]Building, len(c.buildings))
	copy(out, c.buildings)
	return out
}

// Lookup finds a building by short name.
func (c *Catalog) Lookup(shortName string) (Building, bool) {
	if c == nil {
		return Building{}, false
	}
	i, ok := c.byName[shortName]
	if !ok {
		return Building{}, false
	}
	return c.buildings[i], true
}

// Nearest returns the building closest to p.
func (c *Catalog) Nearest(p Point) (Building, bool) {
	if c.Len() == 0 {
		return Building{}, false
	}
	target := [2]float64{p.X, p.Y}
	found := -1
	c.index.Nearby(
		rtree.BoxDist[float64, int](target, target, nil),
		func(_, _ [2]float64, i int, _ float64) bool {
			found = i
			return false
		},
	)
	if found < 0 {
		return Building{}, false
	}
	return c.buildings[found], true
}
