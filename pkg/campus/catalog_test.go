package campus

import "testing"

func testBuildings() []Building {
	return []Building{
		{ShortName: "MOR", LongName: "Moore Hall", X: 100, Y: 50},
		{ShortName: "CSE", LongName: "Allen Center", X: 0, Y: 0},
		{ShortName: "KNE", LongName: "Kane Hall", X: 400, Y: 400},
	}
}

func TestCatalogKeepsOrder(t *testing.T) {
	c := NewCatalog(testBuildings())
	got := c.Buildings()
	want := []string{"MOR", "CSE", "KNE"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].ShortName != name {
			t.Errorf("Buildings()[%d] = %s, want %s", i, got[i].ShortName, name)
		}
	}

	// The returned slice is a copy.
	got[0].ShortName = "XXX"
	if c.Buildings()[0].ShortName != "MOR" {
		t.Errorf("Buildings() exposes internal storage")
	}
}

func TestCatalogLookup(t *testing.T) {
	c := NewCatalog(append(testBuildings(), Building{ShortName: "CSE", LongName: "Duplicate"}))
	b, ok := c.Lookup("CSE")
	if !ok || b.LongName != "Allen Center" {
		t.Errorf("Lookup(CSE) = %+v, %v", b, ok)
	}
	if _, ok := c.Lookup("NOPE"); ok {
		t.Errorf("Lookup(NOPE) should miss")
	}
}

func TestCatalogNearest(t *testing.T) {
	c := NewCatalog(testBuildings())
	tests := []struct {
		p    Point
		want string
	}{
		{Point{X: 1, Y: 1}, "CSE"},
		{Point{X: 90, Y: 60}, "MOR"},
		{Point{X: 1000, Y: 1000}, "KNE"},
	}
	for _, tt := range tests {
		b, ok := c.Nearest(tt.p)
		if !ok || b.ShortName != tt.want {
			t.Errorf("Nearest(%+v) = %s, %v; want %s", tt.p, b.ShortName, ok, tt.want)
		}
	}
}

func TestCatalogEmpty(t *testing.T) {
	var nilCat *Catalog
	if nilCat.Len() != 0 || len(nilCat.Buildings()) != 0 {
		t.Errorf("nil catalog should be empty")
	}
	if _, ok := NewCatalog(nil).Nearest(Point{}); ok {
		t.Errorf("Nearest on empty catalog should miss")
	}
}
