// Package campus holds the data model shared by the route service client,
// the selection controller and the renderer.
package campus

import "fmt"

// Point is a coordinate in the planar system of the campus map image.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Building is a selectable route endpoint.
type Building struct {
	ShortName string  `json:"shortName"`
	LongName  string  `json:"longName"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// Label is the text shown for the building in a dropdown.
func (b Building) Label() string {
	return fmt.Sprintf("%s (%s)", b.LongName, b.ShortName)
}

// Point returns the building's planar location.
func (b Building) Point() Point {
	return Point{X: b.X, Y: b.Y}
}

// Segment is one directed leg of a route.
type Segment struct {
	Start Point   `json:"start"`
	End   Point   `json:"end"`
	Cost  float64 `json:"cost"`
}

// Route is a shortest path as returned by the route service.
type Route struct {
	Cost  float64   `json:"cost"`
	Path  []Segment `json:"path"`
	Start Point     `json:"start"`
}

// Reverse flips the route in place: the endpoints of the first and of the
// last segment are swapped, then the segment order is reversed. Interior
// segments keep their original direction. A single-segment path is swapped
// once.
func (r *Route) Reverse() {
	n := len(r.Path)
	if n == 0 {
		return
	}
	r.Path[0].Start, r.Path[0].End = r.Path[0].End, r.Path[0].Start
	if n > 1 {
		r.Path[n-1].Start, r.Path[n-1].End = r.Path[n-1].End, r.Path[n-1].Start
	}
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		r.Path[i], r.Path[j] = r.Path[j], r.Path[i]
	}
}

// Clone returns a deep copy.
func (r *Route) Clone() *Route {
	if r == nil {
		return nil
	}
	c := *r
	c.Path = ClonePath(r.Path)
	return &c
}

// ClonePath copies a segment slice. A nil or empty input yields an empty,
// non-nil slice.
func ClonePath(path []Segment) []Segment {
	out := make([]Segment, len(path))
	copy(out, path)
	return out
}
