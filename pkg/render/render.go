// Package render turns a route path into drawable map geometry: one line
// per segment and a marker at each end of the route.
package render

import (
	"sync"

	"campus_paths/pkg/campus"
	"campus_paths/pkg/geo"
)

// Colors used for every route. Segments are not styled individually.
const (
	RouteColor   = "blue"
	StartColor   = "green"
	EndColor     = "red"
	MarkerRadius = 5
)

// MarkerKind tells the route start marker from the route end marker.
type MarkerKind string

const (
	MarkerStart MarkerKind = "start"
	MarkerEnd   MarkerKind = "end"
)

// Line is one drawable route segment.
type Line struct {
	From  geo.LatLng `json:"from"`
	To    geo.LatLng `json:"to"`
	Cost  float64    `json:"cost"`
	Color string     `json:"color"`
}

// Marker is a circle drawn at a route endpoint.
type Marker struct {
	Kind     MarkerKind `json:"kind"`
	Position geo.LatLng `json:"position"`
	Color    string     `json:"color"`
	Radius   int        `json:"radius"`
}

// Scene is everything the map draws for one route.
type Scene struct {
	Lines        []Line  `json:"lines"`
	Start        *Marker `json:"start,omitempty"`
	End          *Marker `json:"end,omitempty"`
	Cost         float64 `json:"cost"`
	LengthMeters float64 `json:"length_meters"`
}

// Empty reports whether the scene has nothing to draw.
func (s Scene) Empty() bool {
	return len(s.Lines) == 0
}

// Markers returns the start and end markers, in that order, if present.
func (s Scene) Markers() []Marker {
	var out []Marker
	if s.Start != nil {
		out = append(out, *s.Start)
	}
	if s.End != nil {
		out = append(out, *s.End)
	}
	return out
}

// Render derives the scene for a path. The start marker sits on the first
// segment's start, the end marker on the last segment's end. An empty path
// renders nothing.
func Render(path []campus.Segment, proj geo.Projection) Scene {
	scene := Scene{Lines: make([]Line, 0, len(path))}
	if len(path) == 0 {
		return scene
	}

	for _, seg := range path {
		from := proj.ToLatLng(seg.Start.X, seg.Start.Y)
		to := proj.ToLatLng(seg.End.X, seg.End.Y)
		scene.Lines = append(scene.Lines, Line{From: from, To: to, Cost: seg.Cost, Color: RouteColor})
		scene.Cost += seg.Cost
		scene.LengthMeters += geo.Haversine(from, to)
	}

	first := path[0].Start
	last := path[len(path)-1].End
	scene.Start = &Marker{
		Kind:     MarkerStart,
		Position: proj.ToLatLng(first.X, first.Y),
		Color:    StartColor,
		Radius:   MarkerRadius,
	}
	scene.End = &Marker{
		Kind:     MarkerEnd,
		Position: proj.ToLatLng(last.X, last.Y),
		Color:    EndColor,
		Radius:   MarkerRadius,
	}
	return scene
}

// Container is the parent of the map: it receives the current path from a
// selection controller and keeps the scene derived from it. Update has the
// shape of selection.Observer.
type Container struct {
	proj geo.Projection

	mu    sync.RWMutex
	path  []campus.Segment
	scene Scene
}

// NewContainer creates an empty container drawing with proj.
func NewContainer(proj geo.Projection) *Container {
	return &Container{proj: proj, path: []campus.Segment{}, scene: Render(nil, proj)}
}

// Update replaces the current path and re-derives the scene.
func (c *Container) Update(path []campus.Segment) {
	path = campus.ClonePath(path)
	scene := Render(path, c.proj)

	c.mu.Lock()
	c.path = path
	c.scene = scene
	c.mu.Unlock()
}

// Scene returns the scene for the current path.
func (c *Container) Scene() Scene {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.scene
}

// Path returns a copy of the current path.
func (c *Container) Path() []campus.Segment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return campus.ClonePath(c.path)
}

// Projection returns the projection scenes are drawn with.
func (c *Container) Projection() geo.Projection {
	return c.proj
}
