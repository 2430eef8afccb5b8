package render

import (
	"testing"

	"campus_paths/pkg/campus"
	"campus_paths/pkg/geo"
)

func pt(x, y float64) campus.Point { return campus.Point{X: x, Y: y} }

func threeLegPath() []campus.Segment {
	return []campus.Segment{
		{Start: pt(0, 0), End: pt(100, 50), Cost: 10},
		{Start: pt(100, 50), End: pt(200, 50), Cost: 5},
		{Start: pt(200, 50), End: pt(200, 150), Cost: 7},
	}
}

func TestRenderScenario(t *testing.T) {
	path := []campus.Segment{{Start: pt(0, 0), End: pt(100, 50), Cost: 10}}
	scene := Render(path, geo.UW)

	if len(scene.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(scene.Lines))
	}
	if scene.Start == nil || scene.End == nil {
		t.Fatalf("missing markers: %+v", scene)
	}
	if want := geo.UW.ToLatLng(0, 0); scene.Start.Position != want {
		t.Errorf("start marker = %+v, want %+v", scene.Start.Position, want)
	}
	if want := geo.UW.ToLatLng(100, 50); scene.End.Position != want {
		t.Errorf("end marker = %+v, want %+v", scene.End.Position, want)
	}
	if scene.Start.Kind != MarkerStart || scene.Start.Color != StartColor {
		t.Errorf("start marker style = %+v", scene.Start)
	}
	if scene.End.Kind != MarkerEnd || scene.End.Color != EndColor {
		t.Errorf("end marker style = %+v", scene.End)
	}
}

func TestRenderLines(t *testing.T) {
	path := threeLegPath()
	scene := Render(path, geo.UW)

	if len(scene.Lines) != len(path) {
		t.Fatalf("lines = %d, want %d", len(scene.Lines), len(path))
	}
	for i, l := range scene.Lines {
		if l.Color != RouteColor {
			t.Errorf("line %d color = %s, want %s", i, l.Color, RouteColor)
		}
		if want := geo.UW.ToLatLng(path[i].Start.X, path[i].Start.Y); l.From != want {
			t.Errorf("line %d from = %+v, want %+v", i, l.From, want)
		}
	}
	if want := geo.UW.ToLatLng(200, 150); scene.End.Position != want {
		t.Errorf("end marker = %+v, want last segment end %+v", scene.End.Position, want)
	}
	if scene.Cost != 22 {
		t.Errorf("cost = %v, want 22", scene.Cost)
	}
	if scene.LengthMeters <= 0 {
		t.Errorf("length = %v, want > 0", scene.LengthMeters)
	}
}

func TestRenderEmpty(t *testing.T) {
	for _, path := range [][]campus.Segment{nil, {}} {
		scene := Render(path, geo.UW)
		if !scene.Empty() || scene.Start != nil || scene.End != nil {
			t.Errorf("Render(%v) = %+v, want nothing", path, scene)
		}
		if len(scene.Markers()) != 0 {
			t.Errorf("markers = %v", scene.Markers())
		}
	}
}

func TestContainerUpdate(t *testing.T) {
	c := NewContainer(geo.UW)
	if !c.Scene().Empty() {
		t.Fatalf("new container should be empty")
	}

	path := threeLegPath()
	c.Update(path)
	if got := len(c.Scene().Lines); got != 3 {
		t.Errorf("lines = %d, want 3", got)
	}

	// The container keeps its own copy.
	path[0].Cost = 99
	if c.Path()[0].Cost != 10 {
		t.Errorf("container aliases the caller's path")
	}

	c.Update(nil)
	if !c.Scene().Empty() || len(c.Path()) != 0 {
		t.Errorf("update with empty path should clear the scene")
	}
	if c.Projection() != geo.UW {
		t.Errorf("projection = %+v", c.Projection())
	}
}
