package render

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"campus_paths/pkg/geo"
)

func orbPoint(ll geo.LatLng) orb.Point {
	return orb.Point{ll.Lng, ll.Lat}
}

// FeatureCollection encodes the scene as GeoJSON: a LineString feature per
// line followed by a Point feature per marker. Properties carry the styling
// so a map widget can draw the features as-is.
func (s Scene) FeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i, l := range s.Lines {
		f := geojson.NewFeature(orb.LineString{orbPoint(l.From), orbPoint(l.To)})
		f.Properties["kind"] = "segment"
		f.Properties["index"] = i
		f.Properties["cost"] = l.Cost
		f.Properties["color"] = l.Color
		fc.Append(f)
	}

	for _, m := range s.Markers() {
		f := geojson.NewFeature(orbPoint(m.Position))
		f.Properties["kind"] = string(m.Kind)
		f.Properties["color"] = m.Color
		f.Properties["radius"] = m.Radius
		fc.Append(f)
	}

	return fc
}

// Bound returns the bounding box of everything in the scene.
func (s Scene) Bound() orb.Bound {
	var mp orb.MultiPoint
	for _, l := range s.Lines {
		mp = append(mp, orbPoint(l.From), orbPoint(l.To))
	}
	for _, m := range s.Markers() {
		mp = append(mp, orbPoint(m.Position))
	}
	return mp.Bound()
}
