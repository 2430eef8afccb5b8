package geo

// LatLng is a geographic coordinate in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Projection is a fixed affine mapping from the planar coordinate system of
// a campus map image to latitude/longitude.
//
//	lon = LonOrigin + (x - LonOffset) * LonScale
//	lat = LatOrigin + (y - LatOffset) * LatScale
type Projection struct {
	LatOrigin float64
	LatOffset float64
	LatScale  float64

	LonOrigin float64
	LonOffset float64
	LonScale  float64

	// Center is where a map of this campus should be centered.
	Center LatLng
}

// UW is the projection for the University of Washington Seattle campus map.
// The y axis of the map image points south, so LatScale is negative.
var UW = Projection{
	LatOrigin: 47.65878405511131,
	LatOffset: 807.35188,
	LatScale:  -0.00000576766,

	LonOrigin: -122.30305689150074,
	LonOffset: 1370.6408,
	LonScale:  0.00000848028,

	Center: LatLng{Lat: 47.65440627742146, Lng: -122.30427923703786},
}

// XToLon converts a planar x coordinate to longitude.
func (p Projection) XToLon(x float64) float64 {
	return p.LonOrigin + (x-p.LonOffset)*p.LonScale
}

// YToLat converts a planar y coordinate to latitude.
func (p Projection) YToLat(y float64) float64 {
	return p.LatOrigin + (y-p.LatOffset)*p.LatScale
}

// ToLatLng converts a planar (x, y) pair.
func (p Projection) ToLatLng(x, y float64) LatLng {
	return LatLng{Lat: p.YToLat(y), Lng: p.XToLon(x)}
}

// FromLatLng is the inverse of ToLatLng. A projection with a zero scale has
// no inverse on that axis and yields the offset.
func (p Projection) FromLatLng(ll LatLng) (x, y float64) {
	x, y = p.LonOffset, p.LatOffset
	if p.LonScale != 0 {
		x += (ll.Lng - p.LonOrigin) / p.LonScale
	}
	if p.LatScale != 0 {
		y += (ll.Lat - p.LatOrigin) / p.LatScale
	}
	return x, y
}
