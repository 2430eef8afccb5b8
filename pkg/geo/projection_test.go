package geo

import (
	"math"
	"testing"
)

func TestProjectionOrigin(t *testing.T) {
	// The offsets map exactly onto the origin.
	if got := UW.XToLon(UW.LonOffset); got != UW.LonOrigin {
		t.Errorf("XToLon(offset) = %v, want %v", got, UW.LonOrigin)
	}
	if got := UW.YToLat(UW.LatOffset); got != UW.LatOrigin {
		t.Errorf("YToLat(offset) = %v, want %v", got, UW.LatOrigin)
	}
}

func TestProjectionAffine(t *testing.T) {
	p := Projection{
		LatOrigin: 10, LatOffset: 100, LatScale: -0.5,
		LonOrigin: 20, LonOffset: 50, LonScale: 2,
	}
	tests := []struct {
		x, y     float64
		lon, lat float64
	}{
		{x: 50, y: 100, lon: 20, lat: 10},
		{x: 51, y: 101, lon: 22, lat: 9.5},
		{x: 0, y: 0, lon: -80, lat: 60},
	}
	for _, tt := range tests {
		if got := p.XToLon(tt.x); got != tt.lon {
			t.Errorf("XToLon(%v) = %v, want %v", tt.x, got, tt.lon)
		}
		if got := p.YToLat(tt.y); got != tt.lat {
			t.Errorf("YToLat(%v) = %v, want %v", tt.y, got, tt.lat)
		}
		ll := p.ToLatLng(tt.x, tt.y)
		if ll.Lat != tt.lat || ll.Lng != tt.lon {
			t.Errorf("ToLatLng(%v, %v) = %+v, want {%v %v}", tt.x, tt.y, ll, tt.lat, tt.lon)
		}
	}
}

func TestProjectionMonotonic(t *testing.T) {
	prevLon := UW.XToLon(-1000)
	prevLat := UW.YToLat(-1000)
	for v := -900.0; v <= 5000; v += 100 {
		lon := UW.XToLon(v)
		lat := UW.YToLat(v)
		if lon <= prevLon {
			t.Fatalf("XToLon not increasing at %v: %v <= %v", v, lon, prevLon)
		}
		if lat >= prevLat {
			t.Fatalf("YToLat not decreasing at %v: %v >= %v", v, lat, prevLat)
		}
		if UW.XToLon(v) != lon || UW.YToLat(v) != lat {
			t.Fatalf("projection not deterministic at %v", v)
		}
		prevLon, prevLat = lon, lat
	}
}

func TestProjectionInverse(t *testing.T) {
	for _, pt := range [][2]float64{{0, 0}, {1370.6408, 807.35188}, {2259.7, 1715.5}} {
		x, y := UW.FromLatLng(UW.ToLatLng(pt[0], pt[1]))
		if math.Abs(x-pt[0]) > 1e-6 || math.Abs(y-pt[1]) > 1e-6 {
			t.Errorf("round trip of %v = (%v, %v)", pt, x, y)
		}
	}

	var flat Projection
	x, y := flat.FromLatLng(LatLng{Lat: 1, Lng: 1})
	if x != 0 || y != 0 {
		t.Errorf("zero projection inverse = (%v, %v), want (0, 0)", x, y)
	}
}
