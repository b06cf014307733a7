package geo

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	p := Pt(1, 2).Add(Pt(3, 4)).Sub(Pt(1, 1)).Mul(2)
	if p != Pt(6, 10) {
		t.Errorf("point arithmetic = %v, want (6, 10)", p)
	}
	if !(Point{}).IsZero() {
		t.Error("zero point IsZero() = false")
	}
}

func TestProjectOrigin(t *testing.T) {
	p := Project(LatLng{}, 0)
	if math.Abs(p.X-128) > 1e-9 || math.Abs(p.Y-128) > 1e-9 {
		t.Errorf("Project(0,0) at zoom 0 = %v, want (128, 128)", p)
	}
	if got := Scale(5); got != 256*32 {
		t.Errorf("Scale(5) = %v, want %v", got, 256*32)
	}
}

func TestProjectRoundTrip(t *testing.T) {
	positions := []LatLng{
		{0, 0},
		{51.5, -0.12},
		{-33.86, 151.2},
		{70, 179},
	}
	for _, ll := range positions {
		for _, zoom := range []float64{0, 5, 12.5} {
			got := Unproject(Project(ll, zoom), zoom)
			if !got.Equal(ll, 1e-9) {
				t.Errorf("round trip of %v at zoom %v = %v", ll, zoom, got)
			}
		}
	}
}

func TestProjectOrientation(t *testing.T) {
	origin := Project(LatLng{}, 5)

	// Screen y grows down, so moving north lowers Y
	north := Project(LatLng{Lat: 10}, 5)
	if north.Y >= origin.Y {
		t.Errorf("north Y = %v, want < %v", north.Y, origin.Y)
	}
	east := Project(LatLng{Lng: 10}, 5)
	if east.X <= origin.X {
		t.Errorf("east X = %v, want > %v", east.X, origin.X)
	}
}

func TestProjectClampsLatitude(t *testing.T) {
	a := Project(LatLng{Lat: 89}, 3)
	b := Project(LatLng{Lat: MaxLatitude}, 3)
	if math.Abs(a.Y-b.Y) > 1e-9 {
		t.Errorf("latitude 89 not clamped: %v vs %v", a, b)
	}
}
