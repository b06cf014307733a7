package geo

import "math"

const (
	// TileSize is the pixel size of the world at zoom 0.
	TileSize = 256

	// MaxLatitude is the latitude at which Web Mercator is clipped.
	MaxLatitude = 85.0511287798
)

// Scale returns the world size in pixels at the given zoom.
func Scale(zoom float64) float64 {
	return TileSize * math.Pow(2, zoom)
}

// Project converts a position to world pixel coordinates at zoom.
// Latitudes beyond MaxLatitude are clamped.
func Project(ll LatLng, zoom float64) Point {
	lat := math.Max(-MaxLatitude, math.Min(MaxLatitude, ll.Lat))
	sin := math.Sin(lat * math.Pi / 180)
	size := Scale(zoom)

	x := (ll.Lng + 180) / 360
	y := 0.5 - math.Log((1+sin)/(1-sin))/(4*math.Pi)
	return Point{X: x * size, Y: y * size}
}

// Unproject converts world pixel coordinates at zoom back to a position.
func Unproject(p Point, zoom float64) LatLng {
	size := Scale(zoom)
	lng := p.X/size*360 - 180
	n := math.Pi - 2*math.Pi*p.Y/size
	lat := 180 / math.Pi * math.Atan(math.Sinh(n))
	return LatLng{Lat: lat, Lng: lng}
}
