// Package geo provides geographic coordinates, screen points and the
// spherical Web Mercator projection used by the map view.
package geo

import (
	"fmt"
	"math"
)

// LatLng is a geographic position in degrees.
type LatLng struct {
	Lat float64
	Lng float64
}

// String returns "lat,lng" with six decimals.
func (ll LatLng) String() string {
	return fmt.Sprintf("%.6f,%.6f", ll.Lat, ll.Lng)
}

// Equal reports whether two positions are within margin degrees of each other.
func (ll LatLng) Equal(other LatLng, margin float64) bool {
	return math.Abs(ll.Lat-other.Lat) <= margin && math.Abs(ll.Lng-other.Lng) <= margin
}

// Point is a screen-space vector in pixels. X grows to the right, Y grows down.
type Point struct {
	X float64
	Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns p scaled by k.
func (p Point) Mul(k float64) Point {
	return Point{X: p.X * k, Y: p.Y * k}
}

// IsZero reports whether both components are zero.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// String returns "(x, y)".
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}
