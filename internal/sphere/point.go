// Package sphere implements great-circle geometry on the unit sphere:
// point-in-geodesic-triangle containment, arc densification for drawing,
// and edge-length metrics. It has zero external dependencies — everything
// here is pure Go.
package sphere

import "math"

// EarthRadiusKm is the mean Earth radius used for all distance conversions.
const EarthRadiusKm = 6371.0

// Point is a position on the globe in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Normalize clamps latitude to [-90, 90] and wraps longitude to [-180, 180].
func (p Point) Normalize() Point {
	lat := p.Lat
	if lat > 90 {
		lat = 90
	}
	if lat < -90 {
		lat = -90
	}
	lon := math.Mod(p.Lon, 360)
	if lon > 180 {
		lon -= 360
	}
	if lon < -180 {
		lon += 360
	}
	return Point{Lat: lat, Lon: lon}
}

// Vector is a 3D unit vector pointing at a position on the sphere.
type Vector struct {
	X, Y, Z float64
}

// Vector converts p to its unit-vector representation:
// (cos φ cos λ, cos φ sin λ, sin φ).
func (p Point) Vector() Vector {
	phi := p.Lat * math.Pi / 180
	lambda := p.Lon * math.Pi / 180
	return Vector{
		X: math.Cos(phi) * math.Cos(lambda),
		Y: math.Cos(phi) * math.Sin(lambda),
		Z: math.Sin(phi),
	}
}

// Point converts a unit vector back to degrees.
func (v Vector) Point() Point {
	return Point{
		Lat: math.Atan2(v.Z, math.Hypot(v.X, v.Y)) * 180 / math.Pi,
		Lon: math.Atan2(v.Y, v.X) * 180 / math.Pi,
	}
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector) Cross(o Vector) Vector {
	return Vector{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

func (v Vector) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Angle returns the central angle between two unit vectors in radians.
// atan2 of the cross norm and the dot is numerically stable for both
// tiny and near-antipodal separations, unlike acos of the dot alone.
func (v Vector) Angle(o Vector) float64 {
	return math.Atan2(v.Cross(o).Norm(), v.Dot(o))
}

// Distance returns the great-circle distance between two points in km.
func Distance(a, b Point) float64 {
	return a.Vector().Angle(b.Vector()) * EarthRadiusKm
}
