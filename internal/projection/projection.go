// Package projection provides a Lambert azimuthal equal-area projection
// centered on a triangle's centroid, plus the planar polygon built from
// the projected vertices. The planar polygon is a legacy, secondary
// representation: for triangles with edges beyond a few hundred km the
// great-circle edges bow away from the projected straight lines, so the
// canonical containment authority is always package sphere.
package projection

import (
	"math"

	"github.com/triangulate/api/internal/sphere"
)

const deg = math.Pi / 180

// Projection is an azimuthal equal-area projection on the sphere,
// centered on (lat0, lon0). Coordinates are in meters.
type Projection struct {
	lat0, lon0       float64
	sinLat0, cosLat0 float64
}

// New builds a projection centered on the given point.
func New(center sphere.Point) *Projection {
	c := center.Normalize()
	return &Projection{
		lat0:    c.Lat * deg,
		lon0:    c.Lon * deg,
		sinLat0: math.Sin(c.Lat * deg),
		cosLat0: math.Cos(c.Lat * deg),
	}
}

// Forward maps (lon, lat) in degrees to planar (x, y) in meters.
func (p *Projection) Forward(lon, lat float64) (x, y float64) {
	phi := lat * deg
	dl := lon*deg - p.lon0
	sinPhi, cosPhi := math.Sin(phi), math.Cos(phi)

	den := 1 + p.sinLat0*sinPhi + p.cosLat0*cosPhi*math.Cos(dl)
	if den < 1e-12 {
		// Antipode of the projection center: undefined, pin to the rim.
		return 2 * sphere.EarthRadiusKm * 1000, 0
	}
	k := math.Sqrt(2 / den)
	r := sphere.EarthRadiusKm * 1000
	x = r * k * cosPhi * math.Sin(dl)
	y = r * k * (p.cosLat0*sinPhi - p.sinLat0*cosPhi*math.Cos(dl))
	return x, y
}

// Inverse maps planar (x, y) in meters back to (lon, lat) in degrees.
func (p *Projection) Inverse(x, y float64) (lon, lat float64) {
	r := sphere.EarthRadiusKm * 1000
	rho := math.Hypot(x, y)
	if rho < 1e-9 {
		return p.lon0 / deg, p.lat0 / deg
	}
	c := 2 * math.Asin(math.Min(1, rho/(2*r)))
	sinC, cosC := math.Sin(c), math.Cos(c)

	lat = math.Asin(cosC*p.sinLat0+y*sinC*p.cosLat0/rho) / deg
	lon = (p.lon0 + math.Atan2(x*sinC, rho*p.cosLat0*cosC-y*p.sinLat0*sinC)) / deg
	return lon, lat
}

// Polygon is a planar polygon in projected coordinates.
type Polygon struct {
	xs, ys []float64
}

// Project builds the planar polygon of the given vertices under p.
func (p *Projection) Project(verts []sphere.Point) Polygon {
	poly := Polygon{
		xs: make([]float64, len(verts)),
		ys: make([]float64, len(verts)),
	}
	for i, v := range verts {
		poly.xs[i], poly.ys[i] = p.Forward(v.Lon, v.Lat)
	}
	return poly
}

// Vertices returns the projected polygon corners as (x, y) pairs in
// meters, in construction order.
func (poly Polygon) Vertices() [][2]float64 {
	out := make([][2]float64, len(poly.xs))
	for i := range poly.xs {
		out[i] = [2]float64{poly.xs[i], poly.ys[i]}
	}
	return out
}

// Contains runs an even-odd ray cast against the polygon. Approximate
// for large shapes; see the package comment.
func (poly Polygon) Contains(x, y float64) bool {
	inside := false
	n := len(poly.xs)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := poly.xs[i], poly.ys[i]
		xj, yj := poly.xs[j], poly.ys[j]
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}
