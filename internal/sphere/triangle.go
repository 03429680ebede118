package sphere

import "errors"

// eps absorbs floating-point error in unit-vector dot products. Points
// within eps of an edge plane count as inside, so a city sitting exactly
// on a drawn edge never gets a flaky "outside" verdict.
const eps = 1e-10

// epsDegenerate is the minimum squared norm of an edge-plane normal.
// Below it the two vertices are coincident or antipodal and the edge's
// great circle is undefined.
const epsDegenerate = 1e-12

var ErrDegenerate = errors.New("sphere: degenerate triangle")

// Triangle is a spherical triangle whose edges are great-circle arcs.
// Valid for triangles smaller than a hemisphere.
type Triangle struct {
	verts [3]Point
	vecs  [3]Vector
}

// NewTriangle builds a triangle from three vertices. It returns
// ErrDegenerate when any two vertices are coincident or antipodal, or
// when a vertex lies on the great circle through the other two.
func NewTriangle(a, b, c Point) (Triangle, error) {
	t := Triangle{verts: [3]Point{a.Normalize(), b.Normalize(), c.Normalize()}}
	for i, v := range t.verts {
		t.vecs[i] = v.Vector()
	}
	for i := 0; i < 3; i++ {
		n := t.vecs[i].Cross(t.vecs[(i+1)%3])
		if n.Dot(n) < epsDegenerate {
			return Triangle{}, ErrDegenerate
		}
		s := n.Dot(t.vecs[(i+2)%3])
		if s > -eps && s < eps {
			return Triangle{}, ErrDegenerate
		}
	}
	return t, nil
}

// Vertices returns the normalized triangle vertices in construction order.
func (t Triangle) Vertices() [3]Point {
	return t.verts
}

// Contains reports whether p lies inside the triangle, boundary included.
// For each edge the normal of its great-circle plane is oriented by the
// opposite vertex; p must sit on the interior side of all three planes.
// The test is independent of vertex winding and fails closed on
// degenerate geometry.
func (t Triangle) Contains(p Point) bool {
	q := p.Normalize().Vector()
	for i := 0; i < 3; i++ {
		n := t.vecs[i].Cross(t.vecs[(i+1)%3])
		if n.Dot(n) < epsDegenerate {
			return false
		}
		s := n.Dot(t.vecs[(i+2)%3])
		if s > -eps && s < eps {
			return false
		}
		d := n.Dot(q)
		if s > 0 {
			if d < -eps {
				return false
			}
		} else {
			if d > eps {
				return false
			}
		}
	}
	return true
}

// Centroid is the arithmetic mean of the vertex coordinates. It is only
// used as a projection center and a map focus, never for containment.
func (t Triangle) Centroid() Point {
	var lat, lon float64
	for _, v := range t.verts {
		lat += v.Lat
		lon += v.Lon
	}
	return Point{Lat: lat / 3, Lon: lon / 3}
}

// MeanEdgeKm returns the mean great-circle edge length in km.
func (t Triangle) MeanEdgeKm() float64 {
	var sum float64
	for i := 0; i < 3; i++ {
		sum += Distance(t.verts[i], t.verts[(i+1)%3])
	}
	return sum / 3
}
