package sphere

import (
	"iter"
	"math"
	"slices"
)

// Sample-count bounds for arc densification. Longer arcs get more
// samples so rendered curvature stays smooth without unbounded cost.
const (
	arcMinSamples = 16
	arcMaxSamples = 96
	arcKmPerStep  = 120.0
)

// Arc yields points along the great-circle arc from a to b, endpoints
// included, by spherical linear interpolation. The sequence is lazy,
// finite and restartable; the point count adapts to arc length.
func Arc(a, b Point) iter.Seq[Point] {
	va := a.Normalize().Vector()
	vb := b.Normalize().Vector()
	omega := va.Angle(vb)

	n := int(omega*EarthRadiusKm/arcKmPerStep) + 2
	if n < arcMinSamples {
		n = arcMinSamples
	}
	if n > arcMaxSamples {
		n = arcMaxSamples
	}

	return func(yield func(Point) bool) {
		sinOmega := math.Sin(omega)
		if sinOmega < 1e-12 {
			// Coincident (or antipodal, where the arc is ill-defined
			// anyway): just the endpoints.
			if !yield(a.Normalize()) {
				return
			}
			yield(b.Normalize())
			return
		}
		for i := 0; i <= n; i++ {
			t := float64(i) / float64(n)
			v := va.Scale(math.Sin((1 - t) * omega)).Add(vb.Scale(math.Sin(t * omega))).Scale(1 / sinOmega)
			if !yield(v.Point()) {
				return
			}
		}
	}
}

// SampleArc collects Arc into a slice.
func SampleArc(a, b Point) []Point {
	return slices.Collect(Arc(a, b))
}

// UnwrapPath adjusts each successive longitude by a multiple of 360° to
// minimize the jump from the previous sample. Without it, stitched paths
// crossing the antimeridian tear across the map.
func UnwrapPath(path []Point) []Point {
	if len(path) == 0 {
		return nil
	}
	out := make([]Point, len(path))
	out[0] = path[0]
	for i := 1; i < len(path); i++ {
		p := path[i]
		prev := out[i-1].Lon
		for p.Lon-prev > 180 {
			p.Lon -= 360
		}
		for p.Lon-prev < -180 {
			p.Lon += 360
		}
		out[i] = p
	}
	return out
}

// EdgePaths returns the three densified, unwrapped edge paths of t in
// vertex order, ready for drawing.
func EdgePaths(t Triangle) [3][]Point {
	v := t.Vertices()
	var paths [3][]Point
	for i := 0; i < 3; i++ {
		paths[i] = UnwrapPath(SampleArc(v[i], v[(i+1)%3]))
	}
	return paths
}
