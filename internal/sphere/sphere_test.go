package sphere

import (
	"math"
	"testing"
)

var (
	paris     = Point{Lat: 48.8567, Lon: 2.3508}
	berlin    = Point{Lat: 52.52, Lon: 13.405}
	madrid    = Point{Lat: 40.4168, Lon: -3.7038}
	frankfurt = Point{Lat: 50.1109, Lon: 8.6821}
	lyon      = Point{Lat: 45.75, Lon: 4.85}
	london    = Point{Lat: 51.5074, Lon: -0.1278}
)

func mustTriangle(t *testing.T, a, b, c Point) Triangle {
	t.Helper()
	tri, err := NewTriangle(a, b, c)
	if err != nil {
		t.Fatalf("NewTriangle(%v, %v, %v): %v", a, b, c, err)
	}
	return tri
}

func TestContainsEuropeTriangle(t *testing.T) {
	tri := mustTriangle(t, paris, berlin, madrid)

	if !tri.Contains(frankfurt) {
		t.Error("Frankfurt should be inside Paris-Berlin-Madrid")
	}
	if tri.Contains(london) {
		t.Error("London should be outside Paris-Berlin-Madrid")
	}
}

// The Berlin-Madrid great circle crosses Lyon's longitude at 47.47N,
// well north of Lyon itself, so Lyon sits outside Paris-Berlin-Madrid
// on the far side of that edge from Paris. A straight line drawn on a
// flat map suggests otherwise, which makes this the edge case worth
// pinning down.
func TestContainsNearEdgeMiss(t *testing.T) {
	tri := mustTriangle(t, paris, berlin, madrid)

	if tri.Contains(lyon) {
		t.Error("Lyon should be outside Paris-Berlin-Madrid")
	}
	// Just north of the Berlin-Madrid great circle at the same
	// longitude the verdict flips.
	if !tri.Contains(Point{Lat: 47.6, Lon: 4.85}) {
		t.Error("(47.6, 4.85) should be inside Paris-Berlin-Madrid")
	}
}

func TestContainsWindingIndependent(t *testing.T) {
	orders := [][3]Point{
		{paris, berlin, madrid},
		{berlin, madrid, paris},
		{madrid, paris, berlin},
		{madrid, berlin, paris},
		{paris, madrid, berlin},
		{berlin, paris, madrid},
	}
	for _, o := range orders {
		tri := mustTriangle(t, o[0], o[1], o[2])
		if !tri.Contains(frankfurt) {
			t.Errorf("order %v: Frankfurt should be inside", o)
		}
		if tri.Contains(lyon) {
			t.Errorf("order %v: Lyon should be outside", o)
		}
		if tri.Contains(london) {
			t.Errorf("order %v: London should be outside", o)
		}
	}
}

func TestContainsOwnVertices(t *testing.T) {
	tri := mustTriangle(t, paris, berlin, madrid)
	for _, v := range tri.Vertices() {
		if !tri.Contains(v) {
			t.Errorf("vertex %v should count as inside (boundary-inclusive)", v)
		}
	}
}

func TestContainsAntimeridian(t *testing.T) {
	tri := mustTriangle(t,
		Point{Lat: 10, Lon: 170},
		Point{Lat: 10, Lon: -170},
		Point{Lat: 40, Lon: 180},
	)
	if !tri.Contains(Point{Lat: 15, Lon: 179}) {
		t.Error("(15, 179) should be inside a triangle straddling the antimeridian")
	}
	if tri.Contains(Point{Lat: 15, Lon: 0}) {
		t.Error("(15, 0) should be outside")
	}
}

func TestContainsNearPole(t *testing.T) {
	// Large triangle around the north pole.
	tri := mustTriangle(t,
		Point{Lat: 50, Lon: 0},
		Point{Lat: 50, Lon: 120},
		Point{Lat: 50, Lon: -120},
	)
	if !tri.Contains(Point{Lat: 89, Lon: 45}) {
		t.Error("point near north pole should be inside")
	}
	if tri.Contains(Point{Lat: -89, Lon: 45}) {
		t.Error("mirrored point near south pole should be outside")
	}
}

func TestNewTriangleDegenerate(t *testing.T) {
	a := Point{Lat: 10, Lon: 10}
	cases := []struct {
		name string
		b, c Point
	}{
		{"coincident", a, Point{Lat: 20, Lon: 20}},
		{"antipodal", Point{Lat: -10, Lon: -170}, Point{Lat: 20, Lon: 20}},
		{"collinear", Point{Lat: 0, Lon: 20}, Point{Lat: 0, Lon: 30}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.name == "collinear" {
				// All three on the equator share one great circle.
				if _, err := NewTriangle(Point{Lat: 0, Lon: 10}, tc.b, tc.c); err == nil {
					t.Error("expected ErrDegenerate")
				}
				return
			}
			if _, err := NewTriangle(a, tc.b, tc.c); err == nil {
				t.Error("expected ErrDegenerate")
			}
		})
	}
}

func TestDistance(t *testing.T) {
	d := Distance(paris, berlin)
	if d < 850 || d > 900 {
		t.Errorf("Paris-Berlin distance = %.1f km, want ~878", d)
	}
	if got := Distance(paris, paris); got > 1e-6 {
		t.Errorf("zero distance = %v", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		km   float64
		want Difficulty
	}{
		{4000, Easy},
		{3500, Easy},
		{3499, Medium},
		{2000, Medium},
		{1999, Hard},
		{100, Hard},
	}
	for _, tc := range cases {
		if got := Classify(tc.km); got != tc.want {
			t.Errorf("Classify(%v) = %v, want %v", tc.km, got, tc.want)
		}
	}
}

func TestArcStaysOnGreatCircle(t *testing.T) {
	a, b := paris, Point{Lat: 35.68, Lon: 139.69} // Tokyo: a long arc
	n := a.Vector().Cross(b.Vector())
	n = n.Scale(1 / n.Norm())

	count := 0
	for p := range Arc(a, b) {
		// Cross-track deviation: every sample must lie on the plane
		// through a, b and the sphere center.
		if dev := math.Abs(n.Dot(p.Vector())); dev > 1e-9 {
			t.Fatalf("sample %v deviates from great circle by %v", p, dev)
		}
		count++
	}
	if count < arcMinSamples {
		t.Errorf("long arc yielded %d samples, want >= %d", count, arcMinSamples)
	}
}

func TestArcRestartable(t *testing.T) {
	seq := Arc(paris, berlin)
	first := 0
	for range seq {
		first++
	}
	second := 0
	for range seq {
		second++
	}
	if first == 0 || first != second {
		t.Errorf("arc not restartable: %d vs %d samples", first, second)
	}
}

func TestArcEndpoints(t *testing.T) {
	pts := SampleArc(paris, berlin)
	if len(pts) < 2 {
		t.Fatalf("got %d samples", len(pts))
	}
	if d := Distance(pts[0], paris); d > 0.001 {
		t.Errorf("first sample %.4f km from start", d)
	}
	if d := Distance(pts[len(pts)-1], berlin); d > 0.001 {
		t.Errorf("last sample %.4f km from end", d)
	}
}

func TestUnwrapPath(t *testing.T) {
	path := UnwrapPath(SampleArc(Point{Lat: 10, Lon: 170}, Point{Lat: 10, Lon: -170}))
	for i := 1; i < len(path); i++ {
		if jump := math.Abs(path[i].Lon - path[i-1].Lon); jump > 180 {
			t.Fatalf("longitude jump of %.1f at sample %d", jump, i)
		}
	}
	// The path should keep increasing past 180 rather than snapping to -170.
	last := path[len(path)-1].Lon
	if last < 180 {
		t.Errorf("unwrapped terminal longitude = %.1f, want >= 180", last)
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want Point
	}{
		{Point{Lat: 45, Lon: 190}, Point{Lat: 45, Lon: -170}},
		{Point{Lat: 45, Lon: -190}, Point{Lat: 45, Lon: 170}},
		{Point{Lat: 95, Lon: 0}, Point{Lat: 90, Lon: 0}},
		{Point{Lat: -95, Lon: 0}, Point{Lat: -90, Lon: 0}},
		{Point{Lat: 45, Lon: 45}, Point{Lat: 45, Lon: 45}},
	}
	for _, tc := range cases {
		got := tc.in.Normalize()
		if math.Abs(got.Lat-tc.want.Lat) > 1e-9 || math.Abs(got.Lon-tc.want.Lon) > 1e-9 {
			t.Errorf("Normalize(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
