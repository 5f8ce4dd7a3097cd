package scene

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/litescript/ls-orrery/internal/catalogue"
	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/sim"
)

const tol = 1e-6

func near(a, b geom.Vec3) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) &&
		scalar.EqualWithinAbs(a.Y, b.Y, tol) &&
		scalar.EqualWithinAbs(a.Z, b.Z, tol)
}

func system() []catalogue.Body {
	return []catalogue.Body{
		{Index: 0, Name: "Star", Radius: 10, OrbitalPeriod: 1, RotationPeriod: 25, Parent: catalogue.NoParent},
		{Index: 1, Name: "Planet", OrbitalRadius: 1000, OrbitalPeriod: 365, RotationPeriod: 1, Radius: 5, Parent: 0},
		{Index: 2, Name: "Moon", OrbitalRadius: 100, OrbitalPeriod: 27, RotationPeriod: 27, Radius: 1, Parent: 1},
		{Index: 3, Name: "Moonlet", OrbitalRadius: 10, OrbitalPeriod: 2, RotationPeriod: 2, Radius: 0.1, Parent: 2},
	}
}

func TestOrbitalPosition(t *testing.T) {
	tests := []struct {
		deg  float64
		want geom.Vec3
	}{
		{0, geom.Vec3{X: 10}},
		{90, geom.Vec3{Z: 10}},
		{180, geom.Vec3{X: -10}},
		{450, geom.Vec3{Z: 10}}, // unbounded angles are fine
	}
	for _, tt := range tests {
		if got := OrbitalPosition(10, tt.deg); !near(got, tt.want) {
			t.Errorf("OrbitalPosition(10, %v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestAncestors(t *testing.T) {
	bodies := system()

	tests := []struct {
		i    int
		want []int
	}{
		{0, nil},
		{1, []int{0}},
		{2, []int{0, 1}},
		{3, []int{0, 1, 2}},
	}
	for _, tt := range tests {
		got := Ancestors(bodies, tt.i)
		if len(got) != len(tt.want) {
			t.Errorf("Ancestors(%d) = %v, want %v", tt.i, got, tt.want)
			continue
		}
		for k := range got {
			if got[k] != tt.want[k] {
				t.Errorf("Ancestors(%d) = %v, want %v", tt.i, got, tt.want)
			}
		}
	}
}

func TestAncestors_BoundedOnCycle(t *testing.T) {
	bodies := system()
	bodies[1].Parent = 2
	bodies[2].Parent = 1

	if got := Ancestors(bodies, 1); len(got) > len(bodies) {
		t.Errorf("walk not bounded: %v", got)
	}
}

func TestWorldPosition_Planet(t *testing.T) {
	bodies := system()

	bodies[1].Orbit = 90
	if got := WorldPosition(bodies, 1); !near(got, geom.Vec3{Z: 1000}) {
		t.Errorf("planet at 90° = %v, want (0,0,1000)", got)
	}

	// Tilting the orbital plane 90° about Z lifts the +X point onto +Y
	bodies[1].Orbit = 0
	bodies[1].OrbitalTilt = 90
	if got := WorldPosition(bodies, 1); !near(got, geom.Vec3{Y: 1000}) {
		t.Errorf("tilted planet = %v, want (0,1000,0)", got)
	}
}

func TestWorldPosition_MoonFollowsParent(t *testing.T) {
	bodies := system()
	bodies[1].Orbit = 0
	bodies[2].Orbit = 90

	if got := WorldPosition(bodies, 2); !near(got, geom.Vec3{X: 1000, Z: 100}) {
		t.Errorf("moon = %v, want (1000,0,100)", got)
	}

	// Move the planet, the moon comes with it
	bodies[1].Orbit = 180
	if got := WorldPosition(bodies, 2); !near(got, geom.Vec3{X: -1000, Z: 100}) {
		t.Errorf("moon after planet moved = %v, want (-1000,0,100)", got)
	}

	// Parent tilt carries into the satellite frame
	bodies[1].Orbit = 0
	bodies[1].OrbitalTilt = 90
	bodies[2].Orbit = 0
	if got := WorldPosition(bodies, 2); !near(got, geom.Vec3{Y: 1100}) {
		t.Errorf("moon under tilted parent = %v, want (0,1100,0)", got)
	}
}

func TestWorldPosition_MoonOfMoon(t *testing.T) {
	bodies := system()
	bodies[1].Orbit = 0
	bodies[2].Orbit = 0
	bodies[3].Orbit = 90

	if got := WorldPosition(bodies, 3); !near(got, geom.Vec3{X: 1100, Z: 10}) {
		t.Errorf("moonlet = %v, want (1100,0,10)", got)
	}
}

func TestSingleStarStaysAtOrigin(t *testing.T) {
	bodies := []catalogue.Body{
		{Name: "Star", Radius: 10, OrbitalPeriod: 1, RotationPeriod: 25, Parent: catalogue.NoParent, Orbit: 37},
	}
	clock := sim.NewClock(0.5, sim.J2000)

	for _, dt := range []float64{0.5, 3, 1000} {
		orbit := bodies[0].Orbit
		spin := bodies[0].Spin
		clock.Advance(bodies, dt)

		if bodies[0].Spin == spin {
			t.Errorf("dt=%v: spin did not change", dt)
		}
		if bodies[0].Orbit == orbit {
			t.Errorf("dt=%v: orbit angle did not advance", dt)
		}
		if got := WorldPosition(bodies, 0); !near(got, geom.Vec3{}) {
			t.Errorf("dt=%v: star moved to %v", dt, got)
		}
		if got := Placement(bodies, 0).Origin(); !near(got, geom.Vec3{}) {
			t.Errorf("dt=%v: star placement origin %v", dt, got)
		}
	}
}

func TestPlacement_PoleFollowsAxisTilt(t *testing.T) {
	bodies := system()
	bodies[1].Orbit = 0

	pole := func() geom.Vec3 {
		p := Placement(bodies, 1)
		return p.Apply(geom.Vec3{Z: 1}).Sub(p.Origin())
	}

	// Untilted: the pole is the Y axis
	if got := pole(); !near(got, geom.Vec3{Y: -1}) {
		t.Errorf("untilted pole = %v, want (0,-1,0)", got)
	}

	// Spin turns the body about its pole without moving the pole
	for _, spin := range []float64{30, 200, 7000} {
		bodies[1].Spin = spin
		if got := pole(); !near(got, geom.Vec3{Y: -1}) {
			t.Errorf("spin %v moved pole to %v", spin, got)
		}
	}

	bodies[1].AxisTilt = 90
	if got := pole(); !near(got, geom.Vec3{X: 1}) {
		t.Errorf("90° tilted pole = %v, want (1,0,0)", got)
	}
}

func TestPlacement_SpinRotatesEquator(t *testing.T) {
	bodies := system()
	bodies[1].Orbit = 0

	// Local X lies on the equator after the pole correction
	eq := func() geom.Vec3 {
		p := Placement(bodies, 1)
		return p.Apply(geom.Vec3{X: 1}).Sub(p.Origin())
	}

	if got := eq(); !near(got, geom.Vec3{X: 1}) {
		t.Errorf("equator point = %v, want (1,0,0)", got)
	}
	bodies[1].Spin = 90
	if got := eq(); !near(got, geom.Vec3{Z: -1}) {
		t.Errorf("equator point after 90° spin = %v, want (0,0,-1)", got)
	}
}

func TestOrbitRing(t *testing.T) {
	const r = 1234.5
	ring := OrbitRing(r)

	if len(ring) != OrbitSides {
		t.Fatalf("ring has %d vertices, want %d", len(ring), OrbitSides)
	}
	for k, v := range ring {
		if math.Abs(v.Norm()-r) > tol {
			t.Errorf("vertex %d at distance %v, want %v", k, v.Norm(), r)
		}
		if v.Y != 0 {
			t.Errorf("vertex %d off the orbital plane: %v", k, v)
		}
	}
	if !near(ring[0], geom.Vec3{Z: r}) {
		t.Errorf("first vertex = %v, want (0,0,r)", ring[0])
	}

	edges := LineLoop(ring)
	if len(edges) != OrbitSides {
		t.Fatalf("loop has %d edges, want %d", len(edges), OrbitSides)
	}
	last := edges[len(edges)-1]
	if last.A != ring[OrbitSides-1] || last.B != ring[0] {
		t.Error("ring is not closed")
	}
}

func TestOrbitRingInTiltedFrame(t *testing.T) {
	bodies := system()
	bodies[1].Orbit = 50
	bodies[2].OrbitalTilt = 30

	center := WorldPosition(bodies, 1)
	frame := OrbitFrame(bodies, 2)
	for _, v := range OrbitRing(bodies[2].OrbitalRadius) {
		w := frame.Apply(v)
		if math.Abs(w.Dist(center)-bodies[2].OrbitalRadius) > tol {
			t.Errorf("ring vertex %v not centred on parent %v", w, center)
		}
	}

	// The moon itself lies on its ring
	if d := WorldPosition(bodies, 2).Dist(center); math.Abs(d-bodies[2].OrbitalRadius) > tol {
		t.Errorf("moon %v from parent, want %v", d, bodies[2].OrbitalRadius)
	}
}

func TestWireSphere(t *testing.T) {
	segs := WireSphere(2, 10, 10)

	// 9 latitude rings of 10 edges plus 10 meridians of 10 edges
	if len(segs) != 9*10+10*10 {
		t.Errorf("segments = %d, want %d", len(segs), 190)
	}
	for _, s := range segs {
		if math.Abs(s.A.Norm()-2) > tol || math.Abs(s.B.Norm()-2) > tol {
			t.Fatalf("segment %v leaves the sphere", s)
		}
	}

	axis := AxisSegment(3)
	if axis.A.Z != -6 || axis.B.Z != 6 {
		t.Errorf("axis = %v, want ±6 on Z", axis)
	}
}
