package scene

import (
	"math"

	"github.com/litescript/ls-orrery/internal/geom"
)

// OrbitSides is the number of edges in an orbit ring polygon.
const OrbitSides = 40

// OrbitRing returns the vertices of a closed polygon approximating a
// circular orbit of the given radius in the XZ plane. The last vertex
// connects back to the first.
func OrbitRing(radius float64) []geom.Vec3 {
	delta := geom.Radians(360.0 / OrbitSides)
	ring := make([]geom.Vec3, OrbitSides)
	for k := range ring {
		s, c := math.Sincos(float64(k) * delta)
		ring[k] = geom.Vec3{X: radius * s, Y: 0, Z: radius * c}
	}
	return ring
}

// Segment is a line between two points.
type Segment struct {
	A, B geom.Vec3
}

// LineLoop turns a closed polygon into its edges, including the closing one.
func LineLoop(pts []geom.Vec3) []Segment {
	if len(pts) < 2 {
		return nil
	}
	segs := make([]Segment, len(pts))
	for i := range pts {
		segs[i] = Segment{A: pts[i], B: pts[(i+1)%len(pts)]}
	}
	return segs
}

// WireSphere returns the edges of a latitude/longitude wireframe sphere with
// its poles on local Z.
func WireSphere(radius float64, slices, stacks int) []Segment {
	if slices < 3 {
		slices = 3
	}
	if stacks < 2 {
		stacks = 2
	}

	point := func(slice, stack int) geom.Vec3 {
		theta := 2 * math.Pi * float64(slice) / float64(slices)
		phi := math.Pi * float64(stack) / float64(stacks)
		st, ct := math.Sincos(theta)
		sp, cp := math.Sincos(phi)
		return geom.Vec3{X: radius * sp * ct, Y: radius * sp * st, Z: radius * cp}
	}

	var segs []Segment

	// Latitude rings, skipping the degenerate poles
	for stack := 1; stack < stacks; stack++ {
		ring := make([]geom.Vec3, slices)
		for slice := range ring {
			ring[slice] = point(slice, stack)
		}
		segs = append(segs, LineLoop(ring)...)
	}

	// Meridians from pole to pole
	for slice := 0; slice < slices; slice++ {
		for stack := 0; stack < stacks; stack++ {
			segs = append(segs, Segment{A: point(slice, stack), B: point(slice, stack+1)})
		}
	}
	return segs
}

// AxisSegment returns the body's rotation axis drawn to twice its radius on
// either side, along local Z.
func AxisSegment(radius float64) Segment {
	return Segment{
		A: geom.Vec3{Z: -2 * radius},
		B: geom.Vec3{Z: 2 * radius},
	}
}
