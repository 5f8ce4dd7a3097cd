// Package scene computes where each body sits in world space.
//
// Orbits lie in the local XZ plane with Y up. A body's orbital tilt and axis
// tilt rotate about Z, spin turns about Y, and a fixed quarter turn about X
// lines the sphere primitive's pole up with the spin axis.
package scene

import (
	"math"

	"github.com/litescript/ls-orrery/internal/catalogue"
	"github.com/litescript/ls-orrery/internal/geom"
)

// PoleCorrection rotates the sphere primitive so its pole (local Z) follows
// the body's spin axis.
const PoleCorrection = 90.0

// OrbitalPosition returns the position on a circular orbit of the given
// radius at angle deg, in the orbit's own plane.
func OrbitalPosition(radius, deg float64) geom.Vec3 {
	s, c := math.Sincos(geom.Radians(deg))
	return geom.Vec3{X: radius * c, Y: 0, Z: radius * s}
}

// orbitStep is one body's contribution to its satellites' frames: tilt the
// orbital plane, then move to the current point on the orbit.
func orbitStep(b catalogue.Body) geom.Transform {
	return geom.RotateZ(b.OrbitalTilt).Then(geom.Translate(OrbitalPosition(b.OrbitalRadius, b.Orbit)))
}

// Ancestors returns the indices of i's ancestors, root first. The walk is
// bounded by the body count so a malformed parent graph cannot loop.
func Ancestors(bodies []catalogue.Body, i int) []int {
	var chain []int
	cur := i
	for steps := 0; steps < len(bodies); steps++ {
		p := bodies[cur].Parent
		if p == catalogue.NoParent || p < 0 || p >= len(bodies) {
			break
		}
		chain = append(chain, p)
		cur = p
	}

	// Reverse into outer-to-inner order
	for l, r := 0, len(chain)-1; l < r; l, r = l+1, r-1 {
		chain[l], chain[r] = chain[r], chain[l]
	}
	return chain
}

// ParentFrame returns the frame centred on the current position of i's
// parent, i.e. every ancestor's orbital tilt and position composed outer to
// inner. Roots get the identity.
func ParentFrame(bodies []catalogue.Body, i int) geom.Transform {
	t := geom.Identity()
	for _, a := range Ancestors(bodies, i) {
		t = t.Then(orbitStep(bodies[a]))
	}
	return t
}

// OrbitFrame returns the frame in which body i's orbit ring is drawn: its
// parent's frame tilted by i's own orbital tilt.
func OrbitFrame(bodies []catalogue.Body, i int) geom.Transform {
	return ParentFrame(bodies, i).Then(geom.RotateZ(bodies[i].OrbitalTilt))
}

// CenterFrame returns the frame centred on body i without its own axis
// tilt or spin. Labels and tracking use it.
func CenterFrame(bodies []catalogue.Body, i int) geom.Transform {
	return ParentFrame(bodies, i).Then(orbitStep(bodies[i]))
}

// Placement returns the local-to-world transform for body i's geometry:
// ancestors' orbits, own tilt and orbital position, axis tilt, spin, and
// the pole correction.
func Placement(bodies []catalogue.Body, i int) geom.Transform {
	b := bodies[i]
	return CenterFrame(bodies, i).
		Then(geom.RotateZ(b.AxisTilt)).
		Then(geom.RotateY(b.Spin)).
		Then(geom.RotateX(PoleCorrection))
}

// WorldPosition returns body i's centre in world coordinates.
func WorldPosition(bodies []catalogue.Body, i int) geom.Vec3 {
	return CenterFrame(bodies, i).Origin()
}
