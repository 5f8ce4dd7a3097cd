package camera

import (
	"fmt"
	"math"

	"github.com/litescript/ls-orrery/internal/catalogue"
	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/scene"
)

// Fixed viewpoints (km)
var (
	topEye      = geom.Vec3{X: 0.0001, Y: 550000.0 * 1000, Z: 0.0001}
	topUp       = geom.Vec3{Z: -1}
	eclipticEye = geom.Vec3{X: 0.1, Y: 0.1, Z: 550000.0 * 1000}
	shipEye     = geom.Vec3{X: 50000.0 * 1000, Y: 100000.0 * 1000, Z: 300000.0 * 1000}
	worldUp     = geom.Vec3{Y: 1}
)

// Free-fly tuning
const (
	LookDistance  = 100000000.0 // Look target distance from the eye (km)
	RunSpeed      = 1500000.0   // Forward/back step (km)
	TurnAngle     = 4.0         // Heading and pitch step (deg)
	PanStep       = 800000.0    // Eye pan step along world X/Y (km)
	PitchLimit    = 89.99       // Largest stored pitch magnitude (deg)
	trackingRaise = 1.1         // Eye height above a tracked body, in radii
)

// Initial free-fly eye
var defaultEye = geom.Vec3{X: 40000000.0, Y: 10000000.0, Z: -400000000.0}

// View is the eye/target/up triple consumed by the renderer.
type View struct {
	Eye    geom.Vec3
	Target geom.Vec3
	Up     geom.Vec3
}

// Camera holds the active mode and the free-fly navigation state.
type Camera struct {
	mode Mode

	// Free-fly state
	eye     geom.Vec3
	heading float64 // deg, about world Y, 0 looks down +Z
	pitch   float64 // deg, always inside (-90, 90)
	target  geom.Vec3
	up      geom.Vec3

	tracked int // Body index followed in tracking mode
}

// New creates a camera in top view with the default free-fly state.
func New() *Camera {
	c := &Camera{
		mode:    ModeTop,
		eye:     defaultEye,
		up:      worldUp,
		tracked: -1,
	}
	c.UpdateLookTarget()
	return c
}

// Mode returns the active view mode.
func (c *Camera) Mode() Mode {
	return c.mode
}

// SetMode switches the view mode. Undefined modes are rejected and leave
// the camera unchanged.
func (c *Camera) SetMode(m Mode) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	c.mode = m
	return nil
}

// Track sets the body followed in tracking mode.
func (c *Camera) Track(index int) {
	c.tracked = index
}

// Tracked returns the tracked body index, or -1.
func (c *Camera) Tracked() int {
	return c.tracked
}

// Eye returns the free-fly eye position.
func (c *Camera) Eye() geom.Vec3 { return c.eye }

// Heading returns the free-fly heading in degrees.
func (c *Camera) Heading() float64 { return c.heading }

// Pitch returns the free-fly pitch in degrees.
func (c *Camera) Pitch() float64 { return c.pitch }

// SetPitch stores a clamped pitch.
func (c *Camera) SetPitch(deg float64) {
	c.pitch = ClampPitch(deg)
}

// SetHeading stores a heading in degrees.
func (c *Camera) SetHeading(deg float64) {
	c.heading = deg
}

// SetEye moves the free-fly eye.
func (c *Camera) SetEye(p geom.Vec3) {
	c.eye = p
}

// ClampPitch keeps pitch strictly inside (-90, 90). Values at or beyond a
// pole snap to just inside it, which keeps the up vector well defined.
func ClampPitch(deg float64) float64 {
	switch {
	case deg >= 90:
		return PitchLimit
	case deg <= -90:
		return -PitchLimit
	default:
		return deg
	}
}

// LookDirection returns the unit look vector for a heading and pitch.
func LookDirection(heading, pitch float64) geom.Vec3 {
	sh, ch := math.Sincos(geom.Radians(heading))
	sp, cp := math.Sincos(geom.Radians(pitch))
	return geom.Vec3{X: cp * sh, Y: sp, Z: cp * ch}
}

// UpdateLookTarget recomputes the free-fly target from eye, heading and pitch.
func (c *Camera) UpdateLookTarget() {
	c.pitch = ClampPitch(c.pitch)
	c.target = c.eye.Add(LookDirection(c.heading, c.pitch).Scale(LookDistance))
}

// Free-fly movement. These apply whatever the active mode is; the effect is
// only visible in free-fly.

// MoveForward steps the eye along the current heading.
func (c *Camera) MoveForward() {
	c.walk(RunSpeed)
}

// MoveBack steps the eye against the current heading.
func (c *Camera) MoveBack() {
	c.walk(-RunSpeed)
}

func (c *Camera) walk(dist float64) {
	sh, ch := math.Sincos(geom.Radians(c.heading))
	c.eye.X += sh * dist
	c.eye.Z += ch * dist
}

// TurnLeft increases the heading.
func (c *Camera) TurnLeft() {
	c.heading += TurnAngle
}

// TurnRight decreases the heading.
func (c *Camera) TurnRight() {
	c.heading -= TurnAngle
}

// LookUp raises the pitch.
func (c *Camera) LookUp() {
	c.SetPitch(c.pitch + TurnAngle)
}

// LookDown lowers the pitch.
func (c *Camera) LookDown() {
	c.SetPitch(c.pitch - TurnAngle)
}

// Pan moves the eye along world X and Y by whole pan steps.
func (c *Camera) Pan(dx, dy float64) {
	c.eye.X += dx * PanStep
	c.eye.Y += dy * PanStep
}

// View derives the current eye, target and up from the active mode. In
// free-fly the look target is recomputed first.
func (c *Camera) View(bodies []catalogue.Body) View {
	switch c.mode {
	case ModeEcliptic:
		return View{Eye: eclipticEye, Target: geom.Vec3{}, Up: worldUp}
	case ModeShip:
		return View{Eye: shipEye, Target: geom.Vec3{}, Up: worldUp}
	case ModeTracking:
		if c.tracked >= 0 && c.tracked < len(bodies) {
			pos := scene.WorldPosition(bodies, c.tracked)
			eye := pos.Add(geom.Vec3{Y: bodies[c.tracked].Radius * trackingRaise})
			return View{Eye: eye, Target: geom.Vec3{}, Up: uprightFor(eye, geom.Vec3{})}
		}
		// Nothing to follow: fall back to the plan view
		return View{Eye: topEye, Target: geom.Vec3{}, Up: topUp}
	case ModeFreeFly:
		c.UpdateLookTarget()
		return View{Eye: c.eye, Target: c.target, Up: c.up}
	default:
		return View{Eye: topEye, Target: geom.Vec3{}, Up: topUp}
	}
}

// uprightFor returns world up unless the line of sight runs along it, in
// which case the plan-view up is used instead.
func uprightFor(eye, target geom.Vec3) geom.Vec3 {
	dir := target.Sub(eye).Normalized()
	if dir.Cross(worldUp).Norm() < 1e-9 {
		return topUp
	}
	return worldUp
}
