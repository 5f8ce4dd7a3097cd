// Package catalogue loads the flat body catalogue that describes the
// simulated system: one record per star, planet or moon.
package catalogue

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// NoParent marks a root body that sits at the system origin (the star).
const NoParent = -1

// Color is an RGB triple with components in [0, 1].
type Color struct {
	R, G, B float64
}

// Hex returns the colour as a #rrggbb string suitable for terminal styles.
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// Body is one catalogue entry plus its mutable animation state.
type Body struct {
	Index int    // Position in the catalogue, doubles as identifier
	Name  string // Display name
	Color Color

	// Orbit around the parent body
	OrbitalRadius float64 // Distance from parent (km)
	OrbitalTilt   float64 // Orbital plane vs ecliptic (deg)
	OrbitalPeriod float64 // Days per revolution

	// The body itself
	Radius         float64 // Display radius (km, magnified on load)
	AxisTilt       float64 // Rotation axis vs orbital plane normal (deg)
	RotationPeriod float64 // Days per revolution

	Parent int // Index of the orbited body, or NoParent

	// Animation state. Both accumulate without wraparound; consumers must
	// only use them through periodic functions.
	Spin  float64 // Current spin angle (deg)
	Orbit float64 // Current orbital angle (deg)
}

// IsRoot reports whether the body orbits the system origin directly.
func (b Body) IsRoot() bool {
	return b.Parent == NoParent
}

// Find returns the index of the body with the given name, or -1.
func Find(bodies []Body, name string) int {
	for i := range bodies {
		if bodies[i].Name == name {
			return i
		}
	}
	return -1
}
