package render

import (
	"github.com/litescript/ls-orrery/internal/catalogue"
	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
)

// Scene detail
const (
	SphereSlices = 10
	SphereStacks = 10
	AxisLength   = 50000000.0 // Reference axis length (km)
)

// Fixed colours
const (
	starColor  = "#ffffff"
	axisXColor = "#ff0000"
	axisYColor = "#00ff00"
	axisZColor = "#0000ff"
)

// Glyphs
const (
	starGlyph   = '.'
	centerGlyph = '●'
)

// Options tune a single draw.
type Options struct {
	Lens Lens
}

// DefaultOptions returns the stock lens.
func DefaultOptions() Options {
	return Options{Lens: DefaultLens()}
}

// Draw renders a snapshot onto a new w×h canvas.
func Draw(snap state.Snapshot, w, h int, opts Options) *Canvas {
	c := NewCanvas(w, h)
	if w == 0 || h == 0 {
		return c
	}
	p := NewProjector(snap.View, opts.Lens, w, h)

	if snap.Toggles.Starfield {
		drawStars(c, p, snap.Stars)
	}
	if snap.Toggles.Axes {
		drawAxes(c, p)
	}

	// Orbits first so every body sits on top of every ring
	if snap.Toggles.Orbits {
		for i := range snap.Bodies {
			drawOrbit(c, p, snap.Bodies, i)
		}
	}
	for i := range snap.Bodies {
		drawBody(c, p, snap.Bodies, i)
	}
	if snap.Toggles.Labels {
		for i := range snap.Bodies {
			drawLabel(c, p, snap.Bodies, i)
		}
	}
	return c
}

func drawStars(c *Canvas, p Projector, stars []geom.Vec3) {
	for _, s := range stars {
		if x, y, ok := p.Point(s); ok {
			c.Set(x, y, starGlyph, starColor, LayerStar)
		}
	}
}

func drawAxes(c *Canvas, p Projector) {
	axes := []struct {
		end   geom.Vec3
		color string
	}{
		{geom.Vec3{X: AxisLength}, axisXColor},
		{geom.Vec3{Y: AxisLength}, axisYColor},
		{geom.Vec3{Z: AxisLength}, axisZColor},
	}
	for _, a := range axes {
		drawSegment(c, p, geom.Identity(), scene.Segment{B: a.end}, a.color, LayerAxis)
	}
}

// drawOrbit draws the body's orbit ring. Bodies with no orbital radius
// (the star) have nothing to draw.
func drawOrbit(c *Canvas, p Projector, bodies []catalogue.Body, i int) {
	b := bodies[i]
	if b.OrbitalRadius <= 0 {
		return
	}
	frame := scene.OrbitFrame(bodies, i)
	color := b.Color.Hex()
	for _, seg := range scene.LineLoop(scene.OrbitRing(b.OrbitalRadius)) {
		drawSegment(c, p, frame, seg, color, LayerOrbit)
	}
}

func drawBody(c *Canvas, p Projector, bodies []catalogue.Body, i int) {
	b := bodies[i]
	place := scene.Placement(bodies, i)
	color := b.Color.Hex()

	for _, seg := range scene.WireSphere(b.Radius, SphereSlices, SphereStacks) {
		drawSegment(c, p, place, seg, color, LayerBody)
	}
	drawSegment(c, p, place, scene.AxisSegment(b.Radius), color, LayerBody)

	// Bodies smaller than a cell still get a mark
	if x, y, ok := p.Point(place.Origin()); ok {
		c.Set(x, y, centerGlyph, color, LayerBody)
	}
}

func drawLabel(c *Canvas, p Projector, bodies []catalogue.Body, i int) {
	b := bodies[i]
	x, y, ok := p.Point(scene.WorldPosition(bodies, i))
	if !ok {
		return
	}
	c.Text(x+2, y, b.Name, b.Color.Hex(), LayerLabel)
}

func drawSegment(c *Canvas, p Projector, t geom.Transform, seg scene.Segment, color string, layer Layer) {
	x0, y0, x1, y1, ok := p.Segment(t.Apply(seg.A), t.Apply(seg.B))
	if !ok {
		return
	}
	c.Line(x0, y0, x1, y1, color, layer)
}
