package render

import (
	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/geom"
)

// Lens describes the perspective projection.
type Lens struct {
	FovY       float64 // Vertical field of view (deg)
	Near       float64 // Near clip distance (km)
	Far        float64 // Far clip distance (km)
	CellAspect float64 // Cell width over cell height
}

// DefaultLens matches the orrery's stock projection.
func DefaultLens() Lens {
	return Lens{
		FovY:       48.0,
		Near:       10000.0,
		Far:        800000000.0,
		CellAspect: 0.5,
	}
}

// Projector maps world points to canvas positions for one view.
type Projector struct {
	view geom.Transform
	proj geom.Transform
	lens Lens
	w, h int
}

// NewProjector builds a projector for a w×h cell canvas.
func NewProjector(v camera.View, lens Lens, w, h int) Projector {
	aspect := 1.0
	if h > 0 {
		aspect = float64(w) * lens.CellAspect / float64(h)
	}
	return Projector{
		view: geom.LookAt(v.Eye, v.Target, v.Up),
		proj: geom.Perspective(lens.FovY, aspect, lens.Near, lens.Far),
		lens: lens,
		w:    w,
		h:    h,
	}
}

// Eye transforms a world point into eye space.
func (p Projector) Eye(world geom.Vec3) geom.Vec3 {
	return p.view.Apply(world)
}

// visible reports whether an eye-space point lies between the clip planes.
func (p Projector) visible(e geom.Vec3) bool {
	return -e.Z >= p.lens.Near && -e.Z <= p.lens.Far
}

// screen projects an eye-space point in front of the near plane to canvas
// coordinates. Results may fall outside the canvas.
func (p Projector) screen(e geom.Vec3) (x, y float64) {
	cx, cy, _, cw := p.proj.Apply4(e)
	nx, ny := cx/cw, cy/cw
	x = (nx + 1) / 2 * float64(p.w-1)
	y = (1 - ny) / 2 * float64(p.h-1)
	return x, y
}

// Point projects a world point. ok is false when it is clipped by depth or
// falls outside the canvas.
func (p Projector) Point(world geom.Vec3) (x, y int, ok bool) {
	e := p.Eye(world)
	if !p.visible(e) {
		return 0, 0, false
	}
	fx, fy := p.screen(e)
	x, y = int(fx+0.5), int(fy+0.5)
	if fx < -0.5 || fy < -0.5 || x >= p.w || y >= p.h {
		return 0, 0, false
	}
	return x, y, true
}

// Segment projects a world segment, clipping it against the near plane in
// eye space. Segments entirely beyond the far plane are dropped. The
// returned endpoints may still lie off-canvas; Canvas.Line clips those.
func (p Projector) Segment(a, b geom.Vec3) (x0, y0, x1, y1 float64, ok bool) {
	ea, eb := p.Eye(a), p.Eye(b)
	near := -p.lens.Near

	// Both behind the near plane
	if ea.Z > near && eb.Z > near {
		return 0, 0, 0, 0, false
	}
	// Both beyond the far plane
	if -ea.Z > p.lens.Far && -eb.Z > p.lens.Far {
		return 0, 0, 0, 0, false
	}

	// One endpoint behind the near plane: move it onto the plane
	if ea.Z > near {
		ea = nearIntersect(eb, ea, near)
	} else if eb.Z > near {
		eb = nearIntersect(ea, eb, near)
	}

	x0, y0 = p.screen(ea)
	x1, y1 = p.screen(eb)
	return x0, y0, x1, y1, true
}

// nearIntersect returns the point on the segment in→out where z == plane.
func nearIntersect(in, out geom.Vec3, plane float64) geom.Vec3 {
	t := (plane - in.Z) / (out.Z - in.Z)
	return in.Add(out.Sub(in).Scale(t))
}
