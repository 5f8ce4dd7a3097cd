package render

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/catalogue"
	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/state"
)

func TestClipLine(t *testing.T) {
	tests := []struct {
		name               string
		x0, y0, x1, y1     float64
		wantOK             bool
		wx0, wy0, wx1, wy1 float64
	}{
		{"inside", 1, 1, 5, 5, true, 1, 1, 5, 5},
		{"crosses left edge", -5, 2, 5, 2, true, 0, 2, 5, 2},
		{"spans both edges", -100, 3, 100, 3, true, 0, 3, 9, 3},
		{"fully left", -5, 1, -1, 8, false, 0, 0, 0, 0},
		{"fully below", 2, 20, 8, 30, false, 0, 0, 0, 0},
		{"diagonal through corner region", -10, -10, 20, 20, true, 0, 0, 9, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1, ok := clipLine(tt.x0, tt.y0, tt.x1, tt.y1, 0, 0, 9, 9)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			got := []float64{x0, y0, x1, y1}
			want := []float64{tt.wx0, tt.wy0, tt.wx1, tt.wy1}
			for i := range got {
				if math.Abs(got[i]-want[i]) > 1e-9 {
					t.Errorf("clipped = %v, want %v", got, want)
					break
				}
			}
		})
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(10, 3)
	c.Line(0, 1, 9, 1, "#ffffff", LayerOrbit)

	for x := 0; x < 10; x++ {
		if got := c.At(x, 1).Ch; got != '-' {
			t.Errorf("cell %d = %q, want '-'", x, got)
		}
	}
	if c.At(0, 0).Ch != ' ' || c.At(0, 2).Ch != ' ' {
		t.Error("line leaked into other rows")
	}

	c = NewCanvas(5, 5)
	c.Line(2, 0, 2, 4, "", LayerOrbit)
	for y := 0; y < 5; y++ {
		if got := c.At(2, y).Ch; got != '|' {
			t.Errorf("cell (2,%d) = %q, want '|'", y, got)
		}
	}

	// Far off-screen endpoints are clipped rather than walked
	c = NewCanvas(4, 4)
	c.Line(-1e12, 2, 1e12, 2, "", LayerOrbit)
	if c.At(0, 2).Ch != '-' || c.At(3, 2).Ch != '-' {
		t.Errorf("long line not drawn:\n%s", c.String())
	}
}

func TestSlopeGlyph(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   rune
	}{
		{5, 0, '-'},
		{0, 5, '|'},
		{4, 2, '\\'},
		{4, -2, '/'},
		{-4, 2, '/'},
		{0, 0, '·'},
	}
	for _, tt := range tests {
		if got := slopeGlyph(tt.dx, tt.dy); got != tt.want {
			t.Errorf("slopeGlyph(%v, %v) = %q, want %q", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestCanvasLayers(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Set(1, 0, '*', "", LayerLabel)
	c.Set(1, 0, '.', "", LayerStar)
	if c.At(1, 0).Ch != '*' {
		t.Error("lower layer overwrote label")
	}
	c.Set(1, 0, 'x', "", LayerLabel)
	if c.At(1, 0).Ch != 'x' {
		t.Error("same layer did not overwrite")
	}

	// Out of range writes are ignored
	c.Set(-1, 0, 'x', "", LayerLabel)
	c.Set(3, 0, 'x', "", LayerLabel)
	c.Text(2, 0, "abc", "", LayerLabel)
	if got := c.String(); got != " xa" {
		t.Errorf("String() = %q, want %q", got, " xa")
	}
}

func TestCanvasRenderWidth(t *testing.T) {
	c := NewCanvas(12, 2)
	c.Text(0, 0, "Earth", "#3366ff", LayerLabel)
	c.Text(6, 0, "Moon", "#cccccc", LayerLabel)
	c.Line(0, 1, 11, 1, "#ff0000", LayerAxis)

	lines := strings.Split(c.Render(), "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2", len(lines))
	}
	for i, l := range lines {
		if w := lipgloss.Width(l); w != 12 {
			t.Errorf("line %d width = %d, want 12", i, w)
		}
	}
}

func lookAtOrigin() camera.View {
	return camera.View{Eye: geom.Vec3{Z: 1e7}, Target: geom.Vec3{}, Up: geom.Vec3{Y: 1}}
}

func TestProjectorPoint(t *testing.T) {
	p := NewProjector(lookAtOrigin(), DefaultLens(), 81, 41)

	x, y, ok := p.Point(geom.Vec3{})
	if !ok || x != 40 || y != 20 {
		t.Errorf("origin -> (%d,%d,%v), want (40,20,true)", x, y, ok)
	}

	// Up in the world is up on screen, right is right
	if _, y, ok := p.Point(geom.Vec3{Y: 1e6}); !ok || y >= 20 {
		t.Errorf("point above origin at row %d", y)
	}
	if x, _, ok := p.Point(geom.Vec3{X: 1e6}); !ok || x <= 40 {
		t.Errorf("point right of origin at column %d", x)
	}

	// Behind the eye and closer than the near plane are clipped
	if _, _, ok := p.Point(geom.Vec3{Z: 2e7}); ok {
		t.Error("point behind the camera visible")
	}
	if _, _, ok := p.Point(geom.Vec3{Z: 1e7 - 1}); ok {
		t.Error("point inside the near plane visible")
	}
	// Beyond the far plane
	if _, _, ok := p.Point(geom.Vec3{Z: -1e9}); ok {
		t.Error("point beyond the far plane visible")
	}
}

func TestProjectorSegmentNearClip(t *testing.T) {
	p := NewProjector(lookAtOrigin(), DefaultLens(), 80, 40)

	// From the origin to a point behind the eye
	x0, y0, x1, y1, ok := p.Segment(geom.Vec3{}, geom.Vec3{X: 1e6, Z: 3e7})
	if !ok {
		t.Fatal("segment crossing the near plane dropped")
	}
	for _, v := range []float64{x0, y0, x1, y1} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("non-finite screen coordinate %v", v)
		}
	}

	if _, _, _, _, ok := p.Segment(geom.Vec3{Z: 2e7}, geom.Vec3{Z: 3e7}); ok {
		t.Error("segment entirely behind the camera kept")
	}
}

func snapshot(t *testing.T, mode camera.Mode) state.Snapshot {
	t.Helper()
	bodies := []catalogue.Body{
		{Name: "Sun", Color: catalogue.Color{R: 1, G: 1}, Radius: 8e6, OrbitalPeriod: 1, RotationPeriod: 25, Parent: catalogue.NoParent},
		{Name: "Earth", Color: catalogue.Color{R: 0.2, G: 0.4, B: 1}, OrbitalRadius: 1.496e8, Radius: 3e6, OrbitalPeriod: 365, RotationPeriod: 1, Parent: 0, Orbit: 30},
	}
	cfg := state.DefaultConfig()
	cfg.InitialMode = mode
	cfg.StarCount = 200
	s, err := state.New(bodies, cfg)
	if err != nil {
		t.Fatal(err)
	}
	return s.Snapshot()
}

func TestDraw_TopView(t *testing.T) {
	snap := snapshot(t, camera.ModeTop)
	c := Draw(snap, 100, 40, DefaultOptions())

	out := c.String()
	if !strings.Contains(out, "Sun") || !strings.Contains(out, "Earth") {
		t.Errorf("labels missing:\n%s", out)
	}
	if !strings.ContainsRune(out, centerGlyph) {
		t.Error("no body centre drawn")
	}

	// The star sits in the middle of a plan view
	found := false
	for y := 18; y <= 21 && !found; y++ {
		for x := 48; x <= 51; x++ {
			if c.At(x, y).Layer == LayerBody {
				found = true
				break
			}
		}
	}
	if !found {
		t.Errorf("star not near the canvas centre:\n%s", out)
	}

	lines := strings.Split(out, "\n")
	if len(lines) != 40 {
		t.Errorf("canvas rows = %d, want 40", len(lines))
	}
}

func TestDraw_Toggles(t *testing.T) {
	snap := snapshot(t, camera.ModeShip)

	count := func(c *Canvas, l Layer) int {
		n := 0
		for y := 0; y < c.Height(); y++ {
			for x := 0; x < c.Width(); x++ {
				if c.At(x, y).Layer == l {
					n++
				}
			}
		}
		return n
	}

	all := Draw(snap, 120, 50, DefaultOptions())
	if count(all, LayerOrbit) == 0 {
		t.Error("no orbit cells with orbits on")
	}
	if count(all, LayerLabel) == 0 {
		t.Error("no label cells with labels on")
	}

	snap.Toggles = state.Toggles{}
	bare := Draw(snap, 120, 50, DefaultOptions())
	for _, l := range []Layer{LayerStar, LayerAxis, LayerOrbit, LayerLabel} {
		if n := count(bare, l); n != 0 {
			t.Errorf("layer %d has %d cells with every toggle off", l, n)
		}
	}
	if count(bare, LayerBody) == 0 {
		t.Error("bodies hidden with toggles off")
	}
}

func TestDraw_EveryMode(t *testing.T) {
	for _, m := range camera.Modes {
		t.Run(m.String(), func(t *testing.T) {
			snap := snapshot(t, m)
			c := Draw(snap, 60, 20, DefaultOptions())
			if c.Width() != 60 || c.Height() != 20 {
				t.Fatalf("canvas %dx%d", c.Width(), c.Height())
			}
		})
	}

	if c := Draw(snapshot(t, camera.ModeTop), 0, 0, DefaultOptions()); c.String() != "" {
		t.Error("empty canvas not blank")
	}
}
