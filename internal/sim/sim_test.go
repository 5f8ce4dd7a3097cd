package sim

import (
	"math"
	"testing"

	"github.com/litescript/ls-orrery/internal/catalogue"
)

func testBodies() []catalogue.Body {
	return []catalogue.Body{
		{Name: "Star", OrbitalPeriod: 1, RotationPeriod: 25, Parent: catalogue.NoParent},
		{Name: "Planet", OrbitalRadius: 1000, OrbitalPeriod: 365, RotationPeriod: 1, Parent: 0},
		{Name: "Moon", OrbitalRadius: 50, OrbitalPeriod: 27.3, RotationPeriod: 27.3, Parent: 1, Orbit: 123},
	}
}

func mod360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func TestAdvance_Linear(t *testing.T) {
	const dt = 0.5

	for _, steps := range []int{1, 7, 100, 2001} {
		bodies := testBodies()
		clock := NewClock(dt, J2000)
		for k := 0; k < steps; k++ {
			clock.Tick(bodies)
		}

		if math.Abs(clock.Date-float64(steps)*dt) > 1e-9 {
			t.Errorf("steps=%d: date = %v, want %v", steps, clock.Date, float64(steps)*dt)
		}

		for _, b := range bodies {
			wantSpin := mod360(float64(steps) * dt * 360 / b.RotationPeriod)
			if d := math.Abs(mod360(b.Spin) - wantSpin); d > 1e-6 && d < 360-1e-6 {
				t.Errorf("steps=%d %s: spin mod 360 = %v, want %v", steps, b.Name, mod360(b.Spin), wantSpin)
			}
		}
	}
}

func TestAdvance_NoWraparound(t *testing.T) {
	bodies := testBodies()
	Advance(bodies, 100) // Planet spins 100 full turns

	if bodies[1].Spin != 36000 {
		t.Errorf("spin = %v, want 36000 (unwrapped)", bodies[1].Spin)
	}
}

func TestAdvance_OrbitFromInitialAngle(t *testing.T) {
	bodies := testBodies()
	Advance(bodies, 27.3)

	if math.Abs(bodies[2].Orbit-(123+360)) > 1e-9 {
		t.Errorf("moon orbit = %v, want %v", bodies[2].Orbit, 123+360.0)
	}
}

func TestNewClock_DefaultStep(t *testing.T) {
	c := NewClock(0, J2000)
	if c.Step != DefaultStep {
		t.Errorf("Step = %v, want %v", c.Step, DefaultStep)
	}
}

func TestClockCalendar(t *testing.T) {
	c := NewClock(1, J2000)
	if got := c.CalendarString(); got != "2000-01-01" {
		t.Errorf("epoch calendar = %s, want 2000-01-01", got)
	}

	c.Advance(nil, 31)
	if got := c.CalendarString(); got != "2000-02-01" {
		t.Errorf("calendar after 31 days = %s, want 2000-02-01", got)
	}
}

func TestStarfield(t *testing.T) {
	stars := Starfield(DefaultStarSeed, DefaultStarCount, DefaultStarExtent)
	if len(stars) != DefaultStarCount {
		t.Fatalf("expected %d stars, got %d", DefaultStarCount, len(stars))
	}

	for _, s := range stars {
		if math.Abs(s.X) > DefaultStarExtent || math.Abs(s.Y) > DefaultStarExtent || math.Abs(s.Z) > DefaultStarExtent {
			t.Fatalf("star %v outside extent", s)
		}
	}

	again := Starfield(DefaultStarSeed, DefaultStarCount, DefaultStarExtent)
	if stars[0] != again[0] || stars[999] != again[999] {
		t.Error("starfield not deterministic for a fixed seed")
	}

	if Starfield(1, 0, 1) != nil {
		t.Error("zero stars should yield nil")
	}
}
