// Package sim advances the simulated date and the per-body animation angles.
//
// The clock is frame coupled: every rendered frame advances the date by a
// fixed step, independent of wall-clock time. Playback speed therefore
// follows the frame rate.
package sim

import (
	"fmt"

	"github.com/soniakeys/meeus/v3/julian"

	"github.com/litescript/ls-orrery/internal/catalogue"
)

// DefaultStep is the simulated time added per frame (days).
const DefaultStep = 0.5

// J2000 is the Julian day of 2000-01-01 12:00 TT, the default epoch.
const J2000 = 2451545.0

// Clock tracks the simulated date in days since its epoch.
type Clock struct {
	Date    float64 // Days elapsed since epoch
	Step    float64 // Days per frame
	EpochJD float64 // Julian day of Date == 0
}

// NewClock creates a clock at date 0 with the given per-frame step.
func NewClock(step float64, epochJD float64) *Clock {
	if step <= 0 {
		step = DefaultStep
	}
	return &Clock{Step: step, EpochJD: epochJD}
}

// Advance moves the date forward by dt and turns every body accordingly.
// Periods are validated positive at load time, so the divisions are safe.
func (c *Clock) Advance(bodies []catalogue.Body, dt float64) {
	c.Date += dt
	Advance(bodies, dt)
}

// Tick advances by one frame step.
func (c *Clock) Tick(bodies []catalogue.Body) {
	c.Advance(bodies, c.Step)
}

// Advance turns every body by dt worth of spin and orbit. Angles accumulate
// without wraparound.
func Advance(bodies []catalogue.Body, dt float64) {
	for i := range bodies {
		b := &bodies[i]
		b.Spin += 360 * dt / b.RotationPeriod
		b.Orbit += 360 * dt / b.OrbitalPeriod
	}
}

// JD returns the Julian day of the current simulated date.
func (c *Clock) JD() float64 {
	return c.EpochJD + c.Date
}

// Calendar returns the simulated date as a Gregorian calendar date.
func (c *Clock) Calendar() (year, month int, day float64) {
	return julian.JDToCalendar(c.JD())
}

// CalendarString formats the simulated date as YYYY-MM-DD.
func (c *Clock) CalendarString() string {
	y, m, d := c.Calendar()
	return fmt.Sprintf("%04d-%02d-%02d", y, m, int(d))
}
