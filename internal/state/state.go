// Package state owns the mutable orrery state and applies commands to it.
package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/catalogue"
	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/sim"
)

// ErrNoBodies is returned when the state is built from an empty catalogue.
var ErrNoBodies = errors.New("catalogue has no bodies")

// DefaultTrackName is the body followed by the tracking view unless
// configured otherwise.
const DefaultTrackName = "Earth"

// fallbackTrackIndex is used when the named body is absent.
const fallbackTrackIndex = 3

// Toggles are the display switches.
type Toggles struct {
	Labels    bool `json:"labels"`
	Orbits    bool `json:"orbits"`
	Starfield bool `json:"starfield"`
	Axes      bool `json:"axes"`
}

// AllOn returns the toggles with everything shown.
func AllOn() Toggles {
	return Toggles{Labels: true, Orbits: true, Starfield: true, Axes: true}
}

// Event records a user-visible state change for the HUD log.
type Event struct {
	Frame   int     `json:"frame"`
	Date    float64 `json:"date"`
	Message string  `json:"message"`
}

// Config holds construction options for AppState.
type Config struct {
	Step        float64
	EpochJD     float64
	StarSeed    int64
	StarCount   int
	StarExtent  float64
	TrackName   string
	InitialMode camera.Mode
	MaxEvents   int
}

// DefaultConfig returns the stock orrery settings.
func DefaultConfig() Config {
	return Config{
		Step:        sim.DefaultStep,
		EpochJD:     sim.J2000,
		StarSeed:    sim.DefaultStarSeed,
		StarCount:   sim.DefaultStarCount,
		StarExtent:  sim.DefaultStarExtent,
		TrackName:   DefaultTrackName,
		InitialMode: camera.ModeTop,
		MaxEvents:   8,
	}
}

// AppState is the single owner of bodies, clock, camera and display
// toggles. All mutation goes through Apply and Frame.
type AppState struct {
	mu sync.RWMutex

	bodies  []catalogue.Body
	clock   *sim.Clock
	cam     *camera.Camera
	toggles Toggles
	stars   []geom.Vec3
	frame   int
	paused  bool

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int
}

// New builds the state around a loaded catalogue. The bodies slice is owned
// by the returned state from here on.
func New(bodies []catalogue.Body, cfg Config) (*AppState, error) {
	if len(bodies) == 0 {
		return nil, ErrNoBodies
	}
	if cfg.Step <= 0 {
		return nil, fmt.Errorf("time step must be positive, got %v", cfg.Step)
	}

	cam := camera.New()
	mode := cfg.InitialMode
	if mode == 0 {
		mode = camera.ModeTop
	}
	if err := cam.SetMode(mode); err != nil {
		return nil, err
	}
	cam.Track(TrackIndex(bodies, cfg.TrackName))

	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 8
	}

	return &AppState{
		bodies:    bodies,
		clock:     sim.NewClock(cfg.Step, cfg.EpochJD),
		cam:       cam,
		toggles:   AllOn(),
		stars:     sim.Starfield(cfg.StarSeed, cfg.StarCount, cfg.StarExtent),
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
	}, nil
}

// TrackIndex picks the body followed by the tracking view: the named body,
// else index 3, else the last body.
func TrackIndex(bodies []catalogue.Body, name string) int {
	if name != "" {
		if i := catalogue.Find(bodies, name); i >= 0 {
			return i
		}
	}
	if fallbackTrackIndex < len(bodies) {
		return fallbackTrackIndex
	}
	return len(bodies) - 1
}

// Frame advances the simulation by one clock step unless paused. It
// returns the new frame number.
func (s *AppState) Frame() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.frame++
	if !s.paused {
		s.clock.Tick(s.bodies)
	}
	return s.frame
}

// Apply performs a single command. Unknown commands and invalid view modes
// return an error and leave the state unchanged.
func (s *AppState) Apply(cmd Command) (Transition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Kind {
	case CmdSelectView:
		if err := s.cam.SetMode(cmd.Mode); err != nil {
			return Continue, err
		}
		s.addEvent(cmd.Mode.Title())
	case CmdToggleLabels:
		s.toggles.Labels = !s.toggles.Labels
		s.addEvent(onOff("Labels", s.toggles.Labels))
	case CmdToggleOrbits:
		s.toggles.Orbits = !s.toggles.Orbits
		s.addEvent(onOff("Orbits", s.toggles.Orbits))
	case CmdToggleStarfield:
		s.toggles.Starfield = !s.toggles.Starfield
		s.addEvent(onOff("Starfield", s.toggles.Starfield))
	case CmdToggleAxes:
		s.toggles.Axes = !s.toggles.Axes
		s.addEvent(onOff("Axes", s.toggles.Axes))
	case CmdTogglePause:
		s.paused = !s.paused
		if s.paused {
			s.addEvent("Paused")
		} else {
			s.addEvent("Resumed")
		}
	case CmdForward:
		s.cam.MoveForward()
	case CmdBack:
		s.cam.MoveBack()
	case CmdTurnLeft:
		s.cam.TurnLeft()
	case CmdTurnRight:
		s.cam.TurnRight()
	case CmdLookUp:
		s.cam.LookUp()
	case CmdLookDown:
		s.cam.LookDown()
	case CmdPanLeft: // +X is screen left for the default heading
		s.cam.Pan(1, 0)
	case CmdPanRight:
		s.cam.Pan(-1, 0)
	case CmdPanUp:
		s.cam.Pan(0, 1)
	case CmdPanDown:
		s.cam.Pan(0, -1)
	case CmdQuit:
		return Quit, nil
	default:
		return Continue, fmt.Errorf("%w: %d", ErrUnknownCommand, int(cmd.Kind))
	}
	return Continue, nil
}

// ApplyAll applies queued commands in order. It stops at the first quit;
// errors from individual commands are collected and joined.
func (s *AppState) ApplyAll(cmds []Command) (Transition, error) {
	var errs []error
	for _, cmd := range cmds {
		tr, err := s.Apply(cmd)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if tr == Quit {
			return Quit, errors.Join(errs...)
		}
	}
	return Continue, errors.Join(errs...)
}

func onOff(what string, on bool) string {
	if on {
		return what + " on"
	}
	return what + " off"
}

// addEvent adds an event to the ring buffer. Caller holds the lock.
func (s *AppState) addEvent(msg string) {
	e := Event{Frame: s.frame, Date: s.clock.Date, Message: msg}
	if len(s.events) < s.maxEvents {
		s.events = append(s.events, e)
	} else {
		s.events[s.eventWriteAt] = e
		s.eventWriteAt = (s.eventWriteAt + 1) % s.maxEvents
	}
}

// eventsOrdered returns events oldest first. Caller holds the lock.
func (s *AppState) eventsOrdered() []Event {
	if len(s.events) == 0 {
		return nil
	}
	if len(s.events) < s.maxEvents {
		out := make([]Event, len(s.events))
		copy(out, s.events)
		return out
	}
	out := make([]Event, s.maxEvents)
	for i := 0; i < s.maxEvents; i++ {
		out[i] = s.events[(s.eventWriteAt+i)%s.maxEvents]
	}
	return out
}

// Snapshot is an immutable, render-ready copy of the state.
type Snapshot struct {
	Bodies   []catalogue.Body
	Stars    []geom.Vec3
	View     camera.View
	Mode     camera.Mode
	Toggles  Toggles
	Date     float64
	JD       float64
	Calendar string
	Step     float64
	Frame    int
	Paused   bool
	Tracked  string
	Heading  float64
	Pitch    float64
	Events   []Event
}

// Snapshot returns a consistent copy of the current state.
func (s *AppState) Snapshot() Snapshot {
	s.mu.Lock() // View may refresh the free-fly target
	defer s.mu.Unlock()

	bodies := make([]catalogue.Body, len(s.bodies))
	copy(bodies, s.bodies)

	var tracked string
	if i := s.cam.Tracked(); i >= 0 && i < len(bodies) {
		tracked = bodies[i].Name
	}

	return Snapshot{
		Bodies:   bodies,
		Stars:    s.stars, // never mutated after construction
		View:     s.cam.View(bodies),
		Mode:     s.cam.Mode(),
		Toggles:  s.toggles,
		Date:     s.clock.Date,
		JD:       s.clock.JD(),
		Calendar: s.clock.CalendarString(),
		Step:     s.clock.Step,
		Frame:    s.frame,
		Paused:   s.paused,
		Tracked:  tracked,
		Heading:  s.cam.Heading(),
		Pitch:    s.cam.Pitch(),
		Events:   s.eventsOrdered(),
	}
}

// RecentEvents returns the last n events, oldest first.
func (s *AppState) RecentEvents(n int) []Event {
	if n <= 0 {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := s.eventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Mode returns the active view mode.
func (s *AppState) Mode() camera.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam.Mode()
}

// Toggles returns the display toggles.
func (s *AppState) Toggles() Toggles {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.toggles
}

// Paused reports whether the clock is frozen.
func (s *AppState) Paused() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paused
}
