// Package camera derives eye, target and up vectors from one of five view
// modes.
package camera

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when a view mode value is not one of the
// defined modes.
var ErrUnknownMode = errors.New("unknown view mode")

// Mode selects how the view is derived.
type Mode int

// Mode values start at 1 so the zero value is never a valid mode.
const (
	ModeTop      Mode = iota + 1 // Fixed eye above the origin, plan view
	ModeEcliptic                 // Fixed eye on the orbital-plane normal, edge-on
	ModeShip                     // Fixed oblique establishing shot
	ModeTracking                 // Follows a body along its orbit
	ModeFreeFly                  // Eye and heading driven by movement commands
)

// Modes lists every valid mode in menu order.
var Modes = []Mode{ModeTop, ModeEcliptic, ModeShip, ModeTracking, ModeFreeFly}

// Valid reports whether m is a defined mode.
func (m Mode) Valid() bool {
	return m >= ModeTop && m <= ModeFreeFly
}

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeTop:
		return "top"
	case ModeEcliptic:
		return "ecliptic"
	case ModeShip:
		return "ship"
	case ModeTracking:
		return "tracking"
	case ModeFreeFly:
		return "fly"
	default:
		return "unknown"
	}
}

// Title returns the display label used in menus and the HUD.
func (m Mode) Title() string {
	switch m {
	case ModeTop:
		return "Top view"
	case ModeEcliptic:
		return "Ecliptic view"
	case ModeShip:
		return "Spaceship view"
	case ModeTracking:
		return "Tracking view"
	case ModeFreeFly:
		return "Fly-around view"
	default:
		return "Unknown view"
	}
}

// ParseMode parses a mode name or its 1-based number.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "1":
		return ModeTop, nil
	case "ecliptic", "2":
		return ModeEcliptic, nil
	case "ship", "spaceship", "3":
		return ModeShip, nil
	case "tracking", "track", "earth", "4":
		return ModeTracking, nil
	case "fly", "freefly", "free-fly", "5":
		return ModeFreeFly, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}
