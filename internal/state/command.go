package state

import (
	"errors"

	"github.com/litescript/ls-orrery/internal/camera"
)

// ErrUnknownCommand is returned by Apply for a command kind it does not know.
var ErrUnknownCommand = errors.New("unknown command")

// CommandKind identifies a user action.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdSelectView
	CmdToggleLabels
	CmdToggleOrbits
	CmdToggleStarfield
	CmdToggleAxes
	CmdTogglePause
	CmdForward
	CmdBack
	CmdTurnLeft
	CmdTurnRight
	CmdLookUp
	CmdLookDown
	CmdPanLeft
	CmdPanRight
	CmdPanUp
	CmdPanDown
	CmdQuit
)

func (k CommandKind) String() string {
	switch k {
	case CmdSelectView:
		return "select-view"
	case CmdToggleLabels:
		return "toggle-labels"
	case CmdToggleOrbits:
		return "toggle-orbits"
	case CmdToggleStarfield:
		return "toggle-starfield"
	case CmdToggleAxes:
		return "toggle-axes"
	case CmdTogglePause:
		return "toggle-pause"
	case CmdForward:
		return "forward"
	case CmdBack:
		return "back"
	case CmdTurnLeft:
		return "turn-left"
	case CmdTurnRight:
		return "turn-right"
	case CmdLookUp:
		return "look-up"
	case CmdLookDown:
		return "look-down"
	case CmdPanLeft:
		return "pan-left"
	case CmdPanRight:
		return "pan-right"
	case CmdPanUp:
		return "pan-up"
	case CmdPanDown:
		return "pan-down"
	case CmdQuit:
		return "quit"
	default:
		return "none"
	}
}

// Command is a user action. Mode is only read for CmdSelectView.
type Command struct {
	Kind CommandKind
	Mode camera.Mode
}

// SelectView builds a view selection command.
func SelectView(m camera.Mode) Command {
	return Command{Kind: CmdSelectView, Mode: m}
}

// Do builds a command that carries no argument.
func Do(k CommandKind) Command {
	return Command{Kind: k}
}

// Transition tells the caller whether to keep running after a command.
type Transition int

const (
	Continue Transition = iota
	Quit
)
