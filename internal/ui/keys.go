package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/state"
)

// keyCommands maps single keys to state commands.
var keyCommands = map[string]state.Command{
	"a": state.Do(state.CmdToggleAxes),
	"u": state.Do(state.CmdPanUp),
	"d": state.Do(state.CmdPanDown),
	"l": state.Do(state.CmdPanLeft),
	"r": state.Do(state.CmdPanRight),

	"up":     state.Do(state.CmdForward),
	"down":   state.Do(state.CmdBack),
	"left":   state.Do(state.CmdTurnLeft),
	"right":  state.Do(state.CmdTurnRight),
	"pgup":   state.Do(state.CmdLookUp),
	"pgdown": state.Do(state.CmdLookDown),

	"1": state.SelectView(camera.ModeTop),
	"2": state.SelectView(camera.ModeEcliptic),
	"3": state.SelectView(camera.ModeShip),
	"4": state.SelectView(camera.ModeTracking),
	"5": state.SelectView(camera.ModeFreeFly),

	" ": state.Do(state.CmdTogglePause),

	"esc":    state.Do(state.CmdQuit),
	"q":      state.Do(state.CmdQuit),
	"ctrl+c": state.Do(state.CmdQuit),
}

// commandForKey translates a key press. ok is false for unbound keys.
func commandForKey(msg tea.KeyMsg) (state.Command, bool) {
	cmd, ok := keyCommands[msg.String()]
	return cmd, ok
}

// helpText is the footer key summary.
const helpText = "m/right-click: menu | 1-5: view | ↑↓←→: fly | pgup/pgdn: pitch | u/d/l/r: pan | a: axes | space: pause | q: quit"
