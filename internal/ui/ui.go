// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/state"
)

// Screen rows reserved outside the scene
const (
	headerLines = 1
	footerLines = 1
)

// DefaultFrameInterval is used when no interval is configured.
const DefaultFrameInterval = time.Second / 30

// FrameMsg drives the frame loop. Each one advances the simulation by
// exactly one clock step.
type FrameMsg time.Time

// Options configures the root model.
type Options struct {
	FrameInterval time.Duration
	Render        render.Options
	Logger        *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state *state.AppState
	log   *logging.Logger
	opts  Options

	// UI state
	width    int
	height   int
	ready    bool
	quitting bool
	status   string // Last command error, cleared by the next good frame

	menu MenuModel

	// Input collected since the last frame
	pending []state.Command

	// Snapshot taken at the end of the last frame
	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(st *state.AppState, opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = DefaultFrameInterval
	}
	if opts.Render.Lens == (render.Lens{}) {
		opts.Render = render.DefaultOptions()
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return Model{
		state:    st,
		log:      opts.Logger.With("ui"),
		opts:     opts,
		menu:     NewMenuModel(),
		snapshot: st.Snapshot(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.opts.FrameInterval)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if m.menu.IsOpen() {
			m.menu = m.menu.Close()
		}

	case tea.KeyMsg:
		m = m.handleKey(msg)

	case tea.MouseMsg:
		m = m.handleMouse(msg)

	case FrameMsg:
		return m.frame()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) Model {
	if m.menu.IsOpen() {
		var picked *state.Command
		m.menu, picked = m.menu.Update(msg)
		if picked != nil {
			m.enqueue(*picked)
		}
		return m
	}

	if msg.String() == "m" {
		w, h := m.sceneSize()
		m.menu = m.menu.OpenAt(w/2-10, h/2-6, w, h)
		return m
	}
	if cmd, ok := commandForKey(msg); ok {
		m.enqueue(cmd)
	}
	return m
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	// Scene coordinates
	msg.Y -= headerLines

	if m.menu.IsOpen() {
		var picked *state.Command
		m.menu, picked = m.menu.Update(msg)
		if picked != nil {
			m.enqueue(*picked)
		}
		return m
	}

	if msg.Button == tea.MouseButtonRight && msg.Action == tea.MouseActionPress {
		w, h := m.sceneSize()
		m.menu = m.menu.OpenAt(msg.X, msg.Y, w, h)
	}
	return m
}

// enqueue holds a command until the next frame boundary.
func (m *Model) enqueue(cmd state.Command) {
	m.log.Debug("queued %s", cmd.Kind)
	m.pending = append(m.pending, cmd)
}

// frame applies queued input, advances the simulation one step and takes
// the snapshot the next View renders.
func (m Model) frame() (tea.Model, tea.Cmd) {
	pending := m.pending
	m.pending = nil

	tr, err := m.state.ApplyAll(pending)
	if err != nil {
		m.log.Warn("command rejected: %v", err)
		m.status = err.Error()
	} else if len(pending) > 0 {
		m.status = ""
	}
	if tr == state.Quit {
		m.log.Info("quit requested at frame %d", m.snapshot.Frame)
		m.quitting = true
		return m, tea.Quit
	}

	m.state.Frame()
	m.snapshot = m.state.Snapshot()
	return m, frameCmd(m.opts.FrameInterval)
}

// Pending returns the number of commands waiting for the next frame.
func (m Model) Pending() int {
	return len(m.pending)
}

// Snapshot returns the snapshot shown by View.
func (m Model) Snapshot() state.Snapshot {
	return m.snapshot
}

// sceneSize returns the canvas size left after the header and footer.
func (m Model) sceneSize() (w, h int) {
	h = m.height - headerLines - footerLines
	if h < 1 {
		h = 1
	}
	return max(m.width, 1), h
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	w, h := m.sceneSize()
	canvas := render.Draw(m.snapshot, w, h, m.opts.Render)
	m.menu.Draw(canvas)

	return m.renderHeader() + "\n" + canvas.Render() + "\n" + m.renderFooter()
}

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
