package ui

import (
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/render"
	"github.com/litescript/ls-orrery/internal/state"
)

// Menu colours
const (
	menuBorderColor = "#7B2CBF"
	menuItemColor   = "#C0C0D0"
	menuActiveColor = "#FFD75F"
)

// menuItem is one context menu entry.
type menuItem struct {
	label string
	cmd   state.Command
}

// menuItems lists the context menu in display order.
var menuItems = []menuItem{
	{camera.ModeTop.Title(), state.SelectView(camera.ModeTop)},
	{camera.ModeEcliptic.Title(), state.SelectView(camera.ModeEcliptic)},
	{camera.ModeShip.Title(), state.SelectView(camera.ModeShip)},
	{camera.ModeTracking.Title(), state.SelectView(camera.ModeTracking)},
	{camera.ModeFreeFly.Title(), state.SelectView(camera.ModeFreeFly)},
	{"Toggle labels", state.Do(state.CmdToggleLabels)},
	{"Toggle orbits", state.Do(state.CmdToggleOrbits)},
	{"Toggle starfield", state.Do(state.CmdToggleStarfield)},
	{"Quit", state.Do(state.CmdQuit)},
}

// MenuModel is the pop-up context menu.
type MenuModel struct {
	open   bool
	x, y   int // Top-left corner of the box
	cursor int
}

// NewMenuModel creates a closed menu.
func NewMenuModel() MenuModel {
	return MenuModel{}
}

// IsOpen reports whether the menu is showing.
func (m MenuModel) IsOpen() bool {
	return m.open
}

// Cursor returns the highlighted entry.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// size returns the box dimensions including the border.
func (m MenuModel) size() (w, h int) {
	widest := 0
	for _, it := range menuItems {
		if n := utf8.RuneCountInString(it.label); n > widest {
			widest = n
		}
	}
	return widest + 4, len(menuItems) + 2 // border, marker, padding
}

// OpenAt shows the menu with its corner at x, y, shifted to stay inside a
// w×h screen.
func (m MenuModel) OpenAt(x, y, w, h int) MenuModel {
	bw, bh := m.size()
	if x+bw > w {
		x = w - bw
	}
	if y+bh > h {
		y = h - bh
	}
	m.x, m.y = max(x, 0), max(y, 0)
	m.cursor = 0
	m.open = true
	return m
}

// Close hides the menu.
func (m MenuModel) Close() MenuModel {
	m.open = false
	return m
}

// itemAt returns the entry under screen position x, y, or -1.
func (m MenuModel) itemAt(x, y int) int {
	bw, _ := m.size()
	if x <= m.x || x >= m.x+bw-1 {
		return -1
	}
	i := y - m.y - 1
	if i < 0 || i >= len(menuItems) {
		return -1
	}
	return i
}

// Update handles input while the menu is open. When an entry is chosen it
// returns the entry's command and closes the menu.
func (m MenuModel) Update(msg tea.Msg) (MenuModel, *state.Command) {
	if !m.open {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m.cursor = (m.cursor - 1 + len(menuItems)) % len(menuItems)
		case "down", "j", "tab":
			m.cursor = (m.cursor + 1) % len(menuItems)
		case "enter", " ":
			cmd := menuItems[m.cursor].cmd
			return m.Close(), &cmd
		case "esc", "m":
			return m.Close(), nil
		}

	case tea.MouseMsg:
		i := m.itemAt(msg.X, msg.Y)
		switch {
		case msg.Action == tea.MouseActionMotion:
			if i >= 0 {
				m.cursor = i
			}
		case msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonLeft,
			msg.Action == tea.MouseActionRelease && msg.Button == tea.MouseButtonRight:
			// Release over an entry picks it, as with a held-down pop-up menu
			if i >= 0 {
				cmd := menuItems[i].cmd
				return m.Close(), &cmd
			}
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			if i < 0 {
				return m.Close(), nil
			}
			m.cursor = i
		}
	}
	return m, nil
}

// Draw paints the open menu onto the canvas.
func (m MenuModel) Draw(c *render.Canvas) {
	if !m.open {
		return
	}
	bw, bh := m.size()

	// Border
	for x := m.x; x < m.x+bw; x++ {
		c.Set(x, m.y, '─', menuBorderColor, render.LayerOverlay)
		c.Set(x, m.y+bh-1, '─', menuBorderColor, render.LayerOverlay)
	}
	for y := m.y; y < m.y+bh; y++ {
		c.Set(m.x, y, '│', menuBorderColor, render.LayerOverlay)
		c.Set(m.x+bw-1, y, '│', menuBorderColor, render.LayerOverlay)
	}
	c.Set(m.x, m.y, '┌', menuBorderColor, render.LayerOverlay)
	c.Set(m.x+bw-1, m.y, '┐', menuBorderColor, render.LayerOverlay)
	c.Set(m.x, m.y+bh-1, '└', menuBorderColor, render.LayerOverlay)
	c.Set(m.x+bw-1, m.y+bh-1, '┘', menuBorderColor, render.LayerOverlay)

	for i, it := range menuItems {
		y := m.y + 1 + i
		// Clear the row inside the border
		for x := m.x + 1; x < m.x+bw-1; x++ {
			c.Set(x, y, ' ', "", render.LayerOverlay)
		}
		color, marker := menuItemColor, ' '
		if i == m.cursor {
			color, marker = menuActiveColor, '▶'
		}
		c.Set(m.x+1, y, marker, color, render.LayerOverlay)
		c.Text(m.x+2, y, it.label, color, render.LayerOverlay)
	}
}
