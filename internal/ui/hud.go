package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/litescript/ls-orrery/internal/camera"
	"github.com/litescript/ls-orrery/internal/version"
)

var (
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
)

// Title gradient end points
var (
	titleFrom, _ = colorful.Hex("#3B82F6")
	titleTo, _   = colorful.Hex("#EC4899")
)

// renderTitle renders the program name with a horizontal gradient.
func renderTitle(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := titleFrom.BlendLuv(titleTo, t).Clamped().Hex()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Bold(true).Render(string(r)))
	}
	return b.String()
}

func field(label, value string) string {
	return labelStyle.Render(label+" ") + valueStyle.Render(value)
}

func (m Model) renderHeader() string {
	s := m.snapshot

	parts := []string{
		renderTitle("ls-orrery") + dimStyle.Render(" v"+version.Version),
		field("date", s.Calendar),
		field("day", fmt.Sprintf("%.1f", s.Date)),
		accentStyle.Render(s.Mode.Title()),
	}
	if s.Mode == camera.ModeTracking && s.Tracked != "" {
		parts = append(parts, field("tracking", s.Tracked))
	}
	if s.Mode == camera.ModeFreeFly {
		parts = append(parts, field("hdg", fmt.Sprintf("%.0f°", s.Heading)), field("pitch", fmt.Sprintf("%.0f°", s.Pitch)))
	}
	parts = append(parts, m.renderToggles())
	if s.Paused {
		parts = append(parts, pausedStyle.Render("PAUSED"))
	}

	line := " " + strings.Join(parts, dimStyle.Render("  │  "))
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(line)
}

// renderToggles shows each display toggle lit or dimmed.
func (m Model) renderToggles() string {
	t := m.snapshot.Toggles
	flags := []struct {
		name string
		on   bool
	}{
		{"labels", t.Labels},
		{"orbits", t.Orbits},
		{"stars", t.Starfield},
		{"axes", t.Axes},
	}
	var out []string
	for _, f := range flags {
		if f.on {
			out = append(out, valueStyle.Render(f.name))
		} else {
			out = append(out, dimStyle.Render(f.name))
		}
	}
	return strings.Join(out, " ")
}

func (m Model) renderFooter() string {
	var status string
	switch {
	case m.status != "":
		status = errorStyle.Render(m.status)
	case len(m.snapshot.Events) > 0:
		last := m.snapshot.Events[len(m.snapshot.Events)-1]
		status = valueStyle.Render(last.Message)
	default:
		status = dimStyle.Render(fmt.Sprintf("frame %d", m.snapshot.Frame))
	}

	line := " " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(helpText)
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(line)
}
