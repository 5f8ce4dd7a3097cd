// Package report turns orrery snapshots into JSON exports and text tables
// for headless runs.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/litescript/ls-orrery/internal/catalogue"
	"github.com/litescript/ls-orrery/internal/geom"
	"github.com/litescript/ls-orrery/internal/scene"
	"github.com/litescript/ls-orrery/internal/state"
)

// SnapshotExport is the JSON-serializable representation of an orrery
// snapshot.
type SnapshotExport struct {
	ExportedAt time.Time     `json:"exported_at"`
	Frame      int           `json:"frame"`
	Date       float64       `json:"date_days"`
	JD         float64       `json:"julian_day"`
	Calendar   string        `json:"calendar"`
	Step       float64       `json:"step_days"`
	Paused     bool          `json:"paused"`
	View       ViewExport    `json:"view"`
	Toggles    state.Toggles `json:"toggles"`
	Bodies     []BodyExport  `json:"bodies"`
	Events     []state.Event `json:"events,omitempty"`
}

// ViewExport is the camera state.
type ViewExport struct {
	Mode    string     `json:"mode"`
	Eye     [3]float64 `json:"eye"`
	Target  [3]float64 `json:"target"`
	Up      [3]float64 `json:"up"`
	Tracked string     `json:"tracked,omitempty"`
}

// BodyExport is a JSON-friendly body with derived placement.
type BodyExport struct {
	Index          int        `json:"index"`
	Name           string     `json:"name"`
	Color          string     `json:"color"`
	Parent         string     `json:"parent,omitempty"`
	OrbitalRadius  float64    `json:"orbital_radius_km"`
	OrbitalPeriod  float64    `json:"orbital_period_days"`
	RotationPeriod float64    `json:"rotation_period_days"`
	Radius         float64    `json:"radius_km"`
	Orbit          float64    `json:"orbit_deg"`
	Spin           float64    `json:"spin_deg"`
	Position       [3]float64 `json:"position_km"`
	Distance       float64    `json:"distance_km"`
}

func vec(v geom.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// normDeg folds an accumulated angle into [0, 360).
func normDeg(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// parentName returns the name of b's parent, or "".
func parentName(bodies []catalogue.Body, b catalogue.Body) string {
	if b.IsRoot() || b.Parent < 0 || b.Parent >= len(bodies) {
		return ""
	}
	return bodies[b.Parent].Name
}

// ExportSnapshot converts a snapshot to an exportable format.
func ExportSnapshot(snap state.Snapshot, exportedAt time.Time) *SnapshotExport {
	export := &SnapshotExport{
		ExportedAt: exportedAt,
		Frame:      snap.Frame,
		Date:       snap.Date,
		JD:         snap.JD,
		Calendar:   snap.Calendar,
		Step:       snap.Step,
		Paused:     snap.Paused,
		View: ViewExport{
			Mode:    snap.Mode.String(),
			Eye:     vec(snap.View.Eye),
			Target:  vec(snap.View.Target),
			Up:      vec(snap.View.Up),
			Tracked: snap.Tracked,
		},
		Toggles: snap.Toggles,
		Events:  snap.Events,
	}

	for i, b := range snap.Bodies {
		pos := scene.WorldPosition(snap.Bodies, i)
		export.Bodies = append(export.Bodies, BodyExport{
			Index:          i,
			Name:           b.Name,
			Color:          b.Color.Hex(),
			Parent:         parentName(snap.Bodies, b),
			OrbitalRadius:  b.OrbitalRadius,
			OrbitalPeriod:  b.OrbitalPeriod,
			RotationPeriod: b.RotationPeriod,
			Radius:         b.Radius,
			Orbit:          normDeg(b.Orbit),
			Spin:           normDeg(b.Spin),
			Position:       vec(pos),
			Distance:       pos.Norm(),
		})
	}
	return export
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// SummaryRow represents one row in the summary table.
type SummaryRow struct {
	Name     string
	Parent   string
	Orbit    float64
	Spin     float64
	Distance string
	Position geom.Vec3
}

// GenerateSummaryRows creates summary rows from a snapshot.
func GenerateSummaryRows(snap state.Snapshot) []SummaryRow {
	rows := make([]SummaryRow, 0, len(snap.Bodies))
	for i, b := range snap.Bodies {
		pos := scene.WorldPosition(snap.Bodies, i)
		parent := parentName(snap.Bodies, b)
		if parent == "" {
			parent = "-"
		}
		rows = append(rows, SummaryRow{
			Name:     b.Name,
			Parent:   parent,
			Orbit:    normDeg(b.Orbit),
			Spin:     normDeg(b.Spin),
			Distance: FormatDistance(pos.Norm()),
			Position: pos,
		})
	}
	return rows
}

// WriteSummaryTable writes a text table to the given writer.
func WriteSummaryTable(w io.Writer, snap state.Snapshot) {
	rows := GenerateSummaryRows(snap)

	fmt.Fprintf(w, "Orrery @ %s (day %.1f, frame %d, %s view)\n",
		snap.Calendar, snap.Date, snap.Frame, snap.Mode)
	fmt.Fprintln(w, strings.Repeat("─", 86))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	fmt.Fprintf(w, "%-12s %-10s %7s %7s %-12s %10s %10s %10s\n",
		"Body", "Parent", "Orbit", "Spin", "Distance", "X (Mkm)", "Y (Mkm)", "Z (Mkm)")
	fmt.Fprintln(w, strings.Repeat("─", 86))

	for _, r := range rows {
		fmt.Fprintf(w, "%-12s %-10s %6.1f° %6.1f° %-12s %10.2f %10.2f %10.2f\n",
			truncateStr(r.Name, 12),
			truncateStr(r.Parent, 10),
			r.Orbit,
			r.Spin,
			r.Distance,
			r.Position.X/1e6,
			r.Position.Y/1e6,
			r.Position.Z/1e6,
		)
	}

	fmt.Fprintf(w, "\nTotal: %d bodies\n", len(rows))
}

// FormatDistance renders a distance in km with a readable unit.
func FormatDistance(km float64) string {
	switch {
	case km >= 1e9:
		return fmt.Sprintf("%.2f Gkm", km/1e9)
	case km >= 1e6:
		return fmt.Sprintf("%.2f Mkm", km/1e6)
	case km >= 1e3:
		return fmt.Sprintf("%.1f kkm", km/1e3)
	default:
		return fmt.Sprintf("%.0f km", km)
	}
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
